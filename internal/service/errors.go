package service

import (
	"errors"
	"fmt"
)

// Service errors. Handlers map these onto HTTP statuses; everything else is
// treated as an internal error.
var (
	ErrValidation = errors.New("validation failed")

	ErrFarmerNotFound           = errors.New("farmer not found")
	ErrFarmerReferenced         = errors.New("farmer is still referenced by other records")
	ErrLivestockNotFound        = errors.New("livestock not found")
	ErrLivestockRecordNotFound  = errors.New("livestock record not found")
	ErrCropNotFound             = errors.New("crop not found")
	ErrFinancialServiceNotFound = errors.New("financial service not found")
	ErrExtensionServiceNotFound = errors.New("extension service not found")
	ErrOrganizationNotFound     = errors.New("organization not found")

	ErrUploadTooLarge       = errors.New("upload exceeds the size limit")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// validationError wraps ErrValidation with the first violated rule so
// errors.Is matching and the human-readable message both survive.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
