package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/middleware"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// orgScope builds the caller's tenant scope from the JWT claims. A missing
// scope aborts the request with 401.
func orgScope(c *gin.Context) (domain.OrgContext, bool) {
	orgID, ok := middleware.GetOrgID(c)
	if !ok || orgID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Organization not found in token"))
		return domain.OrgContext{}, false
	}
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)
	return domain.OrgContext{OrgID: orgID, UserID: userID, Role: role}, true
}

// respondServiceError maps service errors onto the response envelope.
// Unrecognized errors become a generic 500 so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, err.Error()))
	case errors.Is(err, domain.ErrMissingOrgScope):
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Organization scope is required"))
	case errors.Is(err, service.ErrFarmerReferenced):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeFarmerReferenced,
			"Farmer cannot be deleted while livestock, crop or financial records still reference them"))
	case errors.Is(err, service.ErrFarmerNotFound),
		errors.Is(err, service.ErrLivestockNotFound),
		errors.Is(err, service.ErrLivestockRecordNotFound),
		errors.Is(err, service.ErrCropNotFound),
		errors.Is(err, service.ErrFinancialServiceNotFound),
		errors.Is(err, service.ErrExtensionServiceNotFound),
		errors.Is(err, service.ErrOrganizationNotFound):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, service.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, response.Error(response.ErrCodeUploadTooLarge, err.Error()))
	case errors.Is(err, service.ErrUnsupportedMediaType):
		c.JSON(http.StatusUnsupportedMediaType, response.Error(response.ErrCodeUnsupportedMedia, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(""))
	}
}
