package dto

import (
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// CreateLivestockRequest represents a request to register an animal
type CreateLivestockRequest struct {
	FarmerID        string     `json:"farmer_id" binding:"required"`
	TagNumber       string     `json:"tag_number" binding:"required,max=50"`
	Type            string     `json:"type" binding:"required,max=50"`
	Breed           string     `json:"breed" binding:"omitempty,max=100"`
	Gender          string     `json:"gender" binding:"omitempty,oneof=male female"`
	Status          string     `json:"status" binding:"omitempty,max=20"`
	AcquisitionDate *time.Time `json:"acquisition_date" binding:"omitempty"`
}

// Validate applies the enum rules binding tags cannot express
func (r *CreateLivestockRequest) Validate() (bool, string) {
	if r.Status != "" && !domain.ValidLivestockStatus(r.Status) {
		return false, "Unknown livestock status: " + r.Status
	}
	return true, ""
}

// UpdateLivestockRequest represents a partial livestock update
type UpdateLivestockRequest struct {
	FarmerID        *string    `json:"farmer_id" binding:"omitempty"`
	TagNumber       *string    `json:"tag_number" binding:"omitempty,max=50"`
	Type            *string    `json:"type" binding:"omitempty,max=50"`
	Breed           *string    `json:"breed" binding:"omitempty,max=100"`
	Gender          *string    `json:"gender" binding:"omitempty,oneof=male female"`
	Status          *string    `json:"status" binding:"omitempty,max=20"`
	AcquisitionDate *time.Time `json:"acquisition_date" binding:"omitempty"`
}

// Validate validates that at least one field is provided and enums hold
func (r *UpdateLivestockRequest) Validate() (bool, string) {
	if r.FarmerID == nil && r.TagNumber == nil && r.Type == nil && r.Breed == nil &&
		r.Gender == nil && r.Status == nil && r.AcquisitionDate == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Status != nil && !domain.ValidLivestockStatus(*r.Status) {
		return false, "Unknown livestock status: " + *r.Status
	}
	return true, ""
}

// ListLivestockQuery represents query parameters for listing livestock
type ListLivestockQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	FarmerID string `form:"farmer_id" binding:"omitempty"`
	Type     string `form:"type" binding:"omitempty,max=50"`
	Status   string `form:"status" binding:"omitempty,max=20"`
	Search   string `form:"search" binding:"omitempty,max=255"`
}

// SetDefaults sets default values for query parameters
func (q *ListLivestockQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}

// AddHealthRecordRequest represents a request to append a health record
type AddHealthRecordRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	Diagnosis    string    `json:"diagnosis" binding:"required,max=255"`
	Treatment    string    `json:"treatment" binding:"omitempty,max=255"`
	Medication   string    `json:"medication" binding:"omitempty,max=255"`
	Veterinarian string    `json:"veterinarian" binding:"omitempty,max=100"`
	Notes        string    `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateHealthRecordRequest represents a partial health record update
type UpdateHealthRecordRequest struct {
	Date         *time.Time `json:"date" binding:"omitempty"`
	Diagnosis    *string    `json:"diagnosis" binding:"omitempty,max=255"`
	Treatment    *string    `json:"treatment" binding:"omitempty,max=255"`
	Medication   *string    `json:"medication" binding:"omitempty,max=255"`
	Veterinarian *string    `json:"veterinarian" binding:"omitempty,max=100"`
	Notes        *string    `json:"notes" binding:"omitempty,max=1000"`
}

// Validate validates that at least one field is provided
func (r *UpdateHealthRecordRequest) Validate() (bool, string) {
	if r.Date == nil && r.Diagnosis == nil && r.Treatment == nil &&
		r.Medication == nil && r.Veterinarian == nil && r.Notes == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// AddBreedingRecordRequest represents a request to append a breeding record
type AddBreedingRecordRequest struct {
	BreedingDate      time.Time  `json:"breeding_date" binding:"required"`
	Status            string     `json:"status" binding:"required"`
	ExpectedBirthDate *time.Time `json:"expected_birth_date" binding:"omitempty"`
	ActualBirthDate   *time.Time `json:"actual_birth_date" binding:"omitempty"`
	SireTag           string     `json:"sire_tag" binding:"omitempty,max=50"`
	Notes             string     `json:"notes" binding:"omitempty,max=1000"`
}

// Validate applies enum and date-ordering rules
func (r *AddBreedingRecordRequest) Validate() (bool, string) {
	if !domain.ValidBreedingStatus(r.Status) {
		return false, "Unknown breeding status: " + r.Status
	}
	if r.ExpectedBirthDate != nil && r.ExpectedBirthDate.Before(r.BreedingDate) {
		return false, "Expected birth date must be after the breeding date"
	}
	if r.ActualBirthDate != nil && r.ActualBirthDate.Before(r.BreedingDate) {
		return false, "Actual birth date must be after the breeding date"
	}
	return true, ""
}

// UpdateBreedingRecordRequest represents a partial breeding record update
type UpdateBreedingRecordRequest struct {
	BreedingDate      *time.Time `json:"breeding_date" binding:"omitempty"`
	Status            *string    `json:"status" binding:"omitempty"`
	ExpectedBirthDate *time.Time `json:"expected_birth_date" binding:"omitempty"`
	ActualBirthDate   *time.Time `json:"actual_birth_date" binding:"omitempty"`
	SireTag           *string    `json:"sire_tag" binding:"omitempty,max=50"`
	Notes             *string    `json:"notes" binding:"omitempty,max=1000"`
}

// Validate validates that at least one field is provided and enums hold
func (r *UpdateBreedingRecordRequest) Validate() (bool, string) {
	if r.BreedingDate == nil && r.Status == nil && r.ExpectedBirthDate == nil &&
		r.ActualBirthDate == nil && r.SireTag == nil && r.Notes == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Status != nil && !domain.ValidBreedingStatus(*r.Status) {
		return false, "Unknown breeding status: " + *r.Status
	}
	return true, ""
}

// AddFeedingRecordRequest represents a request to append a feeding record
type AddFeedingRecordRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	FeedType string    `json:"feed_type" binding:"required,max=100"`
	Quantity float64   `json:"quantity" binding:"required"`
	Unit     string    `json:"unit" binding:"required,max=20"`
	Notes    string    `json:"notes" binding:"omitempty,max=1000"`
}

// Validate applies the quantity rule
func (r *AddFeedingRecordRequest) Validate() (bool, string) {
	if r.Quantity <= 0 {
		return false, "Feed quantity must be greater than zero"
	}
	return true, ""
}

// UpdateFeedingRecordRequest represents a partial feeding record update
type UpdateFeedingRecordRequest struct {
	Date     *time.Time `json:"date" binding:"omitempty"`
	FeedType *string    `json:"feed_type" binding:"omitempty,max=100"`
	Quantity *float64   `json:"quantity" binding:"omitempty"`
	Unit     *string    `json:"unit" binding:"omitempty,max=20"`
	Notes    *string    `json:"notes" binding:"omitempty,max=1000"`
}

// Validate validates that at least one field is provided and the quantity rule
func (r *UpdateFeedingRecordRequest) Validate() (bool, string) {
	if r.Date == nil && r.FeedType == nil && r.Quantity == nil && r.Unit == nil && r.Notes == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		return false, "Feed quantity must be greater than zero"
	}
	return true, ""
}
