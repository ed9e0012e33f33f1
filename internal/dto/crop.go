package dto

import (
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// CreateCropRequest represents a request to record a crop cycle
type CreateCropRequest struct {
	FarmerID            string     `json:"farmer_id" binding:"required"`
	Name                string     `json:"name" binding:"required,max=100"`
	Variety             string     `json:"variety" binding:"omitempty,max=100"`
	Status              string     `json:"status" binding:"omitempty,max=20"`
	PlantingDate        *time.Time `json:"planting_date" binding:"omitempty"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date" binding:"omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date" binding:"omitempty"`
	AreaHa              *float64   `json:"area_ha" binding:"omitempty"`
	ExpectedQuantity    *float64   `json:"expected_quantity" binding:"omitempty"`
	ActualQuantity      *float64   `json:"actual_quantity" binding:"omitempty"`
	ImageURL            string     `json:"image_url" binding:"omitempty,max=500"`
}

// Validate applies enum, quantity and date-ordering rules
func (r *CreateCropRequest) Validate() (bool, string) {
	if r.Status != "" && !domain.ValidCropStatus(r.Status) {
		return false, "Unknown crop status: " + r.Status
	}
	if r.AreaHa != nil && *r.AreaHa <= 0 {
		return false, "Crop area must be greater than zero"
	}
	if r.ExpectedQuantity != nil && *r.ExpectedQuantity <= 0 {
		return false, "Expected quantity must be greater than zero"
	}
	if r.ActualQuantity != nil && *r.ActualQuantity < 0 {
		return false, "Actual quantity must not be negative"
	}
	if r.PlantingDate != nil && r.ExpectedHarvestDate != nil && r.ExpectedHarvestDate.Before(*r.PlantingDate) {
		return false, "Expected harvest date must be after the planting date"
	}
	if r.PlantingDate != nil && r.ActualHarvestDate != nil && r.ActualHarvestDate.Before(*r.PlantingDate) {
		return false, "Actual harvest date must be after the planting date"
	}
	return true, ""
}

// UpdateCropRequest represents a partial crop update
type UpdateCropRequest struct {
	FarmerID            *string    `json:"farmer_id" binding:"omitempty"`
	Name                *string    `json:"name" binding:"omitempty,max=100"`
	Variety             *string    `json:"variety" binding:"omitempty,max=100"`
	Status              *string    `json:"status" binding:"omitempty,max=20"`
	PlantingDate        *time.Time `json:"planting_date" binding:"omitempty"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date" binding:"omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date" binding:"omitempty"`
	AreaHa              *float64   `json:"area_ha" binding:"omitempty"`
	ExpectedQuantity    *float64   `json:"expected_quantity" binding:"omitempty"`
	ActualQuantity      *float64   `json:"actual_quantity" binding:"omitempty"`
	ImageURL            *string    `json:"image_url" binding:"omitempty,max=500"`
}

// Validate validates that at least one field is provided and field rules hold
func (r *UpdateCropRequest) Validate() (bool, string) {
	if r.FarmerID == nil && r.Name == nil && r.Variety == nil && r.Status == nil &&
		r.PlantingDate == nil && r.ExpectedHarvestDate == nil && r.ActualHarvestDate == nil &&
		r.AreaHa == nil && r.ExpectedQuantity == nil && r.ActualQuantity == nil && r.ImageURL == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Status != nil && !domain.ValidCropStatus(*r.Status) {
		return false, "Unknown crop status: " + *r.Status
	}
	if r.AreaHa != nil && *r.AreaHa <= 0 {
		return false, "Crop area must be greater than zero"
	}
	if r.ExpectedQuantity != nil && *r.ExpectedQuantity <= 0 {
		return false, "Expected quantity must be greater than zero"
	}
	if r.ActualQuantity != nil && *r.ActualQuantity < 0 {
		return false, "Actual quantity must not be negative"
	}
	if r.PlantingDate != nil && r.ExpectedHarvestDate != nil && r.ExpectedHarvestDate.Before(*r.PlantingDate) {
		return false, "Expected harvest date must be after the planting date"
	}
	if r.PlantingDate != nil && r.ActualHarvestDate != nil && r.ActualHarvestDate.Before(*r.PlantingDate) {
		return false, "Actual harvest date must be after the planting date"
	}
	return true, ""
}

// ListCropsQuery represents query parameters for listing crops
type ListCropsQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	FarmerID    string `form:"farmer_id" binding:"omitempty"`
	Status      string `form:"status" binding:"omitempty,max=20"`
	Search      string `form:"search" binding:"omitempty,max=255"`
	PlantedFrom string `form:"planted_from" binding:"omitempty,datetime=2006-01-02"`
	PlantedTo   string `form:"planted_to" binding:"omitempty,datetime=2006-01-02"`
}

// SetDefaults sets default values for query parameters
func (q *ListCropsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}
