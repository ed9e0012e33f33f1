package dto

import (
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// CreateExtensionServiceRequest represents a request to record an advisory
// or training activity
type CreateExtensionServiceRequest struct {
	Title         string     `json:"title" binding:"required,max=255"`
	Category      string     `json:"category" binding:"required,max=20"`
	Description   string     `json:"description" binding:"omitempty,max=2000"`
	Status        string     `json:"status" binding:"omitempty,max=20"`
	ScheduledDate *time.Time `json:"scheduled_date" binding:"omitempty"`
	CompletedDate *time.Time `json:"completed_date" binding:"omitempty"`
	Location      string     `json:"location" binding:"omitempty,max=255"`
	AttendeeCount *int       `json:"attendee_count" binding:"omitempty"`
}

// Validate applies enum, count and date-ordering rules
func (r *CreateExtensionServiceRequest) Validate() (bool, string) {
	if !domain.ValidExtensionCategory(r.Category) {
		return false, "Unknown extension category: " + r.Category
	}
	if r.Status != "" && !domain.ValidExtensionStatus(r.Status) {
		return false, "Unknown extension status: " + r.Status
	}
	if r.AttendeeCount != nil && *r.AttendeeCount < 0 {
		return false, "Attendee count must not be negative"
	}
	if r.ScheduledDate != nil && r.CompletedDate != nil && r.CompletedDate.Before(*r.ScheduledDate) {
		return false, "Completed date must be after the scheduled date"
	}
	return true, ""
}

// UpdateExtensionServiceRequest represents a partial extension service update
type UpdateExtensionServiceRequest struct {
	Title         *string    `json:"title" binding:"omitempty,max=255"`
	Category      *string    `json:"category" binding:"omitempty,max=20"`
	Description   *string    `json:"description" binding:"omitempty,max=2000"`
	Status        *string    `json:"status" binding:"omitempty,max=20"`
	ScheduledDate *time.Time `json:"scheduled_date" binding:"omitempty"`
	CompletedDate *time.Time `json:"completed_date" binding:"omitempty"`
	Location      *string    `json:"location" binding:"omitempty,max=255"`
	AttendeeCount *int       `json:"attendee_count" binding:"omitempty"`
}

// Validate validates that at least one field is provided and field rules hold
func (r *UpdateExtensionServiceRequest) Validate() (bool, string) {
	if r.Title == nil && r.Category == nil && r.Description == nil && r.Status == nil &&
		r.ScheduledDate == nil && r.CompletedDate == nil && r.Location == nil && r.AttendeeCount == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Category != nil && !domain.ValidExtensionCategory(*r.Category) {
		return false, "Unknown extension category: " + *r.Category
	}
	if r.Status != nil && !domain.ValidExtensionStatus(*r.Status) {
		return false, "Unknown extension status: " + *r.Status
	}
	if r.AttendeeCount != nil && *r.AttendeeCount < 0 {
		return false, "Attendee count must not be negative"
	}
	return true, ""
}

// ListExtensionServicesQuery represents query parameters for listing
// extension services
type ListExtensionServicesQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Category      string `form:"category" binding:"omitempty,max=20"`
	Status        string `form:"status" binding:"omitempty,max=20"`
	Search        string `form:"search" binding:"omitempty,max=255"`
	ScheduledFrom string `form:"scheduled_from" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTo   string `form:"scheduled_to" binding:"omitempty,datetime=2006-01-02"`
}

// SetDefaults sets default values for query parameters
func (q *ListExtensionServicesQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}
