package dto

import (
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// CreateFinancialServiceRequest represents a request to record a loan, grant,
// subsidy or insurance entry for a farmer
type CreateFinancialServiceRequest struct {
	FarmerID         string     `json:"farmer_id" binding:"required"`
	Type             string     `json:"type" binding:"required,max=20"`
	Amount           float64    `json:"amount" binding:"required"`
	Currency         string     `json:"currency" binding:"omitempty,len=3"`
	InterestRate     *float64   `json:"interest_rate" binding:"omitempty"`
	Status           string     `json:"status" binding:"omitempty,max=20"`
	ApplicationDate  time.Time  `json:"application_date" binding:"required"`
	ApprovalDate     *time.Time `json:"approval_date" binding:"omitempty"`
	DisbursementDate *time.Time `json:"disbursement_date" binding:"omitempty"`
	Notes            string     `json:"notes" binding:"omitempty,max=1000"`
}

// Validate applies enum, amount and date-ordering rules
func (r *CreateFinancialServiceRequest) Validate() (bool, string) {
	if !domain.ValidFinanceType(r.Type) {
		return false, "Unknown financial service type: " + r.Type
	}
	if r.Amount <= 0 {
		return false, "Amount must be greater than zero"
	}
	if r.InterestRate != nil && *r.InterestRate < 0 {
		return false, "Interest rate must not be negative"
	}
	if r.Status != "" && !domain.ValidFinanceStatus(r.Status) {
		return false, "Unknown financial service status: " + r.Status
	}
	if r.ApprovalDate != nil && r.ApprovalDate.Before(r.ApplicationDate) {
		return false, "Approval date must be after the application date"
	}
	if r.DisbursementDate != nil && r.DisbursementDate.Before(r.ApplicationDate) {
		return false, "Disbursement date must be after the application date"
	}
	return true, ""
}

// UpdateFinancialServiceRequest represents a partial financial service update
type UpdateFinancialServiceRequest struct {
	Type             *string    `json:"type" binding:"omitempty,max=20"`
	Amount           *float64   `json:"amount" binding:"omitempty"`
	Currency         *string    `json:"currency" binding:"omitempty,len=3"`
	InterestRate     *float64   `json:"interest_rate" binding:"omitempty"`
	Status           *string    `json:"status" binding:"omitempty,max=20"`
	ApplicationDate  *time.Time `json:"application_date" binding:"omitempty"`
	ApprovalDate     *time.Time `json:"approval_date" binding:"omitempty"`
	DisbursementDate *time.Time `json:"disbursement_date" binding:"omitempty"`
	Notes            *string    `json:"notes" binding:"omitempty,max=1000"`
}

// Validate validates that at least one field is provided and field rules hold
func (r *UpdateFinancialServiceRequest) Validate() (bool, string) {
	if r.Type == nil && r.Amount == nil && r.Currency == nil && r.InterestRate == nil &&
		r.Status == nil && r.ApplicationDate == nil && r.ApprovalDate == nil &&
		r.DisbursementDate == nil && r.Notes == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Type != nil && !domain.ValidFinanceType(*r.Type) {
		return false, "Unknown financial service type: " + *r.Type
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return false, "Amount must be greater than zero"
	}
	if r.InterestRate != nil && *r.InterestRate < 0 {
		return false, "Interest rate must not be negative"
	}
	if r.Status != nil && !domain.ValidFinanceStatus(*r.Status) {
		return false, "Unknown financial service status: " + *r.Status
	}
	return true, ""
}

// ListFinancialServicesQuery represents query parameters for listing
// financial services
type ListFinancialServicesQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	FarmerID    string `form:"farmer_id" binding:"omitempty"`
	Type        string `form:"type" binding:"omitempty,max=20"`
	Status      string `form:"status" binding:"omitempty,max=20"`
	AppliedFrom string `form:"applied_from" binding:"omitempty,datetime=2006-01-02"`
	AppliedTo   string `form:"applied_to" binding:"omitempty,datetime=2006-01-02"`
}

// SetDefaults sets default values for query parameters
func (q *ListFinancialServicesQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}
