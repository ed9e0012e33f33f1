package domain

import "time"

// FinancialService represents a loan, grant, subsidy or insurance record
// issued to a farmer through the organization
type FinancialService struct {
	ID               string     `json:"id"`
	OrgID            string     `json:"org_id"`
	FarmerID         string     `json:"farmer_id"`
	Type             string     `json:"type"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	InterestRate     *float64   `json:"interest_rate,omitempty"`
	Status           string     `json:"status"`
	ApplicationDate  time.Time  `json:"application_date"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	DisbursementDate *time.Time `json:"disbursement_date,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Financial service types
const (
	FinanceTypeLoan      = "loan"
	FinanceTypeGrant     = "grant"
	FinanceTypeSubsidy   = "subsidy"
	FinanceTypeInsurance = "insurance"
)

// ValidFinanceType reports whether t is a known financial service type
func ValidFinanceType(t string) bool {
	switch t {
	case FinanceTypeLoan, FinanceTypeGrant, FinanceTypeSubsidy, FinanceTypeInsurance:
		return true
	}
	return false
}

// Financial service statuses
const (
	FinanceStatusPending   = "pending"
	FinanceStatusApproved  = "approved"
	FinanceStatusDisbursed = "disbursed"
	FinanceStatusRepaid    = "repaid"
	FinanceStatusRejected  = "rejected"
)

// ValidFinanceStatus reports whether s is a known financial service status
func ValidFinanceStatus(s string) bool {
	switch s {
	case FinanceStatusPending, FinanceStatusApproved, FinanceStatusDisbursed,
		FinanceStatusRepaid, FinanceStatusRejected:
		return true
	}
	return false
}

// FinanceStats holds aggregate amounts for an organization's financial records
type FinanceStats struct {
	TotalRecords  int                `json:"total_records"`
	TotalAmount   float64            `json:"total_amount"`
	ByType        map[string]int     `json:"by_type"`
	ByStatus      map[string]int     `json:"by_status"`
	AmountByType  map[string]float64 `json:"amount_by_type"`
}
