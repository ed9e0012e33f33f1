package repository

import (
	"context"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// FinanceFilter holds optional predicates for listing financial services
type FinanceFilter struct {
	FarmerID string
	Type     string
	Status   string
	// AppliedFrom and AppliedTo bound the application date range, inclusive
	AppliedFrom *time.Time
	AppliedTo   *time.Time
}

// FinancePatch holds optional fields for a partial update
type FinancePatch struct {
	Type             *string
	Amount           *float64
	Currency         *string
	InterestRate     *float64
	Status           *string
	ApprovalDate     *time.Time
	DisbursementDate *time.Time
	Notes            *string
}

// FinanceRepository defines organization-scoped access to financial service records
type FinanceRepository interface {
	Create(ctx context.Context, org domain.OrgContext, svc *domain.FinancialService) error
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.FinancialService, error)
	List(ctx context.Context, org domain.OrgContext, filter FinanceFilter, page, pageSize int) ([]*domain.FinancialService, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, patch FinancePatch) (*domain.FinancialService, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.FinanceStats, error)
}
