package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/user624-47/farmflow-sub000/internal/cache"
	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/repository"
)

// FinanceService defines financial service record operations
type FinanceService interface {
	Create(ctx context.Context, org domain.OrgContext, req *dto.CreateFinancialServiceRequest) (*domain.FinancialService, error)
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.FinancialService, error)
	List(ctx context.Context, org domain.OrgContext, query *dto.ListFinancialServicesQuery) ([]*domain.FinancialService, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateFinancialServiceRequest) (*domain.FinancialService, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.FinanceStats, error)
}

// financeService implements FinanceService
type financeService struct {
	repo       repository.FinanceRepository
	farmerRepo repository.FarmerRepository
	cache      *cache.QueryCache
	pub        *cache.Publisher
}

// NewFinanceService creates a FinanceService
func NewFinanceService(repo repository.FinanceRepository, farmerRepo repository.FarmerRepository, qc *cache.QueryCache, pub *cache.Publisher) FinanceService {
	return &financeService{repo: repo, farmerRepo: farmerRepo, cache: qc, pub: pub}
}

type financeListResult struct {
	Items []*domain.FinancialService `json:"items"`
	Total int                        `json:"total"`
}

type financeListParams struct {
	Op          string `json:"op"`
	OrgID       string `json:"org_id"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
	FarmerID    string `json:"farmer_id,omitempty"`
	Type        string `json:"type,omitempty"`
	Status      string `json:"status,omitempty"`
	AppliedFrom string `json:"applied_from,omitempty"`
	AppliedTo   string `json:"applied_to,omitempty"`
}

type financeGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
	ID    string `json:"id,omitempty"`
}

// Create validates and records a new financial service entry. The referenced
// farmer must exist within the caller's organization.
func (s *financeService) Create(ctx context.Context, org domain.OrgContext, req *dto.CreateFinancialServiceRequest) (*domain.FinancialService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	farmer, err := s.farmerRepo.GetByID(ctx, org, req.FarmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}

	status := req.Status
	if status == "" {
		status = domain.FinanceStatusPending
	}
	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}

	now := time.Now()
	svc := &domain.FinancialService{
		ID:               uuid.New().String(),
		OrgID:            org.OrgID,
		FarmerID:         req.FarmerID,
		Type:             req.Type,
		Amount:           req.Amount,
		Currency:         currency,
		InterestRate:     req.InterestRate,
		Status:           status,
		ApplicationDate:  req.ApplicationDate,
		ApprovalDate:     req.ApprovalDate,
		DisbursementDate: req.DisbursementDate,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, org, svc); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.EntityFinancialServices)
	publishChange(ctx, s.pub, cache.EventInsert, "financial_services", org.OrgID, svc, nil)
	return svc, nil
}

// GetByID retrieves a financial service through the query cache
func (s *financeService) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.FinancialService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := financeGetParams{Op: "get", OrgID: org.OrgID, ID: id}
	v, err := s.cache.Get(ctx, cache.EntityFinancialServices, params, func(ctx context.Context) (interface{}, error) {
		svc, err := s.repo.GetByID(ctx, org, id)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, ErrFinancialServiceNotFound
		}
		return svc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.FinancialService), nil
}

// List retrieves a page of financial services through the query cache
func (s *financeService) List(ctx context.Context, org domain.OrgContext, query *dto.ListFinancialServicesQuery) ([]*domain.FinancialService, int, error) {
	if err := org.Validate(); err != nil {
		return nil, 0, err
	}
	query.SetDefaults()

	params := financeListParams{
		Op:          "list",
		OrgID:       org.OrgID,
		Page:        query.Page,
		PageSize:    query.PageSize,
		FarmerID:    query.FarmerID,
		Type:        query.Type,
		Status:      query.Status,
		AppliedFrom: query.AppliedFrom,
		AppliedTo:   query.AppliedTo,
	}
	v, err := s.cache.Get(ctx, cache.EntityFinancialServices, params, func(ctx context.Context) (interface{}, error) {
		filter := repository.FinanceFilter{
			FarmerID:    query.FarmerID,
			Type:        query.Type,
			Status:      query.Status,
			AppliedFrom: parseDateBound(query.AppliedFrom),
			AppliedTo:   parseDateBound(query.AppliedTo),
		}
		items, total, err := s.repo.List(ctx, org, filter, query.Page, query.PageSize)
		if err != nil {
			return nil, err
		}
		return &financeListResult{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	result := v.(*financeListResult)
	return result.Items, result.Total, nil
}

// Update validates and applies a partial update
func (s *financeService) Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateFinancialServiceRequest) (*domain.FinancialService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.FinancePatch{
		Type:             req.Type,
		Amount:           req.Amount,
		Currency:         req.Currency,
		InterestRate:     req.InterestRate,
		Status:           req.Status,
		ApprovalDate:     req.ApprovalDate,
		DisbursementDate: req.DisbursementDate,
		Notes:            req.Notes,
	}
	svc, err := s.repo.Update(ctx, org, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrFinancialServiceNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(cache.EntityFinancialServices)
	publishChange(ctx, s.pub, cache.EventUpdate, "financial_services", org.OrgID, svc, nil)
	return svc, nil
}

// Delete removes a financial service record
func (s *financeService) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	if err := org.Validate(); err != nil {
		return err
	}

	svc, err := s.repo.GetByID(ctx, org, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrFinancialServiceNotFound
	}

	if err := s.repo.Delete(ctx, org, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrFinancialServiceNotFound
		}
		return err
	}

	s.cache.Invalidate(cache.EntityFinancialServices)
	publishChange(ctx, s.pub, cache.EventDelete, "financial_services", org.OrgID, nil, svc)
	return nil
}

// Stats computes aggregate amounts through the query cache
func (s *financeService) Stats(ctx context.Context, org domain.OrgContext) (*domain.FinanceStats, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := financeGetParams{Op: "stats", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityFinancialServices, params, func(ctx context.Context) (interface{}, error) {
		return s.repo.Stats(ctx, org)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.FinanceStats), nil
}
