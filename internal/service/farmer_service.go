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

// FarmerService defines farmer registry operations
type FarmerService interface {
	Create(ctx context.Context, org domain.OrgContext, req *dto.CreateFarmerRequest) (*domain.Farmer, error)
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Farmer, error)
	List(ctx context.Context, org domain.OrgContext, query *dto.ListFarmersQuery) ([]*domain.Farmer, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateFarmerRequest) (*domain.Farmer, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.FarmerStats, error)
}

// farmerService implements FarmerService
type farmerService struct {
	repo  repository.FarmerRepository
	cache *cache.QueryCache
	pub   *cache.Publisher
}

// NewFarmerService creates a FarmerService
func NewFarmerService(repo repository.FarmerRepository, qc *cache.QueryCache, pub *cache.Publisher) FarmerService {
	return &farmerService{repo: repo, cache: qc, pub: pub}
}

type farmerListResult struct {
	Items []*domain.Farmer `json:"items"`
	Total int              `json:"total"`
}

type farmerListParams struct {
	Op            string `json:"op"`
	OrgID         string `json:"org_id"`
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	Search        string `json:"search,omitempty"`
	CropType      string `json:"crop_type,omitempty"`
	LivestockType string `json:"livestock_type,omitempty"`
}

type farmerGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
	ID    string `json:"id,omitempty"`
}

// Create validates and inserts a new farmer
func (s *farmerService) Create(ctx context.Context, org domain.OrgContext, req *dto.CreateFarmerRequest) (*domain.Farmer, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	now := time.Now()
	farmer := &domain.Farmer{
		ID:             uuid.New().String(),
		OrgID:          org.OrgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		FarmLocation:   req.FarmLocation,
		FarmSizeHa:     req.FarmSizeHa,
		CropTypes:      req.CropTypes,
		LivestockTypes: req.LivestockTypes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, org, farmer); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.EntityFarmers)
	publishChange(ctx, s.pub, cache.EventInsert, "farmers", org.OrgID, farmer, nil)
	return farmer, nil
}

// GetByID retrieves a farmer through the query cache
func (s *farmerService) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Farmer, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := farmerGetParams{Op: "get", OrgID: org.OrgID, ID: id}
	v, err := s.cache.Get(ctx, cache.EntityFarmers, params, func(ctx context.Context) (interface{}, error) {
		farmer, err := s.repo.GetByID(ctx, org, id)
		if err != nil {
			return nil, err
		}
		if farmer == nil {
			return nil, ErrFarmerNotFound
		}
		return farmer, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Farmer), nil
}

// List retrieves a page of farmers through the query cache
func (s *farmerService) List(ctx context.Context, org domain.OrgContext, query *dto.ListFarmersQuery) ([]*domain.Farmer, int, error) {
	if err := org.Validate(); err != nil {
		return nil, 0, err
	}
	query.SetDefaults()

	params := farmerListParams{
		Op:            "list",
		OrgID:         org.OrgID,
		Page:          query.Page,
		PageSize:      query.PageSize,
		Search:        query.Search,
		CropType:      query.CropType,
		LivestockType: query.LivestockType,
	}
	v, err := s.cache.Get(ctx, cache.EntityFarmers, params, func(ctx context.Context) (interface{}, error) {
		filter := repository.FarmerFilter{
			Search:        query.Search,
			CropType:      query.CropType,
			LivestockType: query.LivestockType,
		}
		items, total, err := s.repo.List(ctx, org, filter, query.Page, query.PageSize)
		if err != nil {
			return nil, err
		}
		return &farmerListResult{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	result := v.(*farmerListResult)
	return result.Items, result.Total, nil
}

// Update validates and applies a partial update
func (s *farmerService) Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateFarmerRequest) (*domain.Farmer, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.FarmerPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		FarmLocation:   req.FarmLocation,
		FarmSizeHa:     req.FarmSizeHa,
		CropTypes:      req.CropTypes,
		LivestockTypes: req.LivestockTypes,
	}
	farmer, err := s.repo.Update(ctx, org, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(cache.EntityFarmers)
	publishChange(ctx, s.pub, cache.EventUpdate, "farmers", org.OrgID, farmer, nil)
	return farmer, nil
}

// Delete removes a farmer. Deletion is refused while livestock, crop or
// financial rows still reference the farmer.
func (s *farmerService) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	if err := org.Validate(); err != nil {
		return err
	}

	farmer, err := s.repo.GetByID(ctx, org, id)
	if err != nil {
		return err
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}

	refs, err := s.repo.CountReferences(ctx, org, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrFarmerReferenced
	}

	if err := s.repo.Delete(ctx, org, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrFarmerNotFound
		}
		return err
	}

	s.cache.Invalidate(cache.EntityFarmers)
	publishChange(ctx, s.pub, cache.EventDelete, "farmers", org.OrgID, nil, farmer)
	return nil
}

// Stats computes aggregate counts through the query cache
func (s *farmerService) Stats(ctx context.Context, org domain.OrgContext) (*domain.FarmerStats, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := farmerGetParams{Op: "stats", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityFarmers, params, func(ctx context.Context) (interface{}, error) {
		return s.repo.Stats(ctx, org)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.FarmerStats), nil
}
