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

// CropService defines crop record operations
type CropService interface {
	Create(ctx context.Context, org domain.OrgContext, req *dto.CreateCropRequest) (*domain.Crop, error)
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Crop, error)
	List(ctx context.Context, org domain.OrgContext, query *dto.ListCropsQuery) ([]*domain.Crop, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateCropRequest) (*domain.Crop, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.CropStats, error)
}

// cropService implements CropService
type cropService struct {
	repo       repository.CropRepository
	farmerRepo repository.FarmerRepository
	cache      *cache.QueryCache
	pub        *cache.Publisher
}

// NewCropService creates a CropService
func NewCropService(repo repository.CropRepository, farmerRepo repository.FarmerRepository, qc *cache.QueryCache, pub *cache.Publisher) CropService {
	return &cropService{repo: repo, farmerRepo: farmerRepo, cache: qc, pub: pub}
}

type cropListResult struct {
	Items []*domain.Crop `json:"items"`
	Total int            `json:"total"`
}

type cropListParams struct {
	Op          string `json:"op"`
	OrgID       string `json:"org_id"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
	FarmerID    string `json:"farmer_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Search      string `json:"search,omitempty"`
	PlantedFrom string `json:"planted_from,omitempty"`
	PlantedTo   string `json:"planted_to,omitempty"`
}

type cropGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
	ID    string `json:"id,omitempty"`
}

// parseDateBound parses a YYYY-MM-DD query bound; binding already validated
// the format so a failure degrades to no bound
func parseDateBound(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// Create validates and records a new crop cycle. The referenced farmer must
// exist within the caller's organization.
func (s *cropService) Create(ctx context.Context, org domain.OrgContext, req *dto.CreateCropRequest) (*domain.Crop, error) {
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
		status = domain.CropStatusPlanted
	}

	now := time.Now()
	crop := &domain.Crop{
		ID:                  uuid.New().String(),
		OrgID:               org.OrgID,
		FarmerID:            req.FarmerID,
		Name:                req.Name,
		Variety:             req.Variety,
		Status:              status,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		ActualHarvestDate:   req.ActualHarvestDate,
		AreaHa:              req.AreaHa,
		ExpectedQuantity:    req.ExpectedQuantity,
		ActualQuantity:      req.ActualQuantity,
		ImageURL:            req.ImageURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, org, crop); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.EntityCrops)
	publishChange(ctx, s.pub, cache.EventInsert, "crops", org.OrgID, crop, nil)
	return crop, nil
}

// GetByID retrieves a crop through the query cache
func (s *cropService) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Crop, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := cropGetParams{Op: "get", OrgID: org.OrgID, ID: id}
	v, err := s.cache.Get(ctx, cache.EntityCrops, params, func(ctx context.Context) (interface{}, error) {
		crop, err := s.repo.GetByID(ctx, org, id)
		if err != nil {
			return nil, err
		}
		if crop == nil {
			return nil, ErrCropNotFound
		}
		return crop, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Crop), nil
}

// List retrieves a page of crops through the query cache
func (s *cropService) List(ctx context.Context, org domain.OrgContext, query *dto.ListCropsQuery) ([]*domain.Crop, int, error) {
	if err := org.Validate(); err != nil {
		return nil, 0, err
	}
	query.SetDefaults()

	params := cropListParams{
		Op:          "list",
		OrgID:       org.OrgID,
		Page:        query.Page,
		PageSize:    query.PageSize,
		FarmerID:    query.FarmerID,
		Status:      query.Status,
		Search:      query.Search,
		PlantedFrom: query.PlantedFrom,
		PlantedTo:   query.PlantedTo,
	}
	v, err := s.cache.Get(ctx, cache.EntityCrops, params, func(ctx context.Context) (interface{}, error) {
		filter := repository.CropFilter{
			FarmerID:    query.FarmerID,
			Status:      query.Status,
			Search:      query.Search,
			PlantedFrom: parseDateBound(query.PlantedFrom),
			PlantedTo:   parseDateBound(query.PlantedTo),
		}
		items, total, err := s.repo.List(ctx, org, filter, query.Page, query.PageSize)
		if err != nil {
			return nil, err
		}
		return &cropListResult{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	result := v.(*cropListResult)
	return result.Items, result.Total, nil
}

// Update validates and applies a partial update
func (s *cropService) Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateCropRequest) (*domain.Crop, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	if req.FarmerID != nil {
		farmer, err := s.farmerRepo.GetByID(ctx, org, *req.FarmerID)
		if err != nil {
			return nil, err
		}
		if farmer == nil {
			return nil, ErrFarmerNotFound
		}
	}

	patch := repository.CropPatch{
		FarmerID:            req.FarmerID,
		Name:                req.Name,
		Variety:             req.Variety,
		Status:              req.Status,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		ActualHarvestDate:   req.ActualHarvestDate,
		AreaHa:              req.AreaHa,
		ExpectedQuantity:    req.ExpectedQuantity,
		ActualQuantity:      req.ActualQuantity,
		ImageURL:            req.ImageURL,
	}
	crop, err := s.repo.Update(ctx, org, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrCropNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(cache.EntityCrops)
	publishChange(ctx, s.pub, cache.EventUpdate, "crops", org.OrgID, crop, nil)
	return crop, nil
}

// Delete removes a crop record
func (s *cropService) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	if err := org.Validate(); err != nil {
		return err
	}

	crop, err := s.repo.GetByID(ctx, org, id)
	if err != nil {
		return err
	}
	if crop == nil {
		return ErrCropNotFound
	}

	if err := s.repo.Delete(ctx, org, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrCropNotFound
		}
		return err
	}

	s.cache.Invalidate(cache.EntityCrops)
	publishChange(ctx, s.pub, cache.EventDelete, "crops", org.OrgID, nil, crop)
	return nil
}

// Stats computes aggregate crop counts through the query cache
func (s *cropService) Stats(ctx context.Context, org domain.OrgContext) (*domain.CropStats, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := cropGetParams{Op: "stats", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityCrops, params, func(ctx context.Context) (interface{}, error) {
		return s.repo.Stats(ctx, org)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CropStats), nil
}
