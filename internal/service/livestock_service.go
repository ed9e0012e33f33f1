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

// LivestockService defines livestock registry operations, including the
// embedded health, breeding and feeding record collections
type LivestockService interface {
	Create(ctx context.Context, org domain.OrgContext, req *dto.CreateLivestockRequest) (*domain.Livestock, error)
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Livestock, error)
	List(ctx context.Context, org domain.OrgContext, query *dto.ListLivestockQuery) ([]*domain.Livestock, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateLivestockRequest) (*domain.Livestock, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.LivestockStats, error)

	AddHealthRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddHealthRecordRequest) (*domain.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateHealthRecordRequest) (*domain.HealthRecord, error)
	RemoveHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error

	AddBreedingRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddBreedingRecordRequest) (*domain.BreedingRecord, error)
	UpdateBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateBreedingRecordRequest) (*domain.BreedingRecord, error)
	RemoveBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error

	AddFeedingRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddFeedingRecordRequest) (*domain.FeedingRecord, error)
	UpdateFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateFeedingRecordRequest) (*domain.FeedingRecord, error)
	RemoveFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error
}

// livestockService implements LivestockService
type livestockService struct {
	repo       repository.LivestockRepository
	farmerRepo repository.FarmerRepository
	cache      *cache.QueryCache
	pub        *cache.Publisher
}

// NewLivestockService creates a LivestockService
func NewLivestockService(repo repository.LivestockRepository, farmerRepo repository.FarmerRepository, qc *cache.QueryCache, pub *cache.Publisher) LivestockService {
	return &livestockService{repo: repo, farmerRepo: farmerRepo, cache: qc, pub: pub}
}

type livestockListResult struct {
	Items []*domain.Livestock `json:"items"`
	Total int                 `json:"total"`
}

type livestockListParams struct {
	Op       string `json:"op"`
	OrgID    string `json:"org_id"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	FarmerID string `json:"farmer_id,omitempty"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Search   string `json:"search,omitempty"`
}

type livestockGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
	ID    string `json:"id,omitempty"`
}

// invalidate bumps the livestock family and publishes the change event
func (s *livestockService) invalidate(ctx context.Context, eventType, orgID string, newRow, oldRow interface{}) {
	s.cache.Invalidate(cache.EntityLivestock)
	publishChange(ctx, s.pub, eventType, "livestock", orgID, newRow, oldRow)
}

// Create validates and registers a new animal. The referenced farmer must
// exist within the caller's organization.
func (s *livestockService) Create(ctx context.Context, org domain.OrgContext, req *dto.CreateLivestockRequest) (*domain.Livestock, error) {
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
		status = domain.LivestockStatusActive
	}

	now := time.Now()
	animal := &domain.Livestock{
		ID:              uuid.New().String(),
		OrgID:           org.OrgID,
		FarmerID:        req.FarmerID,
		TagNumber:       req.TagNumber,
		Type:            req.Type,
		Breed:           req.Breed,
		Gender:          req.Gender,
		Status:          status,
		AcquisitionDate: req.AcquisitionDate,
		HealthRecords:   []domain.HealthRecord{},
		BreedingRecords: []domain.BreedingRecord{},
		FeedingRecords:  []domain.FeedingRecord{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, org, animal); err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.EventInsert, org.OrgID, animal, nil)
	return animal, nil
}

// GetByID retrieves an animal through the query cache
func (s *livestockService) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Livestock, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := livestockGetParams{Op: "get", OrgID: org.OrgID, ID: id}
	v, err := s.cache.Get(ctx, cache.EntityLivestock, params, func(ctx context.Context) (interface{}, error) {
		animal, err := s.repo.GetByID(ctx, org, id)
		if err != nil {
			return nil, err
		}
		if animal == nil {
			return nil, ErrLivestockNotFound
		}
		return animal, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Livestock), nil
}

// List retrieves a page of livestock through the query cache
func (s *livestockService) List(ctx context.Context, org domain.OrgContext, query *dto.ListLivestockQuery) ([]*domain.Livestock, int, error) {
	if err := org.Validate(); err != nil {
		return nil, 0, err
	}
	query.SetDefaults()

	params := livestockListParams{
		Op:       "list",
		OrgID:    org.OrgID,
		Page:     query.Page,
		PageSize: query.PageSize,
		FarmerID: query.FarmerID,
		Type:     query.Type,
		Status:   query.Status,
		Search:   query.Search,
	}
	v, err := s.cache.Get(ctx, cache.EntityLivestock, params, func(ctx context.Context) (interface{}, error) {
		filter := repository.LivestockFilter{
			FarmerID: query.FarmerID,
			Type:     query.Type,
			Status:   query.Status,
			Search:   query.Search,
		}
		items, total, err := s.repo.List(ctx, org, filter, query.Page, query.PageSize)
		if err != nil {
			return nil, err
		}
		return &livestockListResult{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	result := v.(*livestockListResult)
	return result.Items, result.Total, nil
}

// Update validates and applies a partial update
func (s *livestockService) Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateLivestockRequest) (*domain.Livestock, error) {
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

	patch := repository.LivestockPatch{
		FarmerID:        req.FarmerID,
		TagNumber:       req.TagNumber,
		Type:            req.Type,
		Breed:           req.Breed,
		Gender:          req.Gender,
		Status:          req.Status,
		AcquisitionDate: req.AcquisitionDate,
	}
	animal, err := s.repo.Update(ctx, org, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLivestockNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, animal, nil)
	return animal, nil
}

// Delete removes an animal and its embedded records
func (s *livestockService) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	if err := org.Validate(); err != nil {
		return err
	}

	animal, err := s.repo.GetByID(ctx, org, id)
	if err != nil {
		return err
	}
	if animal == nil {
		return ErrLivestockNotFound
	}

	if err := s.repo.Delete(ctx, org, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrLivestockNotFound
		}
		return err
	}

	s.invalidate(ctx, cache.EventDelete, org.OrgID, nil, animal)
	return nil
}

// Stats computes aggregate herd counts through the query cache
func (s *livestockService) Stats(ctx context.Context, org domain.OrgContext) (*domain.LivestockStats, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := livestockGetParams{Op: "stats", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityLivestock, params, func(ctx context.Context) (interface{}, error) {
		return s.repo.Stats(ctx, org)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.LivestockStats), nil
}

// mapRecordErr translates repository sentinels for nested record operations
func mapRecordErr(err error) error {
	switch err {
	case repository.ErrNotFound:
		return ErrLivestockNotFound
	case repository.ErrRecordNotFound:
		return ErrLivestockRecordNotFound
	}
	return err
}

// AddHealthRecord appends a health record to the animal's embedded collection
func (s *livestockService) AddHealthRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddHealthRecordRequest) (*domain.HealthRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	record := domain.HealthRecord{
		ID:           uuid.New().String(),
		Date:         req.Date,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Medication:   req.Medication,
		Veterinarian: req.Veterinarian,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}
	saved, err := s.repo.AddHealthRecord(ctx, org, parentID, record)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// UpdateHealthRecord merges a patch into one embedded health record
func (s *livestockService) UpdateHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateHealthRecordRequest) (*domain.HealthRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.HealthRecordPatch{
		Date:         req.Date,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Medication:   req.Medication,
		Veterinarian: req.Veterinarian,
		Notes:        req.Notes,
	}
	saved, err := s.repo.UpdateHealthRecord(ctx, org, parentID, recordID, patch)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// RemoveHealthRecord deletes one embedded health record
func (s *livestockService) RemoveHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	if err := org.Validate(); err != nil {
		return err
	}
	if err := s.repo.RemoveHealthRecord(ctx, org, parentID, recordID); err != nil {
		return mapRecordErr(err)
	}
	s.invalidate(ctx, cache.EventUpdate, org.OrgID, nil, nil)
	return nil
}

// AddBreedingRecord appends a breeding record to the animal's embedded collection
func (s *livestockService) AddBreedingRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddBreedingRecordRequest) (*domain.BreedingRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	record := domain.BreedingRecord{
		ID:                uuid.New().String(),
		BreedingDate:      req.BreedingDate,
		Status:            req.Status,
		ExpectedBirthDate: req.ExpectedBirthDate,
		ActualBirthDate:   req.ActualBirthDate,
		SireTag:           req.SireTag,
		Notes:             req.Notes,
		CreatedAt:         time.Now(),
	}
	saved, err := s.repo.AddBreedingRecord(ctx, org, parentID, record)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// UpdateBreedingRecord merges a patch into one embedded breeding record
func (s *livestockService) UpdateBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateBreedingRecordRequest) (*domain.BreedingRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.BreedingRecordPatch{
		BreedingDate:      req.BreedingDate,
		Status:            req.Status,
		ExpectedBirthDate: req.ExpectedBirthDate,
		ActualBirthDate:   req.ActualBirthDate,
		SireTag:           req.SireTag,
		Notes:             req.Notes,
	}
	saved, err := s.repo.UpdateBreedingRecord(ctx, org, parentID, recordID, patch)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// RemoveBreedingRecord deletes one embedded breeding record
func (s *livestockService) RemoveBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	if err := org.Validate(); err != nil {
		return err
	}
	if err := s.repo.RemoveBreedingRecord(ctx, org, parentID, recordID); err != nil {
		return mapRecordErr(err)
	}
	s.invalidate(ctx, cache.EventUpdate, org.OrgID, nil, nil)
	return nil
}

// AddFeedingRecord appends a feeding record to the animal's embedded collection
func (s *livestockService) AddFeedingRecord(ctx context.Context, org domain.OrgContext, parentID string, req *dto.AddFeedingRecordRequest) (*domain.FeedingRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	record := domain.FeedingRecord{
		ID:        uuid.New().String(),
		Date:      req.Date,
		FeedType:  req.FeedType,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	saved, err := s.repo.AddFeedingRecord(ctx, org, parentID, record)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// UpdateFeedingRecord merges a patch into one embedded feeding record
func (s *livestockService) UpdateFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, req *dto.UpdateFeedingRecordRequest) (*domain.FeedingRecord, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.FeedingRecordPatch{
		Date:     req.Date,
		FeedType: req.FeedType,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	saved, err := s.repo.UpdateFeedingRecord(ctx, org, parentID, recordID, patch)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	s.invalidate(ctx, cache.EventUpdate, org.OrgID, saved, nil)
	return saved, nil
}

// RemoveFeedingRecord deletes one embedded feeding record
func (s *livestockService) RemoveFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	if err := org.Validate(); err != nil {
		return err
	}
	if err := s.repo.RemoveFeedingRecord(ctx, org, parentID, recordID); err != nil {
		return mapRecordErr(err)
	}
	s.invalidate(ctx, cache.EventUpdate, org.OrgID, nil, nil)
	return nil
}
