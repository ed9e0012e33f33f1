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

// ExtensionSvc defines extension activity operations. The name avoids the
// stutter of an "extension service service".
type ExtensionSvc interface {
	Create(ctx context.Context, org domain.OrgContext, req *dto.CreateExtensionServiceRequest) (*domain.ExtensionService, error)
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.ExtensionService, error)
	List(ctx context.Context, org domain.OrgContext, query *dto.ListExtensionServicesQuery) ([]*domain.ExtensionService, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateExtensionServiceRequest) (*domain.ExtensionService, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.ExtensionStats, error)
}

// extensionSvc implements ExtensionSvc
type extensionSvc struct {
	repo  repository.ExtensionRepository
	cache *cache.QueryCache
	pub   *cache.Publisher
}

// NewExtensionSvc creates an ExtensionSvc
func NewExtensionSvc(repo repository.ExtensionRepository, qc *cache.QueryCache, pub *cache.Publisher) ExtensionSvc {
	return &extensionSvc{repo: repo, cache: qc, pub: pub}
}

type extensionListResult struct {
	Items []*domain.ExtensionService `json:"items"`
	Total int                        `json:"total"`
}

type extensionListParams struct {
	Op            string `json:"op"`
	OrgID         string `json:"org_id"`
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	Category      string `json:"category,omitempty"`
	Status        string `json:"status,omitempty"`
	Search        string `json:"search,omitempty"`
	ScheduledFrom string `json:"scheduled_from,omitempty"`
	ScheduledTo   string `json:"scheduled_to,omitempty"`
}

type extensionGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
	ID    string `json:"id,omitempty"`
}

// Create validates and records a new extension activity
func (s *extensionSvc) Create(ctx context.Context, org domain.OrgContext, req *dto.CreateExtensionServiceRequest) (*domain.ExtensionService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	status := req.Status
	if status == "" {
		status = domain.ExtensionStatusScheduled
	}
	attendees := 0
	if req.AttendeeCount != nil {
		attendees = *req.AttendeeCount
	}

	now := time.Now()
	svc := &domain.ExtensionService{
		ID:            uuid.New().String(),
		OrgID:         org.OrgID,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Status:        status,
		ScheduledDate: req.ScheduledDate,
		CompletedDate: req.CompletedDate,
		Location:      req.Location,
		AttendeeCount: attendees,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, org, svc); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.EntityExtensionServices)
	publishChange(ctx, s.pub, cache.EventInsert, "extension_services", org.OrgID, svc, nil)
	return svc, nil
}

// GetByID retrieves an extension activity through the query cache
func (s *extensionSvc) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.ExtensionService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := extensionGetParams{Op: "get", OrgID: org.OrgID, ID: id}
	v, err := s.cache.Get(ctx, cache.EntityExtensionServices, params, func(ctx context.Context) (interface{}, error) {
		svc, err := s.repo.GetByID(ctx, org, id)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, ErrExtensionServiceNotFound
		}
		return svc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ExtensionService), nil
}

// List retrieves a page of extension activities through the query cache
func (s *extensionSvc) List(ctx context.Context, org domain.OrgContext, query *dto.ListExtensionServicesQuery) ([]*domain.ExtensionService, int, error) {
	if err := org.Validate(); err != nil {
		return nil, 0, err
	}
	query.SetDefaults()

	params := extensionListParams{
		Op:            "list",
		OrgID:         org.OrgID,
		Page:          query.Page,
		PageSize:      query.PageSize,
		Category:      query.Category,
		Status:        query.Status,
		Search:        query.Search,
		ScheduledFrom: query.ScheduledFrom,
		ScheduledTo:   query.ScheduledTo,
	}
	v, err := s.cache.Get(ctx, cache.EntityExtensionServices, params, func(ctx context.Context) (interface{}, error) {
		filter := repository.ExtensionFilter{
			Category:      query.Category,
			Status:        query.Status,
			Search:        query.Search,
			ScheduledFrom: parseDateBound(query.ScheduledFrom),
			ScheduledTo:   parseDateBound(query.ScheduledTo),
		}
		items, total, err := s.repo.List(ctx, org, filter, query.Page, query.PageSize)
		if err != nil {
			return nil, err
		}
		return &extensionListResult{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	result := v.(*extensionListResult)
	return result.Items, result.Total, nil
}

// Update validates and applies a partial update
func (s *extensionSvc) Update(ctx context.Context, org domain.OrgContext, id string, req *dto.UpdateExtensionServiceRequest) (*domain.ExtensionService, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.ExtensionPatch{
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Status:        req.Status,
		ScheduledDate: req.ScheduledDate,
		CompletedDate: req.CompletedDate,
		Location:      req.Location,
		AttendeeCount: req.AttendeeCount,
	}
	svc, err := s.repo.Update(ctx, org, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrExtensionServiceNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(cache.EntityExtensionServices)
	publishChange(ctx, s.pub, cache.EventUpdate, "extension_services", org.OrgID, svc, nil)
	return svc, nil
}

// Delete removes an extension activity
func (s *extensionSvc) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	if err := org.Validate(); err != nil {
		return err
	}

	svc, err := s.repo.GetByID(ctx, org, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrExtensionServiceNotFound
	}

	if err := s.repo.Delete(ctx, org, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrExtensionServiceNotFound
		}
		return err
	}

	s.cache.Invalidate(cache.EntityExtensionServices)
	publishChange(ctx, s.pub, cache.EventDelete, "extension_services", org.OrgID, nil, svc)
	return nil
}

// Stats computes aggregate activity counts through the query cache
func (s *extensionSvc) Stats(ctx context.Context, org domain.OrgContext) (*domain.ExtensionStats, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := extensionGetParams{Op: "stats", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityExtensionServices, params, func(ctx context.Context) (interface{}, error) {
		return s.repo.Stats(ctx, org)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ExtensionStats), nil
}
