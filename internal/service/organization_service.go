package service

import (
	"context"

	"github.com/user624-47/farmflow-sub000/internal/cache"
	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/repository"
)

// OrganizationService defines access to the caller's own organization profile
type OrganizationService interface {
	Get(ctx context.Context, org domain.OrgContext) (*domain.Organization, error)
	Update(ctx context.Context, org domain.OrgContext, req *dto.UpdateOrganizationRequest) (*domain.Organization, error)
}

// organizationService implements OrganizationService
type organizationService struct {
	repo  repository.OrganizationRepository
	cache *cache.QueryCache
	pub   *cache.Publisher
}

// NewOrganizationService creates an OrganizationService
func NewOrganizationService(repo repository.OrganizationRepository, qc *cache.QueryCache, pub *cache.Publisher) OrganizationService {
	return &organizationService{repo: repo, cache: qc, pub: pub}
}

type organizationGetParams struct {
	Op    string `json:"op"`
	OrgID string `json:"org_id"`
}

// Get retrieves the caller's organization through the query cache
func (s *organizationService) Get(ctx context.Context, org domain.OrgContext) (*domain.Organization, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	params := organizationGetParams{Op: "get", OrgID: org.OrgID}
	v, err := s.cache.Get(ctx, cache.EntityOrganizations, params, func(ctx context.Context) (interface{}, error) {
		record, err := s.repo.GetByID(ctx, org.OrgID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrOrganizationNotFound
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Organization), nil
}

// Update applies a partial update to the caller's organization profile.
// Subscription fields are managed out of band and never pass through here.
func (s *organizationService) Update(ctx context.Context, org domain.OrgContext, req *dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, validationError(msg)
	}

	patch := repository.OrganizationPatch{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	record, err := s.repo.Update(ctx, org.OrgID, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(cache.EntityOrganizations)
	publishChange(ctx, s.pub, cache.EventUpdate, "organizations", org.OrgID, record, nil)
	return record, nil
}
