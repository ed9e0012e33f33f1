package repository

import (
	"context"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// FarmerFilter holds optional predicates for listing farmers
type FarmerFilter struct {
	// Search matches first or last name as a case-insensitive substring
	Search        string
	CropType      string
	LivestockType string
}

// FarmerPatch holds optional fields for a partial update. Nil fields are
// left unchanged on the row.
type FarmerPatch struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Email          *string
	FarmLocation   *string
	FarmSizeHa     *float64
	CropTypes      *[]string
	LivestockTypes *[]string
}

// FarmerRepository defines organization-scoped access to the farmer registry
type FarmerRepository interface {
	// Create inserts a new farmer row
	Create(ctx context.Context, org domain.OrgContext, farmer *domain.Farmer) error
	// GetByID retrieves a farmer by id; returns nil, nil when no row matches
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Farmer, error)
	// List retrieves farmers with pagination and filters, newest first
	List(ctx context.Context, org domain.OrgContext, filter FarmerFilter, page, pageSize int) ([]*domain.Farmer, int, error)
	// Update merges the patch into the existing row and returns the result
	Update(ctx context.Context, org domain.OrgContext, id string, patch FarmerPatch) (*domain.Farmer, error)
	// Delete hard-deletes a farmer row
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	// CountReferences counts livestock, crop and financial rows that still
	// reference the farmer
	CountReferences(ctx context.Context, org domain.OrgContext, id string) (int, error)
	// Stats computes aggregate counts over the organization's farmers
	Stats(ctx context.Context, org domain.OrgContext) (*domain.FarmerStats, error)
}
