package repository

import (
	"context"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// OrganizationPatch holds optional fields for a partial update
type OrganizationPatch struct {
	Name               *string
	Email              *string
	Phone              *string
	Address            *string
	Latitude           *float64
	Longitude          *float64
	SubscriptionPlan   *string
	SubscriptionStatus *string
}

// OrganizationRepository defines access to the tenant registry. Organizations
// are provisioned out of band; the API only reads and updates the caller's own.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	Update(ctx context.Context, id string, patch OrganizationPatch) (*domain.Organization, error)
}
