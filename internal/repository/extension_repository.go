package repository

import (
	"context"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// ExtensionFilter holds optional predicates for listing extension services
type ExtensionFilter struct {
	Category string
	Status   string
	// Search matches title or description as a case-insensitive substring
	Search string
	// ScheduledFrom and ScheduledTo bound the scheduled date range, inclusive
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// ExtensionPatch holds optional fields for a partial update
type ExtensionPatch struct {
	Title         *string
	Category      *string
	Description   *string
	Status        *string
	ScheduledDate *time.Time
	CompletedDate *time.Time
	Location      *string
	AttendeeCount *int
}

// ExtensionRepository defines organization-scoped access to extension service records
type ExtensionRepository interface {
	Create(ctx context.Context, org domain.OrgContext, svc *domain.ExtensionService) error
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.ExtensionService, error)
	List(ctx context.Context, org domain.OrgContext, filter ExtensionFilter, page, pageSize int) ([]*domain.ExtensionService, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, patch ExtensionPatch) (*domain.ExtensionService, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.ExtensionStats, error)
}
