package repository

import (
	"context"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// CropFilter holds optional predicates for listing crops
type CropFilter struct {
	FarmerID string
	Status   string
	// Search matches crop name or variety as a case-insensitive substring
	Search string
	// PlantedFrom and PlantedTo bound the planting date range, inclusive
	PlantedFrom *time.Time
	PlantedTo   *time.Time
}

// CropPatch holds optional fields for a partial update
type CropPatch struct {
	FarmerID            *string
	Name                *string
	Variety             *string
	Status              *string
	PlantingDate        *time.Time
	ExpectedHarvestDate *time.Time
	ActualHarvestDate   *time.Time
	AreaHa              *float64
	ExpectedQuantity    *float64
	ActualQuantity      *float64
	ImageURL            *string
}

// CropRepository defines organization-scoped access to crop records
type CropRepository interface {
	Create(ctx context.Context, org domain.OrgContext, crop *domain.Crop) error
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Crop, error)
	List(ctx context.Context, org domain.OrgContext, filter CropFilter, page, pageSize int) ([]*domain.Crop, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, patch CropPatch) (*domain.Crop, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error
	Stats(ctx context.Context, org domain.OrgContext) (*domain.CropStats, error)
}
