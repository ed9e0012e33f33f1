package repository

import (
	"context"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// LivestockFilter holds optional predicates for listing livestock
type LivestockFilter struct {
	FarmerID string
	Type     string
	Status   string
	// Search matches tag number or breed as a case-insensitive substring
	Search string
}

// LivestockPatch holds optional fields for a partial update
type LivestockPatch struct {
	FarmerID        *string
	TagNumber       *string
	Type            *string
	Breed           *string
	Gender          *string
	Status          *string
	AcquisitionDate *time.Time
}

// HealthRecordPatch holds optional fields for updating an embedded health record
type HealthRecordPatch struct {
	Date         *time.Time
	Diagnosis    *string
	Treatment    *string
	Medication   *string
	Veterinarian *string
	Notes        *string
}

// BreedingRecordPatch holds optional fields for updating an embedded breeding record
type BreedingRecordPatch struct {
	BreedingDate      *time.Time
	Status            *string
	ExpectedBirthDate *time.Time
	ActualBirthDate   *time.Time
	SireTag           *string
	Notes             *string
}

// FeedingRecordPatch holds optional fields for updating an embedded feeding record
type FeedingRecordPatch struct {
	Date     *time.Time
	FeedType *string
	Quantity *float64
	Unit     *string
	Notes    *string
}

// LivestockRepository defines organization-scoped access to livestock rows
// and their embedded record collections. Nested mutations rewrite the whole
// array inside a row-locked transaction, so two concurrent writers against
// the same parent are serialized rather than last-write-wins.
type LivestockRepository interface {
	Create(ctx context.Context, org domain.OrgContext, animal *domain.Livestock) error
	GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Livestock, error)
	List(ctx context.Context, org domain.OrgContext, filter LivestockFilter, page, pageSize int) ([]*domain.Livestock, int, error)
	Update(ctx context.Context, org domain.OrgContext, id string, patch LivestockPatch) (*domain.Livestock, error)
	Delete(ctx context.Context, org domain.OrgContext, id string) error

	// Embedded health records
	AddHealthRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.HealthRecord) (*domain.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch HealthRecordPatch) (*domain.HealthRecord, error)
	RemoveHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error

	// Embedded breeding records
	AddBreedingRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.BreedingRecord) (*domain.BreedingRecord, error)
	UpdateBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch BreedingRecordPatch) (*domain.BreedingRecord, error)
	RemoveBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error

	// Embedded feeding records
	AddFeedingRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.FeedingRecord) (*domain.FeedingRecord, error)
	UpdateFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch FeedingRecordPatch) (*domain.FeedingRecord, error)
	RemoveFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error

	// Stats computes aggregate counts over the organization's herd
	Stats(ctx context.Context, org domain.OrgContext) (*domain.LivestockStats, error)
}
