package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/repository"
)

// fakeExtensionRepo is an in-memory ExtensionRepository
type fakeExtensionRepo struct {
	records map[string]*domain.ExtensionService
}

func newFakeExtensionRepo() *fakeExtensionRepo {
	return &fakeExtensionRepo{records: make(map[string]*domain.ExtensionService)}
}

func (r *fakeExtensionRepo) Create(ctx context.Context, org domain.OrgContext, svc *domain.ExtensionService) error {
	r.records[svc.ID] = svc
	return nil
}

func (r *fakeExtensionRepo) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.ExtensionService, error) {
	rec, ok := r.records[id]
	if !ok || rec.OrgID != org.OrgID {
		return nil, nil
	}
	return rec, nil
}

func (r *fakeExtensionRepo) List(ctx context.Context, org domain.OrgContext, filter repository.ExtensionFilter, page, pageSize int) ([]*domain.ExtensionService, int, error) {
	var items []*domain.ExtensionService
	for _, rec := range r.records {
		if rec.OrgID == org.OrgID {
			items = append(items, rec)
		}
	}
	return items, len(items), nil
}

func (r *fakeExtensionRepo) Update(ctx context.Context, org domain.OrgContext, id string, patch repository.ExtensionPatch) (*domain.ExtensionService, error) {
	rec, ok := r.records[id]
	if !ok || rec.OrgID != org.OrgID {
		return nil, repository.ErrNotFound
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.AttendeeCount != nil {
		rec.AttendeeCount = *patch.AttendeeCount
	}
	rec.UpdatedAt = time.Now()
	return rec, nil
}

func (r *fakeExtensionRepo) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	rec, ok := r.records[id]
	if !ok || rec.OrgID != org.OrgID {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeExtensionRepo) Stats(ctx context.Context, org domain.OrgContext) (*domain.ExtensionStats, error) {
	return &domain.ExtensionStats{}, nil
}

func TestExtensionSvcCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to scheduled", func(t *testing.T) {
		svc := NewExtensionSvc(newFakeExtensionRepo(), testCache(), nil)

		rec, err := svc.Create(ctx, testOrg(), &dto.CreateExtensionServiceRequest{
			Title:    "Pest control workshop",
			Category: domain.ExtensionCategoryTraining,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Status != domain.ExtensionStatusScheduled {
			t.Errorf("expected default status scheduled, got %q", rec.Status)
		}
		if rec.AttendeeCount != 0 {
			t.Errorf("expected zero attendees by default, got %d", rec.AttendeeCount)
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewExtensionSvc(newFakeExtensionRepo(), testCache(), nil)

		_, err := svc.Create(ctx, testOrg(), &dto.CreateExtensionServiceRequest{
			Title:    "Workshop",
			Category: "karaoke",
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestExtensionSvcUpdateNotFound(t *testing.T) {
	svc := NewExtensionSvc(newFakeExtensionRepo(), testCache(), nil)

	status := domain.ExtensionStatusCompleted
	_, err := svc.Update(context.Background(), testOrg(), "missing", &dto.UpdateExtensionServiceRequest{Status: &status})
	if !errors.Is(err, ErrExtensionServiceNotFound) {
		t.Errorf("expected ErrExtensionServiceNotFound, got %v", err)
	}
}

func TestExtensionSvcDelete(t *testing.T) {
	repo := newFakeExtensionRepo()
	repo.records["e1"] = &domain.ExtensionService{
		ID:       "e1",
		OrgID:    "org-1",
		Title:    "Field visit",
		Category: domain.ExtensionCategoryFieldVisit,
		Status:   domain.ExtensionStatusScheduled,
	}
	svc := NewExtensionSvc(repo, testCache(), nil)

	if err := svc.Delete(context.Background(), testOrg(), "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("expected the record to be removed")
	}
}
