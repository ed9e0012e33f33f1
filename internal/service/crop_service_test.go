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

// fakeCropRepo is an in-memory CropRepository
type fakeCropRepo struct {
	crops map[string]*domain.Crop

	lastFilter repository.CropFilter
}

func newFakeCropRepo() *fakeCropRepo {
	return &fakeCropRepo{crops: make(map[string]*domain.Crop)}
}

func (r *fakeCropRepo) Create(ctx context.Context, org domain.OrgContext, crop *domain.Crop) error {
	r.crops[crop.ID] = crop
	return nil
}

func (r *fakeCropRepo) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Crop, error) {
	crop, ok := r.crops[id]
	if !ok || crop.OrgID != org.OrgID {
		return nil, nil
	}
	return crop, nil
}

func (r *fakeCropRepo) List(ctx context.Context, org domain.OrgContext, filter repository.CropFilter, page, pageSize int) ([]*domain.Crop, int, error) {
	r.lastFilter = filter
	var items []*domain.Crop
	for _, c := range r.crops {
		if c.OrgID == org.OrgID {
			items = append(items, c)
		}
	}
	return items, len(items), nil
}

func (r *fakeCropRepo) Update(ctx context.Context, org domain.OrgContext, id string, patch repository.CropPatch) (*domain.Crop, error) {
	crop, ok := r.crops[id]
	if !ok || crop.OrgID != org.OrgID {
		return nil, repository.ErrNotFound
	}
	if patch.Status != nil {
		crop.Status = *patch.Status
	}
	crop.UpdatedAt = time.Now()
	return crop, nil
}

func (r *fakeCropRepo) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	crop, ok := r.crops[id]
	if !ok || crop.OrgID != org.OrgID {
		return repository.ErrNotFound
	}
	delete(r.crops, id)
	return nil
}

func (r *fakeCropRepo) Stats(ctx context.Context, org domain.OrgContext) (*domain.CropStats, error) {
	return &domain.CropStats{ByStatus: map[string]int{}, ByName: map[string]int{}}, nil
}

func TestCropServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an existing farmer", func(t *testing.T) {
		svc := NewCropService(newFakeCropRepo(), newFakeFarmerRepo(), testCache(), nil)

		_, err := svc.Create(ctx, testOrg(), &dto.CreateCropRequest{FarmerID: "missing", Name: "maize"})
		if !errors.Is(err, ErrFarmerNotFound) {
			t.Errorf("expected ErrFarmerNotFound, got %v", err)
		}
	})

	t.Run("defaults status to planted", func(t *testing.T) {
		farmers := newFakeFarmerRepo()
		seedFarmer(farmers, "f1", "org-1")
		svc := NewCropService(newFakeCropRepo(), farmers, testCache(), nil)

		crop, err := svc.Create(ctx, testOrg(), &dto.CreateCropRequest{FarmerID: "f1", Name: "maize"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crop.Status != domain.CropStatusPlanted {
			t.Errorf("expected default status planted, got %q", crop.Status)
		}
	})

	t.Run("validation short-circuits", func(t *testing.T) {
		farmers := newFakeFarmerRepo()
		seedFarmer(farmers, "f1", "org-1")
		repo := newFakeCropRepo()
		svc := NewCropService(repo, farmers, testCache(), nil)

		area := -1.0
		_, err := svc.Create(ctx, testOrg(), &dto.CreateCropRequest{FarmerID: "f1", Name: "maize", AreaHa: &area})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if len(repo.crops) != 0 {
			t.Error("invalid request must not reach the repository")
		}
	})
}

func TestCropServiceListDateBounds(t *testing.T) {
	farmers := newFakeFarmerRepo()
	repo := newFakeCropRepo()
	svc := NewCropService(repo, farmers, testCache(), nil)

	_, _, err := svc.List(context.Background(), testOrg(), &dto.ListCropsQuery{
		PlantedFrom: "2025-01-01",
		PlantedTo:   "2025-06-30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastFilter.PlantedFrom == nil || repo.lastFilter.PlantedTo == nil {
		t.Fatal("expected date bounds to be parsed onto the filter")
	}
	if !repo.lastFilter.PlantedFrom.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected lower bound %v", repo.lastFilter.PlantedFrom)
	}
}

func TestCropServiceUpdateFarmerReassignment(t *testing.T) {
	farmers := newFakeFarmerRepo()
	seedFarmer(farmers, "f1", "org-1")
	repo := newFakeCropRepo()
	repo.crops["c1"] = &domain.Crop{ID: "c1", OrgID: "org-1", FarmerID: "f1", Name: "maize", Status: domain.CropStatusPlanted}
	svc := NewCropService(repo, farmers, testCache(), nil)

	other := "missing"
	_, err := svc.Update(context.Background(), testOrg(), "c1", &dto.UpdateCropRequest{FarmerID: &other})
	if !errors.Is(err, ErrFarmerNotFound) {
		t.Errorf("reassignment to an unknown farmer must fail, got %v", err)
	}
}

func TestCropServiceDeleteNotFound(t *testing.T) {
	svc := NewCropService(newFakeCropRepo(), newFakeFarmerRepo(), testCache(), nil)

	if err := svc.Delete(context.Background(), testOrg(), "missing"); !errors.Is(err, ErrCropNotFound) {
		t.Errorf("expected ErrCropNotFound, got %v", err)
	}
}
