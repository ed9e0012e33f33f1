package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/user624-47/farmflow-sub000/internal/cache"
	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/repository"
)

func testOrg() domain.OrgContext {
	return domain.OrgContext{OrgID: "org-1", UserID: "user-1", Role: domain.RoleAdmin}
}

func testCache() *cache.QueryCache {
	return cache.New(cache.Config{TTL: time.Minute, StaleAfter: time.Minute, CleanupInterval: time.Minute}, nil)
}

// fakeFarmerRepo is an in-memory FarmerRepository with call counters
type fakeFarmerRepo struct {
	farmers    map[string]*domain.Farmer
	references map[string]int
	lastFilter repository.FarmerFilter

	createCalls int
	getCalls    int
	listCalls   int
	updateCalls int
	deleteCalls int
	statsCalls  int

	failWith error
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{
		farmers:    make(map[string]*domain.Farmer),
		references: make(map[string]int),
	}
}

func (r *fakeFarmerRepo) Create(ctx context.Context, org domain.OrgContext, farmer *domain.Farmer) error {
	r.createCalls++
	if r.failWith != nil {
		return r.failWith
	}
	r.farmers[farmer.ID] = farmer
	return nil
}

func (r *fakeFarmerRepo) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Farmer, error) {
	r.getCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	farmer, ok := r.farmers[id]
	if !ok || farmer.OrgID != org.OrgID {
		return nil, nil
	}
	return farmer, nil
}

func (r *fakeFarmerRepo) List(ctx context.Context, org domain.OrgContext, filter repository.FarmerFilter, page, pageSize int) ([]*domain.Farmer, int, error) {
	r.listCalls++
	r.lastFilter = filter
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	var items []*domain.Farmer
	for _, f := range r.farmers {
		if f.OrgID == org.OrgID {
			items = append(items, f)
		}
	}
	// newest first, id as the tie-breaker, same as the store
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total, nil
}

func (r *fakeFarmerRepo) Update(ctx context.Context, org domain.OrgContext, id string, patch repository.FarmerPatch) (*domain.Farmer, error) {
	r.updateCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	farmer, ok := r.farmers[id]
	if !ok || farmer.OrgID != org.OrgID {
		return nil, repository.ErrNotFound
	}
	if patch.FirstName != nil {
		farmer.FirstName = *patch.FirstName
	}
	if patch.Phone != nil {
		farmer.Phone = *patch.Phone
	}
	farmer.UpdatedAt = time.Now()
	return farmer, nil
}

func (r *fakeFarmerRepo) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	r.deleteCalls++
	if r.failWith != nil {
		return r.failWith
	}
	farmer, ok := r.farmers[id]
	if !ok || farmer.OrgID != org.OrgID {
		return repository.ErrNotFound
	}
	delete(r.farmers, id)
	return nil
}

func (r *fakeFarmerRepo) CountReferences(ctx context.Context, org domain.OrgContext, id string) (int, error) {
	return r.references[id], nil
}

func (r *fakeFarmerRepo) Stats(ctx context.Context, org domain.OrgContext) (*domain.FarmerStats, error) {
	r.statsCalls++
	stats := &domain.FarmerStats{
		ByCropType:      map[string]int{},
		ByLivestockType: map[string]int{},
	}
	for _, f := range r.farmers {
		if f.OrgID == org.OrgID {
			stats.TotalFarmers++
		}
	}
	return stats, nil
}

func seedFarmer(repo *fakeFarmerRepo, id, orgID string) *domain.Farmer {
	farmer := &domain.Farmer{
		ID:        id,
		OrgID:     orgID,
		FirstName: "Amina",
		LastName:  "Bello",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.farmers[id] = farmer
	return farmer
}

func TestFarmerServiceCreate(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := NewFarmerService(repo, testCache(), nil)

	t.Run("success", func(t *testing.T) {
		farmer, err := svc.Create(context.Background(), testOrg(), &dto.CreateFarmerRequest{
			FirstName: "Amina",
			LastName:  "Bello",
			Phone:     "+2348012345678",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if farmer.ID == "" {
			t.Error("expected a generated id")
		}
		if farmer.OrgID != "org-1" {
			t.Errorf("expected org scope org-1, got %q", farmer.OrgID)
		}
		if farmer.CreatedAt.IsZero() || farmer.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("missing org scope", func(t *testing.T) {
		_, err := svc.Create(context.Background(), domain.OrgContext{}, &dto.CreateFarmerRequest{
			FirstName: "Amina", LastName: "Bello",
		})
		if !errors.Is(err, domain.ErrMissingOrgScope) {
			t.Errorf("expected ErrMissingOrgScope, got %v", err)
		}
	})

	t.Run("validation short-circuits before the store", func(t *testing.T) {
		before := repo.createCalls
		size := -1.0
		_, err := svc.Create(context.Background(), testOrg(), &dto.CreateFarmerRequest{
			FirstName: "Amina", LastName: "Bello", FarmSizeHa: &size,
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if repo.createCalls != before {
			t.Error("invalid request must not reach the repository")
		}
	})
}

func TestFarmerServiceListCachesReads(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmer(repo, "f1", "org-1")
	svc := NewFarmerService(repo, testCache(), nil)

	query := &dto.ListFarmersQuery{}
	if _, _, err := svc.List(context.Background(), testOrg(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, total, err := svc.List(context.Background(), testOrg(), &dto.ListFarmersQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if total != 1 {
		t.Errorf("expected total 1, got %d", total)
	}

	if repo.listCalls != 1 {
		t.Errorf("expected the second list to be served from cache, got %d repo calls", repo.listCalls)
	}
}

func TestFarmerServiceUpdateInvalidatesCache(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmer(repo, "f1", "org-1")
	svc := NewFarmerService(repo, testCache(), nil)
	ctx := context.Background()

	if _, _, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Fatima"
	if _, err := svc.Update(ctx, testOrg(), "f1", &dto.UpdateFarmerRequest{FirstName: &name}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("expected the mutation to invalidate the list cache, got %d repo calls", repo.listCalls)
	}
}

func TestFarmerServiceUpdateNotFound(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := NewFarmerService(repo, testCache(), nil)

	name := "Fatima"
	_, err := svc.Update(context.Background(), testOrg(), "missing", &dto.UpdateFarmerRequest{FirstName: &name})
	if !errors.Is(err, ErrFarmerNotFound) {
		t.Errorf("expected ErrFarmerNotFound, got %v", err)
	}
}

func TestFarmerServiceGetByIDNotFound(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := NewFarmerService(repo, testCache(), nil)

	_, err := svc.GetByID(context.Background(), testOrg(), "missing")
	if !errors.Is(err, ErrFarmerNotFound) {
		t.Errorf("expected ErrFarmerNotFound, got %v", err)
	}
}

func TestFarmerServiceDelete(t *testing.T) {
	t.Run("refused while referenced", func(t *testing.T) {
		repo := newFakeFarmerRepo()
		seedFarmer(repo, "f1", "org-1")
		repo.references["f1"] = 3
		svc := NewFarmerService(repo, testCache(), nil)

		err := svc.Delete(context.Background(), testOrg(), "f1")
		if !errors.Is(err, ErrFarmerReferenced) {
			t.Errorf("expected ErrFarmerReferenced, got %v", err)
		}
		if repo.deleteCalls != 0 {
			t.Error("a referenced farmer must not be deleted")
		}
	})

	t.Run("succeeds when unreferenced", func(t *testing.T) {
		repo := newFakeFarmerRepo()
		seedFarmer(repo, "f1", "org-1")
		svc := NewFarmerService(repo, testCache(), nil)

		if err := svc.Delete(context.Background(), testOrg(), "f1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := repo.farmers["f1"]; ok {
			t.Error("expected the farmer row to be removed")
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeFarmerRepo()
		svc := NewFarmerService(repo, testCache(), nil)

		err := svc.Delete(context.Background(), testOrg(), "missing")
		if !errors.Is(err, ErrFarmerNotFound) {
			t.Errorf("expected ErrFarmerNotFound, got %v", err)
		}
	})
}

func TestFarmerServiceCrossOrgIsolation(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmer(repo, "f1", "org-2")
	svc := NewFarmerService(repo, testCache(), nil)

	if _, err := svc.GetByID(context.Background(), testOrg(), "f1"); !errors.Is(err, ErrFarmerNotFound) {
		t.Errorf("a row from another organization must look absent, got %v", err)
	}
}

func TestFarmerServiceStatsCached(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmer(repo, "f1", "org-1")
	svc := NewFarmerService(repo, testCache(), nil)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, testOrg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalFarmers != 1 {
		t.Errorf("expected 1 farmer, got %d", stats.TotalFarmers)
	}

	if _, err := svc.Stats(ctx, testOrg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.statsCalls != 1 {
		t.Errorf("expected stats to be cached, got %d repo calls", repo.statsCalls)
	}
}

func TestFarmerServiceListSearch(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmer(repo, "f1", "org-1")
	svc := NewFarmerService(repo, testCache(), nil)
	ctx := context.Background()

	if _, _, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{Search: "ada"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Search != "ada" {
		t.Errorf("expected search to reach the store, got %q", repo.lastFilter.Search)
	}

	// a different search term is a different cache key, not a stale hit
	if _, _, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{Search: "okoro"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("expected 2 store reads for distinct searches, got %d", repo.listCalls)
	}
	if repo.lastFilter.Search != "okoro" {
		t.Errorf("expected the second search to reach the store, got %q", repo.lastFilter.Search)
	}
}

func TestFarmerServiceListPagesConcatenate(t *testing.T) {
	repo := newFakeFarmerRepo()
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	// identical created_at forces the id tie-breaker to order the pages
	for i := 0; i < 5; i++ {
		f := seedFarmer(repo, fmt.Sprintf("f%d", i), "org-1")
		f.CreatedAt = created
		f.UpdatedAt = created
	}
	svc := NewFarmerService(repo, testCache(), nil)
	ctx := context.Background()

	page1, total1, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page2, _, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	both, total2, err := svc.List(ctx, testOrg(), &dto.ListFarmersQuery{Page: 1, PageSize: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total1 != 5 || total2 != 5 {
		t.Fatalf("expected total 5 on every page, got %d and %d", total1, total2)
	}
	joined := append(append([]*domain.Farmer{}, page1...), page2...)
	if len(joined) != len(both) {
		t.Fatalf("expected %d rows across two pages, got %d", len(both), len(joined))
	}
	for i := range both {
		if joined[i].ID != both[i].ID {
			t.Errorf("row %d: two pages gave %q, one page gave %q", i, joined[i].ID, both[i].ID)
		}
	}
}
