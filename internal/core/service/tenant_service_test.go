package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubTenantRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Tenant
	nextID  int
	findErr error // if set, FindByID returns this error
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{byID: make(map[string]*domain.Tenant)}
}

func (r *stubTenantRepo) Create(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the sparse unique index on national_id_hash.
	if t.NationalIDHash != "" {
		for _, existing := range r.byID {
			if existing.NationalIDHash == t.NationalIDHash {
				return nil, domain.ErrTenantExists
			}
		}
	}

	r.nextID++
	clone := *t
	clone.ID = "tenant_" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	clone := *t
	return &clone, nil
}

// Search applies the same filter and ordering the real Mongo repo would use.
func (r *stubTenantRepo) Search(_ context.Context, query string) ([]domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	var matched []domain.Tenant
	for _, t := range r.byID {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.NationalIDHash), q) {
			continue
		}
		matched = append(matched, *t)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

type stubRatingRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Rating
	nextID   int
	listErr  error
	storeErr error // if set, Create returns this error
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{byID: make(map[string]*domain.Rating)}
}

// Create mirrors the real repo: the (tenant_id, landlord_id) pair is unique
// and a violation maps to domain.ErrAlreadyRated.
func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.TenantID == rating.TenantID && existing.LandlordID == rating.LandlordID {
			return nil, domain.ErrAlreadyRated
		}
	}

	r.nextID++
	clone := *rating
	clone.ID = "rating_" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRatingRepo) FindByPair(_ context.Context, tenantID, landlordID string) (*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.TenantID == tenantID && existing.LandlordID == landlordID {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubRatingRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.Rating, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []domain.Rating
	for _, rt := range r.byID {
		if rt.TenantID == tenantID {
			ratings = append(ratings, *rt)
		}
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
	return ratings, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func seedTenant(t *testing.T, repo *stubTenantRepo, name, hash string) *domain.Tenant {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.Tenant{
		Name:           name,
		NationalIDHash: hash,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return created
}

func seedRating(t *testing.T, repo *stubRatingRepo, tenantID, landlordID string, score int, createdAt time.Time) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.Rating{
		TenantID:   tenantID,
		LandlordID: landlordID,
		Score:      score,
		CreatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("seed rating: %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateTenant tests
// ---------------------------------------------------------------------------

func TestTenantService_Create_Success(t *testing.T) {
	svc := NewTenantService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	view, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{
		Name:           "Ahmad bin Abdullah",
		NationalIDHash: "hash_123456789012",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.ID == "" {
		t.Error("expected store-assigned id")
	}
	if view.Name != "Ahmad bin Abdullah" {
		t.Errorf("name: got %q", view.Name)
	}
	if len(view.Ratings) != 0 {
		t.Errorf("new tenant must have an empty rating list, got %d", len(view.Ratings))
	}
	if view.AverageScore != nil {
		t.Errorf("new tenant must have no average score, got %v", *view.AverageScore)
	}
}

func TestTenantService_Create_TrimsName(t *testing.T) {
	svc := NewTenantService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	view, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{Name: "  Siti Nurhaliza  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Name != "Siti Nurhaliza" {
		t.Errorf("expected trimmed name, got %q", view.Name)
	}
}

func TestTenantService_Create_EmptyNameRejected(t *testing.T) {
	svc := NewTenantService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{Name: name})
		if !errors.Is(err, domain.ErrInvalidTenantName) {
			t.Errorf("name %q: expected ErrInvalidTenantName, got %v", name, err)
		}
	}
}

func TestTenantService_Create_DuplicateHashConflict(t *testing.T) {
	repo := newStubTenantRepo()
	svc := NewTenantService(repo, newStubRatingRepo(), discardLogger)
	seedTenant(t, repo, "Ahmad", "hash_123456789012")

	_, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{
		Name:           "Someone Else",
		NationalIDHash: "hash_123456789012",
	})
	if !errors.Is(err, domain.ErrTenantExists) {
		t.Fatalf("expected ErrTenantExists, got %v", err)
	}
}

func TestTenantService_Create_HashlessTenantsNeverCollide(t *testing.T) {
	svc := NewTenantService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	if _, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{Name: "First"}); err != nil {
		t.Fatalf("first hash-less tenant: %v", err)
	}
	if _, err := svc.CreateTenant(context.Background(), ports.CreateTenantInput{Name: "Second"}); err != nil {
		t.Fatalf("second hash-less tenant must not conflict: %v", err)
	}
}

// ---------------------------------------------------------------------------
// GetTenant tests
// ---------------------------------------------------------------------------

func TestTenantService_Get_NotFound(t *testing.T) {
	svc := NewTenantService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	_, err := svc.GetTenant(context.Background(), "tenant_missing")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestTenantService_Get_AverageOfThreeRatings(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	svc := NewTenantService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Raj Kumar", "")
	now := time.Now().UTC()
	seedRating(t, ratingRepo, tenant.ID, "landlord_1", 5, now.Add(-3*time.Hour))
	seedRating(t, ratingRepo, tenant.ID, "landlord_2", 4, now.Add(-2*time.Hour))
	seedRating(t, ratingRepo, tenant.ID, "landlord_3", 3, now.Add(-1*time.Hour))

	view, err := svc.GetTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.AverageScore == nil {
		t.Fatal("expected average score")
	}
	if *view.AverageScore != 4.0 {
		t.Errorf("average of [5,4,3]: want 4.0, got %v", *view.AverageScore)
	}
}

func TestTenantService_Get_NoRatingsMeansNoAverage(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	svc := NewTenantService(tenantRepo, newStubRatingRepo(), discardLogger)
	tenant := seedTenant(t, tenantRepo, "Ahmad", "")

	view, err := svc.GetTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.AverageScore != nil {
		t.Errorf("zero ratings must report absent average, got %v", *view.AverageScore)
	}
	if len(view.Ratings) != 0 {
		t.Errorf("expected empty rating list, got %d", len(view.Ratings))
	}
}

func TestTenantService_Get_RatingsNewestFirstWithAuthorIDOnly(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	svc := NewTenantService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	now := time.Now().UTC()
	seedRating(t, ratingRepo, tenant.ID, "landlord_old", 2, now.Add(-2*time.Hour))
	seedRating(t, ratingRepo, tenant.ID, "landlord_new", 5, now.Add(-1*time.Hour))

	view, err := svc.GetTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(view.Ratings))
	}
	if view.Ratings[0].Landlord.ID != "landlord_new" {
		t.Errorf("most recent rating first: want author landlord_new, got %q", view.Ratings[0].Landlord.ID)
	}
	if view.Ratings[1].Landlord.ID != "landlord_old" {
		t.Errorf("oldest rating last: want author landlord_old, got %q", view.Ratings[1].Landlord.ID)
	}
}

// ---------------------------------------------------------------------------
// SearchTenants tests
// ---------------------------------------------------------------------------

func TestTenantService_Search_MatchesNameAndHashCaseInsensitive(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	svc := NewTenantService(tenantRepo, newStubRatingRepo(), discardLogger)
	seedTenant(t, tenantRepo, "Ahmad bin Abdullah", "hash_123")
	seedTenant(t, tenantRepo, "Siti Nurhaliza", "hash_987")

	byName, err := svc.SearchTenants(context.Background(), "AHMAD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Ahmad bin Abdullah" {
		t.Errorf("case-insensitive name search failed: %+v", byName)
	}

	byHash, err := svc.SearchTenants(context.Background(), "hash_987")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byHash) != 1 || byHash[0].Name != "Siti Nurhaliza" {
		t.Errorf("hash search failed: %+v", byHash)
	}
}

func TestTenantService_Search_EmptyQueryListsAll(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	svc := NewTenantService(tenantRepo, newStubRatingRepo(), discardLogger)
	seedTenant(t, tenantRepo, "Ahmad", "")
	seedTenant(t, tenantRepo, "Siti", "")

	all, err := svc.SearchTenants(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 tenants, got %d", len(all))
	}
}
