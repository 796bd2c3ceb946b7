package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

func TestRatingService_RateTenant_Success(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")

	view, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
		TenantID:   tenant.ID,
		LandlordID: "landlord_1",
		Score:      4,
		Comment:    "paid on time, left the unit clean",
		ProofURL:   "https://storage.example.com/rentguard-images/receipt.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.ID == "" {
		t.Error("expected store-assigned rating id")
	}
	if view.Score != 4 {
		t.Errorf("score: got %d", view.Score)
	}
	if view.Landlord.ID != "landlord_1" {
		t.Errorf("author: got %q", view.Landlord.ID)
	}
}

func TestRatingService_RateTenant_UnknownTenant(t *testing.T) {
	svc := NewRatingService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	_, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
		TenantID:   "tenant_missing",
		LandlordID: "landlord_1",
		Score:      3,
	})
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

// Existence wins over score validation: a bad score against an unknown tenant
// still reports NotFound, not InvalidInput.
func TestRatingService_RateTenant_UnknownTenantBeatsBadScore(t *testing.T) {
	svc := NewRatingService(newStubTenantRepo(), newStubRatingRepo(), discardLogger)

	_, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
		TenantID:   "tenant_missing",
		LandlordID: "landlord_1",
		Score:      9,
	})
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestRatingService_RateTenant_ScoreRange(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	tenant := seedTenant(t, tenantRepo, "Ahmad", "")

	cases := []struct {
		score   int
		wantErr bool
	}{
		{score: 0, wantErr: true},
		{score: 6, wantErr: true},
		{score: -1, wantErr: true},
		{score: 1, wantErr: false},
		{score: 5, wantErr: false},
	}
	for _, tc := range cases {
		// A fresh rating repo per case so accepted scores never trip the
		// duplicate-pair check.
		svc := NewRatingService(tenantRepo, newStubRatingRepo(), discardLogger)
		_, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
			TenantID:   tenant.ID,
			LandlordID: "landlord_1",
			Score:      tc.score,
		})
		if tc.wantErr && !errors.Is(err, domain.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", tc.score, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("score %d: unexpected error %v", tc.score, err)
		}
	}
}

func TestRatingService_RateTenant_DuplicatePairConflict(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	input := ports.RateTenantInput{TenantID: tenant.ID, LandlordID: "landlord_1", Score: 3}

	if _, err := svc.RateTenant(context.Background(), input); err != nil {
		t.Fatalf("first rating: %v", err)
	}

	// Second attempt by the same landlord conflicts even with a different score.
	input.Score = 5
	_, err := svc.RateTenant(context.Background(), input)
	if !errors.Is(err, domain.ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
}

func TestRatingService_RateTenant_DifferentLandlordsBothSucceed(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	for _, landlord := range []string{"landlord_1", "landlord_2"} {
		_, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
			TenantID:   tenant.ID,
			LandlordID: landlord,
			Score:      4,
		})
		if err != nil {
			t.Fatalf("landlord %s: unexpected error %v", landlord, err)
		}
	}
}

// raceRatingRepo defeats the pre-check by reporting the pair as absent, so
// the unique-constraint path in Create is the only line of defense. That is
// how two concurrent writers see the world before either insert lands.
type raceRatingRepo struct {
	*stubRatingRepo
}

func (r *raceRatingRepo) FindByPair(context.Context, string, string) (*domain.Rating, error) {
	return nil, nil
}

func TestRatingService_RateTenant_InsertRaceLoserGetsConflict(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := &raceRatingRepo{stubRatingRepo: newStubRatingRepo()}
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	input := ports.RateTenantInput{TenantID: tenant.ID, LandlordID: "landlord_1", Score: 3}

	if _, err := svc.RateTenant(context.Background(), input); err != nil {
		t.Fatalf("winner: %v", err)
	}
	_, err := svc.RateTenant(context.Background(), input)
	if !errors.Is(err, domain.ErrAlreadyRated) {
		t.Fatalf("race loser must surface Conflict, got %v", err)
	}
}

func TestRatingService_RateTenant_ConcurrentCallersExactlyOneWins(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := &raceRatingRepo{stubRatingRepo: newStubRatingRepo()}
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RateTenant(context.Background(), ports.RateTenantInput{
				TenantID:   tenant.ID,
				LandlordID: "landlord_1",
				Score:      3,
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyRated):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("exactly one concurrent rating must succeed, got %d", ok)
	}
	if conflicts != callers-1 {
		t.Errorf("expected %d conflicts, got %d", callers-1, conflicts)
	}
}

func TestRatingService_RateTenant_StoreErrorPropagates(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	ratingRepo := newStubRatingRepo()
	ratingRepo.storeErr = errors.New("connection reset")
	svc := NewRatingService(tenantRepo, ratingRepo, discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	_, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
		TenantID:   tenant.ID,
		LandlordID: "landlord_1",
		Score:      3,
	})
	if err == nil || errors.Is(err, domain.ErrAlreadyRated) {
		t.Fatalf("expected the raw store error, got %v", err)
	}
}

// The created timestamp is set by the service, not the caller.
func TestRatingService_RateTenant_TimestampsAreUTC(t *testing.T) {
	tenantRepo := newStubTenantRepo()
	svc := NewRatingService(tenantRepo, newStubRatingRepo(), discardLogger)

	tenant := seedTenant(t, tenantRepo, "Ahmad", "")
	before := time.Now().UTC()
	view, err := svc.RateTenant(context.Background(), ports.RateTenantInput{
		TenantID:   tenant.ID,
		LandlordID: "landlord_1",
		Score:      5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CreatedAt.Before(before) || view.CreatedAt.After(time.Now().UTC()) {
		t.Errorf("created_at outside call window: %v", view.CreatedAt)
	}
}
