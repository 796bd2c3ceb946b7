package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentguard/rentguard-api/internal/api/metrics"
	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// TenantService implements the tenant registry: identity creation with the
// national-ID-hash uniqueness invariant, and reads that include ratings plus
// the aggregate score computed for each read.
type TenantService struct {
	tenants ports.TenantRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewTenantService(tenants ports.TenantRepository, ratings ports.RatingRepository, logger zerolog.Logger) *TenantService {
	return &TenantService{tenants: tenants, ratings: ratings, logger: logger}
}

// CreateTenant registers a new tenant identity. The nationalIDHash is
// optional; when present it must be unique across all tenants. The uniqueness
// is enforced by the store's unique index; the pre-check below only buys a
// friendlier error without a round trip through the insert path.
func (s *TenantService) CreateTenant(ctx context.Context, input ports.CreateTenantInput) (*ports.TenantView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidTenantName
	}

	tenant := &domain.Tenant{
		Name:           name,
		NationalIDHash: input.NationalIDHash,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.tenants.Create(ctx, tenant)
	if err != nil {
		if err != domain.ErrTenantExists {
			s.logger.Error().Err(err).Msg("failed to create tenant")
		}
		return nil, err
	}

	metrics.TenantsCreatedTotal.Inc()
	s.logger.Info().Str("tenant_id", created.ID).Msg("tenant created")

	return &ports.TenantView{
		ID:             created.ID,
		Name:           created.Name,
		NationalIDHash: created.NationalIDHash,
		CreatedAt:      created.CreatedAt,
		Ratings:        []ports.RatingView{},
	}, nil
}

// GetTenant returns the tenant with its ratings (most recent first) and the
// aggregate score recomputed from them.
func (s *TenantService) GetTenant(ctx context.Context, id string) (*ports.TenantView, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, tenant)
}

// SearchTenants performs a case-insensitive substring match on name or
// national-ID hash; an empty query lists every tenant. Results are ordered
// most-recently-created first.
func (s *TenantService) SearchTenants(ctx context.Context, query string) ([]ports.TenantView, error) {
	tenants, err := s.tenants.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("tenant search failed")
		return nil, err
	}

	views := make([]ports.TenantView, 0, len(tenants))
	for i := range tenants {
		view, err := s.buildView(ctx, &tenants[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *TenantService) buildView(ctx context.Context, tenant *domain.Tenant) (*ports.TenantView, error) {
	ratings, err := s.ratings.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list ratings for tenant %s: %w", tenant.ID, err)
	}

	view := &ports.TenantView{
		ID:             tenant.ID,
		Name:           tenant.Name,
		NationalIDHash: tenant.NationalIDHash,
		CreatedAt:      tenant.CreatedAt,
		Ratings:        make([]ports.RatingView, 0, len(ratings)),
	}
	for _, r := range ratings {
		view.Ratings = append(view.Ratings, ratingView(r))
	}
	if avg, ok := domain.AverageScore(ratings); ok {
		view.AverageScore = &avg
	}
	return view, nil
}

// ratingView projects a rating for read responses. Only the author's id is
// exposed; no contact details leave the service layer.
func ratingView(r domain.Rating) ports.RatingView {
	return ports.RatingView{
		ID:        r.ID,
		Score:     r.Score,
		Comment:   r.Comment,
		ProofURL:  r.ProofURL,
		CreatedAt: r.CreatedAt,
		Landlord:  ports.LandlordRef{ID: r.LandlordID},
	}
}
