package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentguard/rentguard-api/internal/api/metrics"
	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// RatingService is the rating ledger: at most one rating per
// (tenant, landlord) pair, ever. The service pre-checks the pair for a fast
// Conflict response, but the store's unique index is the source of truth:
// two concurrent calls that both pass the pre-check race on the insert, and
// the loser's duplicate-key error still surfaces as ErrAlreadyRated.
type RatingService struct {
	tenants ports.TenantRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewRatingService(tenants ports.TenantRepository, ratings ports.RatingRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{tenants: tenants, ratings: ratings, logger: logger}
}

// RateTenant records a new rating. Checks run in order: tenant existence,
// score range, duplicate pair.
func (s *RatingService) RateTenant(ctx context.Context, input ports.RateTenantInput) (*ports.RatingView, error) {
	if _, err := s.tenants.FindByID(ctx, input.TenantID); err != nil {
		return nil, err
	}

	if input.Score < 1 || input.Score > 5 {
		return nil, domain.ErrInvalidScore
	}

	existing, err := s.ratings.FindByPair(ctx, input.TenantID, input.LandlordID)
	if err != nil {
		s.logger.Error().Err(err).Str("tenant_id", input.TenantID).Msg("duplicate pre-check failed")
		return nil, err
	}
	if existing != nil {
		metrics.RatingConflictsTotal.Inc()
		return nil, domain.ErrAlreadyRated
	}

	rating := &domain.Rating{
		TenantID:   input.TenantID,
		LandlordID: input.LandlordID,
		Score:      input.Score,
		Comment:    input.Comment,
		ProofURL:   input.ProofURL,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.ratings.Create(ctx, rating)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRated) {
			// Lost the insert race to a concurrent caller: same Conflict
			// outcome as a pre-check hit.
			metrics.RatingConflictsTotal.Inc()
			return nil, domain.ErrAlreadyRated
		}
		s.logger.Error().Err(err).
			Str("tenant_id", input.TenantID).
			Str("landlord_id", input.LandlordID).
			Msg("failed to create rating")
		return nil, err
	}

	metrics.RatingsCreatedTotal.WithLabelValues(strconv.Itoa(created.Score)).Inc()
	s.logger.Info().
		Str("rating_id", created.ID).
		Str("tenant_id", created.TenantID).
		Str("landlord_id", created.LandlordID).
		Int("score", created.Score).
		Msg("rating recorded")

	view := ratingView(*created)
	return &view, nil
}
