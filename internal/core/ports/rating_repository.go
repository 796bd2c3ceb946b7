package ports

import (
	"context"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

// RatingRepository defines persistence operations for the rating ledger.
type RatingRepository interface {
	// Create inserts a new rating. The store's unique index on
	// (tenant_id, landlord_id) is the authoritative uniqueness guarantee:
	// a duplicate-key violation is returned as domain.ErrAlreadyRated.
	Create(ctx context.Context, r *domain.Rating) (*domain.Rating, error)

	// FindByPair retrieves the rating for (tenantID, landlordID). Absence is
	// not an error: (nil, nil) means no rating exists for the pair.
	FindByPair(ctx context.Context, tenantID, landlordID string) (*domain.Rating, error)

	// ListByTenant returns all ratings for a tenant, most recent first.
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Rating, error)
}
