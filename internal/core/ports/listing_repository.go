package ports

import (
	"context"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

// ListingFilter carries the optional query parameters for listing searches.
type ListingFilter struct {
	Location string   // substring match, case-insensitive
	MinRent  *float64 // rent >= MinRent
	MaxRent  *float64 // rent <= MaxRent
}

// ListingPatch carries the fields of a partial listing update. Nil fields
// are left untouched.
type ListingPatch struct {
	Title    *string
	Rent     *float64
	Location *string
	Pictures *[]string
}

// ListingRepository defines persistence operations for property listings.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// List returns listings matching filter, most-recently-created first.
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	Update(ctx context.Context, id string, patch ListingPatch) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
}
