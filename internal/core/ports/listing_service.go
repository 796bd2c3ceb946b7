package ports

import (
	"context"
	"time"
)

// CreateListingInput carries the data needed to publish a listing.
type CreateListingInput struct {
	Title      string
	Rent       float64
	Location   string
	Pictures   []string // public asset URLs from the media ingest pipeline
	LandlordID string
}

// LandlordInfo is the owner projection embedded in listing reads.
type LandlordInfo struct {
	ID    string
	Email string
	Role  string
}

// ListingView is the listing read model with its owner projection.
type ListingView struct {
	ID        string
	Title     string
	Rent      float64
	Location  string
	Pictures  []string
	CreatedAt time.Time
	UpdatedAt time.Time
	Landlord  LandlordInfo
}

// ListingService defines use-case operations for the listing catalog.
// Mutations check existence before ownership: an absent listing is NotFound,
// an existing listing owned by someone else is Forbidden.
type ListingService interface {
	ListListings(ctx context.Context, filter ListingFilter) ([]ListingView, error)
	GetListing(ctx context.Context, id string) (*ListingView, error)
	CreateListing(ctx context.Context, input CreateListingInput) (*ListingView, error)
	UpdateListing(ctx context.Context, id, landlordID string, patch ListingPatch) (*ListingView, error)
	DeleteListing(ctx context.Context, id, landlordID string) error
}
