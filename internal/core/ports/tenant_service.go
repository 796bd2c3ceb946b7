package ports

import (
	"context"
	"time"
)

// CreateTenantInput carries the data needed to register a tenant identity.
type CreateTenantInput struct {
	Name           string
	NationalIDHash string // optional; unique across all tenants when present
}

// LandlordRef is the projection of a rating's author exposed on reads.
// Only the identifier is public; contact details stay internal.
type LandlordRef struct {
	ID string
}

// RatingView is the read model for a single rating.
type RatingView struct {
	ID        string
	Score     int
	Comment   string
	ProofURL  string
	CreatedAt time.Time
	Landlord  LandlordRef
}

// TenantView is the full tenant read model: identity, ratings most-recent
// first, and the aggregate score computed for this read. AverageScore is nil
// when the tenant has no ratings.
type TenantView struct {
	ID             string
	Name           string
	NationalIDHash string
	CreatedAt      time.Time
	AverageScore   *float64
	Ratings        []RatingView
}

// TenantService defines use-case operations for the tenant registry.
type TenantService interface {
	CreateTenant(ctx context.Context, input CreateTenantInput) (*TenantView, error)
	GetTenant(ctx context.Context, id string) (*TenantView, error)
	// SearchTenants filters by name or national-ID-hash substring; an empty
	// query lists all tenants.
	SearchTenants(ctx context.Context, query string) ([]TenantView, error)
}
