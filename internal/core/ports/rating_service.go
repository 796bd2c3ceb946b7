package ports

import "context"

// RateTenantInput carries all data needed to record a rating. LandlordID is
// the authenticated caller's identity, never client-supplied.
type RateTenantInput struct {
	TenantID   string
	LandlordID string
	Score      int
	Comment    string // optional
	ProofURL   string // optional
}

// RatingService defines the use-case operation for the rating ledger.
type RatingService interface {
	// RateTenant records exactly one rating per (tenant, landlord) pair.
	// Checks run in order: tenant existence, score range, duplicate pair.
	RateTenant(ctx context.Context, input RateTenantInput) (*RatingView, error)
}
