package handler

import (
	"time"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// --- Request types ---

type createTenantRequest struct {
	Name           string `json:"name"             validate:"required,min=2"`
	NationalIDHash string `json:"nationalIdHash"   validate:"omitempty"`
}

type createRatingRequest struct {
	Score    int    `json:"score"    validate:"required,min=1,max=5"`
	Comment  string `json:"comment"  validate:"omitempty"`
	ProofURL string `json:"proofUrl" validate:"omitempty,url"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

// landlordRefResponse exposes only the rating author's identifier.
type landlordRefResponse struct {
	ID string `json:"id"`
}

type ratingResponse struct {
	ID        string              `json:"id"`
	Score     int                 `json:"score"`
	Comment   string              `json:"comment,omitempty"`
	ProofURL  string              `json:"proof_url,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Landlord  landlordRefResponse `json:"landlord"`
}

// tenantResponse is the full tenant view. AverageScore is null (not 0) for a
// tenant with no ratings.
type tenantResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	NationalIDHash string           `json:"national_id_hash,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	AverageScore   *float64         `json:"average_score"`
	Ratings        []ratingResponse `json:"ratings"`
}

func toTenantResponse(v *ports.TenantView) tenantResponse {
	ratings := make([]ratingResponse, 0, len(v.Ratings))
	for _, r := range v.Ratings {
		ratings = append(ratings, toRatingResponse(&r))
	}
	return tenantResponse{
		ID:             v.ID,
		Name:           v.Name,
		NationalIDHash: v.NationalIDHash,
		CreatedAt:      v.CreatedAt,
		AverageScore:   v.AverageScore,
		Ratings:        ratings,
	}
}

func toRatingResponse(v *ports.RatingView) ratingResponse {
	return ratingResponse{
		ID:        v.ID,
		Score:     v.Score,
		Comment:   v.Comment,
		ProofURL:  v.ProofURL,
		CreatedAt: v.CreatedAt,
		Landlord:  landlordRefResponse{ID: v.Landlord.ID},
	}
}
