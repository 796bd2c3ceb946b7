package handler

import (
	"time"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// --- Request types ---

type createListingRequest struct {
	Title    string   `json:"title"    validate:"required,min=5"`
	Rent     float64  `json:"rent"     validate:"required,gte=0"`
	Location string   `json:"location" validate:"required,min=3"`
	Pictures []string `json:"pictures" validate:"omitempty,dive,url"`
}

// updateListingRequest is a partial update: nil fields are left untouched.
type updateListingRequest struct {
	Title    *string   `json:"title"    validate:"omitempty,min=5"`
	Rent     *float64  `json:"rent"     validate:"omitempty,gte=0"`
	Location *string   `json:"location" validate:"omitempty,min=3"`
	Pictures *[]string `json:"pictures" validate:"omitempty,dive,url"`
}

// --- Response types ---

type landlordInfoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type listingResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Rent      float64              `json:"rent"`
	Location  string               `json:"location"`
	Pictures  []string             `json:"pictures"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Landlord  landlordInfoResponse `json:"landlord"`
}

type deleteListingResponse struct {
	Message string `json:"message"`
}

func toListingResponse(v *ports.ListingView) listingResponse {
	return listingResponse{
		ID:        v.ID,
		Title:     v.Title,
		Rent:      v.Rent,
		Location:  v.Location,
		Pictures:  v.Pictures,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		Landlord: landlordInfoResponse{
			ID:    v.Landlord.ID,
			Email: v.Landlord.Email,
			Role:  v.Landlord.Role,
		},
	}
}
