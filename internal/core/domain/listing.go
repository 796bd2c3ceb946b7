package domain

import (
	"errors"
	"time"
)

var ErrListingNotFound = errors.New("listing not found")
var ErrForbidden = errors.New("access forbidden")

// Listing is a published rental property. Pictures are public asset URLs
// referenced by value; the listing does not own the underlying objects.
type Listing struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Title      string    `json:"title" bson:"title"`
	Rent       float64   `json:"rent" bson:"rent"`
	Location   string    `json:"location" bson:"location"`
	Pictures   []string  `json:"pictures" bson:"pictures"`
	LandlordID string    `json:"landlord_id" bson:"landlord_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
