package domain

import (
	"errors"
	"time"
)

var ErrTenantNotFound = errors.New("tenant not found")
var ErrTenantExists = errors.New("tenant with this national ID already exists")
var ErrInvalidTenantName = errors.New("tenant name must not be empty")

var ErrInvalidScore = errors.New("rating score must be between 1 and 5")
var ErrAlreadyRated = errors.New("you have already rated this tenant")

// Tenant is a renter identity that accumulates ratings from landlords.
// Records are immutable once created.
type Tenant struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name"`
	NationalIDHash string    `json:"national_id_hash,omitempty" bson:"national_id_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Rating is a single landlord's score for a tenant, uniquely keyed by
// (tenant_id, landlord_id). Ratings are never updated or deleted.
type Rating struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	TenantID   string    `json:"tenant_id" bson:"tenant_id"`
	LandlordID string    `json:"landlord_id" bson:"landlord_id"`
	Score      int       `json:"score" bson:"score"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	ProofURL   string    `json:"proof_url,omitempty" bson:"proof_url,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// AverageScore returns the arithmetic mean of the given ratings, or false
// when there are none. The aggregate is always computed at read time.
func AverageScore(ratings []Rating) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	var sum int
	for _, r := range ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(ratings)), true
}
