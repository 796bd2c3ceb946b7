package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

const collectionRatings = "ratings"

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

type ratingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TenantID   primitive.ObjectID `bson:"tenant_id"`
	LandlordID string             `bson:"landlord_id"`
	Score      int                `bson:"score"`
	Comment    string             `bson:"comment,omitempty"`
	ProofURL   string             `bson:"proof_url,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d ratingDoc) toDomain() domain.Rating {
	return domain.Rating{
		ID:         d.ID.Hex(),
		TenantID:   d.TenantID.Hex(),
		LandlordID: d.LandlordID,
		Score:      d.Score,
		Comment:    d.Comment,
		ProofURL:   d.ProofURL,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// Create inserts a new rating. The compound unique index on
// (tenant_id, landlord_id) is the authoritative one-rating-per-pair
// guarantee; its violation maps to ErrAlreadyRated so a race lost to a
// concurrent caller surfaces as the same Conflict as a pre-check hit.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tenantOID, err := primitive.ObjectIDFromHex(rating.TenantID)
	if err != nil {
		return nil, domain.ErrTenantNotFound
	}

	doc := ratingDoc{
		TenantID:   tenantOID,
		LandlordID: rating.LandlordID,
		Score:      rating.Score,
		Comment:    rating.Comment,
		ProofURL:   rating.ProofURL,
		CreatedAt:  rating.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRated
		}
		return nil, fmt.Errorf("insert rating: %w", err)
	}

	created := *rating
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByPair returns the rating for (tenantID, landlordID), or (nil, nil)
// when none exists.
func (r *RatingRepository) FindByPair(ctx context.Context, tenantID, landlordID string) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tenantOID, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return nil, nil
	}

	var doc ratingDoc
	err = r.col.FindOne(ctx, bson.M{"tenant_id": tenantOID, "landlord_id": landlordID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}

	rating := doc.toDomain()
	return &rating, nil
}

// ListByTenant returns the tenant's ratings ordered by created_at descending.
func (r *RatingRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tenantOID, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return []domain.Rating{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"tenant_id": tenantOID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer cur.Close(ctx)

	ratings := []domain.Rating{}
	for cur.Next(ctx) {
		var doc ratingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// EnsureIndexes creates the indexes for the ratings collection. The compound
// unique index is the source of truth for the one-rating-per-pair invariant;
// no in-process lock can substitute when multiple instances run.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenant_id", Value: 1},
				{Key: "landlord_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
