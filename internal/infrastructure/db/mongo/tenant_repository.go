package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

const collectionTenants = "tenants"

type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{col: db.Collection(collectionTenants)}
}

type tenantDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	NationalIDHash string             `bson:"national_id_hash,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d tenantDoc) toDomain() domain.Tenant {
	return domain.Tenant{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		NationalIDHash: d.NationalIDHash,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// Create inserts a new tenant document. The sparse unique index on
// national_id_hash turns a duplicate hash into ErrTenantExists; hash-less
// tenants never collide because sparse indexes skip absent fields.
func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tenantDoc{
		Name:           t.Name,
		NationalIDHash: t.NationalIDHash,
		CreatedAt:      t.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTenantExists
		}
		return nil, fmt.Errorf("insert tenant: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTenantNotFound
	}

	var doc tenantDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}

	t := doc.toDomain()
	return &t, nil
}

// Search matches query as a case-insensitive substring of name or
// national_id_hash; an empty query matches everything. Results are ordered
// by created_at descending.
func (r *TenantRepository) Search(ctx context.Context, query string) ([]domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"national_id_hash": pattern},
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search tenants: %w", err)
	}
	defer cur.Close(ctx)

	tenants := []domain.Tenant{}
	for cur.Next(ctx) {
		var doc tenantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tenant: %w", err)
		}
		tenants = append(tenants, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("search tenants: %w", err)
	}
	return tenants, nil
}

// EnsureIndexes creates the indexes for the tenants collection. The sparse
// unique index on national_id_hash carries the Conflict invariant.
func (r *TenantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "national_id_hash", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
