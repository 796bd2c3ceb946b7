package ports

import (
	"context"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

// TenantRepository defines persistence operations for tenant identity records.
type TenantRepository interface {
	// Create inserts a new tenant. A duplicate national_id_hash violates the
	// store's unique index and is returned as domain.ErrTenantExists.
	Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	// Search returns tenants whose name or national_id_hash contains query
	// (case-insensitive), most-recently-created first. An empty query returns
	// all tenants.
	Search(ctx context.Context, query string) ([]domain.Tenant, error)
}
