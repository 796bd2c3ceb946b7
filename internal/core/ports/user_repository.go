package ports

import (
	"context"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// Create inserts a new user. A duplicate email is returned as
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)
}
