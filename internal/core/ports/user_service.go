package ports

import (
	"context"

	"github.com/rentguard/rentguard-api/internal/core/domain"
)

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile changes the user's email when a non-empty value is given.
	UpdateProfile(ctx context.Context, id, email string) (*domain.User, error)
}
