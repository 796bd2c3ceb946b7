package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// UserService exposes profile reads and updates for the authenticated user.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.UpdateEmail(ctx, id, email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("profile update failed")
		return nil, err
	}
	return updated, nil
}
