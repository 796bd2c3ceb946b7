package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentguard/rentguard-api/internal/api/metrics"
	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// ListingService implements the listing catalog. Mutations resolve the
// listing first, so a missing listing is NotFound and an ownership mismatch
// on an existing one is Forbidden, in that order.
type ListingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewListingService(listings ports.ListingRepository, users ports.UserRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, users: users, logger: logger}
}

func (s *ListingService) ListListings(ctx context.Context, filter ports.ListingFilter) ([]ports.ListingView, error) {
	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing query failed")
		return nil, err
	}

	views := make([]ports.ListingView, 0, len(listings))
	owners := make(map[string]ports.LandlordInfo, len(listings))
	for i := range listings {
		owner, err := s.ownerInfo(ctx, listings[i].LandlordID, owners)
		if err != nil {
			return nil, err
		}
		views = append(views, listingView(&listings[i], owner))
	}
	return views, nil
}

func (s *ListingService) GetListing(ctx context.Context, id string) (*ports.ListingView, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.ownerInfo(ctx, listing.LandlordID, nil)
	if err != nil {
		return nil, err
	}
	view := listingView(listing, owner)
	return &view, nil
}

func (s *ListingService) CreateListing(ctx context.Context, input ports.CreateListingInput) (*ports.ListingView, error) {
	now := time.Now().UTC()
	pictures := input.Pictures
	if pictures == nil {
		pictures = []string{}
	}

	listing := &domain.Listing{
		Title:      input.Title,
		Rent:       input.Rent,
		Location:   input.Location,
		Pictures:   pictures,
		LandlordID: input.LandlordID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, err
	}

	metrics.ListingsCreatedTotal.Inc()
	s.logger.Info().Str("listing_id", created.ID).Str("landlord_id", created.LandlordID).Msg("listing created")

	owner, err := s.ownerInfo(ctx, created.LandlordID, nil)
	if err != nil {
		return nil, err
	}
	view := listingView(created, owner)
	return &view, nil
}

func (s *ListingService) UpdateListing(ctx context.Context, id, landlordID string, patch ports.ListingPatch) (*ports.ListingView, error) {
	if err := s.authorize(ctx, id, landlordID); err != nil {
		return nil, err
	}

	updated, err := s.listings.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("listing_id", id).Msg("failed to update listing")
		return nil, err
	}

	owner, err := s.ownerInfo(ctx, updated.LandlordID, nil)
	if err != nil {
		return nil, err
	}
	view := listingView(updated, owner)
	return &view, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id, landlordID string) error {
	if err := s.authorize(ctx, id, landlordID); err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("listing_id", id).Msg("failed to delete listing")
		return err
	}

	s.logger.Info().Str("listing_id", id).Msg("listing deleted")
	return nil
}

// authorize enforces the mutation precedence: existence first, then
// ownership.
func (s *ListingService) authorize(ctx context.Context, id, landlordID string) error {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.LandlordID != landlordID {
		return domain.ErrForbidden
	}
	return nil
}

// ownerInfo resolves the owner projection, memoizing within one call via the
// optional cache map. A vanished owner degrades to an id-only projection
// rather than failing the read.
func (s *ListingService) ownerInfo(ctx context.Context, landlordID string, cache map[string]ports.LandlordInfo) (ports.LandlordInfo, error) {
	if cache != nil {
		if info, ok := cache[landlordID]; ok {
			return info, nil
		}
	}

	info := ports.LandlordInfo{ID: landlordID}
	user, err := s.users.FindByID(ctx, landlordID)
	if err == nil {
		info.Email = user.Email
		info.Role = user.Role
	} else if err != domain.ErrUserNotFound {
		return info, err
	}

	if cache != nil {
		cache[landlordID] = info
	}
	return info, nil
}

func listingView(l *domain.Listing, owner ports.LandlordInfo) ports.ListingView {
	return ports.ListingView{
		ID:        l.ID,
		Title:     l.Title,
		Rent:      l.Rent,
		Location:  l.Location,
		Pictures:  l.Pictures,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Landlord:  owner,
	}
}
