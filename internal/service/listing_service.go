package service

import (
	"context"
	"fmt"
	"time"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ListingServiceImpl owns listing creation and lookup. Publishing requires
// a KYC-verified host account.
type ListingServiceImpl struct {
	listingRepo ports.ListingRepository
	userRepo    ports.UserRepository
	log         zerolog.Logger
}

// NewListingService creates a new ListingServiceImpl.
func NewListingService(listingRepo ports.ListingRepository, userRepo ports.UserRepository, log zerolog.Logger) *ListingServiceImpl {
	return &ListingServiceImpl{listingRepo: listingRepo, userRepo: userRepo, log: log}
}

// Create records a listing. Unverified hosts can only save drafts.
func (s *ListingServiceImpl) Create(ctx context.Context, req ports.CreateListingRequest) (*domain.Listing, error) {
	if req.NightlyPrice <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	host, err := s.userRepo.GetByID(ctx, req.HostID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get host: %w", err))
	}
	if host == nil {
		return nil, apperror.ErrUnauthenticated()
	}

	status := domain.ListingStatusDraft
	if req.Publish {
		if !host.KYCVerified && !host.IsAdmin() {
			return nil, apperror.ErrForbidden()
		}
		status = domain.ListingStatusPublished
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		ID:           uuid.New(),
		HostID:       req.HostID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		NightlyPrice: req.NightlyPrice,
		Currency:     defaultCurrency,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create listing: %w", err))
	}

	s.log.Info().
		Str("listing_id", listing.ID.String()).
		Str("host_id", req.HostID.String()).
		Str("status", string(status)).
		Msg("listing created")

	return listing, nil
}

// Get returns one listing by id.
func (s *ListingServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get listing: %w", err))
	}
	if listing == nil {
		return nil, apperror.ErrNotFound("listing")
	}
	return listing, nil
}

// ListByHost returns all listings owned by the host.
func (s *ListingServiceImpl) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error) {
	listings, err := s.listingRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list listings: %w", err))
	}
	return listings, nil
}
