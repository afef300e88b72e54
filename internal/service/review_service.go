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

// ReviewServiceImpl implements ports.ReviewService.
type ReviewServiceImpl struct {
	reviewRepo  ports.ReviewRepository
	bookingRepo ports.BookingRepository
	userRepo    ports.UserRepository
	log         zerolog.Logger
}

// NewReviewService creates a new ReviewServiceImpl.
func NewReviewService(
	reviewRepo ports.ReviewRepository,
	bookingRepo ports.BookingRepository,
	userRepo ports.UserRepository,
	log zerolog.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// AddReview gates review creation. Checks run in order: authenticated
// caller, caller owns the review, completed booking for the listing
// (administrators bypass), no prior review for this (user, listing) pair.
func (s *ReviewServiceImpl) AddReview(ctx context.Context, req ports.ReviewRequest) (*domain.Review, error) {
	if req.CallerID == uuid.Nil {
		return nil, apperror.ErrUnauthenticated()
	}
	if req.UserID != req.CallerID {
		return nil, apperror.ErrReviewNotOwnUser()
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.ErrInvalidRating()
	}

	caller, err := s.userRepo.GetByID(ctx, req.CallerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get caller: %w", err))
	}
	if caller == nil {
		return nil, apperror.ErrUnauthenticated()
	}

	if !caller.IsAdmin() {
		completed, err := s.bookingRepo.HasCompleted(ctx, req.UserID, req.ListingID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("check completed booking: %w", err))
		}
		if !completed {
			return nil, apperror.ErrReviewWithoutStay()
		}
	}

	exists, err := s.reviewRepo.ExistsByUserAndListing(ctx, req.UserID, req.ListingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing review: %w", err))
	}
	if exists {
		return nil, apperror.ErrDuplicateReview()
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ListingID: req.ListingID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create review: %w", err))
	}

	s.log.Info().
		Str("review_id", review.ID.String()).
		Str("listing_id", req.ListingID.String()).
		Int("rating", req.Rating).
		Msg("review added")

	return review, nil
}

// ListReviews returns all reviews for a listing.
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list reviews: %w", err))
	}
	return reviews, nil
}

// AverageRating returns the arithmetic mean of recorded ratings, or 0 when
// the listing has none.
func (s *ReviewServiceImpl) AverageRating(ctx context.Context, listingID uuid.UUID) (float64, error) {
	avg, err := s.reviewRepo.AverageByListing(ctx, listingID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("average rating: %w", err))
	}
	return avg, nil
}
