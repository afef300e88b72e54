package service

import (
	"context"
	"fmt"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/pkg/apperror"

	"github.com/google/uuid"
)

// ReportingServiceImpl implements ports.ReportingService.
type ReportingServiceImpl struct {
	bookingRepo ports.BookingRepository
	listingRepo ports.ListingRepository
	reviewRepo  ports.ReviewRepository
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(
	bookingRepo ports.BookingRepository,
	listingRepo ports.ListingRepository,
	reviewRepo ports.ReviewRepository,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
	}
}

// HostStats aggregates the host's bookings and review ratings for the
// dashboard. Earnings count completed bookings only.
func (s *ReportingServiceImpl) HostStats(ctx context.Context, hostID uuid.UUID) (*ports.HostStats, error) {
	bookings, err := s.bookingRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list host bookings: %w", err))
	}

	stats := &ports.HostStats{}
	for _, b := range bookings {
		stats.TotalBookings++
		switch b.Status {
		case domain.BookingStatusCompleted:
			stats.Completed++
			stats.Earnings += b.Total
		case domain.BookingStatusCancelled:
			stats.Cancelled++
		}
	}

	listings, err := s.listingRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list host listings: %w", err))
	}

	var ratingSum float64
	var rated int
	for _, l := range listings {
		avg, err := s.reviewRepo.AverageByListing(ctx, l.ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("average rating: %w", err))
		}
		if avg > 0 {
			ratingSum += avg
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}

	return stats, nil
}
