package service

import (
	"context"
	"testing"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupReportingService(t *testing.T) (*ReportingServiceImpl, *mocks.MockBookingRepository, *mocks.MockListingRepository, *mocks.MockReviewRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	bookingRepo := mocks.NewMockBookingRepository(ctrl)
	listingRepo := mocks.NewMockListingRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	svc := NewReportingService(bookingRepo, listingRepo, reviewRepo)
	return svc, bookingRepo, listingRepo, reviewRepo, ctrl
}

func TestReportingService_HostStats(t *testing.T) {
	svc, bookingRepo, listingRepo, reviewRepo, ctrl := setupReportingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	hostID := uuid.New()
	l1, l2, l3 := uuid.New(), uuid.New(), uuid.New()

	bookingRepo.EXPECT().ListByHost(ctx, hostID).Return([]domain.Booking{
		{Status: domain.BookingStatusCompleted, Total: 30000},
		{Status: domain.BookingStatusCompleted, Total: 20000},
		{Status: domain.BookingStatusCancelled, Total: 15000},
		{Status: domain.BookingStatusConfirmed, Total: 10000},
	}, nil)
	listingRepo.EXPECT().ListByHost(ctx, hostID).Return([]domain.Listing{
		{ID: l1}, {ID: l2}, {ID: l3},
	}, nil)
	reviewRepo.EXPECT().AverageByListing(ctx, l1).Return(4.0, nil)
	reviewRepo.EXPECT().AverageByListing(ctx, l2).Return(5.0, nil)
	// Unreviewed listings do not drag the average down.
	reviewRepo.EXPECT().AverageByListing(ctx, l3).Return(0.0, nil)

	stats, err := svc.HostStats(ctx, hostID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(50000), stats.Earnings)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
}

func TestReportingService_HostStats_NoActivity(t *testing.T) {
	svc, bookingRepo, listingRepo, _, ctrl := setupReportingService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	hostID := uuid.New()

	bookingRepo.EXPECT().ListByHost(ctx, hostID).Return(nil, nil)
	listingRepo.EXPECT().ListByHost(ctx, hostID).Return(nil, nil)

	stats, err := svc.HostStats(ctx, hostID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalBookings)
	assert.Zero(t, stats.Earnings)
	assert.Zero(t, stats.AverageRating)
}
