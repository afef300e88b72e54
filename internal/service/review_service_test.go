package service

import (
	"context"
	"testing"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reviewTestDeps struct {
	svc         *ReviewServiceImpl
	reviewRepo  *mocks.MockReviewRepository
	bookingRepo *mocks.MockBookingRepository
	userRepo    *mocks.MockUserRepository
	ctrl        *gomock.Controller
}

func setupReviewService(t *testing.T) *reviewTestDeps {
	ctrl := gomock.NewController(t)
	d := &reviewTestDeps{
		reviewRepo:  mocks.NewMockReviewRepository(ctrl),
		bookingRepo: mocks.NewMockBookingRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewReviewService(d.reviewRepo, d.bookingRepo, d.userRepo, zerolog.Nop())
	return d
}

func activeUser(id uuid.UUID, role domain.UserRole) *domain.User {
	return &domain.User{
		ID:     id,
		Email:  "guest@example.com",
		Role:   role,
		Status: domain.UserStatusActive,
	}
}

func TestReviewService_AddReview_Success(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, listingID := uuid.New(), uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(activeUser(userID, domain.UserRoleUser), nil)
	d.bookingRepo.EXPECT().HasCompleted(ctx, userID, listingID).Return(true, nil)
	d.reviewRepo.EXPECT().ExistsByUserAndListing(ctx, userID, listingID).Return(false, nil)
	d.reviewRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	review, err := d.svc.AddReview(ctx, ports.ReviewRequest{
		CallerID:  userID,
		UserID:    userID,
		ListingID: listingID,
		Rating:    5,
		Comment:   "Wonderful stay",
	})
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, listingID, review.ListingID)
}

func TestReviewService_AddReview_Unauthenticated(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	review, err := d.svc.AddReview(context.Background(), ports.ReviewRequest{
		CallerID:  uuid.Nil,
		UserID:    uuid.New(),
		ListingID: uuid.New(),
		Rating:    4,
	})
	assert.Nil(t, review)
	assertAppError(t, err, "AUTH_005")
}

func TestReviewService_AddReview_ForAnotherUser(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	review, err := d.svc.AddReview(context.Background(), ports.ReviewRequest{
		CallerID:  uuid.New(),
		UserID:    uuid.New(),
		ListingID: uuid.New(),
		Rating:    4,
	})
	assert.Nil(t, review)
	assertAppError(t, err, "REV_001")
}

func TestReviewService_AddReview_InvalidRating(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	userID := uuid.New()
	for _, rating := range []int{0, 6, -1} {
		review, err := d.svc.AddReview(context.Background(), ports.ReviewRequest{
			CallerID:  userID,
			UserID:    userID,
			ListingID: uuid.New(),
			Rating:    rating,
		})
		assert.Nil(t, review)
		assertAppError(t, err, "REV_004")
	}
}

func TestReviewService_AddReview_WithoutCompletedStay(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, listingID := uuid.New(), uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(activeUser(userID, domain.UserRoleUser), nil)
	d.bookingRepo.EXPECT().HasCompleted(ctx, userID, listingID).Return(false, nil)

	review, err := d.svc.AddReview(ctx, ports.ReviewRequest{
		CallerID:  userID,
		UserID:    userID,
		ListingID: listingID,
		Rating:    4,
	})
	assert.Nil(t, review)
	assertAppError(t, err, "REV_002")
}

func TestReviewService_AddReview_AdminBypassesStayCheck(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	adminID, listingID := uuid.New(), uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, adminID).Return(activeUser(adminID, domain.UserRoleAdmin), nil)
	// No HasCompleted call for administrators.
	d.reviewRepo.EXPECT().ExistsByUserAndListing(ctx, adminID, listingID).Return(false, nil)
	d.reviewRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	review, err := d.svc.AddReview(ctx, ports.ReviewRequest{
		CallerID:  adminID,
		UserID:    adminID,
		ListingID: listingID,
		Rating:    3,
	})
	require.NoError(t, err)
	assert.NotNil(t, review)
}

func TestReviewService_AddReview_Duplicate(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, listingID := uuid.New(), uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(activeUser(userID, domain.UserRoleUser), nil)
	d.bookingRepo.EXPECT().HasCompleted(ctx, userID, listingID).Return(true, nil)
	d.reviewRepo.EXPECT().ExistsByUserAndListing(ctx, userID, listingID).Return(true, nil)

	review, err := d.svc.AddReview(ctx, ports.ReviewRequest{
		CallerID:  userID,
		UserID:    userID,
		ListingID: listingID,
		Rating:    4,
	})
	assert.Nil(t, review)
	assertAppError(t, err, "REV_003")
}

func TestReviewService_AverageRating(t *testing.T) {
	d := setupReviewService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	listingID := uuid.New()

	d.reviewRepo.EXPECT().AverageByListing(ctx, listingID).Return(4.25, nil)

	avg, err := d.svc.AverageRating(ctx, listingID)
	require.NoError(t, err)
	assert.Equal(t, 4.25, avg)
}
