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

// BookingServiceImpl implements ports.BookingService. Booking money moves
// through the wallet ledger: payment on creation, refund on cancellation of
// wallet-paid bookings.
type BookingServiceImpl struct {
	bookingRepo   ports.BookingRepository
	listingRepo   ports.ListingRepository
	userRepo      ports.UserRepository
	walletSvc     ports.WalletService
	notifications ports.NotificationService
	drafts        ports.DraftStore
	transactor    ports.DBTransactor
	draftTTL      time.Duration
	log           zerolog.Logger
}

// NewBookingService creates a new BookingServiceImpl.
func NewBookingService(
	bookingRepo ports.BookingRepository,
	listingRepo ports.ListingRepository,
	userRepo ports.UserRepository,
	walletSvc ports.WalletService,
	notifications ports.NotificationService,
	drafts ports.DraftStore,
	transactor ports.DBTransactor,
	draftTTL time.Duration,
	log zerolog.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		bookingRepo:   bookingRepo,
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		walletSvc:     walletSvc,
		notifications: notifications,
		drafts:        drafts,
		transactor:    transactor,
		draftTTL:      draftTTL,
		log:           log,
	}
}

// Create books a listing and collects payment. The booking is created
// PENDING, confirmed once the payment is in the ledger, and cancelled if
// payment fails.
func (s *BookingServiceImpl) Create(ctx context.Context, req ports.BookingRequest) (*domain.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, apperror.ErrInvalidDates()
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get listing: %w", err))
	}
	if listing == nil {
		return nil, apperror.ErrNotFound("listing")
	}
	if !listing.IsBookable() {
		return nil, apperror.ErrListingNotBookable()
	}
	if listing.HostID == req.GuestID {
		return nil, apperror.ErrOwnListing()
	}

	nights := int64(req.CheckOut.Sub(req.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	total := nights * listing.NightlyPrice

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:        uuid.New(),
		ListingID: req.ListingID,
		GuestID:   req.GuestID,
		HostID:    listing.HostID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Total:     total,
		Method:    req.Method,
		Status:    domain.BookingStatusPending,
		CreatedAt: now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck
	if err := s.bookingRepo.Create(ctx, dbTx, booking); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create booking: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if _, err := s.walletSvc.ProcessPayment(ctx, ports.PaymentRequest{
		UserID:      req.GuestID,
		Amount:      total,
		Method:      req.Method,
		Description: fmt.Sprintf("Booking payment: %s", listing.Title),
		BookingID:   &booking.ID,
	}); err != nil {
		// Payment failed: void the pending booking before surfacing the error.
		if cancelErr := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusCancelled, time.Now().UTC()); cancelErr != nil {
			s.log.Error().Err(cancelErr).
				Str("booking_id", booking.ID.String()).
				Msg("failed to void unpaid booking")
		}
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusConfirmed, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("confirm booking: %w", err))
	}
	booking.Status = domain.BookingStatusConfirmed

	// A successful booking supersedes any saved draft for this listing.
	if err := s.drafts.Delete(ctx, req.GuestID, req.ListingID); err != nil {
		s.log.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to discard booking draft")
	}

	s.notifyQuietly(ctx, ports.NotifyRequest{
		UserID:   listing.HostID,
		Type:     domain.NotificationTypeBooking,
		Severity: domain.NotificationSeverityInfo,
		Title:    "New booking",
		Body:     fmt.Sprintf("%s was booked for %d night(s)", listing.Title, nights),
		EntityID: &booking.ID,
	})

	s.log.Info().
		Str("booking_id", booking.ID.String()).
		Str("listing_id", listing.ID.String()).
		Int64("total", total).
		Msg("booking created")

	return booking, nil
}

// Complete marks a confirmed booking as completed. Only the host of the
// booking or an administrator may complete it.
func (s *BookingServiceImpl) Complete(ctx context.Context, bookingID, callerID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, callerID, booking.HostID); err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, apperror.ErrBookingNotActionable()
	}

	now := time.Now().UTC()
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCompleted, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("complete booking: %w", err))
	}
	booking.Status = domain.BookingStatusCompleted
	booking.CompletedAt = &now

	s.notifyQuietly(ctx, ports.NotifyRequest{
		UserID:   booking.GuestID,
		Type:     domain.NotificationTypeBooking,
		Severity: domain.NotificationSeverityInfo,
		Title:    "Stay completed",
		Body:     "Your stay is complete. You can now leave a review.",
		EntityID: &booking.ID,
	})

	return booking, nil
}

// Cancel cancels a pending or confirmed booking. Either participant may
// cancel; wallet-paid bookings are refunded to the guest's wallet.
func (s *BookingServiceImpl) Cancel(ctx context.Context, bookingID, callerID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.GuestID && callerID != booking.HostID {
		if err := s.authorize(ctx, callerID, booking.HostID); err != nil {
			return nil, err
		}
	}
	if !booking.IsCancellable() {
		return nil, apperror.ErrBookingNotCancellable()
	}

	now := time.Now().UTC()
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("cancel booking: %w", err))
	}
	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = &now

	if booking.Method == domain.PaymentMethodWallet {
		if _, err := s.walletSvc.RefundToWallet(ctx, booking.GuestID, booking.Total, "Booking cancelled"); err != nil {
			// The cancellation stands; the refund failure is surfaced to ops.
			s.log.Error().Err(err).
				Str("booking_id", booking.ID.String()).
				Int64("amount", booking.Total).
				Msg("refund after cancellation failed")
		}
	}

	other := booking.HostID
	if callerID == booking.HostID {
		other = booking.GuestID
	}
	s.notifyQuietly(ctx, ports.NotifyRequest{
		UserID:   other,
		Type:     domain.NotificationTypeBooking,
		Severity: domain.NotificationSeverityWarning,
		Title:    "Booking cancelled",
		Body:     "A booking you are part of was cancelled.",
		EntityID: &booking.ID,
	})

	return booking, nil
}

// ListForGuest returns the guest's bookings.
func (s *BookingServiceImpl) ListForGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list bookings: %w", err))
	}
	return bookings, nil
}

// SaveDraft stores a resumable booking draft with the configured TTL.
func (s *BookingServiceImpl) SaveDraft(ctx context.Context, draft *domain.BookingDraft) error {
	draft.SavedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return apperror.InternalError(fmt.Errorf("save draft: %w", err))
	}
	return nil
}

// GetDraft returns the saved draft, or nil when absent or expired.
func (s *BookingServiceImpl) GetDraft(ctx context.Context, userID, listingID uuid.UUID) (*domain.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, userID, listingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get draft: %w", err))
	}
	return draft, nil
}

// DeleteDraft discards the saved draft.
func (s *BookingServiceImpl) DeleteDraft(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := s.drafts.Delete(ctx, userID, listingID); err != nil {
		return apperror.InternalError(fmt.Errorf("delete draft: %w", err))
	}
	return nil
}

func (s *BookingServiceImpl) getBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get booking: %w", err))
	}
	if booking == nil {
		return nil, apperror.ErrNotFound("booking")
	}
	return booking, nil
}

// authorize allows ownerID and administrators.
func (s *BookingServiceImpl) authorize(ctx context.Context, callerID, ownerID uuid.UUID) error {
	if callerID == ownerID {
		return nil
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get caller: %w", err))
	}
	if caller == nil || !caller.IsAdmin() {
		return apperror.ErrForbidden()
	}
	return nil
}

func (s *BookingServiceImpl) notifyQuietly(ctx context.Context, req ports.NotifyRequest) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Notify(ctx, req); err != nil {
		s.log.Warn().Err(err).Str("user_id", req.UserID.String()).Msg("failed to send notification")
	}
}
