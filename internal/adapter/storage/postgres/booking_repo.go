package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookingRepo implements ports.BookingRepository.
type BookingRepo struct {
	pool Pool
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(pool Pool) *BookingRepo {
	return &BookingRepo{pool: pool}
}

// Create inserts a booking within a database transaction.
func (r *BookingRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, listing_id, guest_id, host_id, check_in, check_out, total, method, status, created_at, completed_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.ListingID, b.GuestID, b.HostID,
		b.CheckIn, b.CheckOut, b.Total, b.Method, b.Status,
		b.CreatedAt, b.CompletedAt, b.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID fetches a booking by UUID.
func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT id, listing_id, guest_id, host_id, check_in, check_out, total, method, status, created_at, completed_at, cancelled_at
		FROM bookings WHERE id = $1`

	b := &domain.Booking{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ListingID, &b.GuestID, &b.HostID,
		&b.CheckIn, &b.CheckOut, &b.Total, &b.Method, &b.Status,
		&b.CreatedAt, &b.CompletedAt, &b.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return b, nil
}

// ListByGuest fetches a guest's bookings, newest first.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx, "guest_id", guestID)
}

// ListByHost fetches bookings against a host's listings, newest first.
func (r *BookingRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx, "host_id", hostID)
}

func (r *BookingRepo) list(ctx context.Context, column string, id uuid.UUID) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT id, listing_id, guest_id, host_id, check_in, check_out, total, method, status, created_at, completed_at, cancelled_at
		FROM bookings WHERE %s = $1 ORDER BY created_at DESC`, column)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b := domain.Booking{}
		err := rows.Scan(
			&b.ID, &b.ListingID, &b.GuestID, &b.HostID,
			&b.CheckIn, &b.CheckOut, &b.Total, &b.Method, &b.Status,
			&b.CreatedAt, &b.CompletedAt, &b.CancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

// HasCompleted checks whether the user has a completed booking for the listing.
func (r *BookingRepo) HasCompleted(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings
		WHERE guest_id = $1 AND listing_id = $2 AND status = 'COMPLETED')`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking: %w", err)
	}
	return exists, nil
}

// UpdateStatus transitions a booking, stamping the matching terminal timestamp.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, at time.Time) error {
	query := `UPDATE bookings SET status = $1,
		completed_at = CASE WHEN $1::text = 'COMPLETED' THEN $2 ELSE completed_at END,
		cancelled_at = CASE WHEN $1::text = 'CANCELLED' THEN $2 ELSE cancelled_at END
		WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking not found: %s", id)
	}
	return nil
}
