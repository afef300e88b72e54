package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a guest's stay at a listing. Total is held by the
// platform as ledger entries until the booking completes.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	ListingID   uuid.UUID     `json:"listing_id"`
	GuestID     uuid.UUID     `json:"guest_id"`
	HostID      uuid.UUID     `json:"host_id"`
	CheckIn     time.Time     `json:"check_in"`
	CheckOut    time.Time     `json:"check_out"`
	Total       int64         `json:"total"`
	Method      PaymentMethod `json:"method"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}

// IsTerminal returns true if the booking is in a final state.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsCancellable returns true if the booking can still be cancelled.
func (b *Booking) IsCancellable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// BookingDraft is a resumable in-progress booking session tied to one user
// and one listing. Drafts expire; they are never written to the database.
type BookingDraft struct {
	UserID    uuid.UUID  `json:"user_id"`
	ListingID uuid.UUID  `json:"listing_id"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	Guests    int        `json:"guests,omitempty"`
	Step      int        `json:"step"`
	SavedAt   time.Time  `json:"saved_at"`
}
