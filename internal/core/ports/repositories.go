package ports

import (
	"context"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking of the balance row.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error
}

// WalletTransactionRepository defines persistence for the append-only ledger.
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error
	// ListByUser returns all ledger entries for a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletTransaction, error)
	// SumSignedByUser returns the signed sum of all ledger entries for a user.
	SumSignedByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ConversationRepository defines persistence for conversations.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// FindByParticipants returns the conversation for the exact participant
	// pair and listing reference, or nil when none exists.
	FindByParticipants(ctx context.Context, userID, hostID uuid.UUID, listingID *uuid.UUID) (*domain.Conversation, error)
	// ListByParticipant returns conversations containing userID,
	// most-recently-updated first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	UpdateLastMessage(ctx context.Context, tx pgx.Tx, id uuid.UUID, preview string, at time.Time) error
}

// MessageRepository defines persistence for messages.
type MessageRepository interface {
	Create(ctx context.Context, tx pgx.Tx, msg *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
	// MarkRead flips read on all messages in the conversation not authored
	// by userID.
	MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error
	// CountUnread counts unread messages in the conversation not authored
	// by userID.
	CountUnread(ctx context.Context, conversationID, userID uuid.UUID) (int, error)
}

// NotificationRepository defines persistence for the per-user notification log.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// ReviewRepository defines persistence for listing reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error)
	// AverageByListing returns the arithmetic mean of ratings, 0 when none.
	AverageByListing(ctx context.Context, listingID uuid.UUID) (float64, error)
}

// BookingRepository defines persistence for bookings.
type BookingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Booking, error)
	// HasCompleted reports whether userID has a completed booking for the listing.
	HasCompleted(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, at time.Time) error
}

// ListingRepository defines persistence for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DraftStore keeps resumable booking drafts with TTL-based expiry.
type DraftStore interface {
	Save(ctx context.Context, draft *domain.BookingDraft, ttl time.Duration) error
	// Get returns nil when no draft exists or it has expired.
	Get(ctx context.Context, userID, listingID uuid.UUID) (*domain.BookingDraft, error)
	Delete(ctx context.Context, userID, listingID uuid.UUID) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
