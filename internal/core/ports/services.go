package ports

import (
	"context"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, role domain.UserRole) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// SafetyFilter classifies message content before it is recorded.
// It runs synchronously; unsafe content blocks persistence entirely.
type SafetyFilter interface {
	Check(content string) domain.SafetyResult
}

// Event is the payload broadcast to in-process subscribers on mutation.
type Event struct {
	Name      string
	UserID    uuid.UUID
	EntityID  uuid.UUID
	Timestamp time.Time
}

// EventPublisher broadcasts events to currently subscribed observers.
// Delivery is fire-and-forget: no replay for subscribers absent at
// emission time.
type EventPublisher interface {
	Publish(event Event)
}

// --- Service Ports (Business Logic) ---

// WalletService owns the append-only ledger and derived balance per user.
type WalletService interface {
	// GetBalance returns the current balance, 0 for uninitialized wallets.
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	// GetTransactions returns the full ledger, newest first.
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]domain.WalletTransaction, error)
	AddFunds(ctx context.Context, userID uuid.UUID, amount int64, methodRef string) (*domain.WalletTransaction, error)
	ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.WalletTransaction, error)
	RefundToWallet(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*domain.WalletTransaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount int64) (*domain.WalletTransaction, error)
}

// PaymentRequest holds validated input for payment processing.
type PaymentRequest struct {
	UserID      uuid.UUID
	Amount      int64
	Method      domain.PaymentMethod
	Description string
	BookingID   *uuid.UUID
}

// MessagingService owns conversations, messages and unread accounting.
type MessagingService interface {
	// StartConversation returns the existing conversation for the exact
	// participant pair + listing reference, creating one if absent.
	StartConversation(ctx context.Context, userID, hostID uuid.UUID, listingID *uuid.UUID) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*domain.Message, error)
	MarkAsRead(ctx context.Context, conversationID, userID uuid.UUID) error
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]domain.Message, error)
}

// ReviewService gates and records one review per (user, listing) pair.
type ReviewService interface {
	AddReview(ctx context.Context, req ReviewRequest) (*domain.Review, error)
	ListReviews(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error)
	AverageRating(ctx context.Context, listingID uuid.UUID) (float64, error)
}

// ReviewRequest holds validated input for review creation. CallerID is the
// authenticated account submitting the request; uuid.Nil means unauthenticated.
type ReviewRequest struct {
	CallerID  uuid.UUID
	UserID    uuid.UUID
	ListingID uuid.UUID
	Rating    int
	Comment   string
}

// NotificationService owns the per-user append-only notification log.
type NotificationService interface {
	Notify(ctx context.Context, req NotifyRequest) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// NotifyRequest holds input for notification creation.
type NotifyRequest struct {
	UserID   uuid.UUID
	Type     domain.NotificationType
	Severity domain.NotificationSeverity
	Title    string
	Body     string
	EntityID *uuid.UUID
}

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	// Login returns the signed token, its expiry and the authenticated user.
	Login(ctx context.Context, email, password string) (string, time.Time, *domain.User, error)
}

// RegisterRequest holds input for account registration.
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        domain.UserRole
}

// BookingService defines booking lifecycle and draft business logic.
type BookingService interface {
	Create(ctx context.Context, req BookingRequest) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID, callerID uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, callerID uuid.UUID) (*domain.Booking, error)
	ListForGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Booking, error)
	SaveDraft(ctx context.Context, draft *domain.BookingDraft) error
	GetDraft(ctx context.Context, userID, listingID uuid.UUID) (*domain.BookingDraft, error)
	DeleteDraft(ctx context.Context, userID, listingID uuid.UUID) error
}

// BookingRequest holds validated input for booking creation.
type BookingRequest struct {
	GuestID   uuid.UUID
	ListingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Method    domain.PaymentMethod
}

// ListingService defines listing creation and lookup business logic.
type ListingService interface {
	Create(ctx context.Context, req CreateListingRequest) (*domain.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error)
}

// CreateListingRequest holds validated input for listing creation.
type CreateListingRequest struct {
	HostID       uuid.UUID
	Title        string
	Description  string
	Location     string
	NightlyPrice int64
	Publish      bool
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	HostStats(ctx context.Context, hostID uuid.UUID) (*HostStats, error)
}

// HostStats holds aggregated statistics for the host dashboard.
type HostStats struct {
	TotalBookings int64
	Completed     int64
	Cancelled     int64
	Earnings      int64 // Sum of completed booking totals
	AverageRating float64
}

// AuditService records audited actions, best-effort.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
