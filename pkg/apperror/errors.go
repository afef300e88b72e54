package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountSuspended() *AppError {
	return New("AUTH_004", "Account is suspended", http.StatusForbidden)
}

func ErrUnauthenticated() *AppError {
	return New("AUTH_005", "Authentication required", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_006", "Not allowed for this account", http.StatusForbidden)
}

// ---- Wallet Ledger (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New("WAL_001", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidPaymentMethod() *AppError {
	return New("WAL_003", "Unsupported payment method", http.StatusBadRequest)
}

// ---- Messaging (MSG) ----

// ErrMessageBlocked is returned when the safety filter rejects content.
// The reason (inappropriate_content, contact_info_sharing, spam) is part
// of the message shown to the sender.
func ErrMessageBlocked(reason string) *AppError {
	return New("MSG_001", fmt.Sprintf("Message blocked: %s", reason), http.StatusUnprocessableEntity)
}

func ErrNotParticipant() *AppError {
	return New("MSG_002", "Not a participant of this conversation", http.StatusForbidden)
}

func ErrSelfConversation() *AppError {
	return New("MSG_003", "Cannot start a conversation with yourself", http.StatusBadRequest)
}

// ---- Reviews (REV) ----

func ErrReviewNotOwnUser() *AppError {
	return New("REV_001", "Reviews can only be submitted for your own account", http.StatusForbidden)
}

func ErrReviewWithoutStay() *AppError {
	return New("REV_002", "A completed booking for this listing is required before reviewing", http.StatusForbidden)
}

func ErrDuplicateReview() *AppError {
	return New("REV_003", "This listing has already been reviewed by the user", http.StatusConflict)
}

func ErrInvalidRating() *AppError {
	return New("REV_004", "Rating must be between 1 and 5", http.StatusBadRequest)
}

// ---- Bookings (BKG) ----

func ErrListingNotBookable() *AppError {
	return New("BKG_001", "Listing is not accepting bookings", http.StatusConflict)
}

func ErrInvalidDates() *AppError {
	return New("BKG_002", "Check-out must be after check-in", http.StatusBadRequest)
}

func ErrBookingNotCancellable() *AppError {
	return New("BKG_003", "Booking can no longer be cancelled", http.StatusConflict)
}

func ErrBookingNotActionable() *AppError {
	return New("BKG_004", "Booking is already in a final state", http.StatusConflict)
}

func ErrOwnListing() *AppError {
	return New("BKG_005", "Hosts cannot book their own listing", http.StatusBadRequest)
}

// ---- Shared ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
