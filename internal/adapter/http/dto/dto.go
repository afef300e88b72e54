package dto

import "time"

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Role        string `json:"role,omitempty" binding:"omitempty,oneof=USER HOST"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the response body for successful register/login.
type AuthResponse struct {
	Token       string `json:"token"`
	Expiry      int64  `json:"expiry"` // Unix timestamp
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// DepositRequest is the request body for wallet deposits.
type DepositRequest struct {
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	MethodRef string `json:"method_ref,omitempty" binding:"omitempty,max=100,safe_id"`
}

// PaymentRequest is the request body for direct wallet payments.
type PaymentRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Method      string `json:"method" binding:"required,oneof=WALLET CARD"`
	Description string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// RefundRequest is the request body for wallet refunds.
type RefundRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required,max=255"`
}

// WithdrawRequest is the request body for withdrawals.
type WithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// StartConversationRequest opens (or resumes) a conversation with a host.
type StartConversationRequest struct {
	HostID    string  `json:"host_id" binding:"required,uuid"`
	ListingID *string `json:"listing_id,omitempty" binding:"omitempty,uuid"`
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CreateReviewRequest is the request body for submitting a review.
type CreateReviewRequest struct {
	ListingID string `json:"listing_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// RatingResponse is the response for a listing's average rating.
type RatingResponse struct {
	ListingID     string  `json:"listing_id"`
	AverageRating float64 `json:"average_rating"`
}

// UnreadCountResponse is the response for unread counters.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// CreateBookingRequest is the request body for creating a booking.
type CreateBookingRequest struct {
	ListingID string    `json:"listing_id" binding:"required,uuid"`
	CheckIn   time.Time `json:"check_in" binding:"required"`
	CheckOut  time.Time `json:"check_out" binding:"required"`
	Method    string    `json:"method" binding:"required,oneof=WALLET CARD"`
}

// SaveDraftRequest is the request body for saving a booking draft.
type SaveDraftRequest struct {
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Guests   int        `json:"guests,omitempty" binding:"omitempty,gte=0,lte=50"`
	Step     int        `json:"step" binding:"gte=0,lte=10"`
}

// CreateListingRequest is the request body for creating a listing.
type CreateListingRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	Description  string `json:"description,omitempty" binding:"omitempty,max=5000"`
	Location     string `json:"location,omitempty" binding:"omitempty,max=255"`
	NightlyPrice int64  `json:"nightly_price" binding:"required,gt=0"`
	Publish      bool   `json:"publish,omitempty"`
}

// HostStatsResponse is the response for the host dashboard.
type HostStatsResponse struct {
	TotalBookings int64   `json:"total_bookings"`
	Completed     int64   `json:"completed"`
	Cancelled     int64   `json:"cancelled"`
	Earnings      int64   `json:"earnings"`
	AverageRating float64 `json:"average_rating"`
}
