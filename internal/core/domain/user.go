package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of an account.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleHost  UserRole = "HOST"
	UserRoleAdmin UserRole = "ADMIN"
)

// UserStatus represents the state of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User represents a registered account (guest, host or administrator).
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose
	DisplayName  string     `json:"display_name"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	KYCVerified  bool       `json:"kyc_verified"` // Required before a host can publish listings
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsActive returns true if the account is active.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsAdmin returns true for administrator accounts.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
