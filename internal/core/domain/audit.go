package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionRegister      AuditAction = "REGISTER"
	AuditActionLogin         AuditAction = "LOGIN"
	AuditActionDeposit       AuditAction = "DEPOSIT"
	AuditActionPayment       AuditAction = "PAYMENT"
	AuditActionRefund        AuditAction = "REFUND"
	AuditActionWithdraw      AuditAction = "WITHDRAW"
	AuditActionSendMessage   AuditAction = "SEND_MESSAGE"
	AuditActionCreateReview  AuditAction = "CREATE_REVIEW"
	AuditActionCreateBooking AuditAction = "CREATE_BOOKING"
	AuditActionCancelBooking AuditAction = "CANCEL_BOOKING"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	UserID       *uuid.UUID  `json:"user_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
