package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSeverity grades a notification for display.
type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "INFO"
	NotificationSeverityWarning NotificationSeverity = "WARNING"
	NotificationSeverityError   NotificationSeverity = "ERROR"
)

// NotificationType categorizes what the notification is about.
type NotificationType string

const (
	NotificationTypeMessage NotificationType = "MESSAGE"
	NotificationTypeBooking NotificationType = "BOOKING"
	NotificationTypePayment NotificationType = "PAYMENT"
	NotificationTypeReview  NotificationType = "REVIEW"
	NotificationTypeSystem  NotificationType = "SYSTEM"
)

// Notification is a per-user, append-only record. Only the read flag is
// ever mutated after creation.
type Notification struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Type      NotificationType     `json:"type"`
	Severity  NotificationSeverity `json:"severity"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	EntityID  *uuid.UUID           `json:"entity_id,omitempty"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}
