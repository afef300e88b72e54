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

// EventNotificationCreated is published after every notification insert.
const EventNotificationCreated = "notification.created"

// NotificationServiceImpl implements ports.NotificationService. The log is
// append-only: after creation only the read flag ever changes, and bulk
// clear is the single deletion path.
type NotificationServiceImpl struct {
	repo   ports.NotificationRepository
	events ports.EventPublisher
	log    zerolog.Logger
}

// NewNotificationService creates a new NotificationServiceImpl.
func NewNotificationService(repo ports.NotificationRepository, events ports.EventPublisher, log zerolog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo, events: events, log: log}
}

// Notify appends a notification and broadcasts it to current subscribers.
func (s *NotificationServiceImpl) Notify(ctx context.Context, req ports.NotifyRequest) (*domain.Notification, error) {
	severity := req.Severity
	if severity == "" {
		severity = domain.NotificationSeverityInfo
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Type:      req.Type,
		Severity:  severity,
		Title:     req.Title,
		Body:      req.Body,
		EntityID:  req.EntityID,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create notification: %w", err))
	}

	if s.events != nil {
		s.events.Publish(ports.Event{
			Name:      EventNotificationCreated,
			UserID:    n.UserID,
			EntityID:  n.ID,
			Timestamp: n.CreatedAt,
		})
	}

	return n, nil
}

// List returns all notifications for a user, newest first.
func (s *NotificationServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list notifications: %w", err))
	}
	return items, nil
}

// UnreadCount computes the unread count at call time; it is never stored.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("count unread: %w", err))
	}
	return count, nil
}

// MarkRead flips the read flag on one notification owned by userID.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return apperror.InternalError(fmt.Errorf("mark read: %w", err))
	}
	return nil
}

// MarkAllRead flips the read flag on every notification owned by userID.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return apperror.InternalError(fmt.Errorf("mark all read: %w", err))
	}
	return nil
}

// Clear deletes every notification owned by userID.
func (s *NotificationServiceImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return apperror.InternalError(fmt.Errorf("clear notifications: %w", err))
	}
	s.log.Info().Str("user_id", userID.String()).Msg("notifications cleared")
	return nil
}
