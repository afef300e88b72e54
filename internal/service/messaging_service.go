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

// Length of the content preview carried by a new-message notification.
const messagePreviewLength = 50

// EventMessageSent is published after a message is persisted.
const EventMessageSent = "message.sent"

// MessagingServiceImpl implements ports.MessagingService.
type MessagingServiceImpl struct {
	convRepo      ports.ConversationRepository
	msgRepo       ports.MessageRepository
	filter        ports.SafetyFilter
	notifications ports.NotificationService
	transactor    ports.DBTransactor
	events        ports.EventPublisher
	log           zerolog.Logger
}

// NewMessagingService creates a new MessagingServiceImpl.
func NewMessagingService(
	convRepo ports.ConversationRepository,
	msgRepo ports.MessageRepository,
	filter ports.SafetyFilter,
	notifications ports.NotificationService,
	transactor ports.DBTransactor,
	events ports.EventPublisher,
	log zerolog.Logger,
) *MessagingServiceImpl {
	return &MessagingServiceImpl{
		convRepo:      convRepo,
		msgRepo:       msgRepo,
		filter:        filter,
		notifications: notifications,
		transactor:    transactor,
		events:        events,
		log:           log,
	}
}

// StartConversation returns the existing conversation for the exact
// participant pair + listing reference, creating one if none exists.
func (s *MessagingServiceImpl) StartConversation(ctx context.Context, userID, hostID uuid.UUID, listingID *uuid.UUID) (*domain.Conversation, error) {
	if userID == hostID {
		return nil, apperror.ErrSelfConversation()
	}

	existing, err := s.convRepo.FindByParticipants(ctx, userID, hostID, listingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find conversation: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		HostID:    hostID,
		ListingID: listingID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create conversation: %w", err))
	}

	s.log.Info().
		Str("conversation_id", conv.ID.String()).
		Str("user_id", userID.String()).
		Str("host_id", hostID.String()).
		Msg("conversation started")

	return conv, nil
}

// SendMessage runs the safety filter, persists the message together with the
// conversation's last-message pointer, then notifies the other participant.
// Unsafe content blocks persistence entirely.
func (s *MessagingServiceImpl) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get conversation: %w", err))
	}
	if conv == nil {
		return nil, apperror.ErrNotFound("conversation")
	}
	if !conv.HasParticipant(senderID) {
		return nil, apperror.ErrNotParticipant()
	}

	if result := s.filter.Check(content); !result.Safe {
		s.log.Warn().
			Str("conversation_id", conversationID.String()).
			Str("sender_id", senderID.String()).
			Str("reason", string(result.Reason)).
			Msg("message blocked by safety filter")
		return nil, apperror.ErrMessageBlocked(string(result.Reason))
	}

	now := time.Now().UTC()
	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Read:           false,
		CreatedAt:      now,
	}

	preview := truncate(content, messagePreviewLength)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.msgRepo.Create(ctx, dbTx, msg); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create message: %w", err))
	}
	if err := s.convRepo.UpdateLastMessage(ctx, dbTx, conversationID, preview, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update last message: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	recipient := conv.OtherParticipant(senderID)
	if _, err := s.notifications.Notify(ctx, ports.NotifyRequest{
		UserID:   recipient,
		Type:     domain.NotificationTypeMessage,
		Severity: domain.NotificationSeverityInfo,
		Title:    "New message",
		Body:     preview,
		EntityID: &conversationID,
	}); err != nil {
		// The message is already persisted; a lost notification is not a
		// reason to fail the send.
		s.log.Warn().Err(err).
			Str("conversation_id", conversationID.String()).
			Msg("failed to notify message recipient")
	}

	if s.events != nil {
		s.events.Publish(ports.Event{
			Name:      EventMessageSent,
			UserID:    recipient,
			EntityID:  msg.ID,
			Timestamp: now,
		})
	}

	return msg, nil
}

// MarkAsRead flips read on all messages in the conversation not authored by
// userID.
func (s *MessagingServiceImpl) MarkAsRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get conversation: %w", err))
	}
	if conv == nil {
		return apperror.ErrNotFound("conversation")
	}
	if !conv.HasParticipant(userID) {
		return apperror.ErrNotParticipant()
	}

	if err := s.msgRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return apperror.InternalError(fmt.Errorf("mark read: %w", err))
	}
	return nil
}

// ListConversations returns the caller's conversations annotated with a
// freshly computed unread count, most-recently-updated first. A failed
// unread count degrades to 0 rather than failing the listing.
func (s *MessagingServiceImpl) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error) {
	convs, err := s.convRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list conversations: %w", err))
	}

	summaries := make([]domain.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		unread, err := s.msgRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			s.log.Warn().Err(err).
				Str("conversation_id", conv.ID.String()).
				Msg("unread count failed, reporting 0")
			unread = 0
		}
		summaries = append(summaries, domain.ConversationSummary{
			Conversation: conv,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

// ListMessages returns all messages of a conversation the caller belongs to.
func (s *MessagingServiceImpl) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get conversation: %w", err))
	}
	if conv == nil {
		return nil, apperror.ErrNotFound("conversation")
	}
	if !conv.HasParticipant(userID) {
		return nil, apperror.ErrNotParticipant()
	}

	msgs, err := s.msgRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list messages: %w", err))
	}
	return msgs, nil
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
