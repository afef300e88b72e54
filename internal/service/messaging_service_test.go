package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type messagingTestDeps struct {
	svc           *MessagingServiceImpl
	convRepo      *mocks.MockConversationRepository
	msgRepo       *mocks.MockMessageRepository
	notifications *mocks.MockNotificationService
	transactor    *mocks.MockDBTransactor
	events        *mocks.MockEventPublisher
	ctrl          *gomock.Controller
}

func setupMessagingService(t *testing.T) *messagingTestDeps {
	ctrl := gomock.NewController(t)
	d := &messagingTestDeps{
		convRepo:      mocks.NewMockConversationRepository(ctrl),
		msgRepo:       mocks.NewMockMessageRepository(ctrl),
		notifications: mocks.NewMockNotificationService(ctrl),
		transactor:    mocks.NewMockDBTransactor(ctrl),
		events:        mocks.NewMockEventPublisher(ctrl),
		ctrl:          ctrl,
	}
	d.svc = NewMessagingService(
		d.convRepo, d.msgRepo, NewSafetyFilter(),
		d.notifications, d.transactor, d.events, zerolog.Nop(),
	)
	return d
}

func testConversation(userID, hostID uuid.UUID) *domain.Conversation {
	now := time.Now().UTC()
	return &domain.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		HostID:    hostID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ==================== StartConversation Tests ====================

func TestMessagingService_StartConversation_ReturnsExisting(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	existing := testConversation(userID, hostID)

	d.convRepo.EXPECT().FindByParticipants(ctx, userID, hostID, (*uuid.UUID)(nil)).Return(existing, nil)

	conv, err := d.svc.StartConversation(ctx, userID, hostID, nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, conv.ID)
}

func TestMessagingService_StartConversation_CreatesWhenAbsent(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	listingID := uuid.New()

	d.convRepo.EXPECT().FindByParticipants(ctx, userID, hostID, &listingID).Return(nil, nil)
	d.convRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	conv, err := d.svc.StartConversation(ctx, userID, hostID, &listingID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, userID, conv.UserID)
	assert.Equal(t, hostID, conv.HostID)
	assert.Equal(t, &listingID, conv.ListingID)
}

func TestMessagingService_StartConversation_WithSelf(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	userID := uuid.New()

	conv, err := d.svc.StartConversation(context.Background(), userID, userID, nil)
	assert.Nil(t, conv)
	assertAppError(t, err, "MSG_003")
}

// ==================== SendMessage Tests ====================

func TestMessagingService_SendMessage_Success(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	conv := testConversation(userID, hostID)
	tx := &mockTx{}

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.msgRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.convRepo.EXPECT().UpdateLastMessage(ctx, tx, conv.ID, "Is the apartment still available?", gomock.Any()).Return(nil)
	d.notifications.EXPECT().Notify(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.NotifyRequest) (*domain.Notification, error) {
			assert.Equal(t, hostID, req.UserID)
			assert.Equal(t, domain.NotificationTypeMessage, req.Type)
			return &domain.Notification{}, nil
		})
	d.events.EXPECT().Publish(gomock.Any())

	msg, err := d.svc.SendMessage(ctx, conv.ID, userID, "Is the apartment still available?")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, userID, msg.SenderID)
	assert.False(t, msg.Read)
}

func TestMessagingService_SendMessage_BlockedByFilter(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	conv := testConversation(userID, hostID)

	// The filter rejects before any persistence: no Begin, no Create.
	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)

	msg, err := d.svc.SendMessage(ctx, conv.ID, userID, "Email me at host@example.com")
	assert.Nil(t, msg)
	assertAppError(t, err, "MSG_001")
	assert.Contains(t, err.Error(), "contact_info_sharing")
}

func TestMessagingService_SendMessage_NotParticipant(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	conv := testConversation(uuid.New(), uuid.New())
	stranger := uuid.New()

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)

	msg, err := d.svc.SendMessage(ctx, conv.ID, stranger, "hello")
	assert.Nil(t, msg)
	assertAppError(t, err, "MSG_002")
}

func TestMessagingService_SendMessage_ConversationNotFound(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	convID := uuid.New()

	d.convRepo.EXPECT().GetByID(ctx, convID).Return(nil, nil)

	msg, err := d.svc.SendMessage(ctx, convID, uuid.New(), "hello")
	assert.Nil(t, msg)
	assertAppError(t, err, "RES_001")
}

func TestMessagingService_SendMessage_NotificationFailureDoesNotFailSend(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	conv := testConversation(userID, hostID)
	tx := &mockTx{}

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.msgRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.convRepo.EXPECT().UpdateLastMessage(ctx, tx, conv.ID, gomock.Any(), gomock.Any()).Return(nil)
	d.notifications.EXPECT().Notify(ctx, gomock.Any()).Return(nil, errors.New("notification store down"))
	d.events.EXPECT().Publish(gomock.Any())

	msg, err := d.svc.SendMessage(ctx, conv.ID, userID, "See you at 3pm")
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestMessagingService_SendMessage_LongContentTruncatedInPreview(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	conv := testConversation(userID, hostID)
	tx := &mockTx{}

	content := "This message is quite a bit longer than fifty characters and will be truncated"
	wantPreview := content[:50] + "..."

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.msgRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.convRepo.EXPECT().UpdateLastMessage(ctx, tx, conv.ID, wantPreview, gomock.Any()).Return(nil)
	d.notifications.EXPECT().Notify(ctx, gomock.Any()).Return(&domain.Notification{}, nil)
	d.events.EXPECT().Publish(gomock.Any())

	_, err := d.svc.SendMessage(ctx, conv.ID, userID, content)
	require.NoError(t, err)
}

// ==================== ListConversations Tests ====================

func TestMessagingService_ListConversations_AnnotatesUnread(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	convA := testConversation(userID, uuid.New())
	convB := testConversation(uuid.New(), userID)

	d.convRepo.EXPECT().ListByParticipant(ctx, userID).Return([]domain.Conversation{*convA, *convB}, nil)
	d.msgRepo.EXPECT().CountUnread(ctx, convA.ID, userID).Return(2, nil)
	d.msgRepo.EXPECT().CountUnread(ctx, convB.ID, userID).Return(0, nil)

	summaries, err := d.svc.ListConversations(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].UnreadCount)
	assert.Equal(t, 0, summaries[1].UnreadCount)
}

func TestMessagingService_ListConversations_UnreadFailureDegradesToZero(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	conv := testConversation(userID, uuid.New())

	d.convRepo.EXPECT().ListByParticipant(ctx, userID).Return([]domain.Conversation{*conv}, nil)
	d.msgRepo.EXPECT().CountUnread(ctx, conv.ID, userID).Return(0, errors.New("count failed"))

	summaries, err := d.svc.ListConversations(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].UnreadCount)
}

// ==================== MarkAsRead / ListMessages Tests ====================

func TestMessagingService_MarkAsRead(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID, hostID := uuid.New(), uuid.New()
	conv := testConversation(userID, hostID)

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)
	d.msgRepo.EXPECT().MarkRead(ctx, conv.ID, hostID).Return(nil)

	err := d.svc.MarkAsRead(ctx, conv.ID, hostID)
	assert.NoError(t, err)
}

func TestMessagingService_ListMessages_NotParticipant(t *testing.T) {
	d := setupMessagingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	conv := testConversation(uuid.New(), uuid.New())

	d.convRepo.EXPECT().GetByID(ctx, conv.ID).Return(conv, nil)

	msgs, err := d.svc.ListMessages(ctx, conv.ID, uuid.New())
	assert.Nil(t, msgs)
	assertAppError(t, err, "MSG_002")
}
