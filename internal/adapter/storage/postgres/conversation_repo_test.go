package postgres

import (
	"context"
	"testing"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversation() *domain.Conversation {
	listingID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Conversation{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		HostID:        uuid.New(),
		ListingID:     &listingID,
		LastMessage:   "Is the apartment still available?",
		LastMessageAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func conversationColumns() []string {
	return []string{"id", "user_id", "host_id", "listing_id", "last_message", "last_message_at", "created_at", "updated_at"}
}

func conversationRow(c *domain.Conversation) *pgxmock.Rows {
	return pgxmock.NewRows(conversationColumns()).AddRow(
		c.ID, c.UserID, c.HostID, c.ListingID,
		c.LastMessage, c.LastMessageAt, c.CreatedAt, c.UpdatedAt,
	)
}

func TestConversationRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConversationRepo(mock)
	c := newTestConversation()

	mock.ExpectExec("INSERT INTO conversations").
		WithArgs(c.ID, c.UserID, c.HostID, c.ListingID,
			c.LastMessage, c.LastMessageAt, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepo_FindByParticipants(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConversationRepo(mock)
	c := newTestConversation()

	mock.ExpectQuery("SELECT .+ FROM conversations WHERE user_id .+ IS NOT DISTINCT FROM").
		WithArgs(c.UserID, c.HostID, c.ListingID).
		WillReturnRows(conversationRow(c))

	result, err := repo.FindByParticipants(context.Background(), c.UserID, c.HostID, c.ListingID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepo_FindByParticipants_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConversationRepo(mock)
	userID, hostID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT .+ FROM conversations WHERE user_id").
		WithArgs(userID, hostID, (*uuid.UUID)(nil)).
		WillReturnRows(pgxmock.NewRows(conversationColumns()))

	result, err := repo.FindByParticipants(context.Background(), userID, hostID, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepo_ListByParticipant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConversationRepo(mock)
	c := newTestConversation()

	mock.ExpectQuery("SELECT .+ FROM conversations WHERE user_id .+ ORDER BY updated_at DESC").
		WithArgs(c.UserID).
		WillReturnRows(conversationRow(c))

	result, err := repo.ListByParticipant(context.Background(), c.UserID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, c.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepo_UpdateLastMessage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConversationRepo(mock)
	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE conversations SET last_message").
		WithArgs("See you at 3pm", at, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateLastMessage(context.Background(), tx, id, "See you at 3pm", at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
