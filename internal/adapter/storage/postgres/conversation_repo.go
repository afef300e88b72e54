package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConversationRepo implements ports.ConversationRepository.
type ConversationRepo struct {
	pool Pool
}

// NewConversationRepo creates a new ConversationRepo.
func NewConversationRepo(pool Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// Create inserts a new conversation.
func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	query := `INSERT INTO conversations (id, user_id, host_id, listing_id, last_message, last_message_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.HostID, c.ListingID,
		c.LastMessage, c.LastMessageAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetByID fetches a conversation by UUID.
func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `SELECT id, user_id, host_id, listing_id, last_message, last_message_at, created_at, updated_at
		FROM conversations WHERE id = $1`

	return r.scanConversation(r.pool.QueryRow(ctx, query, id))
}

// FindByParticipants fetches the conversation for the exact participant pair
// and listing reference. IS NOT DISTINCT FROM treats two NULL listing ids
// as the same thread.
func (r *ConversationRepo) FindByParticipants(ctx context.Context, userID, hostID uuid.UUID, listingID *uuid.UUID) (*domain.Conversation, error) {
	query := `SELECT id, user_id, host_id, listing_id, last_message, last_message_at, created_at, updated_at
		FROM conversations WHERE user_id = $1 AND host_id = $2 AND listing_id IS NOT DISTINCT FROM $3`

	return r.scanConversation(r.pool.QueryRow(ctx, query, userID, hostID, listingID))
}

// ListByParticipant fetches conversations containing the user, most recently
// updated first.
func (r *ConversationRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	query := `SELECT id, user_id, host_id, listing_id, last_message, last_message_at, created_at, updated_at
		FROM conversations WHERE user_id = $1 OR host_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		c := domain.Conversation{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.HostID, &c.ListingID,
			&c.LastMessage, &c.LastMessageAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation rows: %w", err)
	}
	return convs, nil
}

// UpdateLastMessage sets the conversation preview within a transaction.
func (r *ConversationRepo) UpdateLastMessage(ctx context.Context, tx pgx.Tx, id uuid.UUID, preview string, at time.Time) error {
	query := `UPDATE conversations SET last_message = $1, last_message_at = $2, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, preview, at, id)
	if err != nil {
		return fmt.Errorf("update conversation preview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation not found: %s", id)
	}
	return nil
}

func (r *ConversationRepo) scanConversation(row pgx.Row) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.HostID, &c.ListingID,
		&c.LastMessage, &c.LastMessageAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan conversation: %w", err)
	}
	return c, nil
}
