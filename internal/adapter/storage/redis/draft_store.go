package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// DraftStore implements ports.DraftStore using Redis. Drafts are keyed by
// (user, listing) and expire on their own via TTL; there is no sweeper.
type DraftStore struct {
	client *goredis.Client
	prefix string
}

// NewDraftStore creates a new Redis-backed booking draft store.
func NewDraftStore(client *goredis.Client) *DraftStore {
	return &DraftStore{
		client: client,
		prefix: "draft:",
	}
}

func (s *DraftStore) key(userID, listingID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, userID, listingID)
}

// Save stores a draft with TTL, overwriting any previous draft for the
// same (user, listing) pair.
func (s *DraftStore) Save(ctx context.Context, draft *domain.BookingDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal booking draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(draft.UserID, draft.ListingID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis draft set: %w", err)
	}
	return nil
}

// Get retrieves a draft. Returns nil, nil when none exists or it has expired.
func (s *DraftStore) Get(ctx context.Context, userID, listingID uuid.UUID) (*domain.BookingDraft, error) {
	val, err := s.client.Get(ctx, s.key(userID, listingID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis draft get: %w", err)
	}

	draft := &domain.BookingDraft{}
	if err := json.Unmarshal(val, draft); err != nil {
		return nil, fmt.Errorf("unmarshal booking draft: %w", err)
	}
	return draft, nil
}

// Delete removes a draft. Deleting an absent draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID, listingID)).Err(); err != nil {
		return fmt.Errorf("redis draft del: %w", err)
	}
	return nil
}
