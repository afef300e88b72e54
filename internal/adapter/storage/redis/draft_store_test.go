package redis_test

import (
	"context"
	"testing"
	"time"

	"fiilar/internal/adapter/storage/redis"
	"fiilar/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(userID, listingID uuid.UUID) *domain.BookingDraft {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return &domain.BookingDraft{
		UserID:    userID,
		ListingID: listingID,
		CheckIn:   &checkIn,
		CheckOut:  &checkOut,
		Guests:    2,
		Step:      2,
		SavedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestDraftStore_SaveAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)
	ctx := context.Background()

	userID, listingID := uuid.New(), uuid.New()
	draft := newDraft(userID, listingID)

	require.NoError(t, store.Save(ctx, draft, time.Hour))

	got, err := store.Get(ctx, userID, listingID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft.UserID, got.UserID)
	assert.Equal(t, draft.ListingID, got.ListingID)
	assert.Equal(t, 2, got.Guests)
	assert.Equal(t, 2, got.Step)
	require.NotNil(t, got.CheckIn)
	assert.True(t, draft.CheckIn.Equal(*got.CheckIn))
}

func TestDraftStore_Get_Missing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)

	got, err := store.Get(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftStore_Save_Overwrites(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)
	ctx := context.Background()

	userID, listingID := uuid.New(), uuid.New()
	draft := newDraft(userID, listingID)
	require.NoError(t, store.Save(ctx, draft, time.Hour))

	draft.Step = 3
	draft.Guests = 4
	require.NoError(t, store.Save(ctx, draft, time.Hour))

	got, err := store.Get(ctx, userID, listingID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Step)
	assert.Equal(t, 4, got.Guests)
}

func TestDraftStore_ExpiresAfterTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)
	ctx := context.Background()

	userID, listingID := uuid.New(), uuid.New()
	require.NoError(t, store.Save(ctx, newDraft(userID, listingID), time.Hour))

	mr.FastForward(time.Hour + time.Second)

	got, err := store.Get(ctx, userID, listingID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftStore_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)
	ctx := context.Background()

	userID, listingID := uuid.New(), uuid.New()
	require.NoError(t, store.Save(ctx, newDraft(userID, listingID), time.Hour))
	require.NoError(t, store.Delete(ctx, userID, listingID))

	got, err := store.Get(ctx, userID, listingID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is still fine.
	assert.NoError(t, store.Delete(ctx, userID, listingID))
}

func TestDraftStore_DraftsAreScopedPerListing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewDraftStore(client)
	ctx := context.Background()

	userID := uuid.New()
	listingA, listingB := uuid.New(), uuid.New()
	require.NoError(t, store.Save(ctx, newDraft(userID, listingA), time.Hour))

	got, err := store.Get(ctx, userID, listingB)
	require.NoError(t, err)
	assert.Nil(t, got)
}
