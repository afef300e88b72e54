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

func newTestReview() *domain.Review {
	return &domain.Review{
		ID:        uuid.New(),
		ListingID: uuid.New(),
		UserID:    uuid.New(),
		Rating:    4,
		Comment:   "Great location, spotless apartment.",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func reviewColumns() []string {
	return []string{"id", "listing_id", "user_id", "rating", "comment", "created_at"}
}

func TestReviewRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepo(mock)
	rev := newTestReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rev.ID, rev.ListingID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), rev)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_ExistsByUserAndListing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepo(mock)
	userID, listingID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(userID, listingID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUserAndListing(context.Background(), userID, listingID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_ListByListing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepo(mock)
	rev := newTestReview()

	rows := pgxmock.NewRows(reviewColumns()).
		AddRow(rev.ID, rev.ListingID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE listing_id .+ ORDER BY created_at DESC").
		WithArgs(rev.ListingID).
		WillReturnRows(rows)

	result, err := repo.ListByListing(context.Background(), rev.ListingID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 4, result[0].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_AverageByListing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReviewRepo(mock)
	listingID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(listingID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(4.5))

	avg, err := repo.AverageByListing(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}
