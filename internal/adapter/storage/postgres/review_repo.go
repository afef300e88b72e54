package postgres

import (
	"context"
	"fmt"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
)

// ReviewRepo implements ports.ReviewRepository.
type ReviewRepo struct {
	pool Pool
}

// NewReviewRepo creates a new ReviewRepo.
func NewReviewRepo(pool Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// Create inserts a review.
func (r *ReviewRepo) Create(ctx context.Context, rev *domain.Review) error {
	query := `INSERT INTO reviews (id, listing_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rev.ID, rev.ListingID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ExistsByUserAndListing checks whether the user already reviewed the listing.
func (r *ReviewRepo) ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND listing_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	return exists, nil
}

// ListByListing fetches a listing's reviews, newest first.
func (r *ReviewRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	query := `SELECT id, listing_id, user_id, rating, comment, created_at
		FROM reviews WHERE listing_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rev := domain.Review{}
		err := rows.Scan(&rev.ID, &rev.ListingID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}

// AverageByListing returns the mean rating for a listing, 0 when unreviewed.
func (r *ReviewRepo) AverageByListing(ctx context.Context, listingID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE listing_id = $1`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, listingID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
