package postgres

import (
	"context"
	"errors"
	"fmt"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListingRepo implements ports.ListingRepository.
type ListingRepo struct {
	pool Pool
}

// NewListingRepo creates a new ListingRepo.
func NewListingRepo(pool Pool) *ListingRepo {
	return &ListingRepo{pool: pool}
}

// Create inserts a listing.
func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (id, host_id, title, description, location, nightly_price, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.HostID, l.Title, l.Description, l.Location,
		l.NightlyPrice, l.Currency, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// GetByID fetches a listing by UUID.
func (r *ListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT id, host_id, title, description, location, nightly_price, currency, status, created_at, updated_at
		FROM listings WHERE id = $1`

	l := &domain.Listing{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.HostID, &l.Title, &l.Description, &l.Location,
		&l.NightlyPrice, &l.Currency, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing by id: %w", err)
	}
	return l, nil
}

// ListByHost fetches a host's listings, newest first.
func (r *ListingRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error) {
	query := `SELECT id, host_id, title, description, location, nightly_price, currency, status, created_at, updated_at
		FROM listings WHERE host_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, hostID)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l := domain.Listing{}
		err := rows.Scan(
			&l.ID, &l.HostID, &l.Title, &l.Description, &l.Location,
			&l.NightlyPrice, &l.Currency, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}
	return listings, nil
}
