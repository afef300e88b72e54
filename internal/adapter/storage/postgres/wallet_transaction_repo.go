package postgres

import (
	"context"
	"fmt"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletTransactionRepo implements ports.WalletTransactionRepository.
// Ledger rows are insert-only; there are no update or delete paths.
type WalletTransactionRepo struct {
	pool Pool
}

// NewWalletTransactionRepo creates a new WalletTransactionRepo.
func NewWalletTransactionRepo(pool Pool) *WalletTransactionRepo {
	return &WalletTransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *WalletTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (id, wallet_id, user_id, type, method, amount, description, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.UserID, t.Type, t.Method,
		t.Amount, t.Description, t.BookingID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// ListByUser fetches all ledger entries for a user, newest first.
func (r *WalletTransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletTransaction, error) {
	query := `SELECT id, wallet_id, user_id, type, method, amount, description, booking_id, created_at
		FROM wallet_transactions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		t := domain.WalletTransaction{}
		err := rows.Scan(
			&t.ID, &t.WalletID, &t.UserID, &t.Type, &t.Method,
			&t.Amount, &t.Description, &t.BookingID, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transaction rows: %w", err)
	}
	return txns, nil
}

// SumSignedByUser computes the signed sum of all ledger entries for a user.
// Card payments settle on an external rail and contribute zero.
func (r *WalletTransactionRepo) SumSignedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(CASE
			WHEN type IN ('DEPOSIT', 'REFUND') THEN amount
			WHEN type = 'PAYMENT' AND method = 'CARD' THEN 0
			ELSE -amount
		END), 0)
		FROM wallet_transactions WHERE user_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum wallet transactions: %w", err)
	}
	return sum, nil
}
