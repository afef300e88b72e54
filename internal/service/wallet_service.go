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

const defaultCurrency = "NGN"

// EventWalletTransaction is published after every committed ledger entry.
const EventWalletTransaction = "wallet.transaction"

// WalletServiceImpl implements ports.WalletService. Every balance mutation
// locks the wallet row and appends its ledger entry in the same database
// transaction, so the balance always equals the signed sum of the ledger.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.WalletTransactionRepository
	transactor ports.DBTransactor
	events     ports.EventPublisher
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.WalletTransactionRepository,
	transactor ports.DBTransactor,
	events ports.EventPublisher,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		events:     events,
		log:        log,
	}
}

// GetBalance returns the current balance. Uninitialized wallets read as 0.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return 0, nil
	}
	return wallet.Balance, nil
}

// GetTransactions returns the full ledger for the user, newest first.
func (s *WalletServiceImpl) GetTransactions(ctx context.Context, userID uuid.UUID) ([]domain.WalletTransaction, error) {
	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// AddFunds credits the wallet with a DEPOSIT entry. No upper bound is enforced.
func (s *WalletServiceImpl) AddFunds(ctx context.Context, userID uuid.UUID, amount int64, methodRef string) (*domain.WalletTransaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	description := "Wallet deposit"
	if methodRef != "" {
		description = fmt.Sprintf("Wallet deposit via %s", methodRef)
	}

	txn, err := s.applyEntry(ctx, userID, entrySpec{
		txType:      domain.TransactionTypeDeposit,
		method:      domain.PaymentMethodCard,
		amount:      amount,
		description: description,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Msg("funds added to wallet")

	return txn, nil
}

// ProcessPayment debits the wallet when the method is WALLET, guarding
// against overdraft. CARD payments are recorded in the ledger but ride an
// external rail, leaving the wallet balance untouched.
func (s *WalletServiceImpl) ProcessPayment(ctx context.Context, req ports.PaymentRequest) (*domain.WalletTransaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Method != domain.PaymentMethodWallet && req.Method != domain.PaymentMethodCard {
		return nil, apperror.ErrInvalidPaymentMethod()
	}

	description := req.Description
	if description == "" {
		description = "Payment"
	}

	txn, err := s.applyEntry(ctx, req.UserID, entrySpec{
		txType:      domain.TransactionTypePayment,
		method:      req.Method,
		amount:      req.Amount,
		description: description,
		bookingID:   req.BookingID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("method", string(req.Method)).
		Int64("amount", req.Amount).
		Msg("payment processed")

	return txn, nil
}

// RefundToWallet credits the wallet with a REFUND entry. The amount is not
// matched against any original payment; the ledger records whatever the
// caller supplies.
func (s *WalletServiceImpl) RefundToWallet(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*domain.WalletTransaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	description := "Refund"
	if reason != "" {
		description = fmt.Sprintf("Refund: %s", reason)
	}

	txn, err := s.applyEntry(ctx, userID, entrySpec{
		txType:      domain.TransactionTypeRefund,
		method:      domain.PaymentMethodWallet,
		amount:      amount,
		description: description,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Msg("refund credited to wallet")

	return txn, nil
}

// Withdraw debits the wallet, guarding against overdraft. The ledger entry
// carries the PAYMENT type with a fixed withdrawal description.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, userID uuid.UUID, amount int64) (*domain.WalletTransaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	txn, err := s.applyEntry(ctx, userID, entrySpec{
		txType:      domain.TransactionTypePayment,
		method:      domain.PaymentMethodWallet,
		amount:      amount,
		description: domain.WithdrawalDescription,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Msg("withdrawal processed")

	return txn, nil
}

// entrySpec describes one ledger entry to apply.
type entrySpec struct {
	txType      domain.TransactionType
	method      domain.PaymentMethod
	amount      int64
	description string
	bookingID   *uuid.UUID
}

// applyEntry locks the wallet, applies the signed amount with the overdraft
// guard, and appends the ledger entry, all in one database transaction.
func (s *WalletServiceImpl) applyEntry(ctx context.Context, userID uuid.UUID, spec entrySpec) (*domain.WalletTransaction, error) {
	if err := s.ensureWallet(ctx, userID); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	now := time.Now().UTC()
	txn := &domain.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		UserID:      userID,
		Type:        spec.txType,
		Method:      spec.method,
		Amount:      spec.amount,
		Description: spec.description,
		BookingID:   spec.bookingID,
		CreatedAt:   now,
	}

	delta := txn.SignedAmount()
	newBalance := wallet.Balance + delta
	if newBalance < 0 {
		return nil, apperror.ErrInsufficientFunds()
	}

	if delta != 0 {
		if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
		}
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if s.events != nil {
		s.events.Publish(ports.Event{
			Name:      EventWalletTransaction,
			UserID:    userID,
			EntityID:  txn.ID,
			Timestamp: now,
		})
	}

	return txn, nil
}

// ensureWallet lazily creates a zero-balance wallet for the user.
func (s *WalletServiceImpl) ensureWallet(ctx context.Context, userID uuid.UUID) error {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet != nil {
		return nil
	}

	now := time.Now().UTC()
	err = s.walletRepo.Create(ctx, &domain.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  defaultCurrency,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// Another request may have created the wallet concurrently.
		existing, getErr := s.walletRepo.GetByUserID(ctx, userID)
		if getErr == nil && existing != nil {
			return nil
		}
		return apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}
	return nil
}
