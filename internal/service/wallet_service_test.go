package service

import (
	"context"
	"testing"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"
	"fiilar/internal/core/ports/mocks"
	"fiilar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	svc        *WalletServiceImpl
	walletRepo *mocks.MockWalletRepository
	txRepo     *mocks.MockWalletTransactionRepository
	transactor *mocks.MockDBTransactor
	events     *mocks.MockEventPublisher
	ctrl       *gomock.Controller
}

func setupWalletService(t *testing.T) *walletTestDeps {
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		txRepo:     mocks.NewMockWalletTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		events:     mocks.NewMockEventPublisher(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewWalletService(d.walletRepo, d.txRepo, d.transactor, d.events, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func testWallet(userID uuid.UUID, balance int64) *domain.Wallet {
	return &domain.Wallet{
		ID:       uuid.New(),
		UserID:   userID,
		Currency: "NGN",
		Balance:  balance,
	}
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

// ==================== GetBalance Tests ====================

func TestWalletService_GetBalance(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(testWallet(userID, 40000), nil)

	balance, err := d.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), balance)
}

func TestWalletService_GetBalance_NoWalletReadsZero(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(nil, nil)

	balance, err := d.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

// ==================== AddFunds Tests ====================

func TestWalletService_AddFunds_Success(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 0)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, int64(40000)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.AddFunds(ctx, userID, 40000, "card")
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, domain.TransactionTypeDeposit, txn.Type)
	assert.Equal(t, int64(40000), txn.Amount)
	assert.Equal(t, int64(40000), txn.SignedAmount())
}

func TestWalletService_AddFunds_CreatesWalletLazily(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 0)
	tx := &mockTx{}

	// No wallet yet: first read misses, create succeeds.
	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(nil, nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, int64(5000)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.AddFunds(ctx, userID, 5000, "")
	require.NoError(t, err)
	assert.Equal(t, "Wallet deposit", txn.Description)
}

func TestWalletService_AddFunds_InvalidAmount(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	txn, err := d.svc.AddFunds(context.Background(), uuid.New(), 0, "card")
	assert.Nil(t, txn)
	assertAppError(t, err, "WAL_002")

	txn, err = d.svc.AddFunds(context.Background(), uuid.New(), -500, "card")
	assert.Nil(t, txn)
	assertAppError(t, err, "WAL_002")
}

// ==================== ProcessPayment Tests ====================

func TestWalletService_ProcessPayment_WalletMethodDebits(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 40000)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, int64(6000)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.ProcessPayment(ctx, ports.PaymentRequest{
		UserID:      userID,
		Amount:      34000,
		Method:      domain.PaymentMethodWallet,
		Description: "Booking payment",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypePayment, txn.Type)
	assert.Equal(t, int64(-34000), txn.SignedAmount())
}

func TestWalletService_ProcessPayment_OverdraftRejectedWithoutMutation(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 10000)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	// No UpdateBalance, no ledger Create, no event: the attempt leaves no trace.

	txn, err := d.svc.ProcessPayment(ctx, ports.PaymentRequest{
		UserID: userID,
		Amount: 34000,
		Method: domain.PaymentMethodWallet,
	})
	assert.Nil(t, txn)
	assertAppError(t, err, "WAL_001")
}

func TestWalletService_ProcessPayment_CardLeavesBalanceUntouched(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 500)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	// Amount exceeds the balance, but CARD settles externally: the ledger
	// entry is appended and UpdateBalance is never called.
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.ProcessPayment(ctx, ports.PaymentRequest{
		UserID: userID,
		Amount: 34000,
		Method: domain.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), txn.SignedAmount())
}

func TestWalletService_ProcessPayment_InvalidMethod(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	txn, err := d.svc.ProcessPayment(context.Background(), ports.PaymentRequest{
		UserID: uuid.New(),
		Amount: 1000,
		Method: "CRYPTO",
	})
	assert.Nil(t, txn)
	assertAppError(t, err, "WAL_003")
}

// ==================== RefundToWallet Tests ====================

func TestWalletService_RefundToWallet_CreditsUnconditionally(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 6000)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, int64(40000)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.RefundToWallet(ctx, userID, 34000, "Booking cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeRefund, txn.Type)
	assert.Equal(t, "Refund: Booking cancelled", txn.Description)
}

// ==================== Withdraw Tests ====================

func TestWalletService_Withdraw_RecordsPaymentEntry(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 40000)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, int64(30000)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.events.EXPECT().Publish(gomock.Any())

	txn, err := d.svc.Withdraw(ctx, userID, 10000)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypePayment, txn.Type)
	assert.Equal(t, domain.WithdrawalDescription, txn.Description)
	assert.Equal(t, int64(-10000), txn.SignedAmount())
}

func TestWalletService_Withdraw_InsufficientFunds(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 5000)
	tx := &mockTx{}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil)

	txn, err := d.svc.Withdraw(ctx, userID, 10000)
	assert.Nil(t, txn)
	assertAppError(t, err, "WAL_001")
}

// ==================== Ledger scenario ====================

// Replays a full wallet lifecycle and checks the balance stays the signed
// sum of the ledger: deposit 40000, pay 34000 from wallet, refund 34000,
// withdraw 10000, ending at 30000.
func TestWalletService_LedgerScenario(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := testWallet(userID, 0)
	tx := &mockTx{}

	var ledger []domain.WalletTransaction

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil).Times(4)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil).Times(4)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(wallet, nil).Times(4)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance int64) error {
			wallet.Balance = balance
			return nil
		}).Times(4)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, txn *domain.WalletTransaction) error {
			ledger = append(ledger, *txn)
			return nil
		}).Times(4)
	d.events.EXPECT().Publish(gomock.Any()).Times(4)

	_, err := d.svc.AddFunds(ctx, userID, 40000, "card")
	require.NoError(t, err)

	_, err = d.svc.ProcessPayment(ctx, ports.PaymentRequest{
		UserID: userID, Amount: 34000, Method: domain.PaymentMethodWallet,
	})
	require.NoError(t, err)

	_, err = d.svc.RefundToWallet(ctx, userID, 34000, "Booking cancelled")
	require.NoError(t, err)

	_, err = d.svc.Withdraw(ctx, userID, 10000)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), wallet.Balance)
	require.Len(t, ledger, 4)

	var sum int64
	for _, txn := range ledger {
		sum += txn.SignedAmount()
	}
	assert.Equal(t, wallet.Balance, sum)
	assert.Equal(t, domain.WithdrawalDescription, ledger[3].Description)
}
