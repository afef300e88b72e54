package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's in-app funds. Balance is stored in the smallest
// currency unit and must never go negative.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Currency  string    `json:"currency"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionType represents the kind of wallet ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypePayment    TransactionType = "PAYMENT"
	TransactionTypeRefund     TransactionType = "REFUND"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// PaymentMethod selects the rail a payment moves on.
type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "WALLET"
	PaymentMethodCard   PaymentMethod = "CARD"
)

// WithdrawalDescription is the fixed ledger description for withdrawals.
const WithdrawalDescription = "Withdrawal to bank account"

// WalletTransaction is an immutable ledger entry. Amount is always positive;
// the type decides whether it credits or debits the wallet.
type WalletTransaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        TransactionType `json:"type"`
	Method      PaymentMethod   `json:"method"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	BookingID   *uuid.UUID      `json:"booking_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SignedAmount returns the amount with the sign the entry applies to the
// wallet balance. Card payments ride an external rail and contribute zero.
func (t *WalletTransaction) SignedAmount() int64 {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeRefund:
		return t.Amount
	case TransactionTypePayment:
		if t.Method == PaymentMethodCard {
			return 0
		}
		return -t.Amount
	case TransactionTypeWithdrawal:
		return -t.Amount
	}
	return 0
}
