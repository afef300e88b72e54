package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fiilar/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already exists")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wallets {
		if existing.UserID == w.UserID {
			return fmt.Errorf("wallet already exists")
		}
	}
	r.wallets[w.ID] = w
	return nil
}

func (r *inMemoryWalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Wallet Transaction Repo (append-only ledger) ---

type inMemoryWalletTxRepo struct {
	mu      sync.RWMutex
	entries []domain.WalletTransaction
}

func newInMemoryWalletTxRepo() *inMemoryWalletTxRepo {
	return &inMemoryWalletTxRepo{}
}

func (r *inMemoryWalletTxRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *txn)
	return nil
}

func (r *inMemoryWalletTxRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletTransaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

func (r *inMemoryWalletTxRepo) SumSignedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for i := range r.entries {
		if r.entries[i].UserID == userID {
			sum += r.entries[i].SignedAmount()
		}
	}
	return sum, nil
}

// --- In-Memory Conversation Repo ---

type inMemoryConversationRepo struct {
	mu    sync.RWMutex
	convs map[uuid.UUID]*domain.Conversation
}

func newInMemoryConversationRepo() *inMemoryConversationRepo {
	return &inMemoryConversationRepo{convs: make(map[uuid.UUID]*domain.Conversation)}
}

func (r *inMemoryConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.convs[conv.ID] = conv
	return nil
}

func (r *inMemoryConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *inMemoryConversationRepo) FindByParticipants(ctx context.Context, userID, hostID uuid.UUID, listingID *uuid.UUID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.convs {
		if c.UserID != userID || c.HostID != hostID {
			continue
		}
		if (c.ListingID == nil) != (listingID == nil) {
			continue
		}
		if listingID != nil && *c.ListingID != *listingID {
			continue
		}
		return c, nil
	}
	return nil, nil
}

func (r *inMemoryConversationRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Conversation
	for _, c := range r.convs {
		if c.UserID == userID || c.HostID == userID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (r *inMemoryConversationRepo) UpdateLastMessage(ctx context.Context, tx pgx.Tx, id uuid.UUID, preview string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return fmt.Errorf("conversation not found")
	}
	c.LastMessage = preview
	c.LastMessageAt = at
	c.UpdatedAt = at
	return nil
}

// --- In-Memory Message Repo ---

type inMemoryMessageRepo struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func newInMemoryMessageRepo() *inMemoryMessageRepo {
	return &inMemoryMessageRepo{}
}

func (r *inMemoryMessageRepo) Create(ctx context.Context, tx pgx.Tx, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *msg
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *inMemoryMessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *inMemoryMessageRepo) MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != userID {
			m.Read = true
		}
	}
	return nil
}

func (r *inMemoryMessageRepo) CountUnread(ctx context.Context, conversationID, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.Read {
			count++
		}
	}
	return count, nil
}

// --- In-Memory Notification Repo ---

type inMemoryNotificationRepo struct {
	mu    sync.RWMutex
	items []*domain.Notification
}

func newInMemoryNotificationRepo() *inMemoryNotificationRepo {
	return &inMemoryNotificationRepo{}
}

func (r *inMemoryNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *n
	r.items = append(r.items, &clone)
	return nil
}

func (r *inMemoryNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			result = append(result, *r.items[i])
		}
	}
	return result, nil
}

func (r *inMemoryNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("notification not found")
}

func (r *inMemoryNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *inMemoryNotificationRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, n := range r.items {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	r.items = kept
	return nil
}

// --- In-Memory Review Repo ---

type inMemoryReviewRepo struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

func newInMemoryReviewRepo() *inMemoryReviewRepo {
	return &inMemoryReviewRepo{}
}

func (r *inMemoryReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *inMemoryReviewRepo) ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.reviews {
		if r.reviews[i].UserID == userID && r.reviews[i].ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryReviewRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Review
	for i := range r.reviews {
		if r.reviews[i].ListingID == listingID {
			result = append(result, r.reviews[i])
		}
	}
	return result, nil
}

func (r *inMemoryReviewRepo) AverageByListing(ctx context.Context, listingID uuid.UUID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum, count int
	for i := range r.reviews {
		if r.reviews[i].ListingID == listingID {
			sum += r.reviews[i].Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// --- In-Memory Booking Repo ---

type inMemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*domain.Booking
}

func newInMemoryBookingRepo() *inMemoryBookingRepo {
	return &inMemoryBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)}
}

func (r *inMemoryBookingRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *inMemoryBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *inMemoryBookingRepo) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.GuestID == guestID })
}

func (r *inMemoryBookingRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.HostID == hostID })
}

func (r *inMemoryBookingRepo) list(match func(*domain.Booking) bool) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Booking
	for _, b := range r.bookings {
		if match(b) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *inMemoryBookingRepo) HasCompleted(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.GuestID == userID && b.ListingID == listingID && b.Status == domain.BookingStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	b.Status = status
	switch status {
	case domain.BookingStatusCompleted:
		b.CompletedAt = &at
	case domain.BookingStatusCancelled:
		b.CancelledAt = &at
	}
	return nil
}

// --- In-Memory Listing Repo ---

type inMemoryListingRepo struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]*domain.Listing
}

func newInMemoryListingRepo() *inMemoryListingRepo {
	return &inMemoryListingRepo{listings: make(map[uuid.UUID]*domain.Listing)}
}

func (r *inMemoryListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *inMemoryListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

func (r *inMemoryListingRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Listing
	for _, l := range r.listings {
		if l.HostID == hostID {
			result = append(result, *l)
		}
	}
	return result, nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transactions with a single mutex, standing
// in for the row-level locks SELECT ... FOR UPDATE takes in PostgreSQL.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: &t.mu}, nil
}

// memTx is a pgx.Tx that holds the transactor lock until Commit or Rollback.
// It ignores statements; the in-memory repos mutate their maps directly.
type memTx struct {
	once    sync.Once
	release *sync.Mutex
}

func (t *memTx) finish() {
	t.once.Do(func() { t.release.Unlock() })
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }
