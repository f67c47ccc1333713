package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

var _ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository holds per-user and per-account timelines. Timelines
// stay sorted by timestamp after every insertion, so a settlement record
// written late still lands in chronological position.
type TransactionRepository struct {
	mu        sync.RWMutex
	byUser    map[string][]domain.Transaction
	byAccount map[string][]domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byUser:    make(map[string][]domain.Transaction),
		byAccount: make(map[string][]domain.Transaction),
	}
}

func (r *TransactionRepository) AppendForUser(ctx context.Context, email string, transaction domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.TrimSpace(email)
	r.byUser[key] = appendSorted(r.byUser[key], transaction)
	return nil
}

func (r *TransactionRepository) AppendForAccount(ctx context.Context, accountNumber string, transaction domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.TrimSpace(accountNumber)
	r.byAccount[key] = appendSorted(r.byAccount[key], transaction)
	return nil
}

func (r *TransactionRepository) ListForUser(ctx context.Context, email string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyTransactions(r.byUser[strings.TrimSpace(email)]), nil
}

func (r *TransactionRepository) ListForAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyTransactions(r.byAccount[strings.TrimSpace(accountNumber)]), nil
}

func appendSorted(log []domain.Transaction, transaction domain.Transaction) []domain.Transaction {
	log = append(log, transaction)
	sort.SliceStable(log, func(i, j int) bool {
		return log[i].Timestamp < log[j].Timestamp
	})
	return log
}

func copyTransactions(log []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(log))
	copy(out, log)
	return out
}
