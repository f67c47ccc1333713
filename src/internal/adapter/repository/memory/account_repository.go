package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

// AccountRepository keeps the account book for the lifetime of the process.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.AccountNumber = strings.TrimSpace(account.AccountNumber)
	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	stored := account
	r.accounts[account.AccountNumber] = &stored
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[strings.TrimSpace(accountNumber)]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return *account, nil
}

func (r *AccountRepository) Debit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[strings.TrimSpace(accountNumber)]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if account.Balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	account.Balance = account.Balance.Sub(amount)
	return nil
}

func (r *AccountRepository) Credit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[strings.TrimSpace(accountNumber)]
	if !ok {
		return domain.ErrRecordNotFound
	}

	account.Balance = account.Balance.Add(amount)
	return nil
}
