package repo_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

type TransactionRepository interface {
	AppendForUser(ctx context.Context, email string, transaction domain.Transaction) error
	AppendForAccount(ctx context.Context, accountNumber string, transaction domain.Transaction) error
	ListForUser(ctx context.Context, email string) ([]domain.Transaction, error)
	ListForAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}
