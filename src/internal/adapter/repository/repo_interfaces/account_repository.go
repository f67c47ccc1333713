package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	Debit(ctx context.Context, accountNumber string, amount decimal.Decimal) error
	Credit(ctx context.Context, accountNumber string, amount decimal.Decimal) error
}
