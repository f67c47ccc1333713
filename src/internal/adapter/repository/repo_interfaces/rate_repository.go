package repo_interfaces

import (
	"context"

	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

type RateRepository interface {
	GetRates(ctx context.Context) ([]domain.Rate, error)
}
