package memory

import (
	"context"
	"sync"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
)

var _ repo_interfaces.RateRepository = (*RateRepository)(nil)

// RateRepository serves a fixed rate list loaded at startup, typically from
// the command stream's exchangeRates section.
type RateRepository struct {
	mu    sync.RWMutex
	rates []domain.Rate
}

func NewRateRepository(rates []domain.Rate) *RateRepository {
	return &RateRepository{rates: rates}
}

func (r *RateRepository) GetRates(ctx context.Context) ([]domain.Rate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Rate, len(r.rates))
	copy(out, r.rates)
	return out, nil
}
