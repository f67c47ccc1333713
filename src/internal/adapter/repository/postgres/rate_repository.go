package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
)

var _ repo_interfaces.RateRepository = (*RateRepository)(nil)

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// EnsureDefaultRates seeds the rate table when it is empty so a fresh
// deployment can convert between the majors out of the box.
func (r *RateRepository) EnsureDefaultRates(ctx context.Context) error {
	logger.Info("rate repository ensure default rates", nil)

	const query = `
INSERT INTO rates (
	from_currency,
	to_currency,
	rate
) VALUES
	('EUR', 'USD', 1.18450000),
	('USD', 'RON', 4.30000000),
	('GBP', 'EUR', 1.14626318),
	('USD', 'JPY', 147.20000000)
ON CONFLICT (from_currency, to_currency) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		logger.Error("rate repository ensure default rates failed", err, nil)
		return fmt.Errorf("ensure default rates: %w", err)
	}

	logger.Info("rate repository ensure default rates success", nil)
	return nil
}

func (r *RateRepository) GetRates(ctx context.Context) ([]domain.Rate, error) {
	logger.Info("rate repository get rates", nil)

	const query = `
SELECT id, from_currency, to_currency, rate, created_at
FROM rates
ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("rate repository get rates failed", err, nil)
		return nil, fmt.Errorf("get rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.Rate, 0)
	for rows.Next() {
		var rate domain.Rate
		if err := rows.Scan(
			&rate.ID,
			&rate.FromCurrency,
			&rate.ToCurrency,
			&rate.Rate,
			&rate.CreatedAt,
		); err != nil {
			logger.Error("rate repository scan rate failed", err, nil)
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rates: %w", err)
	}

	logger.Info("rate repository get rates success", logger.Fields{
		"count": len(rates),
	})
	return rates, nil
}
