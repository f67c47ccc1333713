package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type RateResponse struct {
	ID           int64  `json:"id"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Rate         string `json:"rate"`
	CreatedAt    string `json:"createdAt"`
}

// Currency codes are opaque, case-sensitive identifiers in the exchange
// graph, so requests are trimmed but never upper-cased.
type ConvertRequest struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Amount       string `json:"amount"`
}

func (r ConvertRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromCurrency) == "" {
		errs = append(errs, "fromCurrency is required")
	}
	if strings.TrimSpace(r.ToCurrency) == "" {
		errs = append(errs, "toCurrency is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsedAmount, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsedAmount.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ConvertResponse struct {
	FromCurrency    string `json:"fromCurrency"`
	ToCurrency      string `json:"toCurrency"`
	Amount          string `json:"amount"`
	ConvertedAmount string `json:"convertedAmount"`
}
