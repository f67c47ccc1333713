package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	Email     string `json:"email"`
	Currency  string `json:"currency"`
	Timestamp int64  `json:"timestamp"`
	// AccountNumber pins the number instead of generating one; command
	// stream inputs rely on this so later commands can reference the
	// account.
	AccountNumber string `json:"accountNumber,omitempty"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Currency) == "" {
		errs = append(errs, "currency is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type OpenAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Email         string `json:"email"`
	Currency      string `json:"currency"`
	Balance       string `json:"balance"`
}

type DepositRequest struct {
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
	Timestamp     int64  `json:"timestamp"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
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

type DepositResponse struct {
	AccountNumber string `json:"accountNumber"`
	Currency      string `json:"currency"`
	Balance       string `json:"balance"`
}
