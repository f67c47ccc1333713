package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenSplitRequest struct {
	SplitPaymentType string   `json:"splitPaymentType"`
	Currency         string   `json:"currency"`
	Amount           string   `json:"amount"`
	AmountForUsers   []string `json:"amountForUsers"`
	Accounts         []string `json:"accounts"`
	Timestamp        int64    `json:"timestamp"`
}

func (r OpenSplitRequest) Validate() error {
	var errs []string

	kind := strings.TrimSpace(r.SplitPaymentType)
	if kind != "equal" && kind != "custom" {
		errs = append(errs, "splitPaymentType must be equal or custom")
	}
	if strings.TrimSpace(r.Currency) == "" {
		errs = append(errs, "currency is required")
	}
	if len(r.Accounts) == 0 {
		errs = append(errs, "accounts is required")
	}
	for i, account := range r.Accounts {
		if strings.TrimSpace(account) == "" {
			errs = append(errs, fmt.Sprintf("accounts[%d] is empty", i))
		}
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

	if kind == "custom" {
		if len(r.AmountForUsers) != len(r.Accounts) {
			errs = append(errs, "amountForUsers must have one share per account")
		}
		for i, share := range r.AmountForUsers {
			parsedShare, err := decimal.NewFromString(strings.TrimSpace(share))
			if err != nil {
				errs = append(errs, fmt.Sprintf("amountForUsers[%d] must be numeric", i))
			} else if parsedShare.LessThanOrEqual(decimal.Zero) {
				errs = append(errs, fmt.Sprintf("amountForUsers[%d] must be greater than zero", i))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type OpenSplitResponse struct {
	SplitID  string   `json:"splitId"`
	Status   string   `json:"status"`
	Accounts []string `json:"accounts"`
}

type SplitDecisionRequest struct {
	Email          string `json:"email"`
	Accept         bool   `json:"accept"`
	TransactionPin string `json:"transactionPin,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

func (r SplitDecisionRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type SplitDecisionResponse struct {
	SplitID string `json:"splitId"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

type GetSplitResponse struct {
	SplitID          string   `json:"splitId"`
	Status           string   `json:"status"`
	SplitPaymentType string   `json:"splitPaymentType"`
	Currency         string   `json:"currency"`
	Amount           string   `json:"amount"`
	Accounts         []string `json:"accounts"`
	Outcomes         []string `json:"outcomes"`
}
