package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type SendMoneyRequest struct {
	SenderAccount   string `json:"senderAccount"`
	ReceiverAccount string `json:"receiverAccount"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	Timestamp       int64  `json:"timestamp"`
}

func (r SendMoneyRequest) Validate() error {
	var errs []string

	senderAccount := strings.TrimSpace(r.SenderAccount)
	receiverAccount := strings.TrimSpace(r.ReceiverAccount)

	if senderAccount == "" {
		errs = append(errs, "senderAccount is required")
	}
	if receiverAccount == "" {
		errs = append(errs, "receiverAccount is required")
	}
	if senderAccount != "" && senderAccount == receiverAccount {
		errs = append(errs, "senderAccount and receiverAccount cannot be the same")
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

type SendMoneyResponse struct {
	SenderAccount   string `json:"senderAccount"`
	ReceiverAccount string `json:"receiverAccount"`
	DebitAmount     string `json:"debitAmount"`
	CreditAmount    string `json:"creditAmount"`
	DebitCurrency   string `json:"debitCurrency"`
	CreditCurrency  string `json:"creditCurrency"`
	Description     string `json:"description"`
	Timestamp       int64  `json:"timestamp"`
}
