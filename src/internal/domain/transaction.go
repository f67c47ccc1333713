package domain

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionTypeAccountCreated TransactionType = "AccountCreated"
	TransactionTypeDeposit        TransactionType = "Deposit"
	TransactionTypeTransfer       TransactionType = "Transfer"
	TransactionTypeSplitPayment   TransactionType = "SplitPayment"
)

// Transaction is one entry in a user's or account's timeline. Split payment
// entries carry the full audit contract: involved accounts in canonical
// order, original per-account shares, and an abort reason when settlement
// failed.
type Transaction struct {
	Timestamp        int64             `json:"timestamp"`
	Description      string            `json:"description"`
	Type             TransactionType   `json:"type"`
	SplitKind        SplitKind         `json:"splitPaymentType,omitempty"`
	Currency         string            `json:"currency,omitempty"`
	Amount           decimal.Decimal   `json:"amount"`
	SenderAccount    string            `json:"senderIBAN,omitempty"`
	ReceiverAccount  string            `json:"receiverIBAN,omitempty"`
	InvolvedAccounts []string          `json:"involvedAccounts,omitempty"`
	AmountsForUsers  []decimal.Decimal `json:"amountForUsers,omitempty"`
	Error            string            `json:"error,omitempty"`
}
