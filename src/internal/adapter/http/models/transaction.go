package models

type TransactionResponse struct {
	Timestamp        int64    `json:"timestamp"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	SplitPaymentType string   `json:"splitPaymentType,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Amount           string   `json:"amount"`
	SenderAccount    string   `json:"senderIBAN,omitempty"`
	ReceiverAccount  string   `json:"receiverIBAN,omitempty"`
	InvolvedAccounts []string `json:"involvedAccounts,omitempty"`
	AmountForUsers   []string `json:"amountForUsers,omitempty"`
	Error            string   `json:"error,omitempty"`
}
