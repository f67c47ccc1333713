package stream

import "github.com/shopspring/decimal"

// Input is one batch run: seed users and exchange rates, then a stream of
// timestamped commands processed strictly in arrival order.
type Input struct {
	Users         []UserSeed `json:"users"`
	ExchangeRates []RateSeed `json:"exchangeRates"`
	Commands      []Command  `json:"commands"`
}

type UserSeed struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Occupation     string `json:"occupation"`
	TransactionPin string `json:"transactionPin"`
}

type RateSeed struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

type Command struct {
	Command          string            `json:"command"`
	Timestamp        int64             `json:"timestamp"`
	Email            string            `json:"email,omitempty"`
	FirstName        string            `json:"firstName,omitempty"`
	LastName         string            `json:"lastName,omitempty"`
	Occupation       string            `json:"occupation,omitempty"`
	Currency         string            `json:"currency,omitempty"`
	Account          string            `json:"account,omitempty"`
	Receiver         string            `json:"receiver,omitempty"`
	Amount           decimal.Decimal   `json:"amount,omitempty"`
	Description      string            `json:"description,omitempty"`
	SplitPaymentType string            `json:"splitPaymentType,omitempty"`
	Accounts         []string          `json:"accounts,omitempty"`
	AmountForUsers   []decimal.Decimal `json:"amountForUsers,omitempty"`
	TransactionPin   string            `json:"transactionPin,omitempty"`
}

// Event is one entry in the ordered output log.
type Event struct {
	Command   string `json:"command"`
	Timestamp int64  `json:"timestamp"`
	Output    any    `json:"output"`
}
