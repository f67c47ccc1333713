package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

type Account struct {
	AccountNumber string
	OwnerEmail    string
	Currency      string
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
}
