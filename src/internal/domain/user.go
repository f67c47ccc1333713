package domain

import "time"

type User struct {
	Email              string
	FirstName          string
	LastName           string
	Occupation         string
	TransactionPinHash string
	CreatedAt          time.Time
}
