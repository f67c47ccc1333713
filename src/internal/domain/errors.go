package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrNoPendingPayment = errors.New("No pending payment for this user")
var ErrSplitSettled = errors.New("Split payment already settled")
