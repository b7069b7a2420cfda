package domain

import "errors"

var (
	// Account errors
	ErrAccountExists    = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidAccountID = errors.New("account id must not be empty")

	// Validation errors
	ErrInvalidAmount       = errors.New("amount must be a positive whole number")
	ErrInvalidTTL          = errors.New("time to live must be positive")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidScheduleTime = errors.New("scheduled time must not precede creation time")

	// State-conflict errors
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrTransferNotPending = errors.New("transfer is not pending")

	// Lookup errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrTransferNotFound = errors.New("transfer not found")
)
