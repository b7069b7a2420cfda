package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ID string `json:"id"`
}

// EntryRequest represents a request to deposit into or withdraw from an
// account. Timestamps are logical times supplied by the caller.
type EntryRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Timestamp int64           `json:"timestamp"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *EntryRequest) ToUseCaseInput(accountID string) usecase.EntryInput {
	return usecase.EntryInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Timestamp: r.Timestamp,
	}
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     int64           `json:"timestamp"`
	TTL           int64           `json:"ttl"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Timestamp:     r.Timestamp,
		TTL:           r.TTL,
	}
}

// AcceptTransferRequest represents a request to accept a pending transfer.
type AcceptTransferRequest struct {
	Timestamp int64 `json:"timestamp"`
}

// ScheduleTransferRequest represents a request to schedule a transfer.
type ScheduleTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     int64           `json:"timestamp"`
	ScheduledFor  int64           `json:"scheduled_for"`
	TTL           int64           `json:"ttl"`
}

// ToUseCaseInput converts to use case input.
func (r *ScheduleTransferRequest) ToUseCaseInput() usecase.ScheduleTransferInput {
	return usecase.ScheduleTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Timestamp:     r.Timestamp,
		ScheduledFor:  r.ScheduledFor,
		TTL:           r.TTL,
	}
}

// ProcessScheduledRequest represents a request to process due scheduled
// transfers as of a timestamp.
type ProcessScheduledRequest struct {
	Timestamp int64 `json:"timestamp"`
}
