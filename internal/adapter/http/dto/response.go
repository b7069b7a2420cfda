package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID string `json:"id"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     int64           `json:"timestamp"`
	AccountID     string          `json:"account_id,omitempty"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	TTL           int64           `json:"ttl,omitempty"`
	ScheduledFor  int64           `json:"scheduled_for,omitempty"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		Amount:        e.Amount,
		Timestamp:     e.Timestamp,
		AccountID:     e.AccountID,
		FromAccountID: e.FromAccountID,
		ToAccountID:   e.ToAccountID,
		TTL:           e.TTL,
		ScheduledFor:  e.ScheduledFor,
	}
}

// BalanceResponse represents a point-in-time balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	At        int64           `json:"at"`
	Balance   decimal.Decimal `json:"balance"`
}

// VolumeResponse represents a point-in-time transaction volume.
type VolumeResponse struct {
	AccountID string          `json:"account_id"`
	At        int64           `json:"at"`
	Volume    decimal.Decimal `json:"volume"`
}

// HistoryResponse represents a rendered transaction history.
type HistoryResponse struct {
	AccountID string   `json:"account_id"`
	At        int64    `json:"at"`
	History   []string `json:"history"`
}

// AccountVolumeResponse represents one entry of a volume ranking.
type AccountVolumeResponse struct {
	AccountID string          `json:"account_id"`
	Volume    decimal.Decimal `json:"volume"`
}

// TopAccountsResponse represents a volume ranking.
type TopAccountsResponse struct {
	At       int64                   `json:"at"`
	Accounts []AccountVolumeResponse `json:"accounts"`
}

// TopAccountsFromDomain converts a use case ranking to a response.
func TopAccountsFromDomain(at int64, ranking []usecase.AccountVolume) *TopAccountsResponse {
	accounts := make([]AccountVolumeResponse, len(ranking))
	for i, av := range ranking {
		accounts[i] = AccountVolumeResponse{
			AccountID: av.AccountID,
			Volume:    av.Volume,
		}
	}
	return &TopAccountsResponse{At: at, Accounts: accounts}
}

// TransferStatusResponse represents an evaluated transfer status.
type TransferStatusResponse struct {
	ID     string `json:"id"`
	At     int64  `json:"at"`
	Status string `json:"status"`
}

// ScheduledIDsResponse represents an account's pending scheduled
// transfers.
type ScheduledIDsResponse struct {
	AccountID            string   `json:"account_id"`
	At                   int64    `json:"at"`
	ScheduledTransferIDs []string `json:"scheduled_transfer_ids"`
}

// ProcessScheduledResponse represents the outcome of a processing run.
type ProcessScheduledResponse struct {
	At          int64    `json:"at"`
	TransferIDs []string `json:"transfer_ids"`
}
