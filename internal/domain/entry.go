package domain

import (
	"github.com/shopspring/decimal"
)

// Kind identifies the variant of a ledger entry.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindTransfer   Kind = "transfer"
	KindScheduled  Kind = "scheduled"
)

// Status is the evaluated state of an entry as of a query timestamp.
// It is computed, never stored: for time-sensitive kinds the same entry
// can answer differently for different query times.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusExpired  Status = "expired"
	StatusRejected Status = "rejected"
)

// Entry is a single ledger record. All fields are fixed at creation;
// the only mutable state is the accepted/rejected resolution flags,
// each settable at most once through Accept/Reject.
//
// Deposits and withdrawals reference AccountID. Transfers and scheduled
// transfers reference FromAccountID and ToAccountID and are shared by
// both accounts' collections as a single object.
type Entry struct {
	ID        string
	Kind      Kind
	Timestamp int64
	Amount    decimal.Decimal

	AccountID     string
	FromAccountID string
	ToAccountID   string

	TTL          int64
	ScheduledFor int64

	accepted bool
	rejected bool
}

// NewDeposit creates a deposit entry crediting accountID.
func NewDeposit(id, accountID string, amount decimal.Decimal, timestamp int64) *Entry {
	return &Entry{
		ID:        id,
		Kind:      KindDeposit,
		Timestamp: timestamp,
		Amount:    amount,
		AccountID: accountID,
	}
}

// NewWithdrawal creates a withdrawal entry debiting accountID.
func NewWithdrawal(id, accountID string, amount decimal.Decimal, timestamp int64) *Entry {
	return &Entry{
		ID:        id,
		Kind:      KindWithdrawal,
		Timestamp: timestamp,
		Amount:    amount,
		AccountID: accountID,
	}
}

// NewTransfer creates a pending two-party transfer with the given time to live.
func NewTransfer(id, fromAccountID, toAccountID string, amount decimal.Decimal, timestamp, ttl int64) *Entry {
	return &Entry{
		ID:            id,
		Kind:          KindTransfer,
		Timestamp:     timestamp,
		Amount:        amount,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		TTL:           ttl,
	}
}

// NewScheduled creates a scheduled transfer to be materialized at or after
// scheduledFor. It has no balance effect until processing turns it into a
// real transfer.
func NewScheduled(id, fromAccountID, toAccountID string, amount decimal.Decimal, timestamp, scheduledFor, ttl int64) *Entry {
	return &Entry{
		ID:            id,
		Kind:          KindScheduled,
		Timestamp:     timestamp,
		Amount:        amount,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		TTL:           ttl,
		ScheduledFor:  scheduledFor,
	}
}

// ExpiresAt returns the timestamp after which a pending transfer is expired.
// Meaningful only for KindTransfer.
func (e *Entry) ExpiresAt() int64 {
	return e.Timestamp + e.TTL
}

// StatusAt evaluates the entry's status as of the given timestamp.
// Callers are expected to have filtered out entries created after the
// query time; StatusAt does not re-check visibility.
func (e *Entry) StatusAt(timestamp int64) Status {
	switch e.Kind {
	case KindTransfer:
		if e.accepted {
			return StatusAccepted
		}
		if timestamp > e.ExpiresAt() {
			return StatusExpired
		}
		return StatusPending
	case KindScheduled:
		if e.accepted {
			return StatusAccepted
		}
		if e.rejected {
			return StatusRejected
		}
		return StatusPending
	default:
		// Deposits and withdrawals settle immediately.
		return StatusAccepted
	}
}

// Accept resolves a pending transfer or scheduled transfer as accepted.
// It fails for any other kind, and for entries that are no longer pending
// at the given timestamp, which makes a second Accept always return false.
func (e *Entry) Accept(timestamp int64) bool {
	if e.Kind != KindTransfer && e.Kind != KindScheduled {
		return false
	}
	if e.StatusAt(timestamp) != StatusPending {
		return false
	}
	e.accepted = true
	return true
}

// Reject resolves a pending scheduled transfer as rejected. Transfers have
// no manual cancellation path: their only way out of pending besides
// acceptance is passive expiry, so Reject on a transfer always fails.
func (e *Entry) Reject(timestamp int64) bool {
	if e.Kind != KindScheduled {
		return false
	}
	if e.StatusAt(timestamp) != StatusPending {
		return false
	}
	e.rejected = true
	return true
}

// Touches reports whether the entry references accountID on either side.
func (e *Entry) Touches(accountID string) bool {
	switch e.Kind {
	case KindDeposit, KindWithdrawal:
		return e.AccountID == accountID
	default:
		return e.FromAccountID == accountID || e.ToAccountID == accountID
	}
}

// Accounts returns the account IDs referencing this entry, in the order
// they index it (sender before recipient for two-party kinds).
func (e *Entry) Accounts() []string {
	switch e.Kind {
	case KindDeposit, KindWithdrawal:
		return []string{e.AccountID}
	default:
		return []string{e.FromAccountID, e.ToAccountID}
	}
}

// Clone returns an independent copy of the entry, including its current
// resolution flags. Read paths hand out clones so no live entry can be
// mutated outside the lifecycle operations.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}
