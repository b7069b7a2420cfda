package usecase

import (
	"context"

	"github.com/iho/timebank/internal/domain"
)

// AccountRepository defines data access for accounts. Accounts own nothing
// but their ordered entry collections; the entries themselves live in the
// store's arena.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	ExistsTx(ctx context.Context, tx Transaction, id string) (bool, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// EntryRepository defines data access for ledger entries. All listing is
// as-of a query timestamp: entries created later are invisible. Plain
// methods return defensive copies; the *Tx variants run under an open
// transaction and return the live entries for lifecycle mutation.
type EntryRepository interface {
	AppendTx(ctx context.Context, tx Transaction, e *domain.Entry) error
	ListByAccount(ctx context.Context, accountID string, asOf int64) ([]*domain.Entry, error)
	ListByAccountTx(ctx context.Context, tx Transaction, accountID string, asOf int64) ([]*domain.Entry, error)
	AllTx(ctx context.Context, tx Transaction, asOf int64) ([]*domain.Entry, error)
	FindByID(ctx context.Context, id string, asOf int64) (*domain.Entry, error)
	FindForUpdateTx(ctx context.Context, tx Transaction, id string, asOf int64) (*domain.Entry, error)
}

// Transaction represents an exclusive hold on the store.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
