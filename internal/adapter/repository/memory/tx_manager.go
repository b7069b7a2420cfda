package memory

import (
	"context"

	"github.com/iho/timebank/internal/usecase"
)

// TxManager implements usecase.TransactionManager. A memory transaction is
// the store's write lock: Begin acquires it and Commit/Rollback release it
// exactly once. This is what makes a use case's validate-then-append
// sequence atomic with respect to every other query and mutation.
//
// The transaction provides mutual exclusion, not undo. Writes apply
// immediately, so use cases must finish all validation before their first
// write; a rolled-back transaction then has nothing to unwind.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager for the store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction, blocking until the store is exclusively
// held.
func (m *TxManager) Begin(_ context.Context) (usecase.Transaction, error) {
	m.store.mu.Lock()
	return &Tx{store: m.store}, nil
}

// Tx holds the store's write lock until closed.
type Tx struct {
	store *Store
	done  bool
}

// Commit releases the store. Committing a closed transaction is an error.
func (t *Tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// Rollback releases the store. Rolling back a closed transaction is a
// no-op, so `defer tx.Rollback(ctx)` after a successful Commit is safe.
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// open reports the transaction usable for repository access.
func (t *Tx) open() bool {
	return !t.done
}

// storeTx asserts that tx is an open transaction on store.
func storeTx(store *Store, tx usecase.Transaction) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt.store != store {
		return nil, ErrInvalidTx
	}
	if !mt.open() {
		return nil, ErrTxClosed
	}
	return mt, nil
}
