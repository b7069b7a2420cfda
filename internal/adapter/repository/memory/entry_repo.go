package memory

import (
	"context"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
//
// Read methods return clones so no live entry escapes the store; the *Tx
// variants used inside lifecycle mutations return the owned entries
// directly, relying on the transaction's exclusive hold.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// AppendTx adds an entry to the arena and indexes it from every account it
// references. All referenced accounts must exist.
func (r *EntryRepository) AppendTx(ctx context.Context, tx usecase.Transaction, e *domain.Entry) error {
	if _, err := storeTx(r.store, tx); err != nil {
		return err
	}

	accounts := e.Accounts()
	for _, id := range accounts {
		if _, ok := r.store.accounts[id]; !ok {
			return domain.ErrAccountNotFound
		}
	}

	r.store.entries[e.ID] = e
	r.store.order = append(r.store.order, e.ID)
	for _, id := range accounts {
		r.store.accounts[id] = append(r.store.accounts[id], e.ID)
	}
	return nil
}

// ListByAccount returns clones of the account's entries with timestamp <=
// asOf, in insertion order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, asOf int64) ([]*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries, err := r.listByAccountLocked(accountID, asOf)
	if err != nil {
		return nil, err
	}

	clones := make([]*domain.Entry, len(entries))
	for i, e := range entries {
		clones[i] = e.Clone()
	}
	return clones, nil
}

// ListByAccountTx is ListByAccount under an open transaction, returning the
// live entries.
func (r *EntryRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string, asOf int64) ([]*domain.Entry, error) {
	if _, err := storeTx(r.store, tx); err != nil {
		return nil, err
	}

	return r.listByAccountLocked(accountID, asOf)
}

func (r *EntryRepository) listByAccountLocked(accountID string, asOf int64) ([]*domain.Entry, error) {
	ids, ok := r.store.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	var entries []*domain.Entry
	for _, id := range ids {
		if e := r.store.entries[id]; e.Timestamp <= asOf {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// AllTx returns the live entries visible at asOf in creation order, under
// an open transaction. Each shared entry appears exactly once.
func (r *EntryRepository) AllTx(ctx context.Context, tx usecase.Transaction, asOf int64) ([]*domain.Entry, error) {
	if _, err := storeTx(r.store, tx); err != nil {
		return nil, err
	}

	var entries []*domain.Entry
	for _, id := range r.store.order {
		if e := r.store.entries[id]; e.Timestamp <= asOf {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// FindByID returns a clone of the entry if it exists and is visible at asOf.
func (r *EntryRepository) FindByID(ctx context.Context, id string, asOf int64) (*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.entries[id]
	if !ok || e.Timestamp > asOf {
		return nil, domain.ErrEntryNotFound
	}
	return e.Clone(), nil
}

// FindForUpdateTx returns the live entry if it exists and is visible at
// asOf, under an open transaction.
func (r *EntryRepository) FindForUpdateTx(ctx context.Context, tx usecase.Transaction, id string, asOf int64) (*domain.Entry, error) {
	if _, err := storeTx(r.store, tx); err != nil {
		return nil, err
	}

	e, ok := r.store.entries[id]
	if !ok || e.Timestamp > asOf {
		return nil, domain.ErrEntryNotFound
	}
	return e, nil
}
