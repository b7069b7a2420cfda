package memory

import (
	"context"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// CreateTx registers a new account under an open transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if _, err := storeTx(r.store, tx); err != nil {
		return err
	}

	if _, ok := r.store.accounts[id]; ok {
		return domain.ErrAccountExists
	}

	r.store.accounts[id] = nil
	r.store.accountOrder = append(r.store.accountOrder, id)
	return nil
}

// Exists reports whether the account is known.
func (r *AccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.accounts[id]
	return ok, nil
}

// ExistsTx reports whether the account is known, under an open transaction.
func (r *AccountRepository) ExistsTx(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	if _, err := storeTx(r.store, tx); err != nil {
		return false, err
	}

	_, ok := r.store.accounts[id]
	return ok, nil
}

// ListIDs returns all account IDs in creation order.
func (r *AccountRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, len(r.store.accountOrder))
	copy(ids, r.store.accountOrder)
	return ids, nil
}
