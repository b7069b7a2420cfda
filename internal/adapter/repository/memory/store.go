// Package memory implements the usecase repository interfaces on top of an
// in-memory entry arena. The ledger lives only for the lifetime of the
// process; there is no durability layer by design.
package memory

import (
	"errors"
	"sync"

	"github.com/iho/timebank/internal/domain"
)

var (
	// ErrTxClosed is returned when a repository method receives a
	// transaction that has already been committed or rolled back.
	ErrTxClosed = errors.New("memory: transaction is closed")

	// ErrInvalidTx is returned when a repository method receives a
	// transaction that did not come from this store's TxManager.
	ErrInvalidTx = errors.New("memory: transaction does not belong to this store")
)

// Store is the central arena for all ledger entries. Entries are owned by
// the arena and keyed by identifier; each account holds only the ordered
// identifiers of the entries referencing it, so a two-party transfer exists
// exactly once no matter how many collections index it.
//
// A single RWMutex serializes access: TxManager transactions take the write
// lock for validate-then-append atomicity, plain read methods take the read
// lock and return clones.
type Store struct {
	mu sync.RWMutex

	entries map[string]*domain.Entry
	order   []string // entry IDs in creation order

	accounts     map[string][]string // account ID -> entry IDs, insertion order
	accountOrder []string            // account IDs in creation order
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*domain.Entry),
		accounts: make(map[string][]string),
	}
}
