package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
)

// LedgerUseCase answers the temporal queries: balance, volume, ranking and
// history, each as of an arbitrary query timestamp. All queries recompute
// from the full entry history; none of them mutate anything.
type LedgerUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// GetBalance returns the account's balance as of the given timestamp.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountID string, at int64) (decimal.Decimal, error) {
	entries, err := uc.entryRepo.ListByAccount(ctx, accountID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.BalanceOf(accountID, entries, at), nil
}

// GetTransactionVolume returns the sum of amounts over the account's
// entries accepted as of the given timestamp.
func (uc *LedgerUseCase) GetTransactionVolume(ctx context.Context, accountID string, at int64) (decimal.Decimal, error) {
	entries, err := uc.entryRepo.ListByAccount(ctx, accountID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.VolumeOf(entries, at), nil
}

// AccountVolume pairs an account with its transaction volume.
type AccountVolume struct {
	AccountID string
	Volume    decimal.Decimal
}

// GetTopAccounts ranks all accounts by transaction volume as of the given
// timestamp, descending, ties broken by ascending account identifier, and
// returns the first n. Negative n yields an empty result.
func (uc *LedgerUseCase) GetTopAccounts(ctx context.Context, n int, at int64) ([]AccountVolume, error) {
	if n <= 0 {
		return []AccountVolume{}, nil
	}

	ids, err := uc.accountRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make([]AccountVolume, 0, len(ids))
	for _, id := range ids {
		entries, err := uc.entryRepo.ListByAccount(ctx, id, at)
		if err != nil {
			return nil, err
		}

		ranking = append(ranking, AccountVolume{
			AccountID: id,
			Volume:    domain.VolumeOf(entries, at),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if !ranking[i].Volume.Equal(ranking[j].Volume) {
			return ranking[i].Volume.GreaterThan(ranking[j].Volume)
		}
		return ranking[i].AccountID < ranking[j].AccountID
	})

	if n < len(ranking) {
		ranking = ranking[:n]
	}
	return ranking, nil
}

// GetTransactionHistory renders the account's accepted entries as of the
// given timestamp, ascending by entry timestamp, as "<kind> <amount>
// <timestamp>" lines. Equal timestamps keep insertion order. Scheduled
// transfers never appear; their materialized transfers do.
func (uc *LedgerUseCase) GetTransactionHistory(ctx context.Context, accountID string, at int64) ([]string, error) {
	entries, err := uc.entryRepo.ListByAccount(ctx, accountID, at)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})

	history := []string{}
	for _, e := range entries {
		if e.Kind == domain.KindScheduled {
			continue
		}
		if e.StatusAt(at) != domain.StatusAccepted {
			continue
		}
		history = append(history, fmt.Sprintf("%s %s %d", e.Kind, e.Amount, e.Timestamp))
	}
	return history, nil
}
