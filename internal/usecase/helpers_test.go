package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/adapter/repository/memory"
	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

// fixture wires the use cases to a fresh in-memory store, the same way
// cmd/server does.
type fixture struct {
	accounts  *usecase.AccountUseCase
	ledger    *usecase.LedgerUseCase
	transfers *usecase.TransferUseCase
	scheduled *usecase.ScheduledUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	entryRepo := memory.NewEntryRepository(store)

	transfers := usecase.NewTransferUseCase(
		txManager, accountRepo, entryRepo, memory.NewSequenceGenerator("transfer"), nil)

	return &fixture{
		accounts: usecase.NewAccountUseCase(
			txManager, accountRepo, entryRepo, memory.NewSequenceGenerator("transaction"), nil),
		ledger:    usecase.NewLedgerUseCase(accountRepo, entryRepo),
		transfers: transfers,
		scheduled: usecase.NewScheduledUseCase(
			txManager, accountRepo, entryRepo, transfers, memory.NewSequenceGenerator("scheduled"), nil),
	}
}

func (f *fixture) mustCreateAccount(t *testing.T, id string) {
	t.Helper()

	if err := f.accounts.CreateAccount(context.Background(), id); err != nil {
		t.Fatalf("create account %s: %v", id, err)
	}
}

func (f *fixture) mustDeposit(t *testing.T, accountID string, amount, timestamp int64) *domain.Entry {
	t.Helper()

	entry, err := f.accounts.Deposit(context.Background(), usecase.EntryInput{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(amount),
		Timestamp: timestamp,
	})
	if err != nil {
		t.Fatalf("deposit %d to %s: %v", amount, accountID, err)
	}
	return entry
}

func (f *fixture) mustWithdraw(t *testing.T, accountID string, amount, timestamp int64) *domain.Entry {
	t.Helper()

	entry, err := f.accounts.Withdraw(context.Background(), usecase.EntryInput{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(amount),
		Timestamp: timestamp,
	})
	if err != nil {
		t.Fatalf("withdraw %d from %s: %v", amount, accountID, err)
	}
	return entry
}

func (f *fixture) mustTransfer(t *testing.T, from, to string, amount, timestamp, ttl int64) *domain.Entry {
	t.Helper()

	entry, err := f.transfers.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        decimal.NewFromInt(amount),
		Timestamp:     timestamp,
		TTL:           ttl,
	})
	if err != nil {
		t.Fatalf("transfer %d from %s to %s: %v", amount, from, to, err)
	}
	return entry
}

func (f *fixture) mustSchedule(t *testing.T, from, to string, amount, timestamp, scheduledFor, ttl int64) *domain.Entry {
	t.Helper()

	entry, err := f.scheduled.ScheduleTransfer(context.Background(), usecase.ScheduleTransferInput{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        decimal.NewFromInt(amount),
		Timestamp:     timestamp,
		ScheduledFor:  scheduledFor,
		TTL:           ttl,
	})
	if err != nil {
		t.Fatalf("schedule %d from %s to %s: %v", amount, from, to, err)
	}
	return entry
}

func (f *fixture) balance(t *testing.T, accountID string, at int64) int64 {
	t.Helper()

	balance, err := f.ledger.GetBalance(context.Background(), accountID, at)
	if err != nil {
		t.Fatalf("balance of %s at %d: %v", accountID, at, err)
	}
	if !balance.IsInteger() {
		t.Fatalf("balance of %s at %d = %s, want an integer", accountID, at, balance)
	}
	return balance.IntPart()
}
