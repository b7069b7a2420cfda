package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/infrastructure/metrics"
)

// AccountUseCase handles account registration and single-account entries.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. The idGen issues
// identifiers for deposits and withdrawals, which share one sequence.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccount registers a new account identifier. Fails with
// domain.ErrAccountExists if the identifier is already known.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidAccountID
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.accountRepo.CreateTx(ctx, tx, id); err != nil {
		uc.countError("create_account")
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return nil
}

// EntryInput represents input for a deposit or withdrawal.
type EntryInput struct {
	AccountID string
	Amount    decimal.Decimal
	Timestamp int64
}

// Deposit credits the account. The entry settles immediately and is
// visible to every query at or after its timestamp.
func (uc *AccountUseCase) Deposit(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError("deposit")
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := uc.accountRepo.ExistsTx(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.countError("deposit")
		return nil, domain.ErrAccountNotFound
	}

	entry := domain.NewDeposit(uc.idGen.Generate(), input.AccountID, input.Amount, input.Timestamp)
	if err := uc.entryRepo.AppendTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.countEntry(domain.KindDeposit)
	return entry, nil
}

// Withdraw debits the account. Fails with domain.ErrInsufficientFunds when
// the balance as of the entry's timestamp does not cover the amount,
// counting pending outgoing transfers as already spent.
func (uc *AccountUseCase) Withdraw(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError("withdraw")
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entries, err := uc.entryRepo.ListByAccountTx(ctx, tx, input.AccountID, input.Timestamp)
	if err != nil {
		uc.countError("withdraw")
		return nil, err
	}

	balance := domain.BalanceOf(input.AccountID, entries, input.Timestamp)
	if balance.LessThan(input.Amount) {
		uc.countError("withdraw")
		return nil, domain.ErrInsufficientFunds
	}

	entry := domain.NewWithdrawal(uc.idGen.Generate(), input.AccountID, input.Amount, input.Timestamp)
	if err := uc.entryRepo.AppendTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.countEntry(domain.KindWithdrawal)
	return entry, nil
}

func (uc *AccountUseCase) countEntry(kind domain.Kind) {
	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(kind)).Inc()
	}
}

func (uc *AccountUseCase) countError(operation string) {
	if uc.metrics != nil {
		uc.metrics.OperationErrors.WithLabelValues(operation).Inc()
	}
}
