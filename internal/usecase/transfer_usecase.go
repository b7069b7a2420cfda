package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/infrastructure/metrics"
)

// TransferUseCase drives the two-party transfer lifecycle: creation places
// a hold on the sender, acceptance releases it to the recipient, and a
// transfer left alone past its TTL expires on its own with no stored
// transition.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Timestamp     int64
	TTL           int64
}

// CreateTransfer validates and appends a pending transfer. The sender's
// computed balance drops by the amount immediately for every query at or
// after the creation timestamp, even though the recipient sees nothing
// until acceptance.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Entry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entry, err := uc.createTransferTx(ctx, tx, input)
	if err != nil {
		uc.countError("create_transfer")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.countEntry(domain.KindTransfer)
	return entry, nil
}

// createTransferTx runs the full validate-then-append sequence under an
// already-open transaction. The scheduled transfer processor reuses it to
// materialize transfers at processing time.
func (uc *TransferUseCase) createTransferTx(ctx context.Context, tx Transaction, input CreateTransferInput) (*domain.Entry, error) {
	for _, id := range []string{input.FromAccountID, input.ToAccountID} {
		ok, err := uc.accountRepo.ExistsTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.TTL <= 0 {
		return nil, domain.ErrInvalidTTL
	}

	senderEntries, err := uc.entryRepo.ListByAccountTx(ctx, tx, input.FromAccountID, input.Timestamp)
	if err != nil {
		return nil, err
	}

	balance := domain.BalanceOf(input.FromAccountID, senderEntries, input.Timestamp)
	if balance.LessThan(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	entry := domain.NewTransfer(
		uc.idGen.Generate(),
		input.FromAccountID,
		input.ToAccountID,
		input.Amount,
		input.Timestamp,
		input.TTL,
	)
	if err := uc.entryRepo.AppendTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// AcceptTransfer resolves a pending transfer as accepted as of the given
// timestamp. It fails with domain.ErrTransferNotFound when no transfer
// with the identifier is visible at that time, and with
// domain.ErrTransferNotPending when the transfer is already accepted or
// expired, so a repeated accept can never succeed twice.
func (uc *TransferUseCase) AcceptTransfer(ctx context.Context, id string, timestamp int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entry, err := uc.entryRepo.FindForUpdateTx(ctx, tx, id, timestamp)
	if err != nil || entry.Kind != domain.KindTransfer {
		uc.countError("accept_transfer")
		return domain.ErrTransferNotFound
	}

	if !entry.Accept(timestamp) {
		uc.countError("accept_transfer")
		return domain.ErrTransferNotPending
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersAccepted.Inc()
	}
	return nil
}

// GetTransferStatus evaluates a transfer's status as of the given
// timestamp: pending, accepted, or expired.
func (uc *TransferUseCase) GetTransferStatus(ctx context.Context, id string, at int64) (domain.Status, error) {
	entry, err := uc.entryRepo.FindByID(ctx, id, at)
	if err != nil || entry.Kind != domain.KindTransfer {
		return "", domain.ErrTransferNotFound
	}

	return entry.StatusAt(at), nil
}

func (uc *TransferUseCase) countEntry(kind domain.Kind) {
	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(kind)).Inc()
	}
}

func (uc *TransferUseCase) countError(operation string) {
	if uc.metrics != nil {
		uc.metrics.OperationErrors.WithLabelValues(operation).Inc()
	}
}
