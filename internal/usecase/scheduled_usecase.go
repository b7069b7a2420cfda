package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/infrastructure/metrics"
)

// ScheduledUseCase drives the deferred-transfer state machine. A scheduled
// transfer sits pending with no balance effect until a processing run at
// or after its scheduled time either materializes it into a real transfer
// (accepted) or fails to (rejected). Both outcomes are terminal, which is
// what makes repeated processing runs idempotent.
type ScheduledUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	transfers   *TransferUseCase
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewScheduledUseCase creates a new ScheduledUseCase. Materialization goes
// through the transfer use case so that processing-time validation matches
// direct transfer creation exactly.
func NewScheduledUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	transfers *TransferUseCase,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ScheduledUseCase {
	return &ScheduledUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		transfers:   transfers,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// ScheduleTransferInput represents input for scheduling a transfer.
type ScheduleTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Timestamp     int64
	ScheduledFor  int64
	TTL           int64
}

// ScheduleTransfer validates and appends a scheduled transfer. No funds
// are held: the sender's balance is only checked when the schedule is
// processed.
func (uc *ScheduledUseCase) ScheduleTransfer(ctx context.Context, input ScheduleTransferInput) (*domain.Entry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, id := range []string{input.FromAccountID, input.ToAccountID} {
		ok, err := uc.accountRepo.ExistsTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			uc.countError("schedule_transfer")
			return nil, domain.ErrAccountNotFound
		}
	}

	if input.FromAccountID == input.ToAccountID {
		uc.countError("schedule_transfer")
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError("schedule_transfer")
		return nil, err
	}

	if input.TTL <= 0 {
		uc.countError("schedule_transfer")
		return nil, domain.ErrInvalidTTL
	}

	if input.ScheduledFor < input.Timestamp {
		uc.countError("schedule_transfer")
		return nil, domain.ErrInvalidScheduleTime
	}

	entry := domain.NewScheduled(
		uc.idGen.Generate(),
		input.FromAccountID,
		input.ToAccountID,
		input.Amount,
		input.Timestamp,
		input.ScheduledFor,
		input.TTL,
	)
	if err := uc.entryRepo.AppendTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(domain.KindScheduled)).Inc()
	}
	return entry, nil
}

// ProcessScheduledTransfers resolves every scheduled transfer that is
// still pending and due at the given timestamp, in entry creation order.
// A successful materialization marks the schedule accepted and yields the
// new transfer's identifier; a transfer that cannot be created at
// processing time (for example because the sender's balance has since
// dropped) rejects the schedule permanently. Either way the entry leaves
// pending, so a later run with an overlapping time range skips it.
func (uc *ScheduledUseCase) ProcessScheduledTransfers(ctx context.Context, timestamp int64) ([]string, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entries, err := uc.entryRepo.AllTx(ctx, tx, timestamp)
	if err != nil {
		return nil, err
	}

	transferIDs := []string{}
	for _, e := range entries {
		if e.Kind != domain.KindScheduled {
			continue
		}
		if e.StatusAt(timestamp) != domain.StatusPending || e.ScheduledFor > timestamp {
			continue
		}

		transfer, err := uc.transfers.createTransferTx(ctx, tx, CreateTransferInput{
			FromAccountID: e.FromAccountID,
			ToAccountID:   e.ToAccountID,
			Amount:        e.Amount,
			Timestamp:     timestamp,
			TTL:           e.TTL,
		})
		if err != nil {
			e.Reject(timestamp)
			uc.countOutcome("rejected")
			continue
		}

		e.Accept(timestamp)
		uc.countOutcome("accepted")
		transferIDs = append(transferIDs, transfer.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transferIDs, nil
}

// GetScheduledTransferIDs returns the identifiers of the account's
// scheduled transfers still pending as of the given timestamp, ascending
// by creation timestamp. Accepted and rejected schedules are excluded for
// good, not merely filtered by time.
func (uc *ScheduledUseCase) GetScheduledTransferIDs(ctx context.Context, accountID string, at int64) ([]string, error) {
	entries, err := uc.entryRepo.ListByAccount(ctx, accountID, at)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})

	ids := []string{}
	for _, e := range entries {
		if e.Kind == domain.KindScheduled && e.StatusAt(at) == domain.StatusPending {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

func (uc *ScheduledUseCase) countOutcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ScheduledProcessed.WithLabelValues(outcome).Inc()
	}
}

func (uc *ScheduledUseCase) countError(operation string) {
	if uc.metrics != nil {
		uc.metrics.OperationErrors.WithLabelValues(operation).Inc()
	}
}
