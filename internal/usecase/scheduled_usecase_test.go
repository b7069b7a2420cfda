package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

func TestScheduledUseCase_ScheduleTransfer(t *testing.T) {
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")
	f.mustDeposit(t, "alice", 100, 1000)

	entry := f.mustSchedule(t, "alice", "bob", 200, 2000, 5000, 1000)
	if entry.ID != "scheduled0" {
		t.Errorf("entry ID = %s, want scheduled0", entry.ID)
	}

	// Scheduling holds nothing, not even when the amount exceeds the
	// sender's balance. The check happens at processing time.
	if got := f.balance(t, "alice", 2000); got != 100 {
		t.Errorf("sender balance after scheduling = %d, want 100", got)
	}
}

func TestScheduledUseCase_ScheduleTransferErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")

	valid := usecase.ScheduleTransferInput{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.NewFromInt(50),
		Timestamp:     2000,
		ScheduledFor:  5000,
		TTL:           1000,
	}

	tests := []struct {
		name    string
		mutate  func(*usecase.ScheduleTransferInput)
		wantErr error
	}{
		{
			name:    "unknown sender",
			mutate:  func(in *usecase.ScheduleTransferInput) { in.FromAccountID = "ghost" },
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "same account",
			mutate:  func(in *usecase.ScheduleTransferInput) { in.ToAccountID = "alice" },
			wantErr: domain.ErrSameAccount,
		},
		{
			name:    "zero amount",
			mutate:  func(in *usecase.ScheduleTransferInput) { in.Amount = decimal.Zero },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "zero ttl",
			mutate:  func(in *usecase.ScheduleTransferInput) { in.TTL = 0 },
			wantErr: domain.ErrInvalidTTL,
		},
		{
			name:    "scheduled before creation",
			mutate:  func(in *usecase.ScheduleTransferInput) { in.ScheduledFor = 1999 },
			wantErr: domain.ErrInvalidScheduleTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			if _, err := f.scheduled.ScheduleTransfer(ctx, input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ScheduleTransfer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScheduledUseCase_ProcessScheduledTransfers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")
	f.mustDeposit(t, "alice", 100, 1000)

	due := f.mustSchedule(t, "alice", "bob", 50, 2000, 3000, 1000)
	future := f.mustSchedule(t, "alice", "bob", 10, 2000, 9000, 1000)

	ids, err := f.scheduled.ProcessScheduledTransfers(ctx, 3000)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"transfer0"}) {
		t.Errorf("processed transfer ids = %v, want [transfer0]", ids)
	}

	// The materialized transfer is a real pending transfer created at
	// processing time, not at the schedule's creation time.
	transfer, err := f.transfers.GetTransferStatus(ctx, "transfer0", 3000)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if transfer != domain.StatusPending {
		t.Errorf("materialized transfer status = %s, want pending", transfer)
	}
	if _, err := f.transfers.GetTransferStatus(ctx, "transfer0", 2999); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Errorf("status before processing error = %v, want ErrTransferNotFound", err)
	}
	if got := f.balance(t, "alice", 3000); got != 50 {
		t.Errorf("sender balance after processing = %d, want 50", got)
	}

	// A second run over the same range finds nothing to do.
	ids, err = f.scheduled.ProcessScheduledTransfers(ctx, 3500)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("second run ids = %v, want empty", ids)
	}

	// The future schedule is untouched and still listed.
	listed, err := f.scheduled.GetScheduledTransferIDs(ctx, "alice", 3500)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(listed, []string{future.ID}) {
		t.Errorf("pending schedules = %v, want [%s]", listed, future.ID)
	}
	if due.ID != "scheduled0" {
		t.Errorf("due schedule ID = %s, want scheduled0", due.ID)
	}
}

func TestScheduledUseCase_ProcessRejectsUnfundable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")
	f.mustDeposit(t, "alice", 100, 1000)
	f.mustSchedule(t, "alice", "bob", 200, 2000, 3000, 1000)

	ids, err := f.scheduled.ProcessScheduledTransfers(ctx, 3000)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("processed ids = %v, want empty", ids)
	}

	// Rejection is permanent: the schedule drops out of the pending
	// listing and a later run never retries it, even once the sender
	// could cover the amount.
	listed, err := f.scheduled.GetScheduledTransferIDs(ctx, "alice", 3000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("pending schedules = %v, want empty", listed)
	}

	f.mustDeposit(t, "alice", 500, 4000)
	ids, err = f.scheduled.ProcessScheduledTransfers(ctx, 5000)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids after refunding = %v, want empty", ids)
	}

	if got := f.balance(t, "alice", 5000); got != 600 {
		t.Errorf("sender balance = %d, want 600", got)
	}
}

func TestScheduledUseCase_ProcessOrderAndAccumulation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")
	f.mustDeposit(t, "alice", 100, 1000)

	// Three schedules against a balance that covers only the first two.
	// Processing walks creation order, so the holds of earlier
	// materializations starve the last one.
	f.mustSchedule(t, "alice", "bob", 60, 2000, 3000, 1000)
	f.mustSchedule(t, "alice", "bob", 40, 2100, 3000, 1000)
	f.mustSchedule(t, "alice", "bob", 10, 2200, 3000, 1000)

	ids, err := f.scheduled.ProcessScheduledTransfers(ctx, 3000)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"transfer0", "transfer1"}) {
		t.Errorf("processed ids = %v, want [transfer0 transfer1]", ids)
	}

	if got := f.balance(t, "alice", 3000); got != 0 {
		t.Errorf("sender balance = %d, want 0", got)
	}

	listed, err := f.scheduled.GetScheduledTransferIDs(ctx, "alice", 3000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("pending schedules = %v, want empty (the starved one is rejected)", listed)
	}
}

func TestScheduledUseCase_GetScheduledTransferIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.mustCreateAccount(t, "alice")
	f.mustCreateAccount(t, "bob")
	f.mustDeposit(t, "alice", 100, 1000)

	later := f.mustSchedule(t, "alice", "bob", 10, 3000, 9000, 1000)
	earlier := f.mustSchedule(t, "alice", "bob", 20, 2000, 9500, 1000)

	// Ordered by creation timestamp, not by scheduled time or insertion.
	listed, err := f.scheduled.GetScheduledTransferIDs(ctx, "alice", 4000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(listed, []string{earlier.ID, later.ID}) {
		t.Errorf("pending schedules = %v, want [%s %s]", listed, earlier.ID, later.ID)
	}

	// A due-but-unprocessed schedule is still pending and still listed.
	listed, err = f.scheduled.GetScheduledTransferIDs(ctx, "alice", 9600)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("pending schedules at 9600 = %v, want both", listed)
	}

	// Before either was created, nothing is visible.
	listed, err = f.scheduled.GetScheduledTransferIDs(ctx, "alice", 1500)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("pending schedules at 1500 = %v, want empty", listed)
	}

	if _, err := f.scheduled.GetScheduledTransferIDs(ctx, "ghost", 4000); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("list ghost error = %v, want ErrAccountNotFound", err)
	}
}
