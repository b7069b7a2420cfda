package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalanceOf(t *testing.T) {
	deposit := NewDeposit("transaction0", "alice", decimal.NewFromInt(100), 1000)
	withdrawal := NewWithdrawal("transaction1", "alice", decimal.NewFromInt(30), 1500)
	transfer := NewTransfer("transfer0", "alice", "bob", decimal.NewFromInt(50), 2000, 1000)

	aliceEntries := []*Entry{deposit, withdrawal, transfer}
	bobEntries := []*Entry{transfer}

	t.Run("pending transfer holds sender funds", func(t *testing.T) {
		if got := BalanceOf("alice", aliceEntries, 2000); !got.Equal(decimal.NewFromInt(20)) {
			t.Errorf("alice balance = %s, want 20", got)
		}
		if got := BalanceOf("bob", bobEntries, 2000); !got.IsZero() {
			t.Errorf("bob balance = %s, want 0", got)
		}
	})

	t.Run("expired transfer refunds sender", func(t *testing.T) {
		if got := BalanceOf("alice", aliceEntries, 4000); !got.Equal(decimal.NewFromInt(70)) {
			t.Errorf("alice balance = %s, want 70", got)
		}
		if got := BalanceOf("bob", bobEntries, 4000); !got.IsZero() {
			t.Errorf("bob balance = %s, want 0", got)
		}
	})

	t.Run("accepted transfer credits recipient", func(t *testing.T) {
		accepted := NewTransfer("transfer1", "alice", "bob", decimal.NewFromInt(50), 2000, 1000)
		if !accepted.Accept(2500) {
			t.Fatal("accept failed")
		}

		alice := []*Entry{deposit, accepted}
		bob := []*Entry{accepted}

		if got := BalanceOf("alice", alice, 2500); !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("alice balance = %s, want 50", got)
		}
		if got := BalanceOf("bob", bob, 2500); !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("bob balance = %s, want 50", got)
		}
	})

	t.Run("scheduled entries contribute nothing", func(t *testing.T) {
		scheduled := NewScheduled("scheduled0", "alice", "bob", decimal.NewFromInt(500), 1200, 3000, 2000)
		entries := []*Entry{deposit, scheduled}

		if got := BalanceOf("alice", entries, 2000); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("alice balance = %s, want 100", got)
		}
	})
}

func TestVolumeOf(t *testing.T) {
	deposit := NewDeposit("transaction0", "alice", decimal.NewFromInt(100), 1000)
	withdrawal := NewWithdrawal("transaction1", "alice", decimal.NewFromInt(30), 1500)
	pending := NewTransfer("transfer0", "alice", "bob", decimal.NewFromInt(50), 2000, 1000)
	accepted := NewTransfer("transfer1", "alice", "bob", decimal.NewFromInt(40), 2000, 1000)
	if !accepted.Accept(2500) {
		t.Fatal("accept failed")
	}

	scheduled := NewScheduled("scheduled0", "alice", "bob", decimal.NewFromInt(999), 1000, 3000, 2000)
	if !scheduled.Accept(3000) {
		t.Fatal("accept failed")
	}

	entries := []*Entry{deposit, withdrawal, pending, accepted, scheduled}

	// Pending transfers and scheduled entries are excluded; deposits,
	// withdrawals and the accepted transfer count at full amount.
	if got := VolumeOf(entries, 2500); !got.Equal(decimal.NewFromInt(170)) {
		t.Errorf("volume = %s, want 170", got)
	}

	// After expiry the pending transfer still contributes nothing.
	if got := VolumeOf(entries, 4000); !got.Equal(decimal.NewFromInt(170)) {
		t.Errorf("volume = %s, want 170", got)
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr bool
	}{
		{"positive integer", decimal.NewFromInt(100), false},
		{"zero", decimal.Zero, true},
		{"negative", decimal.NewFromInt(-5), true},
		{"fractional", decimal.NewFromFloat(10.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
