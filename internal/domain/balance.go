package domain

import "github.com/shopspring/decimal"

// The temporal queries are pure folds over an account's entries evaluated
// at a fixed query timestamp. Nothing here caches or stores results:
// balances are always recomputed from history, which is what makes
// querying the past and implicit expiry refunds fall out for free.

// BalanceOf folds the entries of accountID into its balance as of
// timestamp. Entries must already be filtered to Timestamp <= timestamp.
//
// A pending transfer debits the sender immediately (the hold) but credits
// the recipient only once accepted. An expired transfer contributes
// nothing to either side, which refunds the sender without any
// compensating entry. Scheduled transfers never contribute directly.
func BalanceOf(accountID string, entries []*Entry, timestamp int64) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		switch e.Kind {
		case KindDeposit:
			total = total.Add(e.Amount)
		case KindWithdrawal:
			total = total.Sub(e.Amount)
		case KindTransfer:
			status := e.StatusAt(timestamp)
			switch {
			case status == StatusAccepted && e.ToAccountID == accountID:
				total = total.Add(e.Amount)
			case (status == StatusAccepted || status == StatusPending) && e.FromAccountID == accountID:
				total = total.Sub(e.Amount)
			}
		case KindScheduled:
			// Effect appears only through the transfer it materializes.
		}
	}
	return total
}

// VolumeOf folds the entries into the account's transaction volume as of
// timestamp: the sum of amounts over entries accepted at that time.
// Scheduled transfers are excluded even once internally accepted; their
// volume is carried by the materialized transfer.
func VolumeOf(entries []*Entry, timestamp int64) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Kind == KindScheduled {
			continue
		}
		if e.StatusAt(timestamp) == StatusAccepted {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ValidateAmount checks that an amount is a strictly positive whole number.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || !amount.IsInteger() {
		return ErrInvalidAmount
	}
	return nil
}
