package ledger

import (
	"fmt"

	"paycore/internal/models"

	"github.com/shopspring/decimal"
)

// Prior captures the state of an existing ledger entry that a transition
// starts from. Amount is the gross figure recorded on the entry.
type Prior struct {
	Status models.EntryStatus
	Amount decimal.Decimal
}

// PlanTransition applies the wallet deltas for moving a ledger entry into
// next. It mutates w in memory only; the caller persists wallet and entry in
// one transaction, or nothing at all. prior is nil when the entry is being
// created.
//
// The debit table:
//
//	(none)   -> pending  reserve gross: balance -= g, processing += g (needs available >= g)
//	(none)   -> success  instant debit: balance -= g, total += g (needs balance >= g)
//	(none)   -> failed   no effect
//	pending  -> pending  re-size hold by diff (needs available >= diff when diff > 0)
//	pending  -> success  settle hold: processing -= g, total += g (amount frozen)
//	pending  -> failed   release hold: processing -= g, balance += g
//	final    -> any      rejected
//
// Credits only move money on success (balance += net); there are no
// credit-side holds.
func PlanTransition(w *models.MerchantWallet, tranType models.TranType, prior *Prior, next models.EntryStatus, gross, net decimal.Decimal) error {
	switch tranType {
	case models.TranDebit:
		return planDebit(w, prior, next, gross)
	case models.TranCredit:
		return planCredit(w, prior, next, net)
	}
	return fmt.Errorf("unknown tran_type %q", tranType)
}

func planDebit(w *models.MerchantWallet, prior *Prior, next models.EntryStatus, gross decimal.Decimal) error {
	if prior == nil {
		switch next {
		case models.EntryPending:
			if w.AvailableBalance().LessThan(gross) {
				return ErrInsufficientBalance
			}
			w.Balance = w.Balance.Sub(gross)
			w.WithdrawProcessing = w.WithdrawProcessing.Add(gross)
		case models.EntrySuccess:
			if w.Balance.LessThan(gross) {
				return ErrInsufficientBalance
			}
			w.Balance = w.Balance.Sub(gross)
			w.TotalWithdraw = w.TotalWithdraw.Add(gross)
		case models.EntryFailed:
			// a debit born failed never touched the wallet
		}
		return nil
	}

	switch prior.Status {
	case models.EntryPending:
		switch next {
		case models.EntryPending:
			diff := gross.Sub(prior.Amount)
			if diff.IsPositive() && w.AvailableBalance().LessThan(diff) {
				return ErrInsufficientBalance
			}
			w.Balance = w.Balance.Sub(diff)
			w.WithdrawProcessing = w.WithdrawProcessing.Add(diff)
		case models.EntrySuccess:
			if !gross.Equal(prior.Amount) {
				return ErrAmountMismatch
			}
			w.WithdrawProcessing = w.WithdrawProcessing.Sub(prior.Amount)
			w.TotalWithdraw = w.TotalWithdraw.Add(prior.Amount)
		case models.EntryFailed:
			w.WithdrawProcessing = w.WithdrawProcessing.Sub(prior.Amount)
			w.Balance = w.Balance.Add(prior.Amount)
		}
		return nil
	case models.EntrySuccess, models.EntryFailed:
		return ErrImmutableTransition
	}
	return nil
}

func planCredit(w *models.MerchantWallet, prior *Prior, next models.EntryStatus, net decimal.Decimal) error {
	if prior == nil {
		if next == models.EntrySuccess {
			w.Balance = w.Balance.Add(net)
		}
		return nil
	}
	switch prior.Status {
	case models.EntryPending:
		if next == models.EntrySuccess {
			w.Balance = w.Balance.Add(net)
		}
		return nil
	case models.EntrySuccess, models.EntryFailed:
		return ErrImmutableTransition
	}
	return nil
}
