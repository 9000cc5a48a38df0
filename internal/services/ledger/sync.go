package ledger

import (
	"paycore/internal/models"

	"github.com/shopspring/decimal"
)

// SourceEvent is the normalized tuple a source record hands to the ledger.
// Amount is the source's own amount: the gross arriving amount for invoices,
// the net receiver amount for payouts and withdrawals.
type SourceEvent struct {
	Source       models.SourceRef
	MerchantID   uint
	WalletID     uint // optional; resolved via MerchantID when zero
	Amount       decimal.Decimal
	NativeStatus string
	TrxID        string
	Method       string
	IPAddress    string
}

// Normalize maps a source kind and its native status onto the ledger
// vocabulary. ok is false when the event is not ledger-relevant yet (e.g. an
// invoice that is merely created) and no entry must exist for it.
func Normalize(kind models.SourceKind, nativeStatus, trxID string) (status models.EntryStatus, tranType models.TranType, bucket FeeBucket, ok bool) {
	switch kind {
	case models.SourceInvoice:
		// Invoices touch the wallet only once: paid with a transaction id.
		if nativeStatus == models.InvoicePayPaid && trxID != "" {
			return models.EntrySuccess, models.TranCredit, BucketDeposit, true
		}
		return "", models.TranCredit, BucketDeposit, false

	case models.SourcePayout:
		if nativeStatus == models.TransferStatusSuccess && trxID != "" {
			return models.EntrySuccess, models.TranDebit, BucketPayout, true
		}
		return models.EntryPending, models.TranDebit, BucketPayout, true

	case models.SourceWithdrawal:
		switch {
		case nativeStatus == models.TransferStatusRejected:
			return models.EntryFailed, models.TranDebit, BucketWithdraw, true
		case nativeStatus == models.TransferStatusPending && trxID == "":
			return models.EntryPending, models.TranDebit, BucketWithdraw, true
		default:
			return models.EntrySuccess, models.TranDebit, BucketWithdraw, true
		}
	}
	return "", "", "", false
}
