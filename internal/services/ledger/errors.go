package ledger

import "errors"

// Service errors. All of them are detected before any persistence write and
// abort the enclosing transaction.
var (
	// ErrInsufficientBalance: a new or increased debit hold, or a debit
	// created already-final, would exceed the available/actual balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrImmutableTransition: the entry is already success or failed and may
	// only change through a new, distinct source event.
	ErrImmutableTransition = errors.New("entry already finalized")

	// ErrAmountMismatch: a debit amount changed between pending and success.
	ErrAmountMismatch = errors.New("amount cannot change when finalizing")

	ErrWalletNotFound   = errors.New("wallet not found")
	ErrMissingFeePolicy = errors.New("merchant fee policy not found")
	ErrEntryNotFound    = errors.New("ledger entry not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)
