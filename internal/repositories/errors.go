package repositories

import "errors"

var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrEntryNotFound    = errors.New("ledger entry not found")
	ErrSourceNotFound   = errors.New("source record not found")

	// ErrDuplicateEntry surfaces the (source_kind, source_id) unique
	// constraint. On concurrent creates it means another writer already
	// synchronized this source; callers treat it as a no-op.
	ErrDuplicateEntry = errors.New("ledger entry already exists for source")
)
