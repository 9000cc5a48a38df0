package repositories

import (
	"context"
	"time"

	"paycore/internal/models"
)

// EntryFilter narrows ListEntries. Zero values mean "no filter"; Limit
// defaults to a sane page size in the implementation.
type EntryFilter struct {
	Status   models.EntryStatus
	TranType models.TranType
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// LedgerRepository persists wallets and ledger entries. Mutating methods are
// only meaningful inside ExecuteInTransaction, where GetWalletForUpdate and
// GetWalletByMerchantForUpdate take an exclusive row lock for the rest of the
// transaction.
type LedgerRepository interface {
	CreateWallet(w *models.MerchantWallet) error
	GetWalletByMerchant(merchantID uint) (*models.MerchantWallet, error)
	GetWalletForUpdate(walletID uint) (*models.MerchantWallet, error)
	GetWalletByMerchantForUpdate(merchantID uint) (*models.MerchantWallet, error)
	UpdateWallet(w *models.MerchantWallet) error

	CreateEntry(e *models.LedgerEntry) error
	UpdateEntry(e *models.LedgerEntry) error
	GetEntryBySource(src models.SourceRef) (*models.LedgerEntry, error)
	ListEntries(ctx context.Context, merchantID uint, f EntryFilter) ([]models.LedgerEntry, error)

	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
