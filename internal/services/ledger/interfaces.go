package ledger

import (
	"context"

	"paycore/internal/models"
	"paycore/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service is the wallet ledger engine boundary exposed to collaborators.
type Service interface {
	// SyncSource maps one source event to at most one ledger entry and
	// applies its balance effect. Replaying the same (source, status, amount)
	// is a no-op returning the existing entry. A nil entry with nil error
	// means the event is not ledger-relevant yet.
	SyncSource(ctx context.Context, ev SourceEvent) (*models.LedgerEntry, error)

	GetWalletSnapshot(ctx context.Context, merchantID uint) (*models.WalletSnapshot, error)
	ListEntries(ctx context.Context, merchantID uint, f repositories.EntryFilter) ([]models.LedgerEntry, error)
	GetEntryBySource(ctx context.Context, src models.SourceRef) (*models.LedgerEntry, error)

	// QuoteDebit prices a debit for the merchant's policy and checks the
	// gross against the current available balance. Used by payout/withdraw
	// creation as a pre-flight; the transition engine re-checks under lock.
	QuoteDebit(ctx context.Context, merchantID uint, bucket FeeBucket, net decimal.Decimal) (FeeQuote, error)

	// PolicyFor builds the merchant's validated fee policy.
	PolicyFor(ctx context.Context, merchantID uint) (FeePolicy, error)
}

// SnapshotCache is the wallet snapshot cache consumed by the service. The
// redis implementation lives in repositories/cache.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, merchantID uint) (*models.WalletSnapshot, error)
	SetSnapshot(ctx context.Context, snap *models.WalletSnapshot) error
	Invalidate(ctx context.Context, merchantID uint) error
}
