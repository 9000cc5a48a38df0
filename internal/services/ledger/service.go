// Package ledger implements the wallet ledger engine: fee computation, the
// debit/credit transition state machine, and idempotent synchronization of
// source records (invoices, payouts, withdrawal requests) into ledger
// entries against the merchant wallet.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paycore/internal/models"
	"paycore/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo      repositories.LedgerRepository
	merchants repositories.MerchantRepository
	cache     SnapshotCache
	metrics   MetricsCollector
}

// NewService creates the ledger service. Cache and metrics are optional.
func NewService(
	repo repositories.LedgerRepository,
	merchants repositories.MerchantRepository,
	cache SnapshotCache,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if merchants == nil {
		panic("merchant repository is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		repo:      repo,
		merchants: merchants,
		cache:     cache,
		metrics:   metrics,
	}
}

func (s *service) SyncSource(ctx context.Context, ev SourceEvent) (*models.LedgerEntry, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("sync_source", time.Since(started))
	}()

	status, tranType, bucket, ok := Normalize(ev.Source.Kind, ev.NativeStatus, ev.TrxID)
	if !ok {
		return nil, nil
	}
	if !ev.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	policy, err := s.PolicyFor(ctx, ev.MerchantID)
	if err != nil {
		return nil, err
	}

	var quote FeeQuote
	if tranType == models.TranCredit {
		quote = QuoteCredit(&policy, bucket, ev.Amount)
	} else {
		quote = QuoteDebit(&policy, bucket, ev.Amount)
	}

	var entry *models.LedgerEntry
	err = s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		wallet, err := s.lockWallet(tx, ev)
		if err != nil {
			return err
		}

		prior, err := tx.GetEntryBySource(ev.Source)
		if err != nil && !errors.Is(err, repositories.ErrEntryNotFound) {
			return err
		}

		// Idempotent replay: the same source in the same normalized status
		// with the same money must not re-apply balance effects.
		if prior != nil && prior.Status == status && prior.Amount.Equal(quote.Amount) {
			entry = prior
			return nil
		}

		var p *Prior
		if prior != nil {
			p = &Prior{Status: prior.Status, Amount: prior.Amount}
		}
		prevBalance := wallet.Balance
		if err := PlanTransition(wallet, tranType, p, status, quote.Amount, quote.NetAmount); err != nil {
			return err
		}
		if err := tx.UpdateWallet(wallet); err != nil {
			return err
		}

		if prior == nil {
			entry = &models.LedgerEntry{
				WalletID:        wallet.ID,
				MerchantID:      ev.MerchantID,
				Source:          ev.Source,
				Amount:          quote.Amount,
				Fee:             quote.Fee,
				NetAmount:       quote.NetAmount,
				PreviousBalance: prevBalance,
				CurrentBalance:  wallet.Balance,
				Method:          ev.Method,
				Status:          status,
				TranType:        tranType,
				TrxID:           ev.TrxID,
				IPAddress:       ev.IPAddress,
			}
			return tx.CreateEntry(entry)
		}

		prior.Amount = quote.Amount
		prior.Fee = quote.Fee
		prior.NetAmount = quote.NetAmount
		prior.CurrentBalance = wallet.Balance
		prior.Status = status
		if ev.TrxID != "" {
			prior.TrxID = ev.TrxID
		}
		if ev.Method != "" {
			prior.Method = ev.Method
		}
		entry = prior
		return tx.UpdateEntry(prior)
	})

	if errors.Is(err, repositories.ErrDuplicateEntry) {
		// Lost the create race: another writer synchronized this source
		// first. The unique constraint is the idempotency guard, so this is
		// a no-op success.
		return s.GetEntryBySource(ctx, ev.Source)
	}
	if err != nil {
		s.metrics.RecordError("sync_source", err.Error())
		return nil, err
	}

	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx, ev.MerchantID); cerr != nil {
			s.metrics.RecordError("cache_invalidate", cerr.Error())
		}
	}
	s.metrics.RecordSync(string(ev.Source.Kind), string(status))
	return entry, nil
}

func (s *service) lockWallet(tx repositories.LedgerRepository, ev SourceEvent) (*models.MerchantWallet, error) {
	var (
		wallet *models.MerchantWallet
		err    error
	)
	if ev.WalletID != 0 {
		wallet, err = tx.GetWalletForUpdate(ev.WalletID)
	} else {
		wallet, err = tx.GetWalletByMerchantForUpdate(ev.MerchantID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func (s *service) GetWalletSnapshot(ctx context.Context, merchantID uint) (*models.WalletSnapshot, error) {
	if s.cache != nil {
		if snap, err := s.cache.GetSnapshot(ctx, merchantID); err == nil {
			return snap, nil
		}
	}

	wallet, err := s.repo.GetWalletByMerchant(merchantID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	snap := &models.WalletSnapshot{
		MerchantID:         merchantID,
		WalletID:           wallet.WalletID,
		Balance:            wallet.Balance,
		AvailableBalance:   wallet.AvailableBalance(),
		WithdrawProcessing: wallet.WithdrawProcessing,
		TotalWithdraw:      wallet.TotalWithdraw,
	}
	if s.cache != nil {
		if cerr := s.cache.SetSnapshot(ctx, snap); cerr != nil {
			s.metrics.RecordError("cache_set", cerr.Error())
		}
	}
	return snap, nil
}

func (s *service) ListEntries(ctx context.Context, merchantID uint, f repositories.EntryFilter) ([]models.LedgerEntry, error) {
	return s.repo.ListEntries(ctx, merchantID, f)
}

func (s *service) GetEntryBySource(ctx context.Context, src models.SourceRef) (*models.LedgerEntry, error) {
	entry, err := s.repo.GetEntryBySource(src)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *service) QuoteDebit(ctx context.Context, merchantID uint, bucket FeeBucket, net decimal.Decimal) (FeeQuote, error) {
	if !net.IsPositive() {
		return FeeQuote{}, ErrInvalidAmount
	}
	policy, err := s.PolicyFor(ctx, merchantID)
	if err != nil {
		return FeeQuote{}, err
	}
	quote := QuoteDebit(&policy, bucket, net)

	snap, err := s.GetWalletSnapshot(ctx, merchantID)
	if err != nil {
		return FeeQuote{}, err
	}
	if snap.AvailableBalance.LessThan(quote.Amount) {
		return quote, ErrInsufficientBalance
	}
	return quote, nil
}

func (s *service) PolicyFor(ctx context.Context, merchantID uint) (FeePolicy, error) {
	m, err := s.merchants.GetByID(merchantID)
	if err != nil {
		if errors.Is(err, repositories.ErrMerchantNotFound) {
			return FeePolicy{}, ErrMissingFeePolicy
		}
		return FeePolicy{}, err
	}
	return NewFeePolicy(m), nil
}
