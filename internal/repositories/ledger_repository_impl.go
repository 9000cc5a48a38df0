package repositories

import (
	"context"
	"errors"
	"fmt"

	"paycore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateWallet(w *models.MerchantWallet) error {
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetWalletByMerchant(merchantID uint) (*models.MerchantWallet, error) {
	var wallet models.MerchantWallet
	if err := r.db.Where("merchant_id = ?", merchantID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// GetWalletForUpdate locks the wallet row with SELECT ... FOR UPDATE. Two
// concurrent debit holds against the same wallet must observe each other's
// effect on the available balance, so the lock is mandatory.
func (r *ledgerRepository) GetWalletForUpdate(walletID uint) (*models.MerchantWallet, error) {
	var wallet models.MerchantWallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, walletID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletByMerchantForUpdate(merchantID uint) (*models.MerchantWallet, error) {
	var wallet models.MerchantWallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("merchant_id = ?", merchantID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) UpdateWallet(w *models.MerchantWallet) error {
	if err := r.db.Save(w).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateEntry(e *models.LedgerEntry) error {
	if err := r.db.Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateEntry(e *models.LedgerEntry) error {
	if err := r.db.Save(e).Error; err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetEntryBySource(src models.SourceRef) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.Where("source_kind = ? AND source_id = ?", src.Kind, src.ID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return &entry, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, merchantID uint, f EntryFilter) ([]models.LedgerEntry, error) {
	q := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TranType != "" {
		q = q.Where("tran_type = ?", f.TranType)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	var entries []models.LedgerEntry
	err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
