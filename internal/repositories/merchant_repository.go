package repositories

import (
	"errors"
	"fmt"

	"paycore/internal/models"

	"gorm.io/gorm"
)

// MerchantRepository owns merchant rows and wallet provisioning. A merchant
// and its wallet are born in the same transaction.
type MerchantRepository interface {
	Create(m *models.Merchant) error
	GetByID(id uint) (*models.Merchant, error)
	GetByCode(code string) (*models.Merchant, error)
	Update(m *models.Merchant) error
}

type merchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

// Create inserts the merchant and provisions its wallet atomically. The
// 6-digit public code is regenerated on collision.
func (r *merchantRepository) Create(m *models.Merchant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for attempt := 0; ; attempt++ {
			if m.MerchantID == "" {
				m.MerchantID = models.NewMerchantCode()
			}
			err := tx.Create(m).Error
			if err == nil {
				break
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < 5 {
				m.MerchantID = ""
				continue
			}
			return fmt.Errorf("failed to create merchant: %w", err)
		}
		wallet := &models.MerchantWallet{MerchantID: m.ID}
		if err := tx.Create(wallet).Error; err != nil {
			return fmt.Errorf("failed to provision wallet: %w", err)
		}
		return nil
	})
}

func (r *merchantRepository) GetByID(id uint) (*models.Merchant, error) {
	var m models.Merchant
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	return &m, nil
}

func (r *merchantRepository) GetByCode(code string) (*models.Merchant, error) {
	var m models.Merchant
	if err := r.db.Where("merchant_id = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	return &m, nil
}

func (r *merchantRepository) Update(m *models.Merchant) error {
	if err := r.db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to update merchant: %w", err)
	}
	return nil
}
