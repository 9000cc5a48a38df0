package repositories

import (
	"errors"
	"fmt"

	"paycore/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository persists deposit source records.
type InvoiceRepository interface {
	Create(inv *models.Invoice) error
	GetByID(id uint) (*models.Invoice, error)
	GetByPaymentID(paymentID string) (*models.Invoice, error)
	Update(inv *models.Invoice) error
	ListByMerchant(merchantID uint, limit, offset int) ([]models.Invoice, error)
}

// PayoutRepository persists payout (cash-out to customer) source records.
type PayoutRepository interface {
	Create(p *models.PaymentTransfer) error
	GetByID(id uint) (*models.PaymentTransfer, error)
	Update(p *models.PaymentTransfer) error
	ListByMerchant(merchantID uint, limit, offset int) ([]models.PaymentTransfer, error)
}

// WithdrawRepository persists merchant withdrawal requests.
type WithdrawRepository interface {
	Create(r *models.WithdrawRequest) error
	GetByID(id uint) (*models.WithdrawRequest, error)
	Update(r *models.WithdrawRequest) error
	ListByMerchant(merchantID uint, limit, offset int) ([]models.WithdrawRequest, error)
}

type invoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(inv *models.Invoice) error {
	if err := r.db.Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, sourceErr("invoice", err)
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByPaymentID(paymentID string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.Where("invoice_payment_id = ?", paymentID).First(&inv).Error; err != nil {
		return nil, sourceErr("invoice", err)
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(inv *models.Invoice) error {
	if err := r.db.Save(inv).Error; err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) ListByMerchant(merchantID uint, limit, offset int) ([]models.Invoice, error) {
	var invs []models.Invoice
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").Limit(pageSize(limit)).Offset(offset).
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invs, nil
}

type payoutRepository struct{ db *gorm.DB }

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) Create(p *models.PaymentTransfer) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}
	return nil
}

func (r *payoutRepository) GetByID(id uint) (*models.PaymentTransfer, error) {
	var p models.PaymentTransfer
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, sourceErr("payout", err)
	}
	return &p, nil
}

func (r *payoutRepository) Update(p *models.PaymentTransfer) error {
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update payout: %w", err)
	}
	return nil
}

func (r *payoutRepository) ListByMerchant(merchantID uint, limit, offset int) ([]models.PaymentTransfer, error) {
	var ps []models.PaymentTransfer
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").Limit(pageSize(limit)).Offset(offset).
		Find(&ps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return ps, nil
}

type withdrawRepository struct{ db *gorm.DB }

func NewWithdrawRepository(db *gorm.DB) WithdrawRepository {
	return &withdrawRepository{db: db}
}

func (r *withdrawRepository) Create(w *models.WithdrawRequest) error {
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create withdraw request: %w", err)
	}
	return nil
}

func (r *withdrawRepository) GetByID(id uint) (*models.WithdrawRequest, error) {
	var w models.WithdrawRequest
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, sourceErr("withdraw request", err)
	}
	return &w, nil
}

func (r *withdrawRepository) Update(w *models.WithdrawRequest) error {
	if err := r.db.Save(w).Error; err != nil {
		return fmt.Errorf("failed to update withdraw request: %w", err)
	}
	return nil
}

func (r *withdrawRepository) ListByMerchant(merchantID uint, limit, offset int) ([]models.WithdrawRequest, error) {
	var ws []models.WithdrawRequest
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").Limit(pageSize(limit)).Offset(offset).
		Find(&ws).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdraw requests: %w", err)
	}
	return ws, nil
}

func sourceErr(kind string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSourceNotFound
	}
	return fmt.Errorf("failed to get %s: %w", kind, err)
}

func pageSize(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
