package models

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Merchant statuses
const (
	MerchantStatusActive   = "active"
	MerchantStatusInactive = "inactive"
)

// Fee types
const (
	FeeTypeFlat       = "flat"
	FeeTypePercentage = "percentage"
)

// Merchant is the fee-policy owner. The ledger reads its fee columns as
// configuration; it never writes them.
type Merchant struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	MerchantID     string          `gorm:"size:20;uniqueIndex;not null" json:"merchant_id"`
	BrandName      string          `gorm:"size:50;not null" json:"brand_name"`
	WhatsappNumber string          `gorm:"size:14" json:"whatsapp_number,omitempty"`
	DomainName     string          `gorm:"size:200" json:"domain_name,omitempty"`
	Status         string          `gorm:"size:20;not null;default:'active'" json:"status"`
	FeesType       string          `gorm:"size:12;not null;default:'percentage'" json:"fees_type"`
	DepositFees    decimal.Decimal `gorm:"type:numeric(5,2);not null;default:5" json:"deposit_fees"`
	PayoutFees     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:5" json:"payout_fees"`
	WithdrawFees   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:5" json:"withdraw_fees"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewMerchantCode returns the public 6-digit merchant identifier. Collisions
// are caught by the unique index and retried by the caller.
func NewMerchantCode() string {
	const digits = "0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
