package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawRequest is the merchant's own cash-out source record. Amount is the
// net figure paid to the merchant; the ledger reserves amount plus fee while
// the request is pending.
type WithdrawRequest struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	MerchantID    uint            `gorm:"index;not null" json:"merchant_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20" json:"payment_method,omitempty"`
	Status        string          `gorm:"size:10;not null;default:'pending'" json:"status"`
	Message       string          `json:"message,omitempty"`
	TrxID         string          `gorm:"size:64" json:"trx_id,omitempty"`
	TrxUUID       string          `gorm:"size:64;uniqueIndex;not null" json:"trx_uuid"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (r *WithdrawRequest) BeforeCreate(tx *gorm.DB) error {
	if r.TrxUUID == "" {
		r.TrxUUID = NewHexID()
	}
	return nil
}

// Finalized reports whether the request can still be edited.
func (r *WithdrawRequest) Finalized() bool {
	return r.Status == TransferStatusSuccess || r.Status == TransferStatusRejected || r.Status == TransferStatusDeleted
}
