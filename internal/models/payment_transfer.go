package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payout / withdrawal native statuses
const (
	TransferStatusPending  = "pending"
	TransferStatusSuccess  = "success"
	TransferStatusRejected = "rejected"
	TransferStatusDeleted  = "delete"
)

// Payment methods
const (
	MethodBkash  = "bkash"
	MethodNagad  = "nagad"
	MethodRocket = "rocket"
	MethodBank   = "bank"
)

// PaymentTransfer is the payout (cash-out to a customer) source record.
// Amount is the net figure the receiver gets; the ledger entry adds the fee
// on top. Once success or rejected only the transaction id and status may
// change.
type PaymentTransfer struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	MerchantID     uint            `gorm:"index;not null" json:"merchant_id"`
	TrxID          string          `gorm:"size:64" json:"trx_id,omitempty"`
	TrxUUID        string          `gorm:"size:64;uniqueIndex;not null" json:"trx_uuid"`
	ReceiverName   string          `gorm:"size:100;not null" json:"receiver_name"`
	ReceiverNumber string          `gorm:"size:14;not null" json:"receiver_number"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod  string          `gorm:"size:20;not null" json:"payment_method"`
	PaymentDetails JSON            `gorm:"type:jsonb" json:"payment_details,omitempty"`
	Status         string          `gorm:"size:10;not null;default:'pending'" json:"status"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (p *PaymentTransfer) BeforeCreate(tx *gorm.DB) error {
	if p.TrxUUID == "" {
		p.TrxUUID = NewHexID()
	}
	return nil
}

// Finalized reports whether the payout can still be edited.
func (p *PaymentTransfer) Finalized() bool {
	return p.Status == TransferStatusSuccess || p.Status == TransferStatusRejected || p.Status == TransferStatusDeleted
}
