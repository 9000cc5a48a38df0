package models

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice statuses
const (
	InvoiceStatusActive   = "active"
	InvoiceStatusDeactive = "deactive"
	InvoiceStatusDeleted  = "delete"
)

// Invoice payment statuses (the invoice's native vocabulary)
const (
	InvoicePayPending   = "pending"
	InvoicePayUnpaid    = "unpaid"
	InvoicePayPaid      = "paid"
	InvoicePayFailed    = "failed"
	InvoicePayCancelled = "cancelled"
)

// Invoice is the deposit source record. It credits the wallet exactly once:
// when it is active, marked paid and carries a gateway transaction id.
type Invoice struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	MerchantID          uint            `gorm:"index;not null" json:"merchant_id"`
	InvoicePaymentID    string          `gorm:"size:64;uniqueIndex;not null" json:"invoice_payment_id"`
	CallbackURL         string          `gorm:"size:250" json:"callback_url,omitempty"`
	CustomerOrderID     string          `gorm:"size:100" json:"customer_order_id,omitempty"`
	CustomerName        string          `gorm:"size:100;not null" json:"customer_name"`
	CustomerNumber      string          `gorm:"size:14;not null" json:"customer_number"`
	CustomerAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"customer_amount"`
	CustomerEmail       string          `gorm:"size:200" json:"customer_email,omitempty"`
	CustomerAddress     string          `gorm:"size:250" json:"customer_address,omitempty"`
	CustomerDescription string          `json:"customer_description,omitempty"`
	Method              string          `gorm:"size:50" json:"method,omitempty"`
	Note                string          `json:"note,omitempty"`
	Status              string          `gorm:"size:15;not null;default:'active'" json:"status"`
	PayStatus           string          `gorm:"size:15;not null;default:'pending'" json:"pay_status"`
	TransactionID       string          `gorm:"size:64" json:"transaction_id,omitempty"`
	InvoiceTrxn         string          `gorm:"size:64" json:"invoice_trxn,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.InvoicePaymentID == "" {
		i.InvoicePaymentID = NewHexID()
	}
	if i.InvoiceTrxn == "" {
		i.InvoiceTrxn = NewInvoiceTrxn()
	}
	return nil
}

// NewInvoiceTrxn builds the short human-facing reference, e.g. "FQL561560":
// three uppercase letters followed by six digits.
func NewInvoiceTrxn() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const digits = "0123456789"
	b := make([]byte, 9)
	for i := 0; i < 3; i++ {
		b[i] = letters[rand.Intn(len(letters))]
	}
	for i := 3; i < 9; i++ {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
