package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MerchantWallet is the single balance aggregate for one merchant.
// Balance and WithdrawProcessing never go negative; every mutation happens
// under a row lock inside the ledger service's transaction.
type MerchantWallet struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	MerchantID         uint            `gorm:"uniqueIndex;not null" json:"merchant_id"`
	WalletID           string          `gorm:"size:64;uniqueIndex;not null" json:"wallet_id"`
	Balance            decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	WithdrawProcessing decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"withdraw_processing"`
	TotalWithdraw      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_withdraw"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AvailableBalance is the spendable part of the balance: balance minus
// outstanding debit holds.
func (w *MerchantWallet) AvailableBalance() decimal.Decimal {
	return w.Balance.Sub(w.WithdrawProcessing)
}

func (w *MerchantWallet) BeforeCreate(tx *gorm.DB) error {
	if w.WalletID == "" {
		w.WalletID = NewHexID()
	}
	return nil
}

// WalletSnapshot is the read model handed to collaborators and cached in
// redis. Derived from MerchantWallet inside the ledger service.
type WalletSnapshot struct {
	MerchantID         uint            `json:"merchant_id"`
	WalletID           string          `json:"wallet_id"`
	Balance            decimal.Decimal `json:"balance"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
	WithdrawProcessing decimal.Decimal `json:"withdraw_processing"`
	TotalWithdraw      decimal.Decimal `json:"total_withdraw"`
}
