package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SourceKind tags the record that produced a ledger entry.
type SourceKind string

const (
	SourceInvoice    SourceKind = "invoice"
	SourcePayout     SourceKind = "payout"
	SourceWithdrawal SourceKind = "withdrawal"
)

// SourceRef identifies the external record a ledger entry mirrors. The
// composite unique index makes "one entry per source" a database fact and
// doubles as the idempotency guard on concurrent creates.
type SourceRef struct {
	Kind SourceKind `gorm:"column:source_kind;size:20;not null;uniqueIndex:idx_ledger_entries_source" json:"kind"`
	ID   uint       `gorm:"column:source_id;not null;uniqueIndex:idx_ledger_entries_source" json:"id"`
}

// TranType is the direction of a ledger entry.
type TranType string

const (
	TranDebit  TranType = "debit"
	TranCredit TranType = "credit"
)

// EntryStatus is the ledger's own status vocabulary. Source records carry
// their native vocabularies; the synchronizer normalizes into this one.
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntrySuccess EntryStatus = "success"
	EntryFailed  EntryStatus = "failed"
)

// LedgerEntry is one balance-affecting record, tied 1:1 to a source. Amount
// is always the gross (wallet-side) figure; NetAmount is what the customer
// receives or what the merchant is credited after fees. PreviousBalance is
// frozen at first write, CurrentBalance refreshed on every write.
type LedgerEntry struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	WalletID        uint            `gorm:"index;not null" json:"wallet_id"`
	MerchantID      uint            `gorm:"index;not null" json:"merchant_id"`
	Source          SourceRef       `gorm:"embedded" json:"source"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Fee             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"fee"`
	NetAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"net_amount"`
	PreviousBalance decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"previous_balance"`
	CurrentBalance  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"current_balance"`
	Method          string          `gorm:"size:50" json:"method,omitempty"`
	Status          EntryStatus     `gorm:"size:10;not null" json:"status"`
	TranType        TranType        `gorm:"size:10;not null" json:"tran_type"`
	TrxID           string          `gorm:"size:64" json:"trx_id,omitempty"`
	TrxUUID         string          `gorm:"size:64;uniqueIndex;not null" json:"trx_uuid"`
	IPAddress       string          `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Finalized reports whether the entry reached a terminal status. Finalized
// entries only change through a new, distinct source event.
func (e *LedgerEntry) Finalized() bool {
	return e.Status == EntrySuccess || e.Status == EntryFailed
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.TrxUUID == "" {
		e.TrxUUID = NewHexID()
	}
	return nil
}
