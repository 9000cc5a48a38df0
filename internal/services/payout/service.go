// Package payout manages cash-outs to customers (payment transfers). A
// payout's amount is the net figure the receiver gets; the ledger reserves
// amount plus fee while it is pending and settles the hold when a gateway
// transaction id confirms it.
package payout

import (
	"context"
	"errors"
	"fmt"

	"paycore/internal/models"
	"paycore/internal/repositories"
	"paycore/internal/services/ledger"

	"github.com/shopspring/decimal"
)

var (
	ErrPayoutNotFound      = errors.New("payout not found")
	ErrPayoutFinalized     = errors.New("payout already finalized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrMissingTrxID        = errors.New("transaction id is required")
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
)

var validMethods = map[string]bool{
	models.MethodBkash:  true,
	models.MethodNagad:  true,
	models.MethodRocket: true,
	models.MethodBank:   true,
}

// CreateInput is the payload for a new payout. TrxID may be set when the
// transfer was executed out-of-band; the payout is then born successful.
type CreateInput struct {
	MerchantID     uint
	ReceiverName   string
	ReceiverNumber string
	Amount         decimal.Decimal
	PaymentMethod  string
	PaymentDetails models.JSON
	TrxID          string
	Note           string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.PaymentTransfer, error)
	Get(ctx context.Context, id uint) (*models.PaymentTransfer, error)
	List(ctx context.Context, merchantID uint, limit, offset int) ([]models.PaymentTransfer, error)

	// Confirm attaches the gateway trx id and settles the hold.
	Confirm(ctx context.Context, id uint, trxID string) (*models.PaymentTransfer, error)
	// Reject marks a pending payout rejected. The ledger entry stays pending
	// with its hold; only a successful transfer settles it.
	Reject(ctx context.Context, id uint, note string) (*models.PaymentTransfer, error)
}

type service struct {
	payouts repositories.PayoutRepository
	ledger  ledger.Service
}

func NewService(payouts repositories.PayoutRepository, ledgerSvc ledger.Service) Service {
	if payouts == nil {
		panic("payout repository is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{payouts: payouts, ledger: ledgerSvc}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.PaymentTransfer, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !validMethods[in.PaymentMethod] {
		return nil, ErrInvalidMethod
	}

	// Pre-flight affordability: available balance must cover net + fee. The
	// transition engine re-checks under the wallet row lock.
	if _, err := s.ledger.QuoteDebit(ctx, in.MerchantID, ledger.BucketPayout, in.Amount); err != nil {
		if errors.Is(err, ledger.ErrMissingFeePolicy) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}

	p := &models.PaymentTransfer{
		MerchantID:     in.MerchantID,
		ReceiverName:   in.ReceiverName,
		ReceiverNumber: in.ReceiverNumber,
		Amount:         in.Amount,
		PaymentMethod:  in.PaymentMethod,
		PaymentDetails: in.PaymentDetails,
		TrxID:          in.TrxID,
		Note:           in.Note,
		Status:         models.TransferStatusPending,
	}
	// A trx id on a pending payout means it already went through.
	if p.TrxID != "" {
		p.Status = models.TransferStatusSuccess
	}
	if err := s.payouts.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create payout: %w", err)
	}

	if _, err := s.syncLedger(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.PaymentTransfer, error) {
	p, err := s.payouts.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSourceNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, merchantID uint, limit, offset int) ([]models.PaymentTransfer, error) {
	return s.payouts.ListByMerchant(merchantID, limit, offset)
}

func (s *service) Confirm(ctx context.Context, id uint, trxID string) (*models.PaymentTransfer, error) {
	if trxID == "" {
		return nil, ErrMissingTrxID
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Finalized() {
		return nil, ErrPayoutFinalized
	}

	p.TrxID = trxID
	p.Status = models.TransferStatusSuccess
	if err := s.payouts.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}
	if _, err := s.syncLedger(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Reject(ctx context.Context, id uint, note string) (*models.PaymentTransfer, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Finalized() {
		return nil, ErrPayoutFinalized
	}

	p.Status = models.TransferStatusRejected
	if note != "" {
		p.Note = note
	}
	if err := s.payouts.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}
	if _, err := s.syncLedger(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) syncLedger(ctx context.Context, p *models.PaymentTransfer) (*models.LedgerEntry, error) {
	return s.ledger.SyncSource(ctx, ledger.SourceEvent{
		Source:       models.SourceRef{Kind: models.SourcePayout, ID: p.ID},
		MerchantID:   p.MerchantID,
		Amount:       p.Amount,
		NativeStatus: p.Status,
		TrxID:        p.TrxID,
		Method:       p.PaymentMethod,
	})
}
