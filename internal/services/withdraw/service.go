// Package withdraw manages the merchant's own cash-out requests. A request's
// amount is the net figure paid to the merchant; the ledger reserves amount
// plus fee while pending, settles the hold on success and releases it on
// rejection.
package withdraw

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
	ErrRequestNotFound     = errors.New("withdraw request not found")
	ErrRequestFinalized    = errors.New("withdraw request already finalized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrMissingTrxID        = errors.New("transaction id is required")
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
)

// CreateInput is the payload for a new withdrawal request.
type CreateInput struct {
	MerchantID    uint
	Amount        decimal.Decimal
	PaymentMethod string
	Note          string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.WithdrawRequest, error)
	Get(ctx context.Context, id uint) (*models.WithdrawRequest, error)
	List(ctx context.Context, merchantID uint, limit, offset int) ([]models.WithdrawRequest, error)

	// Confirm attaches the gateway trx id and settles the hold.
	Confirm(ctx context.Context, id uint, trxID string) (*models.WithdrawRequest, error)
	// Reject releases the hold back to the wallet balance.
	Reject(ctx context.Context, id uint, message string) (*models.WithdrawRequest, error)
}

type service struct {
	requests repositories.WithdrawRepository
	ledger   ledger.Service
}

func NewService(requests repositories.WithdrawRepository, ledgerSvc ledger.Service) Service {
	if requests == nil {
		panic("withdraw repository is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{requests: requests, ledger: ledgerSvc}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.WithdrawRequest, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// Pre-flight affordability against net + fee; the transition engine
	// re-checks under the wallet row lock.
	if _, err := s.ledger.QuoteDebit(ctx, in.MerchantID, ledger.BucketWithdraw, in.Amount); err != nil {
		if errors.Is(err, ledger.ErrMissingFeePolicy) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}

	r := &models.WithdrawRequest{
		MerchantID:    in.MerchantID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Note:          in.Note,
		Status:        models.TransferStatusPending,
	}
	if err := s.requests.Create(r); err != nil {
		return nil, fmt.Errorf("failed to create withdraw request: %w", err)
	}

	if _, err := s.syncLedger(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.WithdrawRequest, error) {
	r, err := s.requests.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSourceNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *service) List(ctx context.Context, merchantID uint, limit, offset int) ([]models.WithdrawRequest, error) {
	return s.requests.ListByMerchant(merchantID, limit, offset)
}

func (s *service) Confirm(ctx context.Context, id uint, trxID string) (*models.WithdrawRequest, error) {
	if trxID == "" {
		return nil, ErrMissingTrxID
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Finalized() {
		return nil, ErrRequestFinalized
	}

	r.TrxID = trxID
	r.Status = models.TransferStatusSuccess
	if err := s.requests.Update(r); err != nil {
		return nil, fmt.Errorf("failed to update withdraw request: %w", err)
	}
	if _, err := s.syncLedger(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Reject(ctx context.Context, id uint, message string) (*models.WithdrawRequest, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Finalized() {
		return nil, ErrRequestFinalized
	}

	r.Status = models.TransferStatusRejected
	if message != "" {
		r.Message = message
	}
	if err := s.requests.Update(r); err != nil {
		return nil, fmt.Errorf("failed to update withdraw request: %w", err)
	}
	if _, err := s.syncLedger(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) syncLedger(ctx context.Context, r *models.WithdrawRequest) (*models.LedgerEntry, error) {
	return s.ledger.SyncSource(ctx, ledger.SourceEvent{
		Source:       models.SourceRef{Kind: models.SourceWithdrawal, ID: r.ID},
		MerchantID:   r.MerchantID,
		Amount:       r.Amount,
		NativeStatus: r.Status,
		TrxID:        r.TrxID,
		Method:       r.PaymentMethod,
	})
}
