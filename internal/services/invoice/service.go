// Package invoice manages deposit source records. An invoice credits the
// wallet exactly once: when it is active, marked paid and carries a gateway
// transaction id; the ledger service applies that credit.
package invoice

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
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvoiceInactive  = errors.New("invoice is not active")
	ErrAlreadyPaid      = errors.New("invoice is already paid")
	ErrMissingTrxID     = errors.New("transaction id is required")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMerchantNotFound = errors.New("merchant not found")
)

// CreateInput is the payload for issuing a new invoice.
type CreateInput struct {
	MerchantID          uint
	CallbackURL         string
	CustomerOrderID     string
	CustomerName        string
	CustomerNumber      string
	CustomerAmount      decimal.Decimal
	CustomerEmail       string
	CustomerAddress     string
	CustomerDescription string
	Note                string
}

// CustomerUpdate is the narrow allow-list of fields editable after payment.
type CustomerUpdate struct {
	CustomerName    string
	CustomerNumber  string
	CustomerAddress string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Invoice, error)
	Get(ctx context.Context, id uint) (*models.Invoice, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Invoice, error)
	List(ctx context.Context, merchantID uint, limit, offset int) ([]models.Invoice, error)

	// MarkPaid finalizes the invoice and synchronizes the wallet credit.
	MarkPaid(ctx context.Context, id uint, trxID, method string) (*models.Invoice, error)
	// Cancel marks an unpaid invoice cancelled. Paid invoices are immutable.
	Cancel(ctx context.Context, id uint) (*models.Invoice, error)
	// UpdateCustomer applies the post-payment allow-list edit.
	UpdateCustomer(ctx context.Context, id uint, in CustomerUpdate) (*models.Invoice, error)
}

type service struct {
	invoices  repositories.InvoiceRepository
	merchants repositories.MerchantRepository
	ledger    ledger.Service
}

func NewService(
	invoices repositories.InvoiceRepository,
	merchants repositories.MerchantRepository,
	ledgerSvc ledger.Service,
) Service {
	if invoices == nil {
		panic("invoice repository is required")
	}
	if merchants == nil {
		panic("merchant repository is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{invoices: invoices, merchants: merchants, ledger: ledgerSvc}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.Invoice, error) {
	if !in.CustomerAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := s.merchants.GetByID(in.MerchantID); err != nil {
		if errors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}

	inv := &models.Invoice{
		MerchantID:          in.MerchantID,
		CallbackURL:         in.CallbackURL,
		CustomerOrderID:     in.CustomerOrderID,
		CustomerName:        in.CustomerName,
		CustomerNumber:      in.CustomerNumber,
		CustomerAmount:      in.CustomerAmount,
		CustomerEmail:       in.CustomerEmail,
		CustomerAddress:     in.CustomerAddress,
		CustomerDescription: in.CustomerDescription,
		Note:                in.Note,
		Status:              models.InvoiceStatusActive,
		PayStatus:           models.InvoicePayPending,
	}
	if err := s.invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSourceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *service) GetByPaymentID(ctx context.Context, paymentID string) (*models.Invoice, error) {
	inv, err := s.invoices.GetByPaymentID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrSourceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *service) List(ctx context.Context, merchantID uint, limit, offset int) ([]models.Invoice, error) {
	return s.invoices.ListByMerchant(merchantID, limit, offset)
}

func (s *service) MarkPaid(ctx context.Context, id uint, trxID, method string) (*models.Invoice, error) {
	if trxID == "" {
		return nil, ErrMissingTrxID
	}
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusActive {
		return nil, ErrInvoiceInactive
	}
	if inv.PayStatus == models.InvoicePayPaid {
		return nil, ErrAlreadyPaid
	}

	inv.PayStatus = models.InvoicePayPaid
	inv.TransactionID = trxID
	inv.Method = method
	if err := s.invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	// The invoice row is persisted first; SyncSource is idempotent, so a
	// failure here is safe to retry with the same call.
	if _, err := s.syncLedger(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *service) Cancel(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusActive {
		return nil, ErrInvoiceInactive
	}
	if inv.PayStatus == models.InvoicePayPaid {
		return nil, ErrAlreadyPaid
	}
	inv.PayStatus = models.InvoicePayCancelled
	if err := s.invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}
	return inv, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id uint, in CustomerUpdate) (*models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusActive {
		return nil, ErrInvoiceInactive
	}
	if in.CustomerName != "" {
		inv.CustomerName = in.CustomerName
	}
	if in.CustomerNumber != "" {
		inv.CustomerNumber = in.CustomerNumber
	}
	if in.CustomerAddress != "" {
		inv.CustomerAddress = in.CustomerAddress
	}
	if err := s.invoices.Update(inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return inv, nil
}

func (s *service) syncLedger(ctx context.Context, inv *models.Invoice) (*models.LedgerEntry, error) {
	return s.ledger.SyncSource(ctx, ledger.SourceEvent{
		Source:       models.SourceRef{Kind: models.SourceInvoice, ID: inv.ID},
		MerchantID:   inv.MerchantID,
		Amount:       inv.CustomerAmount,
		NativeStatus: inv.PayStatus,
		TrxID:        inv.TransactionID,
		Method:       inv.Method,
	})
}
