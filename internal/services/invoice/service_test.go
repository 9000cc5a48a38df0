package invoice

import (
	"context"
	"testing"

	"paycore/internal/models"
	"paycore/internal/repositories"
	"paycore/internal/services/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices map[uint]*models.Invoice
	nextID   uint
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uint]*models.Invoice), nextID: 1}
}

func (f *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	inv.ID = f.nextID
	f.nextID++
	if inv.InvoicePaymentID == "" {
		inv.InvoicePaymentID = models.NewHexID()
	}
	if inv.InvoiceTrxn == "" {
		inv.InvoiceTrxn = models.NewInvoiceTrxn()
	}
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id uint) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, repositories.ErrSourceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) GetByPaymentID(paymentID string) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoicePaymentID == paymentID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repositories.ErrSourceNotFound
}

func (f *fakeInvoiceRepo) Update(inv *models.Invoice) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) ListByMerchant(merchantID uint, limit, offset int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.MerchantID == merchantID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakeMerchantRepo struct{ known map[uint]bool }

func (f *fakeMerchantRepo) Create(m *models.Merchant) error { return nil }
func (f *fakeMerchantRepo) Update(m *models.Merchant) error { return nil }
func (f *fakeMerchantRepo) GetByID(id uint) (*models.Merchant, error) {
	if !f.known[id] {
		return nil, repositories.ErrMerchantNotFound
	}
	return &models.Merchant{ID: id}, nil
}
func (f *fakeMerchantRepo) GetByCode(code string) (*models.Merchant, error) {
	return nil, repositories.ErrMerchantNotFound
}

// fakeLedger records the events the service hands to the ledger.
type fakeLedger struct {
	events []ledger.SourceEvent
}

func (f *fakeLedger) SyncSource(ctx context.Context, ev ledger.SourceEvent) (*models.LedgerEntry, error) {
	f.events = append(f.events, ev)
	return &models.LedgerEntry{Source: ev.Source}, nil
}

func (f *fakeLedger) GetWalletSnapshot(ctx context.Context, merchantID uint) (*models.WalletSnapshot, error) {
	return nil, ledger.ErrWalletNotFound
}

func (f *fakeLedger) ListEntries(ctx context.Context, merchantID uint, filter repositories.EntryFilter) ([]models.LedgerEntry, error) {
	return nil, nil
}

func (f *fakeLedger) GetEntryBySource(ctx context.Context, src models.SourceRef) (*models.LedgerEntry, error) {
	return nil, ledger.ErrEntryNotFound
}

func (f *fakeLedger) QuoteDebit(ctx context.Context, merchantID uint, bucket ledger.FeeBucket, net decimal.Decimal) (ledger.FeeQuote, error) {
	return ledger.FeeQuote{Amount: net, NetAmount: net}, nil
}

func (f *fakeLedger) PolicyFor(ctx context.Context, merchantID uint) (ledger.FeePolicy, error) {
	return ledger.FeePolicy{}, nil
}

func newTestService() (Service, *fakeInvoiceRepo, *fakeLedger) {
	repo := newFakeInvoiceRepo()
	led := &fakeLedger{}
	svc := NewService(repo, &fakeMerchantRepo{known: map[uint]bool{1: true}}, led)
	return svc, repo, led
}

func TestCreateInvoice(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		MerchantID:     1,
		CustomerName:   "Rahim",
		CustomerNumber: "01700000000",
		CustomerAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusActive, inv.Status)
	assert.Equal(t, models.InvoicePayPending, inv.PayStatus)
	assert.NotEmpty(t, inv.InvoicePaymentID)
	assert.Len(t, inv.InvoiceTrxn, 9)

	// creation alone never reaches the ledger
	assert.Empty(t, led.events)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{MerchantID: 1, CustomerAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, CreateInput{MerchantID: 9, CustomerAmount: decimal.RequireFromString("10")})
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestMarkPaid(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		MerchantID:     1,
		CustomerName:   "Rahim",
		CustomerNumber: "01700000000",
		CustomerAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, inv.ID, "T1", models.MethodBkash)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePayPaid, paid.PayStatus)
	assert.Equal(t, "T1", paid.TransactionID)

	require.Len(t, led.events, 1)
	ev := led.events[0]
	assert.Equal(t, models.SourceInvoice, ev.Source.Kind)
	assert.Equal(t, inv.ID, ev.Source.ID)
	assert.Equal(t, models.InvoicePayPaid, ev.NativeStatus)
	assert.Equal(t, "T1", ev.TrxID)
	assert.Equal(t, "1000.00", ev.Amount.StringFixed(2))
}

func TestMarkPaidRestrictions(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		MerchantID:     1,
		CustomerName:   "Rahim",
		CustomerNumber: "01700000000",
		CustomerAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, inv.ID, "", models.MethodBkash)
	assert.ErrorIs(t, err, ErrMissingTrxID)

	_, err = svc.MarkPaid(ctx, inv.ID, "T1", models.MethodBkash)
	require.NoError(t, err)

	// a second finalize is refused
	_, err = svc.MarkPaid(ctx, inv.ID, "T2", models.MethodBkash)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// deactive invoices refuse updates
	stored, _ := repo.GetByID(inv.ID)
	stored.Status = models.InvoiceStatusDeactive
	require.NoError(t, repo.Update(stored))
	_, err = svc.MarkPaid(ctx, inv.ID, "T3", models.MethodBkash)
	assert.ErrorIs(t, err, ErrInvoiceInactive)
}

func TestUpdateCustomerAllowListAfterPaid(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		MerchantID:     1,
		CustomerName:   "Rahim",
		CustomerNumber: "01700000000",
		CustomerAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, inv.ID, "T1", models.MethodBkash)
	require.NoError(t, err)

	// name/number/address stay editable after payment
	updated, err := svc.UpdateCustomer(ctx, inv.ID, CustomerUpdate{
		CustomerName:    "Karim",
		CustomerAddress: "Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "Karim", updated.CustomerName)
	assert.Equal(t, "Dhaka", updated.CustomerAddress)
	assert.Equal(t, models.InvoicePayPaid, updated.PayStatus)
}

func TestCancelInvoice(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		MerchantID:     1,
		CustomerName:   "Rahim",
		CustomerNumber: "01700000000",
		CustomerAmount: decimal.RequireFromString("500.00"),
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePayCancelled, cancelled.PayStatus)
	assert.Empty(t, led.events)

	_, err = svc.MarkPaid(ctx, inv.ID, "T1", models.MethodBkash)
	require.NoError(t, err, "cancelled but active invoices can still settle")
}
