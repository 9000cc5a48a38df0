package withdraw

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

type fakeWithdrawRepo struct {
	requests map[uint]*models.WithdrawRequest
	nextID   uint
}

func newFakeWithdrawRepo() *fakeWithdrawRepo {
	return &fakeWithdrawRepo{requests: make(map[uint]*models.WithdrawRequest), nextID: 1}
}

func (f *fakeWithdrawRepo) Create(r *models.WithdrawRequest) error {
	r.ID = f.nextID
	f.nextID++
	if r.TrxUUID == "" {
		r.TrxUUID = models.NewHexID()
	}
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeWithdrawRepo) GetByID(id uint) (*models.WithdrawRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrSourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeWithdrawRepo) Update(r *models.WithdrawRequest) error {
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeWithdrawRepo) ListByMerchant(merchantID uint, limit, offset int) ([]models.WithdrawRequest, error) {
	var out []models.WithdrawRequest
	for _, r := range f.requests {
		if r.MerchantID == merchantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeLedger struct {
	events   []ledger.SourceEvent
	quoteErr error
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
	if f.quoteErr != nil {
		return ledger.FeeQuote{}, f.quoteErr
	}
	return ledger.FeeQuote{Amount: net, NetAmount: net}, nil
}

func (f *fakeLedger) PolicyFor(ctx context.Context, merchantID uint) (ledger.FeePolicy, error) {
	return ledger.FeePolicy{}, nil
}

func newTestService() (Service, *fakeWithdrawRepo, *fakeLedger) {
	repo := newFakeWithdrawRepo()
	led := &fakeLedger{}
	return NewService(repo, led), repo, led
}

func TestCreateWithdraw(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{
		MerchantID:    1,
		Amount:        decimal.RequireFromString("500.00"),
		PaymentMethod: models.MethodBank,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusPending, r.Status)
	assert.NotEmpty(t, r.TrxUUID)

	require.Len(t, led.events, 1)
	ev := led.events[0]
	assert.Equal(t, models.SourceWithdrawal, ev.Source.Kind)
	assert.Equal(t, r.ID, ev.Source.ID)
	assert.Equal(t, models.TransferStatusPending, ev.NativeStatus)
}

func TestCreateWithdrawValidation(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{MerchantID: 1, Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	led.quoteErr = ledger.ErrInsufficientBalance
	_, err = svc.Create(ctx, CreateInput{MerchantID: 1, Amount: decimal.RequireFromString("10")})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	led.quoteErr = ledger.ErrMissingFeePolicy
	_, err = svc.Create(ctx, CreateInput{MerchantID: 9, Amount: decimal.RequireFromString("10")})
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestConfirmWithdraw(t *testing.T) {
	svc, _, led := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{
		MerchantID:    1,
		Amount:        decimal.RequireFromString("500.00"),
		PaymentMethod: models.MethodBank,
	})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, r.ID, "")
	assert.ErrorIs(t, err, ErrMissingTrxID)

	confirmed, err := svc.Confirm(ctx, r.ID, "T9")
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusSuccess, confirmed.Status)
	assert.Equal(t, "T9", confirmed.TrxID)

	require.Len(t, led.events, 2)
	assert.Equal(t, models.TransferStatusSuccess, led.events[1].NativeStatus)
	assert.Equal(t, "T9", led.events[1].TrxID)

	_, err = svc.Confirm(ctx, r.ID, "T10")
	assert.ErrorIs(t, err, ErrRequestFinalized)
}

func TestRejectWithdrawReleasesHold(t *testing.T) {
	svc, repo, led := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{
		MerchantID:    1,
		Amount:        decimal.RequireFromString("500.00"),
		PaymentMethod: models.MethodBank,
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, r.ID, "bank details invalid")
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusRejected, rejected.Status)
	assert.Equal(t, "bank details invalid", rejected.Message)

	stored, err := repo.GetByID(r.ID)
	require.NoError(t, err)
	assert.True(t, stored.Finalized())

	// the rejection reaches the ledger, which releases the hold
	require.Len(t, led.events, 2)
	assert.Equal(t, models.TransferStatusRejected, led.events[1].NativeStatus)

	_, err = svc.Reject(ctx, r.ID, "again")
	assert.ErrorIs(t, err, ErrRequestFinalized)
}
