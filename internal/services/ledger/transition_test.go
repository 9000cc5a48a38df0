package ledger

import (
	"testing"

	"paycore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallet(balance, processing, total string) *models.MerchantWallet {
	return &models.MerchantWallet{
		Balance:            dec(balance),
		WithdrawProcessing: dec(processing),
		TotalWithdraw:      dec(total),
	}
}

func assertWallet(t *testing.T, w *models.MerchantWallet, balance, processing, total string) {
	t.Helper()
	assert.Equal(t, balance, w.Balance.StringFixed(2), "balance")
	assert.Equal(t, processing, w.WithdrawProcessing.StringFixed(2), "withdraw_processing")
	assert.Equal(t, total, w.TotalWithdraw.StringFixed(2), "total_withdraw")
}

func TestPlanTransitionDebitCreate(t *testing.T) {
	t.Run("pending reserves gross from available balance", func(t *testing.T) {
		w := wallet("500.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranDebit, nil, models.EntryPending, dec("210.00"), dec("200.00"))
		require.NoError(t, err)
		assertWallet(t, w, "290.00", "210.00", "0.00")
	})

	t.Run("pending rejected when hold exceeds available balance", func(t *testing.T) {
		w := wallet("100.00", "60.00", "0.00") // available 40
		err := PlanTransition(w, models.TranDebit, nil, models.EntryPending, dec("50.00"), dec("45.00"))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assertWallet(t, w, "100.00", "60.00", "0.00")
	})

	t.Run("instant success debits balance and counts total", func(t *testing.T) {
		w := wallet("500.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranDebit, nil, models.EntrySuccess, dec("110.00"), dec("100.00"))
		require.NoError(t, err)
		assertWallet(t, w, "390.00", "0.00", "110.00")
	})

	t.Run("instant success rejected when balance too low", func(t *testing.T) {
		w := wallet("50.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranDebit, nil, models.EntrySuccess, dec("110.00"), dec("100.00"))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assertWallet(t, w, "50.00", "0.00", "0.00")
	})

	t.Run("failed at birth has no balance effect", func(t *testing.T) {
		w := wallet("500.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranDebit, nil, models.EntryFailed, dec("210.00"), dec("200.00"))
		require.NoError(t, err)
		assertWallet(t, w, "500.00", "0.00", "0.00")
	})
}

func TestPlanTransitionDebitUpdate(t *testing.T) {
	pending := func(amount string) *Prior {
		return &Prior{Status: models.EntryPending, Amount: dec(amount)}
	}

	t.Run("hold grows by the difference", func(t *testing.T) {
		w := wallet("290.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntryPending, dec("260.00"), dec("250.00"))
		require.NoError(t, err)
		assertWallet(t, w, "240.00", "260.00", "0.00")
	})

	t.Run("hold shrinks and releases the difference", func(t *testing.T) {
		w := wallet("290.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntryPending, dec("110.00"), dec("100.00"))
		require.NoError(t, err)
		assertWallet(t, w, "390.00", "110.00", "0.00")
	})

	t.Run("hold increase rejected beyond available balance", func(t *testing.T) {
		w := wallet("40.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntryPending, dec("300.00"), dec("290.00"))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assertWallet(t, w, "40.00", "210.00", "0.00")
	})

	t.Run("settling moves the hold into total withdraw", func(t *testing.T) {
		w := wallet("290.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntrySuccess, dec("210.00"), dec("200.00"))
		require.NoError(t, err)
		assertWallet(t, w, "290.00", "0.00", "210.00")
	})

	t.Run("amount is frozen when finalizing", func(t *testing.T) {
		w := wallet("290.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntrySuccess, dec("220.00"), dec("210.00"))
		assert.ErrorIs(t, err, ErrAmountMismatch)
		assertWallet(t, w, "290.00", "210.00", "0.00")
	})

	t.Run("failing releases the hold back to balance", func(t *testing.T) {
		w := wallet("290.00", "210.00", "0.00")
		err := PlanTransition(w, models.TranDebit, pending("210.00"), models.EntryFailed, dec("210.00"), dec("200.00"))
		require.NoError(t, err)
		assertWallet(t, w, "500.00", "0.00", "0.00")
	})

	t.Run("finalized entries are immutable", func(t *testing.T) {
		for _, status := range []models.EntryStatus{models.EntrySuccess, models.EntryFailed} {
			prior := &Prior{Status: status, Amount: dec("210.00")}
			for _, next := range []models.EntryStatus{models.EntryPending, models.EntrySuccess, models.EntryFailed} {
				w := wallet("290.00", "0.00", "210.00")
				err := PlanTransition(w, models.TranDebit, prior, next, dec("210.00"), dec("200.00"))
				assert.ErrorIs(t, err, ErrImmutableTransition)
				assertWallet(t, w, "290.00", "0.00", "210.00")
			}
		}
	})
}

func TestPlanTransitionCredit(t *testing.T) {
	t.Run("created success credits net amount", func(t *testing.T) {
		w := wallet("0.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranCredit, nil, models.EntrySuccess, dec("1000.00"), dec("950.00"))
		require.NoError(t, err)
		assertWallet(t, w, "950.00", "0.00", "0.00")
	})

	t.Run("pending to success credits net amount", func(t *testing.T) {
		w := wallet("100.00", "0.00", "0.00")
		prior := &Prior{Status: models.EntryPending, Amount: dec("1000.00")}
		err := PlanTransition(w, models.TranCredit, prior, models.EntrySuccess, dec("1000.00"), dec("950.00"))
		require.NoError(t, err)
		assertWallet(t, w, "1050.00", "0.00", "0.00")
	})

	t.Run("no credit-side holds", func(t *testing.T) {
		w := wallet("100.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranCredit, nil, models.EntryPending, dec("1000.00"), dec("950.00"))
		require.NoError(t, err)
		assertWallet(t, w, "100.00", "0.00", "0.00")
	})

	t.Run("finalized credits are immutable", func(t *testing.T) {
		prior := &Prior{Status: models.EntrySuccess, Amount: dec("1000.00")}
		w := wallet("950.00", "0.00", "0.00")
		err := PlanTransition(w, models.TranCredit, prior, models.EntrySuccess, dec("1000.00"), dec("950.00"))
		assert.ErrorIs(t, err, ErrImmutableTransition)
		assertWallet(t, w, "950.00", "0.00", "0.00")
	})
}

func TestWalletInvariantAfterPlans(t *testing.T) {
	// available_balance = balance - withdraw_processing stays consistent
	// through a hold's full lifecycle.
	w := wallet("500.00", "0.00", "0.00")
	require.NoError(t, PlanTransition(w, models.TranDebit, nil, models.EntryPending, dec("210.00"), dec("200.00")))
	assert.Equal(t, "80.00", w.AvailableBalance().StringFixed(2))
	assert.Equal(t, w.AvailableBalance().StringFixed(2), w.Balance.Sub(w.WithdrawProcessing).StringFixed(2))
	assert.False(t, w.Balance.IsNegative())
	assert.False(t, w.WithdrawProcessing.IsNegative())

	prior := &Prior{Status: models.EntryPending, Amount: dec("210.00")}
	require.NoError(t, PlanTransition(w, models.TranDebit, prior, models.EntryFailed, dec("210.00"), dec("200.00")))
	assertWallet(t, w, "500.00", "0.00", "0.00")
}
