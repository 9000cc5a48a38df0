package ledger

import (
	"testing"

	"paycore/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func percentagePolicy(deposit, payout, withdraw string) FeePolicy {
	return FeePolicy{
		Type:     models.FeeTypePercentage,
		Deposit:  dec(deposit),
		Payout:   dec(payout),
		Withdraw: dec(withdraw),
	}
}

func flatPolicy(deposit, payout, withdraw string) FeePolicy {
	return FeePolicy{
		Type:     models.FeeTypeFlat,
		Deposit:  dec(deposit),
		Payout:   dec(payout),
		Withdraw: dec(withdraw),
	}
}

func TestQuoteCredit(t *testing.T) {
	tests := []struct {
		name    string
		policy  *FeePolicy
		gross   string
		wantFee string
		wantNet string
	}{
		{
			name:    "percentage deposit fee from gross",
			policy:  ptr(percentagePolicy("5", "5", "5")),
			gross:   "1000.00",
			wantFee: "50.00",
			wantNet: "950.00",
		},
		{
			name:    "flat deposit fee",
			policy:  ptr(flatPolicy("25", "10", "10")),
			gross:   "1000.00",
			wantFee: "25.00",
			wantNet: "975.00",
		},
		{
			name:    "missing policy falls back to 10 percent of gross",
			policy:  nil,
			gross:   "200.00",
			wantFee: "20.00",
			wantNet: "180.00",
		},
		{
			name:    "unknown fee type falls back to 10 percent",
			policy:  &FeePolicy{Type: "bogus", Deposit: dec("5")},
			gross:   "100.00",
			wantFee: "10.00",
			wantNet: "90.00",
		},
		{
			name:    "half cent rounds up",
			policy:  ptr(percentagePolicy("2.25", "5", "5")),
			gross:   "10.00", // 10 * 2.25% = 0.225
			wantFee: "0.23",
			wantNet: "9.77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteCredit(tt.policy, BucketDeposit, dec(tt.gross))
			assert.Equal(t, tt.gross, q.Amount.StringFixed(2))
			assert.Equal(t, tt.wantFee, q.Fee.StringFixed(2))
			assert.Equal(t, tt.wantNet, q.NetAmount.StringFixed(2))
		})
	}
}

func TestQuoteDebit(t *testing.T) {
	tests := []struct {
		name      string
		policy    *FeePolicy
		bucket    FeeBucket
		net       string
		wantFee   string
		wantGross string
	}{
		{
			name:      "flat withdraw fee added on top",
			policy:    ptr(flatPolicy("5", "5", "10")),
			bucket:    BucketWithdraw,
			net:       "200.00",
			wantFee:   "10.00",
			wantGross: "210.00",
		},
		{
			name:      "percentage payout fee computed from net",
			policy:    ptr(percentagePolicy("5", "2", "5")),
			bucket:    BucketPayout,
			net:       "500.00",
			wantFee:   "10.00",
			wantGross: "510.00",
		},
		{
			name:      "missing policy falls back to 10 percent of net",
			policy:    nil,
			bucket:    BucketWithdraw,
			net:       "100.00",
			wantFee:   "10.00",
			wantGross: "110.00",
		},
		{
			name:      "rounding keeps gross = net + fee",
			policy:    ptr(percentagePolicy("5", "1.5", "5")),
			bucket:    BucketPayout,
			net:       "33.33", // 33.33 * 1.5% = 0.49995 -> 0.50
			wantFee:   "0.50",
			wantGross: "33.83",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteDebit(tt.policy, tt.bucket, dec(tt.net))
			assert.Equal(t, tt.net, q.NetAmount.StringFixed(2))
			assert.Equal(t, tt.wantFee, q.Fee.StringFixed(2))
			assert.Equal(t, tt.wantGross, q.Amount.StringFixed(2))
			assert.True(t, q.Amount.Equal(q.NetAmount.Add(q.Fee)), "gross must equal net + fee")
		})
	}
}

func TestNewFeePolicyAcceptsHistoricalSpellings(t *testing.T) {
	for _, spelling := range []string{"percentage", "Percentage", "parcentage", "Parcentage"} {
		m := &models.Merchant{FeesType: spelling, DepositFees: dec("5")}
		assert.Equal(t, models.FeeTypePercentage, NewFeePolicy(m).Type, spelling)
	}
	m := &models.Merchant{FeesType: "Flat"}
	assert.Equal(t, models.FeeTypeFlat, NewFeePolicy(m).Type)
}

func ptr(p FeePolicy) *FeePolicy { return &p }
