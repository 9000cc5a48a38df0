package ledger

import (
	"paycore/internal/models"

	"github.com/shopspring/decimal"
)

// FeeBucket selects which fee rate and basis applies to an entry.
type FeeBucket string

const (
	BucketDeposit  FeeBucket = "deposit"
	BucketPayout   FeeBucket = "payout"
	BucketWithdraw FeeBucket = "withdraw"
)

// moneyScale is the ledger's currency precision. All fee arithmetic rounds
// half-up to this scale; money must never silently lose cents.
const moneyScale = 2

var (
	hundred = decimal.NewFromInt(100)
	// defaultFeeRate applies when the policy is missing a bucket or carries an
	// unrecognized fee type: 10% of the base amount.
	defaultFeeRate = decimal.NewFromInt(10)
)

// FeePolicy is the validated per-merchant fee configuration, built once from
// the merchant row and passed explicitly into the calculator.
type FeePolicy struct {
	Type     string // models.FeeTypeFlat or models.FeeTypePercentage
	Deposit  decimal.Decimal
	Payout   decimal.Decimal
	Withdraw decimal.Decimal
}

// NewFeePolicy reads the fee columns off the merchant profile. Historical
// rows spell percentage as "parcentage"; both are accepted.
func NewFeePolicy(m *models.Merchant) FeePolicy {
	t := m.FeesType
	if t == "Parcentage" || t == "parcentage" || t == "Percentage" {
		t = models.FeeTypePercentage
	}
	if t == "Flat" {
		t = models.FeeTypeFlat
	}
	return FeePolicy{
		Type:     t,
		Deposit:  m.DepositFees,
		Payout:   m.PayoutFees,
		Withdraw: m.WithdrawFees,
	}
}

func (p *FeePolicy) rate(bucket FeeBucket) (decimal.Decimal, bool) {
	switch bucket {
	case BucketDeposit:
		return p.Deposit, true
	case BucketPayout:
		return p.Payout, true
	case BucketWithdraw:
		return p.Withdraw, true
	}
	return decimal.Zero, false
}

// FeeQuote is the result of fee computation. Amount is always the gross
// (wallet-side) figure, NetAmount the post-fee figure.
type FeeQuote struct {
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	NetAmount decimal.Decimal
}

// QuoteCredit computes a deposit-side quote: the fee is taken out of the
// gross amount that arrived, net = gross - fee.
func QuoteCredit(p *FeePolicy, bucket FeeBucket, gross decimal.Decimal) FeeQuote {
	fee := computeFee(p, bucket, gross)
	return FeeQuote{
		Amount:    gross.Round(moneyScale),
		Fee:       fee,
		NetAmount: gross.Sub(fee).Round(moneyScale),
	}
}

// QuoteDebit computes a payout/withdraw-side quote: the fee is added on top
// of the net amount the receiver gets, gross = net + fee. Affordability is
// always checked against the gross.
func QuoteDebit(p *FeePolicy, bucket FeeBucket, net decimal.Decimal) FeeQuote {
	fee := computeFee(p, bucket, net)
	return FeeQuote{
		Amount:    net.Add(fee).Round(moneyScale),
		Fee:       fee,
		NetAmount: net.Round(moneyScale),
	}
}

// computeFee resolves the rate for the bucket and applies the policy type.
// Percentage fees round half-up at the currency scale.
func computeFee(p *FeePolicy, bucket FeeBucket, base decimal.Decimal) decimal.Decimal {
	if p == nil {
		return percentOf(base, defaultFeeRate)
	}
	rate, ok := p.rate(bucket)
	if !ok {
		return percentOf(base, defaultFeeRate)
	}
	switch p.Type {
	case models.FeeTypePercentage:
		return percentOf(base, rate)
	case models.FeeTypeFlat:
		return rate.Round(moneyScale)
	default:
		return percentOf(base, defaultFeeRate)
	}
}

func percentOf(base, rate decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts the ledger deals in.
	return base.Mul(rate).Div(hundred).Round(moneyScale)
}
