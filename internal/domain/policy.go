package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePolicy controls how a sacco's fare payments are split.
// Amounts are in currency units with minor-unit (2 decimal) precision,
// percentages are expressed as e.g. 5.00 for five percent.
type FeePolicy struct {
	SaccoID          string          `json:"sacco_id"`
	FlatFee          decimal.Decimal `json:"flat_fee"`
	SavingsPercent   decimal.Decimal `json:"savings_percent"`
	DailyFee         decimal.Decimal `json:"daily_fee"`
	LoanRepayPercent decimal.Decimal `json:"loan_repay_percent"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DefaultFeePolicy is applied when a sacco has no policy row.
// Absence of a policy is never an error.
func DefaultFeePolicy(saccoID string) FeePolicy {
	return FeePolicy{
		SaccoID:          saccoID,
		FlatFee:          decimal.NewFromFloat(2.50),
		SavingsPercent:   decimal.NewFromFloat(5.00),
		DailyFee:         decimal.NewFromFloat(50.00),
		LoanRepayPercent: decimal.Zero,
	}
}

// Normalize rounds currency fields to minor units. Percentages are kept
// as given; they are only ever applied through PercentOf.
func (p *FeePolicy) Normalize() {
	p.FlatFee = RoundMoney(p.FlatFee)
	p.DailyFee = RoundMoney(p.DailyFee)
}

// Validate rejects negative fees or percentages.
func (p *FeePolicy) Validate() error {
	if p.SaccoID == "" {
		return &ValidationError{Field: "sacco_id", Reason: "required"}
	}
	if p.FlatFee.IsNegative() {
		return &ValidationError{Field: "flat_fee", Reason: "must be non-negative"}
	}
	if p.DailyFee.IsNegative() {
		return &ValidationError{Field: "daily_fee", Reason: "must be non-negative"}
	}
	if p.SavingsPercent.IsNegative() {
		return &ValidationError{Field: "savings_percent", Reason: "must be non-negative"}
	}
	if p.LoanRepayPercent.IsNegative() {
		return &ValidationError{Field: "loan_repay_percent", Reason: "must be non-negative"}
	}
	return nil
}
