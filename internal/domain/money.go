package domain

import "github.com/shopspring/decimal"

// RoundMoney normalizes a monetary value to minor-unit precision.
// decimal.Round rounds half away from zero, which for the non-negative
// amounts handled here is the required half-up behavior.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns pct percent of amount, rounded to minor units.
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(pct).Div(decimal.NewFromInt(100)))
}
