package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kirish34/teketeke/internal/domain"
)

func testPolicy() domain.FeePolicy {
	return domain.FeePolicy{
		SaccoID:          "sacco-1",
		FlatFee:          decimal.NewFromFloat(2.50),
		SavingsPercent:   decimal.NewFromInt(5),
		DailyFee:         decimal.NewFromInt(50),
		LoanRepayPercent: decimal.Zero,
	}
}

func entryAmounts(entries []domain.LedgerEntry) map[domain.EntryType]string {
	out := make(map[domain.EntryType]string, len(entries))
	for _, e := range entries {
		out[e.Type] = e.Amount.StringFixed(2)
	}
	return out
}

func TestComputeSplits(t *testing.T) {
	t.Run("WithDailyFee", func(t *testing.T) {
		entries := ComputeSplits(decimal.NewFromInt(100), testPolicy(), true)

		assert.Len(t, entries, 4)
		assert.Equal(t, domain.EntryTypeFare, entries[0].Type)
		assert.Equal(t, domain.EntryTypeServiceFee, entries[1].Type)
		assert.Equal(t, map[domain.EntryType]string{
			domain.EntryTypeFare:       "100.00",
			domain.EntryTypeServiceFee: "2.50",
			domain.EntryTypeDailyFee:   "50.00",
			domain.EntryTypeSavings:    "5.00",
		}, entryAmounts(entries))
	})

	t.Run("WithoutDailyFee", func(t *testing.T) {
		entries := ComputeSplits(decimal.NewFromInt(100), testPolicy(), false)

		assert.Len(t, entries, 3)
		assert.Equal(t, map[domain.EntryType]string{
			domain.EntryTypeFare:       "100.00",
			domain.EntryTypeServiceFee: "2.50",
			domain.EntryTypeSavings:    "5.00",
		}, entryAmounts(entries))
	})

	t.Run("ZeroServiceFeeStillEmitted", func(t *testing.T) {
		policy := testPolicy()
		policy.FlatFee = decimal.Zero
		policy.SavingsPercent = decimal.Zero

		entries := ComputeSplits(decimal.NewFromInt(100), policy, false)

		assert.Len(t, entries, 2)
		assert.Equal(t, domain.EntryTypeServiceFee, entries[1].Type)
		assert.True(t, entries[1].Amount.IsZero())
	})

	t.Run("LoanRepay", func(t *testing.T) {
		policy := testPolicy()
		policy.LoanRepayPercent = decimal.NewFromInt(10)

		entries := ComputeSplits(decimal.NewFromInt(200), policy, false)

		amounts := entryAmounts(entries)
		assert.Equal(t, "20.00", amounts[domain.EntryTypeLoanRepay])
	})

	t.Run("ZeroDailyFeeOmitted", func(t *testing.T) {
		policy := testPolicy()
		policy.DailyFee = decimal.Zero

		entries := ComputeSplits(decimal.NewFromInt(100), policy, true)

		_, ok := entryAmounts(entries)[domain.EntryTypeDailyFee]
		assert.False(t, ok)
	})

	t.Run("SumInvariant", func(t *testing.T) {
		amounts := []decimal.Decimal{
			decimal.NewFromInt(100),
			decimal.NewFromFloat(33.33),
			decimal.NewFromFloat(0.01),
			decimal.Zero,
		}
		for _, gate := range []bool{true, false} {
			for _, amount := range amounts {
				policy := testPolicy()
				policy.LoanRepayPercent = decimal.NewFromInt(3)

				entries := ComputeSplits(amount, policy, gate)

				expected := domain.RoundMoney(amount).Add(domain.RoundMoney(policy.FlatFee))
				if gate {
					expected = expected.Add(policy.DailyFee)
				}
				expected = expected.
					Add(domain.PercentOf(amount, policy.SavingsPercent)).
					Add(domain.PercentOf(amount, policy.LoanRepayPercent))

				sum := decimal.Zero
				for _, e := range entries {
					sum = sum.Add(e.Amount)
				}
				assert.True(t, sum.Equal(expected), "amount=%s gate=%v: sum %s != %s", amount, gate, sum, expected)
			}
		}
	})

	t.Run("RoundsFareHalfUp", func(t *testing.T) {
		entries := ComputeSplits(decimal.NewFromFloat(99.995), testPolicy(), false)
		assert.Equal(t, "100.00", entries[0].Amount.StringFixed(2))
	})
}
