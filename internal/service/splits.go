package service

import (
	"github.com/shopspring/decimal"

	"github.com/kirish34/teketeke/internal/domain"
)

// ComputeSplits breaks a fare amount into its ledger line items. Pure and
// deterministic; safe to call speculatively for price previews.
//
// Ordering is significant for report consumers:
// FARE, SERVICE_FEE, [DAILY_FEE], [SAVINGS], [LOAN_REPAY].
//
// SERVICE_FEE is always emitted, even at zero: it is a fixed platform
// charge and an explicit zero line keeps per-transaction ledger sets
// uniform for audits. DAILY_FEE, SAVINGS and LOAN_REPAY appear only when
// positive.
func ComputeSplits(amount decimal.Decimal, policy domain.FeePolicy, chargeDailyFee bool) []domain.LedgerEntry {
	fare := domain.RoundMoney(amount)

	entries := []domain.LedgerEntry{
		{Type: domain.EntryTypeFare, Amount: fare},
		{Type: domain.EntryTypeServiceFee, Amount: domain.RoundMoney(policy.FlatFee)},
	}
	if chargeDailyFee {
		if daily := domain.RoundMoney(policy.DailyFee); daily.IsPositive() {
			entries = append(entries, domain.LedgerEntry{Type: domain.EntryTypeDailyFee, Amount: daily})
		}
	}
	if savings := domain.PercentOf(fare, policy.SavingsPercent); savings.IsPositive() {
		entries = append(entries, domain.LedgerEntry{Type: domain.EntryTypeSavings, Amount: savings})
	}
	if loan := domain.PercentOf(fare, policy.LoanRepayPercent); loan.IsPositive() {
		entries = append(entries, domain.LedgerEntry{Type: domain.EntryTypeLoanRepay, Amount: loan})
	}
	return entries
}
