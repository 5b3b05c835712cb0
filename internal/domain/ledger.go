package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeFare       EntryType = "FARE"
	EntryTypeServiceFee EntryType = "SERVICE_FEE"
	EntryTypeDailyFee   EntryType = "DAILY_FEE"
	EntryTypeSavings    EntryType = "SAVINGS"
	EntryTypeLoanRepay  EntryType = "LOAN_REPAY"
)

// LedgerEntry is one immutable monetary component of a settled payment.
// Entries are written exactly once when a transaction reaches SUCCESS and
// are never mutated or deleted.
type LedgerEntry struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	SaccoID       string          `json:"sacco_id"`
	MatatuID      *string         `json:"matatu_id,omitempty"`
	Type          EntryType       `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DailySummary aggregates a matatu's ledger activity for one calendar day.
type DailySummary struct {
	MatatuID string                        `json:"matatu_id"`
	Day      string                        `json:"day"` // yyyy-mm-dd
	Totals   map[EntryType]decimal.Decimal `json:"totals"`
}
