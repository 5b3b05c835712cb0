package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
	TransactionStatusTimeout TransactionStatus = "TIMEOUT"
)

// FareTransaction records one fare payment attempt. ExternalRef is the
// payment network's reference and doubles as the idempotency key: the same
// confirmation may be delivered any number of times but ledger side effects
// happen at most once.
type FareTransaction struct {
	ID          int64             `json:"id"`
	ExternalRef string            `json:"external_ref"`
	SaccoID     string            `json:"sacco_id"`
	MatatuID    *string           `json:"matatu_id,omitempty"`
	CashierID   *string           `json:"cashier_id,omitempty"`
	PayerPhone  *string           `json:"payer_phone,omitempty"`
	Amount      decimal.Decimal   `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Receipt     *string           `json:"receipt,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PaymentConfirmation is the payload delivered by the payment network,
// possibly more than once per ExternalRef.
type PaymentConfirmation struct {
	ExternalRef string          `json:"external_ref"`
	Success     bool            `json:"success"`
	Amount      decimal.Decimal `json:"amount"`
	SaccoID     string          `json:"sacco_id"`
	MatatuID    *string         `json:"matatu_id,omitempty"`
	CashierID   *string         `json:"cashier_id,omitempty"`
	PayerPhone  *string         `json:"payer_phone,omitempty"`
	Receipt     *string         `json:"receipt,omitempty"`
}

// Validate checks the fields settlement cannot proceed without.
func (c *PaymentConfirmation) Validate() error {
	if c.ExternalRef == "" {
		return &ValidationError{Field: "external_ref", Reason: "required"}
	}
	if c.SaccoID == "" {
		return &ValidationError{Field: "sacco_id", Reason: "required"}
	}
	if c.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must be non-negative"}
	}
	return nil
}

// TerminalStatus returns the transaction status this confirmation maps to.
func (c *PaymentConfirmation) TerminalStatus() TransactionStatus {
	if c.Success {
		return TransactionStatusSuccess
	}
	return TransactionStatusFailed
}
