package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kirish34/teketeke/internal/domain"
)

// InitiateRequest starts a fare payment: a PENDING transaction recorded
// before the payment network confirms. ExternalRef may be left empty, in
// which case one is generated.
type InitiateRequest struct {
	ExternalRef string          `json:"external_ref"`
	SaccoID     string          `json:"sacco_id"`
	MatatuID    *string         `json:"matatu_id,omitempty"`
	CashierID   *string         `json:"cashier_id,omitempty"`
	PayerPhone  *string         `json:"payer_phone,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// SettlementResult reports what a confirmation delivery did. Entries is nil
// both for failed confirmations and for re-deliveries of an already-settled
// reference; AlreadySettled distinguishes the latter.
type SettlementResult struct {
	Transaction    *domain.FareTransaction `json:"transaction"`
	Entries        []domain.LedgerEntry    `json:"entries,omitempty"`
	AlreadySettled bool                    `json:"already_settled"`
}

type SettlementService interface {
	Initiate(ctx context.Context, req *InitiateRequest) (*domain.FareTransaction, error)
	Settle(ctx context.Context, c *domain.PaymentConfirmation) (*SettlementResult, error)

	// PreviewSplits computes the split a payment would produce right now,
	// without persisting anything.
	PreviewSplits(ctx context.Context, saccoID string, matatuID *string, amount decimal.Decimal) ([]domain.LedgerEntry, error)
}

type PolicyService interface {
	// GetEffective returns the sacco's policy, falling back to defaults
	// when none is stored. Never returns a not-found error.
	GetEffective(ctx context.Context, saccoID string) (domain.FeePolicy, error)
	Update(ctx context.Context, policy *domain.FeePolicy) error
}

type CodePoolService interface {
	SeedPool(ctx context.Context) error

	// AssignNext allocates the numerically lowest free base and returns
	// the dialable code string alongside the pool entry.
	AssignNext(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) (string, *domain.CodePoolEntry, error)

	// BindSpecific allocates the base named by a full code string after
	// verifying its checksum digit.
	BindSpecific(ctx context.Context, ownerType domain.CodeOwnerType, ownerID, code string) (*domain.CodePoolEntry, error)

	Release(ctx context.Context, code string) error
	ListCodes(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) ([]domain.CodePoolEntry, error)
}

type LedgerService interface {
	GetTransaction(ctx context.Context, externalRef string) (*domain.FareTransaction, []domain.LedgerEntry, error)
	GetDailySummary(ctx context.Context, matatuID string, day time.Time) (*domain.DailySummary, error)
}
