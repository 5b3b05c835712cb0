package repository

import (
	"context"
	"time"

	"github.com/kirish34/teketeke/internal/domain"
)

type PolicyRepository interface {
	// GetBySacco returns (nil, nil) when the sacco has no policy row;
	// absence is handled by the caller, not reported as an error.
	GetBySacco(ctx context.Context, saccoID string) (*domain.FeePolicy, error)
	Upsert(ctx context.Context, policy *domain.FeePolicy) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.FareTransaction) error
	GetByRef(ctx context.Context, externalRef string) (*domain.FareTransaction, error)

	// MarkTimedOut transitions PENDING transactions created before the
	// cutoff to TIMEOUT and returns how many rows changed.
	MarkTimedOut(ctx context.Context, cutoff time.Time) (int64, error)
}

// SplitFunc computes the ledger entries for a transaction that just reached
// SUCCESS. chargeDailyFee reflects the daily-fee gate as evaluated inside
// the settlement transaction.
type SplitFunc func(tx *domain.FareTransaction, chargeDailyFee bool) []domain.LedgerEntry

type SettlementRepository interface {
	// ApplyConfirmation runs the whole settlement write as one bounded
	// database transaction: upsert the fare transaction keyed by external
	// reference, and only when that statement transitioned the row to
	// SUCCESS for the first time, evaluate the daily-fee gate and insert
	// the splits produced by split. Entries actually written are returned;
	// a re-delivery of an already-settled confirmation writes nothing and
	// returns the existing transaction with nil entries.
	ApplyConfirmation(ctx context.Context, c *domain.PaymentConfirmation, split SplitFunc) (*domain.FareTransaction, []domain.LedgerEntry, error)
}

type LedgerRepository interface {
	// HasDailyFee reports whether a DAILY_FEE entry already exists for the
	// matatu on the given calendar day.
	HasDailyFee(ctx context.Context, matatuID string, day time.Time) (bool, error)

	ListByTransaction(ctx context.Context, transactionID int64) ([]domain.LedgerEntry, error)
	DailySummary(ctx context.Context, matatuID string, day time.Time) (*domain.DailySummary, error)
}

type CodePoolRepository interface {
	// Seed inserts any missing pool rows for bases 001..999. Safe to run
	// repeatedly.
	Seed(ctx context.Context) error

	// ClaimLowest atomically marks the lowest free base as allocated to the
	// owner and returns it, or domain.ErrOutOfCodes when none remain.
	ClaimLowest(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error)

	// ClaimBase atomically allocates a specific base. Returns
	// domain.ErrUnknownBase or domain.ErrAlreadyAllocated on failure.
	ClaimBase(ctx context.Context, base string, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error)

	// Release returns an allocated base to the pool.
	Release(ctx context.Context, base string) error

	GetByBase(ctx context.Context, base string) (*domain.CodePoolEntry, error)
	ListAllocated(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) ([]domain.CodePoolEntry, error)
}
