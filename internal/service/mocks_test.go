package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

// MockPolicyRepo
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) GetBySacco(ctx context.Context, saccoID string) (*domain.FeePolicy, error) {
	args := m.Called(ctx, saccoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePolicy), args.Error(1)
}
func (m *MockPolicyRepo) Upsert(ctx context.Context, policy *domain.FeePolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.FareTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByRef(ctx context.Context, externalRef string) (*domain.FareTransaction, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FareTransaction), args.Error(1)
}
func (m *MockTransactionRepo) MarkTimedOut(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettlementRepo invokes the split closure the way the real repository
// does, so tests observe the entries the service would have written.
type MockSettlementRepo struct {
	mock.Mock

	// ChargeDailyFee is passed through to the split closure on success.
	ChargeDailyFee bool
	// Replay simulates an already-settled reference: the closure is never
	// invoked and no entries are returned.
	Replay bool
}

func (m *MockSettlementRepo) ApplyConfirmation(ctx context.Context, c *domain.PaymentConfirmation, split repository.SplitFunc) (*domain.FareTransaction, []domain.LedgerEntry, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, nil, args.Error(1)
	}
	tx := args.Get(0).(*domain.FareTransaction)
	if m.Replay || !c.Success {
		return tx, nil, args.Error(1)
	}
	return tx, split(tx, m.ChargeDailyFee), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) HasDailyFee(ctx context.Context, matatuID string, day time.Time) (bool, error) {
	args := m.Called(ctx, matatuID, day)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerRepo) ListByTransaction(ctx context.Context, transactionID int64) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) DailySummary(ctx context.Context, matatuID string, day time.Time) (*domain.DailySummary, error) {
	args := m.Called(ctx, matatuID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

// MockCodePoolRepo
type MockCodePoolRepo struct {
	mock.Mock
}

func (m *MockCodePoolRepo) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCodePoolRepo) ClaimLowest(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodePoolEntry), args.Error(1)
}
func (m *MockCodePoolRepo) ClaimBase(ctx context.Context, base string, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error) {
	args := m.Called(ctx, base, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodePoolEntry), args.Error(1)
}
func (m *MockCodePoolRepo) Release(ctx context.Context, base string) error {
	args := m.Called(ctx, base)
	return args.Error(0)
}
func (m *MockCodePoolRepo) GetByBase(ctx context.Context, base string) (*domain.CodePoolEntry, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodePoolEntry), args.Error(1)
}
func (m *MockCodePoolRepo) ListAllocated(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) ([]domain.CodePoolEntry, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CodePoolEntry), args.Error(1)
}
