package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kirish34/teketeke/internal/cache"
	"github.com/kirish34/teketeke/internal/domain"
)

func TestPolicyService_GetEffective(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenAbsent", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, nil, 0)
		repo.On("GetBySacco", ctx, "sacco-1").Return(nil, nil)

		policy, err := svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)
		assert.Equal(t, "sacco-1", policy.SaccoID)
		assert.True(t, policy.FlatFee.Equal(decimal.NewFromFloat(2.50)))
		assert.True(t, policy.DailyFee.Equal(decimal.NewFromInt(50)))
	})

	t.Run("StoredPolicyWins", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, nil, 0)
		stored := domain.DefaultFeePolicy("sacco-1")
		stored.FlatFee = decimal.NewFromInt(10)
		repo.On("GetBySacco", ctx, "sacco-1").Return(&stored, nil)

		policy, err := svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)
		assert.True(t, policy.FlatFee.Equal(decimal.NewFromInt(10)))
	})

	t.Run("SecondReadServedFromCache", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, cache.NewMemoryCache(16), time.Minute)
		repo.On("GetBySacco", ctx, "sacco-1").Return(nil, nil).Once()

		first, err := svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)
		second, err := svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)
		assert.True(t, first.FlatFee.Equal(second.FlatFee))
		repo.AssertExpectations(t)
	})

	t.Run("RejectsMissingSacco", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, nil, 0)

		_, err := svc.GetEffective(ctx, "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestPolicyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("UpsertsAndInvalidates", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, cache.NewMemoryCache(16), time.Minute)
		repo.On("GetBySacco", ctx, "sacco-1").Return(nil, nil).Twice()
		repo.On("Upsert", ctx, mock.AnythingOfType("*domain.FeePolicy")).Return(nil)

		// Warm the cache, update, then the next read goes back to storage.
		_, err := svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)

		updated := domain.DefaultFeePolicy("sacco-1")
		updated.FlatFee = decimal.NewFromInt(3)
		assert.NoError(t, svc.Update(ctx, &updated))

		_, err = svc.GetEffective(ctx, "sacco-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsNegativeFee", func(t *testing.T) {
		repo := new(MockPolicyRepo)
		svc := NewPolicyService(repo, nil, 0)

		bad := domain.DefaultFeePolicy("sacco-1")
		bad.DailyFee = decimal.NewFromInt(-1)
		err := svc.Update(ctx, &bad)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "Upsert")
	})
}
