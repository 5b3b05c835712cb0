package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kirish34/teketeke/internal/cache"
	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/logger"
	"github.com/kirish34/teketeke/internal/repository"
)

const policyCacheKeyPrefix = "policy:"

type policyService struct {
	repo     repository.PolicyRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPolicyService builds the policy store. The cache is injected so tests
// and multi-instance deployments choose their own backend; a nil cache
// disables caching entirely.
func NewPolicyService(repo repository.PolicyRepository, c cache.Cache, cacheTTL time.Duration) PolicyService {
	return &policyService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *policyService) GetEffective(ctx context.Context, saccoID string) (domain.FeePolicy, error) {
	if saccoID == "" {
		return domain.FeePolicy{}, &domain.ValidationError{Field: "sacco_id", Reason: "required"}
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, policyCacheKeyPrefix+saccoID); ok {
			var p domain.FeePolicy
			if err := json.Unmarshal(raw, &p); err == nil {
				return p, nil
			}
			// Corrupt cache entry: drop it and fall through to storage.
			s.cache.Delete(ctx, policyCacheKeyPrefix+saccoID)
		}
	}

	stored, err := s.repo.GetBySacco(ctx, saccoID)
	if err != nil {
		return domain.FeePolicy{}, err
	}
	policy := domain.DefaultFeePolicy(saccoID)
	if stored != nil {
		policy = *stored
	}
	policy.Normalize()

	if s.cache != nil {
		if raw, err := json.Marshal(policy); err == nil {
			s.cache.Set(ctx, policyCacheKeyPrefix+saccoID, raw, s.cacheTTL)
		}
	}
	return policy, nil
}

func (s *policyService) Update(ctx context.Context, policy *domain.FeePolicy) error {
	logger.EnterMethod("policyService.Update", "saccoID", policy.SaccoID)

	policy.Normalize()
	if err := policy.Validate(); err != nil {
		logger.ExitMethodWithError("policyService.Update", err, "saccoID", policy.SaccoID)
		return err
	}
	if err := s.repo.Upsert(ctx, policy); err != nil {
		logger.ExitMethodWithError("policyService.Update", err, "saccoID", policy.SaccoID)
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, policyCacheKeyPrefix+policy.SaccoID)
	}

	logger.ExitMethod("policyService.Update", "saccoID", policy.SaccoID)
	return nil
}
