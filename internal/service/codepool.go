package service

import (
	"context"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/logger"
	"github.com/kirish34/teketeke/internal/repository"
)

type codePoolService struct {
	repo   repository.CodePoolRepository
	prefix string
}

func NewCodePoolService(repo repository.CodePoolRepository, prefix string) CodePoolService {
	if prefix == "" {
		prefix = domain.DefaultCodePrefix
	}
	return &codePoolService{repo: repo, prefix: prefix}
}

func (s *codePoolService) SeedPool(ctx context.Context) error {
	return s.repo.Seed(ctx)
}

func (s *codePoolService) AssignNext(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) (string, *domain.CodePoolEntry, error) {
	logger.EnterMethod("codePoolService.AssignNext", "ownerType", ownerType, "ownerID", ownerID)

	if err := validateOwner(ownerType, ownerID); err != nil {
		return "", nil, err
	}
	entry, err := s.repo.ClaimLowest(ctx, ownerType, ownerID)
	if err != nil {
		logger.ExitMethodWithError("codePoolService.AssignNext", err, "ownerID", ownerID)
		return "", nil, err
	}
	code, err := domain.FormatCode(s.prefix, entry.Base)
	if err != nil {
		return "", nil, err
	}

	logger.ExitMethod("codePoolService.AssignNext", "ownerID", ownerID, "base", entry.Base)
	return code, entry, nil
}

func (s *codePoolService) BindSpecific(ctx context.Context, ownerType domain.CodeOwnerType, ownerID, code string) (*domain.CodePoolEntry, error) {
	logger.EnterMethod("codePoolService.BindSpecific", "ownerType", ownerType, "ownerID", ownerID, "code", code)

	if err := validateOwner(ownerType, ownerID); err != nil {
		return nil, err
	}
	base, checksum, err := domain.ParseCode(code)
	if err != nil {
		return nil, err
	}
	ok, err := domain.VerifyChecksum(base, checksum)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.ExitMethodWithError("codePoolService.BindSpecific", domain.ErrChecksumMismatch, "base", base)
		return nil, domain.ErrChecksumMismatch
	}

	entry, err := s.repo.ClaimBase(ctx, base, ownerType, ownerID)
	if err != nil {
		logger.ExitMethodWithError("codePoolService.BindSpecific", err, "base", base)
		return nil, err
	}

	logger.ExitMethod("codePoolService.BindSpecific", "ownerID", ownerID, "base", base)
	return entry, nil
}

func (s *codePoolService) Release(ctx context.Context, code string) error {
	base, _, err := domain.ParseCode(code)
	if err != nil {
		return err
	}
	return s.repo.Release(ctx, base)
}

func (s *codePoolService) ListCodes(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) ([]domain.CodePoolEntry, error) {
	if err := validateOwner(ownerType, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListAllocated(ctx, ownerType, ownerID)
}

func validateOwner(ownerType domain.CodeOwnerType, ownerID string) error {
	if ownerType != domain.CodeOwnerSacco && ownerType != domain.CodeOwnerMatatu {
		return &domain.ValidationError{Field: "owner_type", Reason: "must be SACCO or MATATU"}
	}
	if ownerID == "" {
		return &domain.ValidationError{Field: "owner_id", Reason: "required"}
	}
	return nil
}
