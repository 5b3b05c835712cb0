package service

import (
	"context"
	"time"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

type ledgerService struct {
	txRepo     repository.TransactionRepository
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(txRepo repository.TransactionRepository, ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{txRepo: txRepo, ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetTransaction(ctx context.Context, externalRef string) (*domain.FareTransaction, []domain.LedgerEntry, error) {
	if externalRef == "" {
		return nil, nil, &domain.ValidationError{Field: "external_ref", Reason: "required"}
	}
	tx, err := s.txRepo.GetByRef(ctx, externalRef)
	if err != nil {
		return nil, nil, err
	}
	if tx == nil {
		return nil, nil, nil
	}
	entries, err := s.ledgerRepo.ListByTransaction(ctx, tx.ID)
	if err != nil {
		return nil, nil, err
	}
	return tx, entries, nil
}

func (s *ledgerService) GetDailySummary(ctx context.Context, matatuID string, day time.Time) (*domain.DailySummary, error) {
	if matatuID == "" {
		return nil, &domain.ValidationError{Field: "matatu_id", Reason: "required"}
	}
	return s.ledgerRepo.DailySummary(ctx, matatuID, day)
}
