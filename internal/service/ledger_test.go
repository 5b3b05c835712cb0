package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kirish34/teketeke/internal/domain"
)

func TestLedgerService_GetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(txRepo, ledgerRepo)

		txRepo.On("GetByRef", ctx, "REF-1").Return(&domain.FareTransaction{
			ID:          7,
			ExternalRef: "REF-1",
			Status:      domain.TransactionStatusSuccess,
		}, nil)
		ledgerRepo.On("ListByTransaction", ctx, int64(7)).Return([]domain.LedgerEntry{
			{Type: domain.EntryTypeFare, Amount: decimal.NewFromInt(100)},
			{Type: domain.EntryTypeServiceFee, Amount: decimal.NewFromFloat(2.50)},
		}, nil)

		tx, entries, err := svc.GetTransaction(ctx, "REF-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), tx.ID)
		assert.Len(t, entries, 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(txRepo, ledgerRepo)
		txRepo.On("GetByRef", ctx, "REF-MISSING").Return(nil, nil)

		tx, entries, err := svc.GetTransaction(ctx, "REF-MISSING")
		assert.NoError(t, err)
		assert.Nil(t, tx)
		assert.Nil(t, entries)
		ledgerRepo.AssertNotCalled(t, "ListByTransaction")
	})

	t.Run("RejectsEmptyRef", func(t *testing.T) {
		svc := NewLedgerService(new(MockTransactionRepo), new(MockLedgerRepo))

		_, _, err := svc.GetTransaction(ctx, "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestLedgerService_GetDailySummary(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(txRepo, ledgerRepo)
		ledgerRepo.On("DailySummary", ctx, "KDA-001", day).Return(&domain.DailySummary{
			MatatuID: "KDA-001",
			Day:      "2026-08-30",
			Totals: map[domain.EntryType]decimal.Decimal{
				domain.EntryTypeFare: decimal.NewFromInt(250),
			},
		}, nil)

		summary, err := svc.GetDailySummary(ctx, "KDA-001", day)
		assert.NoError(t, err)
		assert.Equal(t, "2026-08-30", summary.Day)
	})

	t.Run("RejectsEmptyMatatu", func(t *testing.T) {
		svc := NewLedgerService(new(MockTransactionRepo), new(MockLedgerRepo))

		_, err := svc.GetDailySummary(ctx, "", day)
		assert.Error(t, err)
	})
}
