package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/logger"
	"github.com/kirish34/teketeke/internal/repository"
)

type settlementService struct {
	settlementRepo repository.SettlementRepository
	txRepo         repository.TransactionRepository
	ledgerRepo     repository.LedgerRepository
	policies       PolicyService
	now            func() time.Time
}

func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	txRepo repository.TransactionRepository,
	ledgerRepo repository.LedgerRepository,
	policies PolicyService,
) SettlementService {
	return &settlementService{
		settlementRepo: settlementRepo,
		txRepo:         txRepo,
		ledgerRepo:     ledgerRepo,
		policies:       policies,
		now:            time.Now,
	}
}

func (s *settlementService) Initiate(ctx context.Context, req *InitiateRequest) (*domain.FareTransaction, error) {
	logger.EnterMethod("settlementService.Initiate", "saccoID", req.SaccoID)

	if req.SaccoID == "" {
		return nil, &domain.ValidationError{Field: "sacco_id", Reason: "required"}
	}
	if req.Amount.IsNegative() {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be non-negative"}
	}
	ref := req.ExternalRef
	if ref == "" {
		ref = uuid.NewString()
	}

	tx := &domain.FareTransaction{
		ExternalRef: ref,
		SaccoID:     req.SaccoID,
		MatatuID:    req.MatatuID,
		CashierID:   req.CashierID,
		PayerPhone:  req.PayerPhone,
		Amount:      domain.RoundMoney(req.Amount),
		Status:      domain.TransactionStatusPending,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		logger.ExitMethodWithError("settlementService.Initiate", err, "externalRef", ref)
		return nil, err
	}

	logger.ExitMethod("settlementService.Initiate", "externalRef", ref, "txID", tx.ID)
	return tx, nil
}

// Settle applies a payment confirmation. Deliveries are idempotent: the
// repository only proceeds to the ledger write when its guarded upsert
// transitioned the row to SUCCESS for the first time, so blind retries by
// the payment network are safe.
func (s *settlementService) Settle(ctx context.Context, c *domain.PaymentConfirmation) (*SettlementResult, error) {
	logger.EnterMethod("settlementService.Settle", "externalRef", c.ExternalRef, "success", c.Success)

	if err := c.Validate(); err != nil {
		logger.ExitMethodWithError("settlementService.Settle", err, "externalRef", c.ExternalRef)
		return nil, err
	}

	// Policy reads are read-only and default-on-absent; fetching before
	// the write transaction keeps the transaction bounded.
	policy, err := s.policies.GetEffective(ctx, c.SaccoID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.Settle", err, "externalRef", c.ExternalRef)
		return nil, err
	}

	tx, entries, err := s.settlementRepo.ApplyConfirmation(ctx, c, func(tx *domain.FareTransaction, chargeDailyFee bool) []domain.LedgerEntry {
		items := ComputeSplits(tx.Amount, policy, chargeDailyFee)
		for i := range items {
			items[i].TransactionID = tx.ID
			items[i].SaccoID = tx.SaccoID
			items[i].MatatuID = tx.MatatuID
		}
		return items
	})
	if err != nil {
		logger.ExitMethodWithError("settlementService.Settle", err, "externalRef", c.ExternalRef)
		return nil, err
	}

	// A successful confirmation always writes at least FARE and
	// SERVICE_FEE, so an empty entry set means this delivery was a replay.
	result := &SettlementResult{
		Transaction:    tx,
		Entries:        entries,
		AlreadySettled: c.Success && len(entries) == 0,
	}
	logger.ExitMethod("settlementService.Settle",
		"externalRef", c.ExternalRef, "status", tx.Status,
		"entries", len(entries), "alreadySettled", result.AlreadySettled)
	return result, nil
}

func (s *settlementService) PreviewSplits(ctx context.Context, saccoID string, matatuID *string, amount decimal.Decimal) ([]domain.LedgerEntry, error) {
	if saccoID == "" {
		return nil, &domain.ValidationError{Field: "sacco_id", Reason: "required"}
	}
	if amount.IsNegative() {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be non-negative"}
	}
	policy, err := s.policies.GetEffective(ctx, saccoID)
	if err != nil {
		return nil, err
	}
	chargeDaily := false
	if matatuID != nil && *matatuID != "" {
		charged, err := s.ledgerRepo.HasDailyFee(ctx, *matatuID, s.now())
		if err != nil {
			return nil, err
		}
		chargeDaily = !charged
	}
	return ComputeSplits(amount, policy, chargeDaily), nil
}
