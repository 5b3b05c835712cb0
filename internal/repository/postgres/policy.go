package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

type policyRepository struct {
	db *sql.DB
}

func NewPolicyRepository(db *sql.DB) repository.PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) GetBySacco(ctx context.Context, saccoID string) (*domain.FeePolicy, error) {
	query := `SELECT sacco_id, flat_fee, savings_percent, daily_fee, loan_repay_percent, updated_at
	          FROM fee_policies WHERE sacco_id = $1`
	var p domain.FeePolicy
	err := r.db.QueryRowContext(ctx, query, saccoID).Scan(
		&p.SaccoID, &p.FlatFee, &p.SavingsPercent, &p.DailyFee, &p.LoanRepayPercent, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get policy", Err: err}
	}
	return &p, nil
}

func (r *policyRepository) Upsert(ctx context.Context, policy *domain.FeePolicy) error {
	query := `INSERT INTO fee_policies (sacco_id, flat_fee, savings_percent, daily_fee, loan_repay_percent, updated_at)
	          VALUES ($1, $2, $3, $4, $5, now())
	          ON CONFLICT (sacco_id) DO UPDATE SET
	            flat_fee = EXCLUDED.flat_fee,
	            savings_percent = EXCLUDED.savings_percent,
	            daily_fee = EXCLUDED.daily_fee,
	            loan_repay_percent = EXCLUDED.loan_repay_percent,
	            updated_at = now()
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		policy.SaccoID, policy.FlatFee, policy.SavingsPercent, policy.DailyFee, policy.LoanRepayPercent).
		Scan(&policy.UpdatedAt)
	if err != nil {
		return &domain.StorageError{Op: "upsert policy", Err: err}
	}
	return nil
}
