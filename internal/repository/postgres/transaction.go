package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.FareTransaction) error {
	query := `INSERT INTO fare_transactions (external_ref, sacco_id, matatu_id, cashier_id, payer_phone, amount, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		tx.ExternalRef, tx.SaccoID, tx.MatatuID, tx.CashierID, tx.PayerPhone, tx.Amount, tx.Status).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "create transaction", Err: err}
	}
	return nil
}

func (r *transactionRepository) GetByRef(ctx context.Context, externalRef string) (*domain.FareTransaction, error) {
	query := `SELECT id, external_ref, sacco_id, matatu_id, cashier_id, payer_phone, amount, status, receipt, created_at
	          FROM fare_transactions WHERE external_ref = $1`
	var tx domain.FareTransaction
	err := r.db.QueryRowContext(ctx, query, externalRef).Scan(
		&tx.ID, &tx.ExternalRef, &tx.SaccoID, &tx.MatatuID, &tx.CashierID,
		&tx.PayerPhone, &tx.Amount, &tx.Status, &tx.Receipt, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get transaction", Err: err}
	}
	return &tx, nil
}

func (r *transactionRepository) MarkTimedOut(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE fare_transactions SET status = 'TIMEOUT'
	          WHERE status = 'PENDING' AND created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, &domain.StorageError{Op: "mark timed out", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "mark timed out", Err: err}
	}
	return n, nil
}
