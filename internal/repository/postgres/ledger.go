package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"

	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) HasDailyFee(ctx context.Context, matatuID string, day time.Time) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM ledger_entries
	            WHERE matatu_id = $1 AND type = 'DAILY_FEE' AND charged_on = $2
	          )`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, matatuID, day.Format("2006-01-02")).Scan(&exists)
	if err != nil {
		return false, &domain.StorageError{Op: "check daily fee", Err: err}
	}
	return exists, nil
}

func (r *ledgerRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]domain.LedgerEntry, error) {
	query := `SELECT id, transaction_id, sacco_id, matatu_id, type, amount, created_at
	          FROM ledger_entries WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list ledger entries", Err: err}
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.SaccoID, &e.MatatuID, &e.Type, &e.Amount, &e.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan ledger entry", Err: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list ledger entries", Err: err}
	}
	return entries, nil
}

func (r *ledgerRepository) DailySummary(ctx context.Context, matatuID string, day time.Time) (*domain.DailySummary, error) {
	query := `SELECT type, COALESCE(SUM(amount), 0)
	          FROM ledger_entries
	          WHERE matatu_id = $1 AND charged_on = $2
	          GROUP BY type`
	dayStr := day.Format("2006-01-02")
	rows, err := r.db.QueryContext(ctx, query, matatuID, dayStr)
	if err != nil {
		return nil, &domain.StorageError{Op: "daily summary", Err: err}
	}
	defer rows.Close()

	summary := &domain.DailySummary{
		MatatuID: matatuID,
		Day:      dayStr,
		Totals:   make(map[domain.EntryType]decimal.Decimal),
	}
	for rows.Next() {
		var t domain.EntryType
		var total decimal.Decimal
		if err := rows.Scan(&t, &total); err != nil {
			return nil, &domain.StorageError{Op: "scan daily summary", Err: err}
		}
		summary.Totals[t] = total
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "daily summary", Err: err}
	}
	return summary, nil
}
