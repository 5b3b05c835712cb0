package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

// ApplyConfirmation performs the settlement write path as one database
// transaction. The conditional upsert is the idempotency guard: it matches
// zero rows when the transaction already reached SUCCESS, so between two
// concurrent deliveries of the same confirmation exactly one proceeds to the
// ledger insert. The daily-fee gate is read inside the same transaction and
// the DAILY_FEE insert additionally carries ON CONFLICT DO NOTHING against
// the partial unique index, which arbitrates the per-(matatu, day) race
// between two different transactions settling concurrently.
func (r *settlementRepository) ApplyConfirmation(ctx context.Context, c *domain.PaymentConfirmation, split repository.SplitFunc) (*domain.FareTransaction, []domain.LedgerEntry, error) {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "begin settlement", Err: err}
	}
	defer dbtx.Rollback()

	upsert := `INSERT INTO fare_transactions (external_ref, sacco_id, matatu_id, cashier_id, payer_phone, amount, status, receipt, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	           ON CONFLICT (external_ref) DO UPDATE SET
	             status = EXCLUDED.status,
	             amount = EXCLUDED.amount,
	             receipt = COALESCE(EXCLUDED.receipt, fare_transactions.receipt)
	           WHERE fare_transactions.status <> 'SUCCESS'
	           RETURNING id, created_at`
	tx := &domain.FareTransaction{
		ExternalRef: c.ExternalRef,
		SaccoID:     c.SaccoID,
		MatatuID:    c.MatatuID,
		CashierID:   c.CashierID,
		PayerPhone:  c.PayerPhone,
		Amount:      domain.RoundMoney(c.Amount),
		Status:      c.TerminalStatus(),
		Receipt:     c.Receipt,
	}
	err = dbtx.QueryRowContext(ctx, upsert,
		tx.ExternalRef, tx.SaccoID, tx.MatatuID, tx.CashierID, tx.PayerPhone, tx.Amount, tx.Status, tx.Receipt).
		Scan(&tx.ID, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Already SUCCESS from a prior delivery. Nothing to write.
		existing, gerr := r.getByRef(ctx, dbtx, c.ExternalRef)
		if gerr != nil {
			return nil, nil, gerr
		}
		if cerr := dbtx.Commit(); cerr != nil {
			return nil, nil, &domain.StorageError{Op: "commit settlement", Err: cerr}
		}
		return existing, nil, nil
	}
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "finalize transaction", Err: err}
	}

	if !c.Success {
		// Failed payments settle the row only; no ledger entries.
		if cerr := dbtx.Commit(); cerr != nil {
			return nil, nil, &domain.StorageError{Op: "commit settlement", Err: cerr}
		}
		return tx, nil, nil
	}

	chargeDaily := false
	if tx.MatatuID != nil && *tx.MatatuID != "" {
		var exists bool
		gate := `SELECT EXISTS (
		           SELECT 1 FROM ledger_entries
		           WHERE matatu_id = $1 AND type = 'DAILY_FEE' AND charged_on = current_date
		         )`
		if err := dbtx.QueryRowContext(ctx, gate, *tx.MatatuID).Scan(&exists); err != nil {
			return nil, nil, &domain.StorageError{Op: "check daily fee", Err: err}
		}
		chargeDaily = !exists
	}

	written, err := insertEntries(ctx, dbtx, split(tx, chargeDaily))
	if err != nil {
		return nil, nil, err
	}
	if err := dbtx.Commit(); err != nil {
		return nil, nil, &domain.StorageError{Op: "commit settlement", Err: err}
	}
	return tx, written, nil
}

func insertEntries(ctx context.Context, dbtx *sql.Tx, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	insert := `INSERT INTO ledger_entries (transaction_id, sacco_id, matatu_id, type, amount, charged_on, created_at)
	           VALUES ($1, $2, $3, $4, $5, current_date, now())
	           RETURNING id, created_at`
	insertDaily := `INSERT INTO ledger_entries (transaction_id, sacco_id, matatu_id, type, amount, charged_on, created_at)
	                VALUES ($1, $2, $3, $4, $5, current_date, now())
	                ON CONFLICT (matatu_id, charged_on) WHERE type = 'DAILY_FEE' DO NOTHING
	                RETURNING id, created_at`
	written := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		query := insert
		if e.Type == domain.EntryTypeDailyFee {
			query = insertDaily
		}
		err := dbtx.QueryRowContext(ctx, query,
			e.TransactionID, e.SaccoID, e.MatatuID, e.Type, e.Amount).
			Scan(&e.ID, &e.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) && e.Type == domain.EntryTypeDailyFee {
			// A concurrent settlement claimed the daily fee between the
			// gate read and this insert; this transaction settles without it.
			continue
		}
		if err != nil {
			return nil, &domain.StorageError{Op: "insert ledger entry", Err: err}
		}
		written = append(written, e)
	}
	return written, nil
}

func (r *settlementRepository) getByRef(ctx context.Context, dbtx *sql.Tx, externalRef string) (*domain.FareTransaction, error) {
	query := `SELECT id, external_ref, sacco_id, matatu_id, cashier_id, payer_phone, amount, status, receipt, created_at
	          FROM fare_transactions WHERE external_ref = $1`
	var tx domain.FareTransaction
	err := dbtx.QueryRowContext(ctx, query, externalRef).Scan(
		&tx.ID, &tx.ExternalRef, &tx.SaccoID, &tx.MatatuID, &tx.CashierID,
		&tx.PayerPhone, &tx.Amount, &tx.Status, &tx.Receipt, &tx.CreatedAt)
	if err != nil {
		return nil, &domain.StorageError{Op: "get transaction", Err: err}
	}
	return &tx, nil
}
