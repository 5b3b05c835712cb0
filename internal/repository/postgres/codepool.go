package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kirish34/teketeke/internal/domain"
	"github.com/kirish34/teketeke/internal/repository"
)

type codePoolRepository struct {
	db *sql.DB
}

func NewCodePoolRepository(db *sql.DB) repository.CodePoolRepository {
	return &codePoolRepository{db: db}
}

func (r *codePoolRepository) Seed(ctx context.Context) error {
	query := `INSERT INTO code_pool (base, checksum, allocated) VALUES ($1, $2, false)
	          ON CONFLICT (base) DO NOTHING`
	for n := 1; n <= 999; n++ {
		base := fmt.Sprintf("%03d", n)
		if _, err := r.db.ExecContext(ctx, query, base, domain.DigitalRoot(n)); err != nil {
			return &domain.StorageError{Op: "seed code pool", Err: err}
		}
	}
	return nil
}

// ClaimLowest selects and allocates the lowest free base in one statement.
// FOR UPDATE SKIP LOCKED keeps two concurrent callers from racing for the
// same row; each claims a distinct base or gets ErrOutOfCodes.
func (r *codePoolRepository) ClaimLowest(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error) {
	query := `UPDATE code_pool SET allocated = true, owner_type = $1, owner_id = $2, allocated_at = now()
	          WHERE base = (
	            SELECT base FROM code_pool WHERE NOT allocated
	            ORDER BY base LIMIT 1
	            FOR UPDATE SKIP LOCKED
	          )
	          RETURNING base, checksum, allocated, owner_type, owner_id, allocated_at`
	entry, err := r.scanEntry(r.db.QueryRowContext(ctx, query, ownerType, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOutOfCodes
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "claim lowest code", Err: err}
	}
	return entry, nil
}

// ClaimBase allocates a specific base with a conditional update guarded by
// the current allocated flag, so two concurrent binds of the same base
// cannot both succeed.
func (r *codePoolRepository) ClaimBase(ctx context.Context, base string, ownerType domain.CodeOwnerType, ownerID string) (*domain.CodePoolEntry, error) {
	query := `UPDATE code_pool SET allocated = true, owner_type = $2, owner_id = $3, allocated_at = now()
	          WHERE base = $1 AND NOT allocated
	          RETURNING base, checksum, allocated, owner_type, owner_id, allocated_at`
	entry, err := r.scanEntry(r.db.QueryRowContext(ctx, query, base, ownerType, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		existing, gerr := r.GetByBase(ctx, base)
		if gerr != nil {
			return nil, gerr
		}
		if existing == nil {
			return nil, domain.ErrUnknownBase
		}
		return nil, domain.ErrAlreadyAllocated
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "claim code base", Err: err}
	}
	return entry, nil
}

func (r *codePoolRepository) Release(ctx context.Context, base string) error {
	query := `UPDATE code_pool SET allocated = false, owner_type = NULL, owner_id = NULL, allocated_at = NULL
	          WHERE base = $1 AND allocated`
	res, err := r.db.ExecContext(ctx, query, base)
	if err != nil {
		return &domain.StorageError{Op: "release code", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "release code", Err: err}
	}
	if n == 0 {
		existing, gerr := r.GetByBase(ctx, base)
		if gerr != nil {
			return gerr
		}
		if existing == nil {
			return domain.ErrUnknownBase
		}
		return domain.ErrNotAllocated
	}
	return nil
}

func (r *codePoolRepository) GetByBase(ctx context.Context, base string) (*domain.CodePoolEntry, error) {
	query := `SELECT base, checksum, allocated, owner_type, owner_id, allocated_at
	          FROM code_pool WHERE base = $1`
	entry, err := r.scanEntry(r.db.QueryRowContext(ctx, query, base))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get code", Err: err}
	}
	return entry, nil
}

func (r *codePoolRepository) ListAllocated(ctx context.Context, ownerType domain.CodeOwnerType, ownerID string) ([]domain.CodePoolEntry, error) {
	query := `SELECT base, checksum, allocated, owner_type, owner_id, allocated_at
	          FROM code_pool WHERE allocated AND owner_type = $1 AND owner_id = $2 ORDER BY base`
	rows, err := r.db.QueryContext(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list allocated codes", Err: err}
	}
	defer rows.Close()

	var entries []domain.CodePoolEntry
	for rows.Next() {
		var e domain.CodePoolEntry
		var ownerType sql.NullString
		var ownerID sql.NullString
		var allocatedAt sql.NullTime
		if err := rows.Scan(&e.Base, &e.Checksum, &e.Allocated, &ownerType, &ownerID, &allocatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan code", Err: err}
		}
		applyOwner(&e, ownerType, ownerID, allocatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list allocated codes", Err: err}
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *codePoolRepository) scanEntry(row rowScanner) (*domain.CodePoolEntry, error) {
	var e domain.CodePoolEntry
	var ownerType sql.NullString
	var ownerID sql.NullString
	var allocatedAt sql.NullTime
	if err := row.Scan(&e.Base, &e.Checksum, &e.Allocated, &ownerType, &ownerID, &allocatedAt); err != nil {
		return nil, err
	}
	applyOwner(&e, ownerType, ownerID, allocatedAt)
	return &e, nil
}

func applyOwner(e *domain.CodePoolEntry, ownerType, ownerID sql.NullString, allocatedAt sql.NullTime) {
	if ownerType.Valid {
		t := domain.CodeOwnerType(ownerType.String)
		e.OwnerType = &t
	}
	if ownerID.Valid {
		e.OwnerID = &ownerID.String
	}
	if allocatedAt.Valid {
		e.AllocatedAt = &allocatedAt.Time
	}
}
