package postgres

import (
	"database/sql"

	"github.com/kirish34/teketeke/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PolicyRepository
	repository.TransactionRepository
	repository.SettlementRepository
	repository.LedgerRepository
	repository.CodePoolRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		PolicyRepository:      NewPolicyRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		SettlementRepository:  NewSettlementRepository(db),
		LedgerRepository:      NewLedgerRepository(db),
		CodePoolRepository:    NewCodePoolRepository(db),
	}
}
