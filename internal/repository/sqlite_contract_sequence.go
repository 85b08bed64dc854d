package repository

import (
	"context"
	"fmt"

	"github.com/bharathg-scrimpify/accord/internal/db"
)

// SQLiteSequenceRepo allocates contract short-code sequence values
// atomically using the single-row contract_sequences table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// NextContractSeq returns the next available sequential value for contract
// short codes. Allocation is atomic and safe under concurrent writes.
func (r *SQLiteSequenceRepo) NextContractSeq(ctx context.Context) (int, error) {
	var next int
	query := `UPDATE contract_sequences
		SET next_seq = next_seq + 1
		WHERE id = 'default'
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next contract seq: %w", err)
	}
	return next, nil
}

// FormatShortCode renders a sequence value as a contract short code,
// e.g. CT0007.
func FormatShortCode(seq int) string {
	return fmt.Sprintf("CT%04d", seq)
}
