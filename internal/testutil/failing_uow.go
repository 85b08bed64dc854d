package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/bharathg-scrimpify/accord/internal/db"
)

// FaultyUoW wraps a real database but makes the Nth write statement inside a
// transaction fail with Err. Rollback tests use it to break multi-table saves
// partway through, e.g. after the contract row but before its tranches.
//
// Writes are counted from 1. Reads pass through untouched.
type FaultyUoW struct {
	DB         *sql.DB
	FailOnExec int32
	Err        error
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	faulty := &faultyTx{DBTX: tx, failOn: u.FailOnExec, err: u.Err}
	if fnErr := fn(ctx, faulty); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
