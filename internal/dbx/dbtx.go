// Package dbx provides the tiny database abstractions shared by all Arvo
// repositories: a minimal interface (DBTX) satisfied by both *sql.DB and
// *sql.Tx, and a helper to run a function inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories use. Passing a *sql.Tx
// lets several repositories take part in one atomic operation, e.g. account
// deletion cascading over users, schedules and notes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with the transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if err := users.NewSQLiteRepository(tx).Delete(ctx, id); err != nil {
//	        return err
//	    }
//	    return schedules.NewSQLiteRepository(tx).DeleteByUser(ctx, id)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
