package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// readTx runs fn inside a read-only repeatable-read transaction so the
// several queries that make up one event graph see the same snapshot.
func (r *Repo) readTx(ctx context.Context, fn func(q queryer) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return err
	}

	defer func() {
		// Safety: in case fn panics, rollback to avoid leaked tx.
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
