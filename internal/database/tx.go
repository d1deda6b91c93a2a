package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunInTx runs fn inside a transaction. The transaction commits only when
// fn returns nil; any error rolls everything back.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
