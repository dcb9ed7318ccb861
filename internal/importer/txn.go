package importer

import (
	"database/sql"
	"fmt"
)

type txHandle = *sql.Tx

// replaceGeneration runs the idempotent delete+insert for one source
// filename inside a single transaction. Any failure rolls back that file's
// rows only.
func (c *Coordinator) replaceGeneration(
	sourceFile string,
	deleteOld func(txHandle, string) error,
	insertNew func(txHandle) (int, error),
) (int, error) {
	tx, err := c.store.BeginTx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteOld(tx, sourceFile); err != nil {
		return 0, err
	}
	inserted, err := insertNew(tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}
