package store

import (
	"fmt"

	"github.com/debtengine/debtengine/schema"
)

// GetStatus returns connection health and per-table row counts.
func (ss *ScoreStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.disabled() {
		return status, nil
	}

	status.TableSizes = make(map[string]int64, len(allTables))
	for _, table := range allTables {
		quotedTableName := quoteTableName(table, ss.backend)
		var count int64
		if err := ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.FileCount = status.TableSizes[fileScoresTable]
	status.SnapshotCount = status.TableSizes[snapshotsTable]

	return status, nil
}

// Clear wipes every table. The schema itself is kept.
func (ss *ScoreStoreImpl) Clear() error {
	if ss.disabled() {
		return nil
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range allTables {
		quotedTableName := quoteTableName(table, ss.backend)
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", quotedTableName)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying DB connection.
func (ss *ScoreStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
