package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// --- Snapshots ---

// AddSnapshot appends one row to the workspace history log and fills in the
// generated ID.
func (ss *ScoreStoreImpl) AddSnapshot(snap *schema.DebtSnapshot) error {
	if ss.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(snapshotsTable, ss.backend)

	switch ss.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (timestamp, composite_score, file_count, high_debt_count) VALUES ($1, $2, $3, $4) RETURNING id`, quotedTableName)
		if err := ss.db.QueryRow(query, snap.Timestamp, snap.CompositeScore, snap.FileCount, snap.HighDebtCount).Scan(&snap.ID); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (timestamp, composite_score, file_count, high_debt_count) VALUES (?, ?, ?, ?)`, quotedTableName)
		result, err := ss.db.Exec(query, snap.Timestamp, snap.CompositeScore, snap.FileCount, snap.HighDebtCount)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
		snap.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read snapshot id: %w", err)
		}
	}
	return nil
}

// ListSnapshots returns snapshots newest first. A limit of zero or less
// returns the whole log.
func (ss *ScoreStoreImpl) ListSnapshots(limit int) ([]*schema.DebtSnapshot, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotsTable, ss.backend)
	query := fmt.Sprintf(`SELECT id, timestamp, composite_score, file_count, high_debt_count FROM %s ORDER BY timestamp DESC, id DESC`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []*schema.DebtSnapshot
	for rows.Next() {
		var snap schema.DebtSnapshot
		if err := rows.Scan(&snap.ID, &snap.Timestamp, &snap.CompositeScore, &snap.FileCount, &snap.HighDebtCount); err != nil {
			return nil, err
		}
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snaps, nil
}

// PruneSnapshots deletes the oldest snapshots beyond the retention count.
func (ss *ScoreStoreImpl) PruneSnapshots(retain int) error {
	if ss.disabled() || retain <= 0 {
		return nil
	}

	quotedTableName := quoteTableName(snapshotsTable, ss.backend)
	// The derived table keeps MySQL happy, it cannot LIMIT inside IN directly.
	query := fmt.Sprintf(`DELETE FROM %s WHERE id NOT IN (SELECT id FROM (SELECT id FROM %s ORDER BY timestamp DESC, id DESC LIMIT %d) AS keep_rows)`,
		quotedTableName, quotedTableName, retain)

	if _, err := ss.db.Exec(query); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

// --- Debt Register ---

// AddRegisterItem inserts a new tracked debt item.
func (ss *ScoreStoreImpl) AddRegisterItem(item *schema.RegisterItem) error {
	if ss.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(registerTable, ss.backend)
	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, created_at, updated_at, title, note, file_path, severity, item_type, status) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (id, created_at, updated_at, title, note, file_path, severity, item_type, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
	}

	_, err := ss.db.Exec(query,
		item.ID, item.CreatedAt, item.UpdatedAt, item.Title, item.Note, item.FilePath,
		string(item.Severity), string(item.Type), string(item.Status))
	if err != nil {
		return fmt.Errorf("failed to insert debt item: %w", err)
	}
	return nil
}

// UpdateRegisterItem rewrites an existing item. Returns sql.ErrNoRows if the
// id is unknown.
func (ss *ScoreStoreImpl) UpdateRegisterItem(item *schema.RegisterItem) error {
	if ss.disabled() {
		return sql.ErrNoRows
	}

	quotedTableName := quoteTableName(registerTable, ss.backend)
	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET updated_at = $1, title = $2, note = $3, file_path = $4, severity = $5, item_type = $6, status = $7 WHERE id = $8`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET updated_at = ?, title = ?, note = ?, file_path = ?, severity = ?, item_type = ?, status = ? WHERE id = ?`, quotedTableName)
	}

	result, err := ss.db.Exec(query,
		item.UpdatedAt, item.Title, item.Note, item.FilePath,
		string(item.Severity), string(item.Type), string(item.Status), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update debt item %s: %w", item.ID, err)
	}
	return requireAffected(result)
}

// registerColumns is the SELECT column list shared by register reads.
const registerColumns = "id, created_at, updated_at, title, note, file_path, severity, item_type, status"

// GetRegisterItem returns one tracked debt item, or sql.ErrNoRows if absent.
func (ss *ScoreStoreImpl) GetRegisterItem(id string) (*schema.RegisterItem, error) {
	if ss.disabled() {
		return nil, sql.ErrNoRows
	}

	quotedTableName := quoteTableName(registerTable, ss.backend)
	placeholder := ss.getPlaceholder()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = %s`, registerColumns, quotedTableName, placeholder)

	return scanRegisterItem(ss.db.QueryRow(query, id))
}

// ListRegisterItems returns items with the given status, newest first.
// An empty status returns every item.
func (ss *ScoreStoreImpl) ListRegisterItems(status schema.RegisterStatus) ([]*schema.RegisterItem, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(registerTable, ss.backend)
	var rows *sql.Rows
	var err error
	if status == "" {
		query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY updated_at DESC, id`, registerColumns, quotedTableName)
		rows, err = ss.db.Query(query)
	} else {
		placeholder := ss.getPlaceholder()
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE status = %s ORDER BY updated_at DESC, id`, registerColumns, quotedTableName, placeholder)
		rows, err = ss.db.Query(query, string(status))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query debt items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*schema.RegisterItem
	for rows.Next() {
		item, err := scanRegisterItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt items: %w", err)
	}
	return items, nil
}

// scanRegisterItem hydrates one RegisterItem from a register row.
func scanRegisterItem(row rowScanner) (*schema.RegisterItem, error) {
	var item schema.RegisterItem
	var note, filePath sql.NullString
	var severity, itemType, status string

	err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt, &item.Title,
		&note, &filePath, &severity, &itemType, &status)
	if err != nil {
		return nil, err
	}

	item.Note = note.String
	item.FilePath = filePath.String
	item.Severity = schema.RegisterSeverity(severity)
	item.Type = schema.RegisterType(itemType)
	item.Status = schema.RegisterStatus(status)
	return &item, nil
}

// DeleteRegisterItem removes one item. Returns sql.ErrNoRows if the id is unknown.
func (ss *ScoreStoreImpl) DeleteRegisterItem(id string) error {
	if ss.disabled() {
		return sql.ErrNoRows
	}

	quotedTableName := quoteTableName(registerTable, ss.backend)
	placeholder := ss.getPlaceholder()
	result, err := ss.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, quotedTableName, placeholder), id)
	if err != nil {
		return fmt.Errorf("failed to delete debt item %s: %w", id, err)
	}
	return requireAffected(result)
}

// --- Budgets ---

// AddBudget inserts a new debt budget.
func (ss *ScoreStoreImpl) AddBudget(budget *schema.DebtBudget) error {
	if ss.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(budgetsTable, ss.backend)
	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, pattern, label, max_score, created_at) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (id, pattern, label, max_score, created_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := ss.db.Exec(query, budget.ID, budget.Pattern, budget.Label, budget.MaxScore, budget.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// ListBudgets returns every budget, ordered by pattern.
func (ss *ScoreStoreImpl) ListBudgets() ([]*schema.DebtBudget, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(budgetsTable, ss.backend)
	query := fmt.Sprintf(`SELECT id, pattern, label, max_score, created_at FROM %s ORDER BY pattern, id`, quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []*schema.DebtBudget
	for rows.Next() {
		var budget schema.DebtBudget
		if err := rows.Scan(&budget.ID, &budget.Pattern, &budget.Label, &budget.MaxScore, &budget.CreatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, &budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget removes one budget. Returns sql.ErrNoRows if the id is unknown.
func (ss *ScoreStoreImpl) DeleteBudget(id string) error {
	if ss.disabled() {
		return sql.ErrNoRows
	}

	quotedTableName := quoteTableName(budgetsTable, ss.backend)
	placeholder := ss.getPlaceholder()
	result, err := ss.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, quotedTableName, placeholder), id)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", id, err)
	}
	return requireAffected(result)
}

// --- Watchlist ---

// PinFile adds a file to the watchlist. Re-pinning refreshes the timestamp.
func (ss *ScoreStoreImpl) PinFile(path string, pinnedAt time.Time) error {
	if ss.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(watchlistTable, ss.backend)
	var query string
	switch ss.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (file_path, pinned_at) VALUES (?, ?) AS new ON DUPLICATE KEY UPDATE pinned_at = new.pinned_at`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (file_path, pinned_at) VALUES ($1, $2) ON CONFLICT (file_path) DO UPDATE SET pinned_at = EXCLUDED.pinned_at`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`INSERT INTO %s (file_path, pinned_at) VALUES (?, ?) ON CONFLICT (file_path) DO UPDATE SET pinned_at = excluded.pinned_at`, quotedTableName)
	}

	if _, err := ss.db.Exec(query, path, pinnedAt.Unix()); err != nil {
		return fmt.Errorf("failed to pin %s: %w", path, err)
	}
	return nil
}

// UnpinFile removes a file from the watchlist. Returns sql.ErrNoRows if the
// file was not pinned.
func (ss *ScoreStoreImpl) UnpinFile(path string) error {
	if ss.disabled() {
		return sql.ErrNoRows
	}

	quotedTableName := quoteTableName(watchlistTable, ss.backend)
	placeholder := ss.getPlaceholder()
	result, err := ss.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE file_path = %s`, quotedTableName, placeholder), path)
	if err != nil {
		return fmt.Errorf("failed to unpin %s: %w", path, err)
	}
	return requireAffected(result)
}

// ListPins returns every pin, oldest first.
func (ss *ScoreStoreImpl) ListPins() ([]*schema.WatchPin, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(watchlistTable, ss.backend)
	query := fmt.Sprintf(`SELECT file_path, pinned_at FROM %s ORDER BY pinned_at, file_path`, quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pins []*schema.WatchPin
	for rows.Next() {
		var pin schema.WatchPin
		if err := rows.Scan(&pin.FilePath, &pin.PinnedAt); err != nil {
			return nil, err
		}
		pins = append(pins, &pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist: %w", err)
	}
	return pins, nil
}

// --- Couplings ---

// ReplaceCouplings swaps the persisted co-change pair table wholesale.
func (ss *ScoreStoreImpl) ReplaceCouplings(pairs []*schema.CouplingPair) error {
	if ss.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(couplingPairsTable, ss.backend)
	var insertQuery string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		insertQuery = fmt.Sprintf(`INSERT INTO %s (file_a, file_b, co_change_count, coupling_ratio, has_import_link) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
	default: // SQLite and MySQL
		insertQuery = fmt.Sprintf(`INSERT INTO %s (file_a, file_b, co_change_count, coupling_ratio, has_import_link) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin coupling transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, quotedTableName)); err != nil {
		return fmt.Errorf("failed to clear coupling pairs: %w", err)
	}
	for _, pair := range pairs {
		importLink := 0
		if pair.HasImportLink {
			importLink = 1
		}
		if _, err := tx.Exec(insertQuery, pair.FileA, pair.FileB, pair.CoChangeCount, pair.CouplingRatio, importLink); err != nil {
			return fmt.Errorf("failed to insert coupling pair (%s, %s): %w", pair.FileA, pair.FileB, err)
		}
	}
	return tx.Commit()
}

// ListCouplings returns the persisted pairs, strongest first.
func (ss *ScoreStoreImpl) ListCouplings(limit int) ([]*schema.CouplingPair, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(couplingPairsTable, ss.backend)
	query := fmt.Sprintf(`SELECT file_a, file_b, co_change_count, coupling_ratio, has_import_link FROM %s ORDER BY co_change_count DESC, file_a, file_b`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupling pairs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pairs []*schema.CouplingPair
	for rows.Next() {
		var pair schema.CouplingPair
		var importLink int
		if err := rows.Scan(&pair.FileA, &pair.FileB, &pair.CoChangeCount, &pair.CouplingRatio, &importLink); err != nil {
			return nil, err
		}
		pair.HasImportLink = importLink != 0
		pairs = append(pairs, &pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupling pairs: %w", err)
	}
	return pairs, nil
}

// requireAffected converts a zero-row write into sql.ErrNoRows.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
