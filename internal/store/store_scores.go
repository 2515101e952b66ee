package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// execer is satisfied by both *sql.DB and *sql.Tx so single upserts and
// transactional batches share one code path.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// UpsertScore inserts or replaces the durable row for a single file.
// Review note and score-at-review columns are left untouched so a rescore
// never erases a recorded decision.
func (ss *ScoreStoreImpl) UpsertScore(score *schema.FileScore, mtime int64) error {
	if ss.disabled() {
		return nil
	}
	return ss.upsertScore(ss.db, score, mtime)
}

// UpsertScores inserts or replaces many rows inside one transaction.
// All rows land or none do.
func (ss *ScoreStoreImpl) UpsertScores(scores []*schema.FileScore, mtimes map[string]int64) error {
	if ss.disabled() {
		return nil
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin score transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, score := range scores {
		if err := ss.upsertScore(tx, score, mtimes[score.Path]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// upsertScore writes one file row through the given executor.
func (ss *ScoreStoreImpl) upsertScore(ex execer, score *schema.FileScore, mtime int64) error {
	componentsJSON, err := json.Marshal(score.Components)
	if err != nil {
		return fmt.Errorf("failed to marshal score components for %s: %w", score.Path, err)
	}

	_, err = ex.Exec(ss.getUpsertScoreQuery(),
		score.Path,
		score.RelativePath,
		score.CompositeScore,
		score.LOC,
		string(score.Language),
		score.LastModified,
		string(score.Supervision),
		mtime,
		string(componentsJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert score for %s: %w", score.Path, err)
	}
	return nil
}

// getUpsertScoreQuery returns the UPSERT query for the backend.
func (ss *ScoreStoreImpl) getUpsertScoreQuery() string {
	quotedTableName := quoteTableName(fileScoresTable, ss.backend)
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s
			(path, relative_path, composite_score, loc, language, last_modified, supervision_status, mtime_cached, score_data_json, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE
				relative_path = new.relative_path,
				composite_score = new.composite_score,
				loc = new.loc,
				language = new.language,
				last_modified = new.last_modified,
				supervision_status = new.supervision_status,
				mtime_cached = new.mtime_cached,
				score_data_json = new.score_data_json,
				updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s
			(path, relative_path, composite_score, loc, language, last_modified, supervision_status, mtime_cached, score_data_json, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (path) DO UPDATE SET
				relative_path = EXCLUDED.relative_path,
				composite_score = EXCLUDED.composite_score,
				loc = EXCLUDED.loc,
				language = EXCLUDED.language,
				last_modified = EXCLUDED.last_modified,
				supervision_status = EXCLUDED.supervision_status,
				mtime_cached = EXCLUDED.mtime_cached,
				score_data_json = EXCLUDED.score_data_json,
				updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s
			(path, relative_path, composite_score, loc, language, last_modified, supervision_status, mtime_cached, score_data_json, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (path) DO UPDATE SET
				relative_path = excluded.relative_path,
				composite_score = excluded.composite_score,
				loc = excluded.loc,
				language = excluded.language,
				last_modified = excluded.last_modified,
				supervision_status = excluded.supervision_status,
				mtime_cached = excluded.mtime_cached,
				score_data_json = excluded.score_data_json,
				updated_at = excluded.updated_at`, quotedTableName)
	}
}

// scoreColumns is the SELECT column list shared by every score read.
const scoreColumns = "path, relative_path, composite_score, loc, language, last_modified, supervision_status, score_data_json"

// GetScore returns the durable row for a file, or sql.ErrNoRows if absent.
func (ss *ScoreStoreImpl) GetScore(path string) (*schema.FileScore, error) {
	if ss.disabled() {
		return nil, sql.ErrNoRows
	}

	quotedTableName := quoteTableName(fileScoresTable, ss.backend)
	placeholder := ss.getPlaceholder()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE path = %s`, scoreColumns, quotedTableName, placeholder)

	return scanFileScore(ss.db.QueryRow(query, path))
}

// GetAllScores returns every durable file row, ordered by composite score descending.
func (ss *ScoreStoreImpl) GetAllScores() ([]*schema.FileScore, error) {
	if ss.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(fileScoresTable, ss.backend)
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY composite_score DESC`, scoreColumns, quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scores []*schema.FileScore
	for rows.Next() {
		score, err := scanFileScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scores: %w", err)
	}
	return scores, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFileScore hydrates one FileScore from a score row. A malformed
// components blob degrades to empty components instead of failing the load.
func scanFileScore(row rowScanner) (*schema.FileScore, error) {
	var score schema.FileScore
	var language, supervision, componentsJSON string

	err := row.Scan(
		&score.Path,
		&score.RelativePath,
		&score.CompositeScore,
		&score.LOC,
		&language,
		&score.LastModified,
		&supervision,
		&componentsJSON,
	)
	if err != nil {
		return nil, err
	}

	score.Language = schema.Language(language)
	score.Supervision = schema.SupervisionStatus(supervision)
	if err := json.Unmarshal([]byte(componentsJSON), &score.Components); err != nil {
		score.Components = schema.EmptyComponents()
	}
	return &score, nil
}

// GetMtime returns the cached modification time for a file, or sql.ErrNoRows
// if the file has no row or the row predates mtime caching.
func (ss *ScoreStoreImpl) GetMtime(path string) (int64, error) {
	if ss.disabled() {
		return 0, sql.ErrNoRows
	}

	quotedTableName := quoteTableName(fileScoresTable, ss.backend)
	placeholder := ss.getPlaceholder()
	query := fmt.Sprintf(`SELECT mtime_cached FROM %s WHERE path = %s`, quotedTableName, placeholder)

	var mtime sql.NullInt64
	if err := ss.db.QueryRow(query, path).Scan(&mtime); err != nil {
		return 0, err
	}
	if !mtime.Valid {
		return 0, sql.ErrNoRows
	}
	return mtime.Int64, nil
}

// UpdateSupervision records a review decision against an existing row.
// Returns sql.ErrNoRows if the file has never been scored.
func (ss *ScoreStoreImpl) UpdateSupervision(path string, status schema.SupervisionStatus, note string, scoreAtReview float64) error {
	if ss.disabled() {
		return sql.ErrNoRows
	}

	quotedTableName := quoteTableName(fileScoresTable, ss.backend)
	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET supervision_status = $1, supervision_note = $2, supervision_score = $3, updated_at = $4 WHERE path = $5`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET supervision_status = ?, supervision_note = ?, supervision_score = ?, updated_at = ? WHERE path = ?`, quotedTableName)
	}

	result, err := ss.db.Exec(query, string(status), note, scoreAtReview, time.Now().Unix(), path)
	if err != nil {
		return fmt.Errorf("failed to update supervision for %s: %w", path, err)
	}
	return requireAffected(result)
}

// getPlaceholder returns the single-parameter placeholder for the backend.
func (ss *ScoreStoreImpl) getPlaceholder() string {
	switch ss.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}
