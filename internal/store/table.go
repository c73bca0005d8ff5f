package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pitchdeck-scraper/internal/domain"
)

// ErrNotFound is returned by GetRun for an unknown id.
var ErrNotFound = errors.New("store: not found")

type ListRunsOpts struct {
	Operation string // companies | pitches | "" for both
	Limit     int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  operation TEXT NOT NULL,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  output_path TEXT NOT NULL,
  record_count INTEGER NOT NULL DEFAULT 0
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS records (
  run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  payload TEXT NOT NULL,
  PRIMARY KEY (run_id, position)
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_runs_operation_finished
ON runs(operation, finished_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

const runColumns = `id, operation, started_at, finished_at, output_path, record_count`

func scanRun(row interface{ Scan(...any) error }) (domain.Run, error) {
	var r domain.Run
	var started, finished string
	if err := row.Scan(&r.ID, &r.Operation, &started, &finished, &r.OutputPath, &r.RecordCount); err != nil {
		return domain.Run{}, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return r, nil
}

// ListRuns returns archived runs, newest first.
func ListRuns(ctx context.Context, db *sql.DB, opts ListRunsOpts) ([]domain.Run, error) {
	if opts.Limit <= 0 || opts.Limit > 1000 {
		opts.Limit = 50
	}

	where := ""
	args := []any{}
	if opts.Operation != "" {
		where = "WHERE operation = ?"
		args = append(args, opts.Operation)
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT %s
FROM runs
%s
ORDER BY id DESC
LIMIT ?;
`, runColumns, where)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func GetRun(ctx context.Context, db *sql.DB, id int64) (domain.Run, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM runs WHERE id = ?;`, runColumns), id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Run{}, ErrNotFound
	}
	return r, err
}

// ListRecords returns the archived records of a run as raw JSON, in the order
// they were exported.
func ListRecords(ctx context.Context, db *sql.DB, runID int64) ([]json.RawMessage, error) {
	rows, err := db.QueryContext(ctx, `
SELECT payload
FROM records
WHERE run_id = ?
ORDER BY position ASC;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(payload))
	}
	return out, rows.Err()
}

func CleanupOldRuns(ctx context.Context, db *sql.DB, olderThan time.Duration) (deleted int64, err error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	res, err := db.ExecContext(ctx, `
DELETE FROM runs
WHERE finished_at < ?;
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
