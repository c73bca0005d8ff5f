package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pitchdeck-scraper/internal/domain"
)

// RecordRun archives one successful export and its records in a single
// transaction. run.ID and run.RecordCount are filled in from the insert.
func RecordRun[T any](ctx context.Context, db *sql.DB, run domain.Run, records []T) (domain.Run, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Run{}, err
	}
	defer func() { _ = tx.Rollback() }()

	run.RecordCount = len(records)
	res, err := tx.ExecContext(ctx, `
INSERT INTO runs (operation, started_at, finished_at, output_path, record_count)
VALUES (?, ?, ?, ?, ?);`,
		run.Operation,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.OutputPath,
		run.RecordCount,
	)
	if err != nil {
		return domain.Run{}, fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Run{}, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (run_id, position, payload) VALUES (?, ?, ?);`)
	if err != nil {
		return domain.Run{}, err
	}
	defer stmt.Close()

	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return domain.Run{}, fmt.Errorf("encode record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, string(b)); err != nil {
			return domain.Run{}, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Run{}, err
	}
	return run, nil
}
