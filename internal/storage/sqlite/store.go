// Package sqlite persists finished runs and their result records for
// later audit. One row per run; the typed result record is stored as
// JSON alongside a short human-readable summary.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/faultline/domain"
)

// Run is one persisted toolkit run.
type Run struct {
	// ID is the run identifier (see pkg/id.RunID).
	ID string

	// Kind is "minimize", "bisect", "compare" or "score".
	Kind string

	// Summary is a one-line human-readable outcome.
	Summary string

	// Result is the JSON-encoded result record.
	Result json.RawMessage

	StartedAt  time.Time
	FinishedAt time.Time
}

// Store is a SQLite-backed run store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, err
	}
	// SQLite works best with a single connection for writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			summary TEXT NOT NULL,
			result_json TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts a finished run.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, summary, result_json, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Summary, string(run.Result), run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, summary, result_json, started_at, finished_at FROM runs WHERE id = ?`, runID)
	var run Run
	var result string
	if err := row.Scan(&run.ID, &run.Kind, &run.Summary, &result, &run.StartedAt, &run.FinishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, runID)
		}
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	run.Result = json.RawMessage(result)
	return &run, nil
}

// ListRuns returns all runs of a kind (or all kinds when kind is
// empty), newest first.
func (s *Store) ListRuns(ctx context.Context, kind string) ([]Run, error) {
	query := `SELECT id, kind, summary, result_json, started_at, finished_at FROM runs`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY finished_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var result string
		if err := rows.Scan(&run.ID, &run.Kind, &run.Summary, &result, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
