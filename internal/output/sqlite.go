package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/radlab-hd/laextract/internal/extract"
)

// Store persists run history and per-report outcomes in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens the database at path, configures WAL mode and applies
// the schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: exec %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(storeMigration); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

const storeMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	strategy    TEXT NOT NULL,
	model       TEXT,
	status      TEXT NOT NULL DEFAULT 'running',
	succeeded   INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS results (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	study_id   TEXT NOT NULL,
	status     TEXT NOT NULL,
	error_kind TEXT,
	error      TEXT,
	payload    TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_study_id ON results(study_id);
`

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun records a new run and returns its ID.
func (s *Store) CreateRun(ctx context.Context, strategy, model string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, strategy, model, status, started_at) VALUES (?, ?, ?, 'running', ?)`,
		id, strategy, model, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("sqlite: insert run: %w", err)
	}
	return id, nil
}

// FinishRun records the final counts for a run.
func (s *Store) FinishRun(ctx context.Context, runID string, succeeded, failed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = 'completed', succeeded = ?, failed = ?, finished_at = ? WHERE id = ?`,
		succeeded, failed, time.Now().UTC(), runID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: finish run %s: %w", runID, err)
	}
	return checkRowsAffected(res, runID)
}

// SaveResult records one successful extraction.
func (s *Store) SaveResult(ctx context.Context, runID string, result extract.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("sqlite: marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, run_id, study_id, status, payload, created_at)
		 VALUES (?, ?, ?, 'succeeded', ?, ?)`,
		uuid.New().String(), runID, result.StudyID, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert result for study %s: %w", result.StudyID, err)
	}
	return nil
}

// SaveFailure records one failed extraction.
func (s *Store) SaveFailure(ctx context.Context, runID, studyID, kind, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, run_id, study_id, status, error_kind, error, created_at)
		 VALUES (?, ?, ?, 'failed', ?, ?, ?)`,
		uuid.New().String(), runID, studyID, kind, message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert failure for study %s: %w", studyID, err)
	}
	return nil
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID         string
	Strategy   string
	Model      string
	Status     string
	Succeeded  int
	Failed     int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// ListRuns returns run history, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, strategy, COALESCE(model, ''), status, succeeded, failed, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Strategy, &r.Model, &r.Status, &r.Succeeded, &r.Failed, &r.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("sqlite: scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = &finished.Time
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list runs iterate: %w", err)
	}
	return runs, nil
}

func checkRowsAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite: run not found: %s", runID)
	}
	return nil
}
