// internal/store/store.go
//
// SQLite persistence for training results.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, FKs).
//   - Bootstrapping the schema (idempotent).
//   - Insert/query helpers for training-run datapoints.
//
// One row per training run: the hyperparameters that produced it and the
// evaluation metrics it earned. The comparison CLI and the HTTP API read
// these rows back.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_runs (
    id             TEXT PRIMARY KEY,
    agent          TEXT NOT NULL,
    alpha          REAL NOT NULL,
    gamma          REAL NOT NULL,
    epsilon        REAL NOT NULL,
    train_fraction REAL NOT NULL,
    solve_rate     REAL NOT NULL,
    avg_guesses    REAL NOT NULL,
    avg_score      REAL NOT NULL,
    states_visited INTEGER NOT NULL,
    avg_visits     REAL NOT NULL,
    delta_raw      REAL NOT NULL,
    delta_rms      REAL NOT NULL,
    created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_training_runs_agent ON training_runs(agent);
`

// Run is one persisted training-run datapoint.
type Run struct {
	ID            string  `json:"id"`
	Agent         string  `json:"agent"`
	Alpha         float64 `json:"alpha"`
	Gamma         float64 `json:"gamma"`
	Epsilon       float64 `json:"epsilon"`
	TrainFraction float64 `json:"trainFraction"`
	SolveRate     float64 `json:"solveRate"`
	AvgGuesses    float64 `json:"avgGuesses"`
	AvgScore      float64 `json:"avgScore"`
	StatesVisited int     `json:"statesVisited"`
	AvgVisits     float64 `json:"avgVisits"`
	DeltaRaw      float64 `json:"deltaRaw"`
	DeltaRMS      float64 `json:"deltaRms"`
	CreatedAt     string  `json:"createdAt"`
}

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the SQLite database at dsn, applies the
// usual pragmas, and bootstraps the schema.
func Open(dsn string) (*Store, error) {
	// Ensure directory exists for ./data/runs.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("store: set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store: bootstrap schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// InsertRun persists one datapoint. CreatedAt is filled if empty.
func (s *Store) InsertRun(ctx context.Context, r Run) error {
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO training_runs
            (id, agent, alpha, gamma, epsilon, train_fraction,
             solve_rate, avg_guesses, avg_score,
             states_visited, avg_visits, delta_raw, delta_rms, created_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.Agent, r.Alpha, r.Gamma, r.Epsilon, r.TrainFraction,
		r.SolveRate, r.AvgGuesses, r.AvgScore,
		r.StatesVisited, r.AvgVisits, r.DeltaRaw, r.DeltaRMS, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert run %s: %w", r.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. Default limit is 50.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queryRuns(ctx, `
        SELECT id, agent, alpha, gamma, epsilon, train_fraction,
               solve_rate, avg_guesses, avg_score,
               states_visited, avg_visits, delta_raw, delta_rms, created_at
        FROM training_runs
        ORDER BY created_at DESC
        LIMIT ?`, limit)
}

// BestRuns returns the top runs by evaluation performance: solve rate
// descending, then fewer average guesses. Default limit is 20.
func (s *Store) BestRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(ctx, `
        SELECT id, agent, alpha, gamma, epsilon, train_fraction,
               solve_rate, avg_guesses, avg_score,
               states_visited, avg_visits, delta_raw, delta_rms, created_at
        FROM training_runs
        ORDER BY solve_rate DESC, avg_guesses ASC, created_at ASC
        LIMIT ?`, limit)
}

func (s *Store) queryRuns(ctx context.Context, q string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Agent, &r.Alpha, &r.Gamma, &r.Epsilon, &r.TrainFraction,
			&r.SolveRate, &r.AvgGuesses, &r.AvgScore,
			&r.StatesVisited, &r.AvgVisits, &r.DeltaRaw, &r.DeltaRMS, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
