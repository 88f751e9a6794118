// Package store persists self-play runs and their match results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/shadowgov/internal/matchid"
	"github.com/lox/shadowgov/internal/statistics"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	difficulty_a  TEXT NOT NULL,
	difficulty_b  TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	matches       INTEGER NOT NULL,
	started_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
	run_id        TEXT NOT NULL,
	match_id      TEXT NOT NULL,
	match_index   INTEGER NOT NULL,
	seed          INTEGER NOT NULL,
	faction_a     TEXT NOT NULL,
	winner        TEXT NOT NULL,
	reason        TEXT NOT NULL,
	turns         INTEGER NOT NULL,
	states_a      INTEGER NOT NULL,
	states_b      INTEGER NOT NULL,
	ip_a          INTEGER NOT NULL,
	ip_b          INTEGER NOT NULL,
	truth         INTEGER NOT NULL,
	cards_played  INTEGER NOT NULL,
	PRIMARY KEY (run_id, match_index),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_matches_id ON matches(match_id);
`

// timeLayout is fixed width so started_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when a run id is unknown
var ErrRunNotFound = errors.New("run not found")

// Run describes one simulate invocation
type Run struct {
	ID          string
	DifficultyA string
	DifficultyB string
	Seed        int64
	Matches     int
	StartedAt   time.Time
}

// Store manages simulation results in SQLite
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateRun records a new run. An empty ID is filled with a fresh match id
// and a zero StartedAt with the current time; the stored run is returned.
func (s *Store) CreateRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = matchid.Generate()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, difficulty_a, difficulty_b, seed, matches, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.DifficultyA, run.DifficultyB, run.Seed, run.Matches, run.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// SaveResult stores one match result under runID. Saving the same match
// twice replaces the earlier row.
func (s *Store) SaveResult(ctx context.Context, runID string, r statistics.MatchResult) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO matches (
	match_id, run_id, match_index, seed, faction_a, winner, reason, turns,
	states_a, states_b, ip_a, ip_b, truth, cards_played
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (run_id, match_index) DO UPDATE SET
	match_id = excluded.match_id,
	seed = excluded.seed,
	faction_a = excluded.faction_a,
	winner = excluded.winner,
	reason = excluded.reason,
	turns = excluded.turns,
	states_a = excluded.states_a,
	states_b = excluded.states_b,
	ip_a = excluded.ip_a,
	ip_b = excluded.ip_b,
	truth = excluded.truth,
	cards_played = excluded.cards_played`,
		r.ID, runID, r.Index, r.Seed, r.FactionA, string(r.Winner), r.Reason, r.Turns,
		r.StatesA, r.StatesB, r.IPA, r.IPB, r.Truth, r.CardsPlayed,
	)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", r.Index, err)
	}
	return nil
}

// GetRun loads a run by id
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, difficulty_a, difficulty_b, seed, matches, started_at FROM runs WHERE run_id = ?`,
		runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	return run, err
}

// Runs lists every run, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, difficulty_a, difficulty_b, seed, matches, started_at FROM runs
		 ORDER BY started_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started string
	if err := row.Scan(&run.ID, &run.DifficultyA, &run.DifficultyB, &run.Seed, &run.Matches, &started); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = t
	return run, nil
}

// Results returns the stored results of a run in match order
func (s *Store) Results(ctx context.Context, runID string) ([]statistics.MatchResult, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT match_id, match_index, seed, faction_a, winner, reason, turns,
       states_a, states_b, ip_a, ip_b, truth, cards_played
FROM matches WHERE run_id = ? ORDER BY match_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var results []statistics.MatchResult
	for rows.Next() {
		r := statistics.MatchResult{DifficultyA: run.DifficultyA, DifficultyB: run.DifficultyB}
		var winner string
		if err := rows.Scan(&r.ID, &r.Index, &r.Seed, &r.FactionA, &winner, &r.Reason, &r.Turns,
			&r.StatesA, &r.StatesB, &r.IPA, &r.IPB, &r.Truth, &r.CardsPlayed); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		r.Winner = statistics.Outcome(winner)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Summary rebuilds the aggregate statistics of a stored run
func (s *Store) Summary(ctx context.Context, runID string) (*statistics.Statistics, error) {
	results, err := s.Results(ctx, runID)
	if err != nil {
		return nil, err
	}
	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	return stats, nil
}
