// Package store persists the history of enumeration runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"warehouse/internal/grid"
	"warehouse/internal/logging"
	"warehouse/internal/logic"
	"warehouse/internal/percept"
)

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded evaluation of a scenario.
type Run struct {
	ID           string
	Scenario     string
	Observations string
	Summary      logic.Summary
	CreatedAt    time.Time
}

// RunStore records runs in a SQLite database.
type RunStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewRunStore opens (creating if needed) the database at path.
func NewRunStore(path string) (*RunStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	s := &RunStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("run store opened at %s", path)
	return s, nil
}

func (s *RunStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		observations TEXT NOT NULL,
		model_count INTEGER NOT NULL,
		summary_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Record stores a run and returns it with its new ID.
func (s *RunStore) Record(ctx context.Context, scenario string, obs percept.Observations, summary logic.Summary) (Run, error) {
	run := Run{
		ID:           uuid.NewString(),
		Scenario:     scenario,
		Observations: obs.String(),
		Summary:      summary,
		CreatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(encodeSummary(summary))
	if err != nil {
		return Run{}, fmt.Errorf("encode summary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (id, scenario, observations, model_count, summary_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Scenario, run.Observations, summary.Count, string(payload), run.CreatedAt.UnixNano(),
	)
	if err != nil {
		logging.StoreError("failed to record run for %s: %v", scenario, err)
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	logging.StoreDebug("recorded run %s for scenario %s (%d models)", run.ID, scenario, summary.Count)
	return run, nil
}

// List returns the most recent runs, newest first. limit <= 0 means 20.
func (s *RunStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scenario, observations, summary_json, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
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

// Get returns a run by ID.
func (s *RunStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, scenario, observations, summary_json, created_at FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run     Run
		payload string
		created int64
	)
	if err := row.Scan(&run.ID, &run.Scenario, &run.Observations, &payload, &created); err != nil {
		return Run{}, err
	}
	var rec summaryRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return Run{}, fmt.Errorf("decode summary of run %s: %w", run.ID, err)
	}
	run.Summary = rec.decode()
	run.CreatedAt = time.Unix(0, created).UTC()
	return run, nil
}

// summaryRecord is the JSON form of logic.Summary; cells are [x, y] pairs.
type summaryRecord struct {
	Count               int      `json:"count"`
	ProvablySafe        [][2]int `json:"provably_safe"`
	ProvablyHazard      [][2]int `json:"provably_hazard"`
	ProvablyObstruction [][2]int `json:"provably_obstruction"`
	PossibleHazard      [][2]int `json:"possible_hazard"`
	PossibleObstruction [][2]int `json:"possible_obstruction"`
}

func encodeSummary(s logic.Summary) summaryRecord {
	return summaryRecord{
		Count:               s.Count,
		ProvablySafe:        encodeCells(s.ProvablySafe),
		ProvablyHazard:      encodeCells(s.ProvablyHazard),
		ProvablyObstruction: encodeCells(s.ProvablyObstruction),
		PossibleHazard:      encodeCells(s.PossibleHazard),
		PossibleObstruction: encodeCells(s.PossibleObstruction),
	}
}

func (r summaryRecord) decode() logic.Summary {
	return logic.Summary{
		Count:               r.Count,
		ProvablySafe:        decodeCells(r.ProvablySafe),
		ProvablyHazard:      decodeCells(r.ProvablyHazard),
		ProvablyObstruction: decodeCells(r.ProvablyObstruction),
		PossibleHazard:      decodeCells(r.PossibleHazard),
		PossibleObstruction: decodeCells(r.PossibleObstruction),
	}
}

func encodeCells(s grid.CellSet) [][2]int {
	out := make([][2]int, 0, s.Len())
	for _, c := range s.Sorted() {
		out = append(out, [2]int{c.X, c.Y})
	}
	return out
}

func decodeCells(pairs [][2]int) grid.CellSet {
	out := grid.NewCellSet()
	for _, p := range pairs {
		out.Add(grid.Cell{X: p[0], Y: p[1]})
	}
	return out
}
