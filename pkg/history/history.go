// Package history records reconciliation runs in a SQLite ledger.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
)

// Input is one source file that fed a run.
type Input struct {
	Source   string `json:"source" yaml:"source"`
	Path     string `json:"path" yaml:"path"`
	Rows     int    `json:"rows" yaml:"rows"`
	Degraded bool   `json:"degraded" yaml:"degraded"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Run is one recorded reconciliation.
type Run struct {
	RunID           string        `json:"run_id" yaml:"run_id"`
	StartedAt       time.Time     `json:"started_at" yaml:"started_at"`
	Duration        time.Duration `json:"duration" yaml:"duration"`
	MasterPath      string        `json:"master_path" yaml:"master_path"`
	OutputPath      string        `json:"output_path" yaml:"output_path"`
	Precedence      []string      `json:"precedence" yaml:"precedence"`
	PurgePolicy     string        `json:"purge_policy" yaml:"purge_policy"`
	MasterRows      int           `json:"master_rows" yaml:"master_rows"`
	Existing        int           `json:"existing" yaml:"existing"`
	Removed         int           `json:"removed" yaml:"removed"`
	NewlyAdded      int           `json:"newly_added" yaml:"newly_added"`
	Purged          int           `json:"purged" yaml:"purged"`
	CoverageMatched int           `json:"coverage_matched" yaml:"coverage_matched"`
	TotalRows       int           `json:"total_rows" yaml:"total_rows"`
	DryRun          bool          `json:"dry_run" yaml:"dry_run"`
	Inputs          []Input       `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// Store is a run ledger backed by a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the ledger at path. The path ":memory:" opens a
// private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, &errors.ValidationError{Field: "history_db", Message: "cannot be empty"}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run and its inputs in one transaction.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.RunID == "" {
		return &errors.ValidationError{Field: "run_id", Message: "cannot be empty"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at, duration_ms, master_path, output_path,
			precedence, purge_policy, master_rows, existing, removed, newly_added,
			purged, coverage_matched, total_rows, dry_run)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.MasterPath, run.OutputPath,
		strings.Join(run.Precedence, ","), run.PurgePolicy, run.MasterRows, run.Existing,
		run.Removed, run.NewlyAdded, run.Purged, run.CoverageMatched, run.TotalRows, run.DryRun,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
	}

	for _, in := range run.Inputs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_inputs (run_id, source, path, row_count, degraded, message)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.RunID, in.Source, in.Path, in.Rows, in.Degraded, in.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to insert input %s for run %s: %w", in.Source, run.RunID, err)
		}
	}

	return tx.Commit()
}

// List returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := selectRuns + " ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// Get returns one run by id.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	runs, err := s.query(ctx, selectRuns+" WHERE run_id = ?", runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.NewNotFoundError("run", runID)
	}
	return &runs[0], nil
}

const selectRuns = `
	SELECT run_id, started_at, duration_ms, master_path, COALESCE(output_path, ''),
		COALESCE(precedence, ''), COALESCE(purge_policy, ''), master_rows, existing,
		removed, newly_added, purged, coverage_matched, total_rows, dry_run
	FROM runs`

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			precedence string
		)
		if err := rows.Scan(&r.RunID, &r.StartedAt, &durationMS, &r.MasterPath, &r.OutputPath,
			&precedence, &r.PurgePolicy, &r.MasterRows, &r.Existing, &r.Removed, &r.NewlyAdded,
			&r.Purged, &r.CoverageMatched, &r.TotalRows, &r.DryRun); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if precedence != "" {
			r.Precedence = strings.Split(precedence, ",")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// the single connection is released before the nested queries run
	rows.Close()

	for i := range runs {
		inputs, err := s.inputs(ctx, runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Inputs = inputs
	}
	return runs, nil
}

func (s *Store) inputs(ctx context.Context, runID string) ([]Input, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COALESCE(path, ''), row_count, degraded, COALESCE(message, '')
		FROM run_inputs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inputs for run %s: %w", runID, err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var in Input
		if err := rows.Scan(&in.Source, &in.Path, &in.Rows, &in.Degraded, &in.Message); err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	return inputs, rows.Err()
}
