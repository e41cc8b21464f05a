// File: internal/journal/journal.go
// Brief: SQLite run journal for deploy/teardown audit history.

// Package journal records runs and their events in a local sqlite file. It is
// an audit trail only: orchestration decisions never read it, so deleting the
// file loses history but changes no behavior.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

type Store struct {
	db   *sql.DB
	path string
}

// RunRecord is one journaled run.
type RunRecord struct {
	RunID     string
	PlanName  string
	Command   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventRecord is one journaled event within a run.
type EventRecord struct {
	Time    time.Time
	Stack   string
	Type    string
	Phase   string
	Status  string
	Message string
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create journal directory")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping journal")
	}
	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`
CREATE TABLE IF NOT EXISTS pendulum_runs (
  run_id TEXT PRIMARY KEY,
  plan_name TEXT NOT NULL,
  command TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at_ns INTEGER NOT NULL,
  updated_at_ns INTEGER NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS pendulum_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL,
  ts_ns INTEGER NOT NULL,
  stack TEXT NOT NULL,
  type TEXT NOT NULL,
  phase TEXT NOT NULL,
  status TEXT NOT NULL,
  message TEXT NOT NULL,
  FOREIGN KEY (run_id) REFERENCES pendulum_runs(run_id) ON DELETE CASCADE
);`,
		`CREATE INDEX IF NOT EXISTS idx_pendulum_events_run_id_id ON pendulum_events(run_id, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "init journal schema")
		}
	}
	return nil
}

// BeginRun inserts a run in status "running".
func (s *Store) BeginRun(ctx context.Context, runID, planName, command string) error {
	now := time.Now().UnixNano()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pendulum_runs (run_id, plan_name, command, status, created_at_ns, updated_at_ns)
		 VALUES (?, ?, ?, 'running', ?, ?)`,
		runID, planName, command, now, now)
	return errors.Wrap(err, "begin run")
}

// CompleteRun marks the run's terminal status.
func (s *Store) CompleteRun(ctx context.Context, runID, status string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE pendulum_runs SET status = ?, updated_at_ns = ? WHERE run_id = ?`,
		status, time.Now().UnixNano(), runID)
	return errors.Wrap(err, "complete run")
}

// AppendEvent journals one event. Errors are returned for callers that care;
// the observer adapter drops them so a full disk never aborts a run.
func (s *Store) AppendEvent(ctx context.Context, runID string, ev stack.Event) error {
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pendulum_events (run_id, ts_ns, stack, type, phase, status, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, ts.UnixNano(), ev.Stack, string(ev.Type), ev.Phase, ev.Status, ev.Message)
	return errors.Wrap(err, "append event")
}

// Observer adapts the store into a run event observer for the given run.
// RunCompleted events also settle the run row's status.
func (s *Store) Observer(runID string) stack.EventObserver {
	return stack.EventObserverFunc(func(ev stack.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.AppendEvent(ctx, runID, ev)
		if ev.Type == stack.RunCompleted {
			status := ev.Status
			if status == "" {
				status = "completed"
			}
			_ = s.CompleteRun(ctx, runID, status)
		}
	})
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, plan_name, command, status, created_at_ns, updated_at_ns
		 FROM pendulum_runs ORDER BY created_at_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()
	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var created, updated int64
		if err := rows.Scan(&r.RunID, &r.PlanName, &r.Command, &r.Status, &created, &updated); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		r.CreatedAt = time.Unix(0, created)
		r.UpdatedAt = time.Unix(0, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Events returns a run's journaled events in append order.
func (s *Store) Events(ctx context.Context, runID string) ([]EventRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts_ns, stack, type, phase, status, message
		 FROM pendulum_events WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	defer rows.Close()
	var out []EventRecord
	for rows.Next() {
		var e EventRecord
		var ts int64
		if err := rows.Scan(&ts, &e.Stack, &e.Type, &e.Phase, &e.Status, &e.Message); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		e.Time = time.Unix(0, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
