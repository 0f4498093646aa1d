// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of diary-tex runs and the files each
// run created, modified, skipped or generated.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/diary-tex/pkg/types"
)

// OutcomeGenerated marks a chapter file written by the month tool.
const OutcomeGenerated types.Outcome = "generated"

const defaultLimit = 20

// Ledger manages the run history database.
type Ledger struct {
	db *sql.DB
}

// Event is one file touched during a run, joined with its run.
type Event struct {
	RunID      int64         `json:"run_id" yaml:"run_id"`
	Tool       string        `json:"tool" yaml:"tool"`
	Args       string        `json:"args" yaml:"args"`
	Path       string        `json:"path" yaml:"path"`
	Outcome    types.Outcome `json:"outcome" yaml:"outcome"`
	RecordedAt time.Time     `json:"recorded_at" yaml:"recorded_at"`
}

// Open opens or creates the ledger database at path and its schema.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool TEXT NOT NULL,
			args TEXT,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun records the start of a tool invocation and returns its id.
func (l *Ledger) BeginRun(ctx context.Context, tool string, args []string) (int64, error) {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (tool, args, started_at) VALUES (?, ?, ?)`,
		tool, strings.Join(args, " "), now())
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// Record appends one file event to run.
func (l *Ledger) Record(ctx context.Context, runID int64, path string, outcome types.Outcome) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO events (run_id, path, outcome, recorded_at) VALUES (?, ?, ?, ?)`,
		runID, path, string(outcome), now())
	if err != nil {
		return fmt.Errorf("recording event for %s: %w", path, err)
	}
	return nil
}

// Recent returns up to limit events, newest first. A limit of zero or less
// uses the default of 20.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT r.id, r.tool, r.args, e.path, e.outcome, e.recorded_at
		FROM events e JOIN runs r ON r.id = e.run_id
		ORDER BY e.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e        Event
			args     sql.NullString
			outcome  string
			recorded string
		)
		if err := rows.Scan(&e.RunID, &e.Tool, &args, &e.Path, &outcome, &recorded); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Args = args.String
		e.Outcome = types.Outcome(outcome)
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		events = append(events, e)
	}
	return events, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
