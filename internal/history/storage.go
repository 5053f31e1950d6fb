// Package history records one row per orchestrator iteration in a local
// SQLite database, so past runs can be inspected after the loop exits. The
// documents remain the source of truth for task state; history is purely
// observational.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run outcomes.
const (
	OutcomeCompleted = "completed" // task marked completed in the ledger
	OutcomeRetry     = "retry"     // agent returned but task not completed
	OutcomeFailed    = "failed"    // agent invocation failed
)

// Run is one agent invocation against one task.
type Run struct {
	ID         string
	TaskTitle  string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Notes      string
}

// Storage handles SQLite operations for iteration history.
type Storage struct {
	db *sql.DB
}

// NewStorage opens (creating if needed) the history database at dbPath.
func NewStorage(dbPath string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// RecordRun inserts one run row, assigning an ID if absent.
func (s *Storage) RecordRun(run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, task_title, started_at, finished_at, outcome, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.TaskTitle, run.StartedAt, run.FinishedAt, run.Outcome, run.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Storage) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, task_title, started_at, finished_at, outcome, notes
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.TaskTitle, &r.StartedAt, &r.FinishedAt, &r.Outcome, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
