// Package store abstracts access to the backlog/ledger document pair so the
// parsing and mutation logic stays pure and unit-testable. Writes are
// whole-file atomic replaces (temp file + rename): a crash mid-write leaves
// either the old document or the new one, never a half-written file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is the document repository the orchestrator works against.
type Store interface {
	LoadTasks() (string, error)
	LoadProgress() (string, error)
	SaveTasks(text string) error
	SaveProgress(text string) error
	TasksPath() string
	ProgressPath() string
	// HasProgress reports whether the ledger file exists at all. Its
	// absence selects the legacy single-document status mode.
	HasProgress() bool
}

// FileStore is the concrete file-backed Store.
type FileStore struct {
	tasksPath    string
	progressPath string
}

// NewFileStore creates a store over explicit document paths.
func NewFileStore(tasksPath, progressPath string) *FileStore {
	return &FileStore{tasksPath: tasksPath, progressPath: progressPath}
}

func (s *FileStore) TasksPath() string    { return s.tasksPath }
func (s *FileStore) ProgressPath() string { return s.progressPath }

// LoadTasks reads the backlog document. A missing backlog is an error; the
// tool has nothing to work on without it.
func (s *FileStore) LoadTasks() (string, error) {
	data, err := os.ReadFile(s.tasksPath)
	if err != nil {
		return "", fmt.Errorf("failed to read tasks file %s: %w", s.tasksPath, err)
	}
	return string(data), nil
}

// LoadProgress reads the ledger document. A missing ledger is not an error;
// it reads as empty (callers use HasProgress to detect legacy mode).
func (s *FileStore) LoadProgress() (string, error) {
	data, err := os.ReadFile(s.progressPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read progress file %s: %w", s.progressPath, err)
	}
	return string(data), nil
}

func (s *FileStore) HasProgress() bool {
	_, err := os.Stat(s.progressPath)
	return err == nil
}

func (s *FileStore) SaveTasks(text string) error {
	return atomicWrite(s.tasksPath, text)
}

func (s *FileStore) SaveProgress(text string) error {
	return atomicWrite(s.progressPath, text)
}

func atomicWrite(path, text string) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// LockPath returns the advisory lock location for a document pair: a single
// shared path beside the backlog, not per-document.
func LockPath(tasksPath string) string {
	return filepath.Join(filepath.Dir(tasksPath), ".cursor-iter.lock")
}
