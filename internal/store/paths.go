package store

import (
	"os"
	"path/filepath"
)

// EnvDir overrides the directory the document pair is resolved from.
const EnvDir = "CURSOR_ITER_DIR"

// Default document file names.
const (
	DefaultTasksFile    = "TASKS.md"
	DefaultProgressFile = "PROGRESS.md"
)

// Resolve locates the document pair. Precedence: the CURSOR_ITER_DIR
// environment variable, else baseDir itself, else baseDir's parent when the
// backlog only exists there. Empty file names fall back to the defaults.
func Resolve(baseDir, tasksFile, progressFile string) (tasksPath, progressPath string) {
	if tasksFile == "" {
		tasksFile = DefaultTasksFile
	}
	if progressFile == "" {
		progressFile = DefaultProgressFile
	}

	dir := baseDir
	if env := os.Getenv(EnvDir); env != "" {
		dir = env
	} else if !fileExists(filepath.Join(dir, tasksFile)) {
		parent := filepath.Dir(dir)
		if parent != dir && fileExists(filepath.Join(parent, tasksFile)) {
			dir = parent
		}
	}

	return filepath.Join(dir, tasksFile), filepath.Join(dir, progressFile)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
