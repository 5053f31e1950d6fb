package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/lockfile"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/store"
)

func TestResolveStoreHonorsEnvDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "TASKS.md"), []byte("## Current Tasks\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(store.EnvDir, dir)

	st, err := resolveStore(config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveStore failed: %v", err)
	}
	if st.TasksPath() != filepath.Join(dir, "TASKS.md") {
		t.Errorf("Expected backlog in %s, got %s", dir, st.TasksPath())
	}
	if st.ProgressPath() != filepath.Join(dir, "PROGRESS.md") {
		t.Errorf("Expected ledger in %s, got %s", dir, st.ProgressPath())
	}
}

func TestResolveStoreCustomFileNames(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(store.EnvDir, dir)

	cfg := config.DefaultConfig()
	cfg.Paths.TasksFile = "BACKLOG.md"
	cfg.Paths.ProgressFile = "LEDGER.md"

	st, err := resolveStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(st.TasksPath()) != "BACKLOG.md" {
		t.Errorf("Custom backlog name not used: %s", st.TasksPath())
	}
	if filepath.Base(st.ProgressPath()) != "LEDGER.md" {
		t.Errorf("Custom ledger name not used: %s", st.ProgressPath())
	}
}

func TestLockWait(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Loop.LockWaitSeconds = 5
	if got := lockWait(cfg); got != 5*time.Second {
		t.Errorf("Expected 5s lock wait, got %v", got)
	}

	cfg.Loop.LockWaitSeconds = 0
	if got := lockWait(cfg); got != lockfile.DefaultWait {
		t.Errorf("Expected default lock wait, got %v", got)
	}
}

func TestHistoryPathRelativeToDocuments(t *testing.T) {
	st := store.NewFileStore("/proj/TASKS.md", "/proj/PROGRESS.md")

	cfg := config.DefaultConfig()
	cfg.History.Path = ".cursor-iter/history.db"
	if got := historyPath(cfg, st); got != filepath.Join("/proj", ".cursor-iter", "history.db") {
		t.Errorf("Relative history path not anchored to document directory: %s", got)
	}

	cfg.History.Path = "/var/db/history.db"
	if got := historyPath(cfg, st); got != "/var/db/history.db" {
		t.Errorf("Absolute history path must pass through: %s", got)
	}
}
