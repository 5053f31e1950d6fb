package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(filepath.Join(dir, "TASKS.md"), filepath.Join(dir, "PROGRESS.md"))

	if err := st.SaveTasks("## Current Tasks\n"); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	text, err := st.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if text != "## Current Tasks\n" {
		t.Errorf("Unexpected tasks text: %q", text)
	}

	// No leftover temp file from the atomic write
	if _, err := os.Stat(st.TasksPath() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file left behind after save")
	}
}

func TestLoadTasksMissingIsError(t *testing.T) {
	st := NewFileStore(filepath.Join(t.TempDir(), "TASKS.md"), filepath.Join(t.TempDir(), "PROGRESS.md"))
	if _, err := st.LoadTasks(); err == nil {
		t.Error("Expected error for missing backlog")
	}
}

func TestLoadProgressMissingIsEmpty(t *testing.T) {
	st := NewFileStore(filepath.Join(t.TempDir(), "TASKS.md"), filepath.Join(t.TempDir(), "PROGRESS.md"))

	if st.HasProgress() {
		t.Error("HasProgress should be false for a missing ledger")
	}
	text, err := st.LoadProgress()
	if err != nil {
		t.Fatalf("Missing ledger should not be an error, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestResolveEnvOverride(t *testing.T) {
	envDir := t.TempDir()
	cwd := t.TempDir()
	t.Setenv(EnvDir, envDir)

	tasksPath, progressPath := Resolve(cwd, "", "")
	if tasksPath != filepath.Join(envDir, DefaultTasksFile) {
		t.Errorf("Expected env dir to win, got %s", tasksPath)
	}
	if progressPath != filepath.Join(envDir, DefaultProgressFile) {
		t.Errorf("Expected env dir to win, got %s", progressPath)
	}
}

func TestResolveCurrentDirectory(t *testing.T) {
	t.Setenv(EnvDir, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultTasksFile), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tasksPath, _ := Resolve(dir, "", "")
	if tasksPath != filepath.Join(dir, DefaultTasksFile) {
		t.Errorf("Expected current directory, got %s", tasksPath)
	}
}

func TestResolveParentFallback(t *testing.T) {
	t.Setenv(EnvDir, "")
	parent := t.TempDir()
	child := filepath.Join(parent, "sub")
	if err := os.Mkdir(child, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, DefaultTasksFile), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tasksPath, progressPath := Resolve(child, "", "")
	if tasksPath != filepath.Join(parent, DefaultTasksFile) {
		t.Errorf("Expected parent fallback, got %s", tasksPath)
	}
	if progressPath != filepath.Join(parent, DefaultProgressFile) {
		t.Errorf("Expected parent fallback for ledger too, got %s", progressPath)
	}
}

func TestResolveCustomFileNames(t *testing.T) {
	t.Setenv(EnvDir, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "backlog.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tasksPath, progressPath := Resolve(dir, "backlog.md", "ledger.md")
	if filepath.Base(tasksPath) != "backlog.md" || filepath.Base(progressPath) != "ledger.md" {
		t.Errorf("Custom names not honored: %s %s", tasksPath, progressPath)
	}
}

func TestLockPath(t *testing.T) {
	got := LockPath("/work/project/TASKS.md")
	if got != "/work/project/.cursor-iter.lock" {
		t.Errorf("Unexpected lock path: %s", got)
	}
}
