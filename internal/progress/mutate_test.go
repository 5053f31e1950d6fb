package progress

import (
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2025, 1, 8, 19, 0, 0, 0, time.UTC)

func TestMarkActiveOnEmptyDocument(t *testing.T) {
	out := MarkActive("", "Setup DB", testTime)

	// Skeleton created
	for _, want := range []string{"# Progress Log", "## In Progress", "## Completed Tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected skeleton to contain %q", want)
		}
	}

	entries := Parse(out)
	e, ok := entries["Setup DB"]
	if !ok {
		t.Fatal("Expected in-progress entry after MarkActive")
	}
	if e.Status != StatusInProgress {
		t.Errorf("Expected in_progress, got %s", e.Status)
	}
	if !e.StartedAt.Equal(testTime) {
		t.Errorf("Expected timestamp %v, got %v", testTime, e.StartedAt)
	}
}

func TestMarkActivePreservesExistingContent(t *testing.T) {
	text := `# Progress Log

## In Progress

- 🔄 [2025-01-08 18:00] Existing task - midway

## Completed Tasks

- ✅ [2025-01-08 17:00] Old task
`
	out := MarkActive(text, "New task", testTime)

	entries := Parse(out)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries["Existing task"].Status != StatusInProgress {
		t.Error("Existing in-progress entry lost")
	}
	if entries["Old task"].Status != StatusCompleted {
		t.Error("Existing completed entry lost")
	}
	if entries["New task"].Status != StatusInProgress {
		t.Error("New entry missing")
	}

	// New bullet lands inside the In Progress section, before Completed
	inProgressAt := strings.Index(out, "## In Progress")
	newAt := strings.Index(out, "New task")
	completedAt := strings.Index(out, "## Completed Tasks")
	if !(inProgressAt < newAt && newAt < completedAt) {
		t.Error("New bullet not inside the In Progress section")
	}
}

func TestMarkActiveTwiceAppendsTwice(t *testing.T) {
	out := MarkActive(MarkActive("", "Setup DB", testTime), "Setup DB", testTime.Add(time.Minute))

	if n := strings.Count(out, "Setup DB"); n != 2 {
		t.Errorf("Expected 2 bullets (no dedup), got %d", n)
	}
	// Parse still resolves to a single entry, last write wins
	entries := Parse(out)
	if len(entries) != 1 {
		t.Errorf("Expected 1 parsed entry, got %d", len(entries))
	}
	if !entries["Setup DB"].StartedAt.Equal(testTime.Add(time.Minute)) {
		t.Error("Expected the later bullet to win")
	}
}

func TestLogCompletion(t *testing.T) {
	out := LogCompletion("", "Setup DB", "all green", testTime)

	entries := Parse(out)
	e, ok := entries["Setup DB"]
	if !ok {
		t.Fatal("Expected completed entry")
	}
	if e.Status != StatusCompleted {
		t.Errorf("Expected completed, got %s", e.Status)
	}
	if e.Notes != "all green" {
		t.Errorf("Expected notes 'all green', got '%s'", e.Notes)
	}
}

func TestLogCompletionCreatesSectionInExistingDoc(t *testing.T) {
	text := "# Progress Log\n\n## In Progress\n"
	out := LogCompletion(text, "Setup DB", "", testTime)
	if !strings.Contains(out, "## Completed Tasks") {
		t.Error("Expected Completed Tasks section to be created")
	}
	if Parse(out)["Setup DB"].Status != StatusCompleted {
		t.Error("Expected completed entry")
	}
}

func TestMoveToCompleted(t *testing.T) {
	text := MarkActive("", "Setup DB", testTime)
	out := MoveToCompleted(text, "Setup DB", "done and tested", testTime.Add(time.Hour))

	if strings.Contains(out, "🔄") {
		t.Error("Expected no in-progress bullets to remain")
	}
	if n := strings.Count(out, "Setup DB"); n != 1 {
		t.Errorf("Expected exactly one bullet for the title, got %d", n)
	}

	entries := Parse(out)
	e, ok := entries["Setup DB"]
	if !ok {
		t.Fatal("Expected entry to survive the move")
	}
	if e.Status != StatusCompleted {
		t.Errorf("Expected completed, got %s", e.Status)
	}
	if e.Notes != "done and tested" {
		t.Errorf("Expected notes, got '%s'", e.Notes)
	}
}

func TestMoveToCompletedLeavesOtherActiveLines(t *testing.T) {
	text := MarkActive(MarkActive("", "A", testTime), "B", testTime)
	out := MoveToCompleted(text, "A", "", testTime.Add(time.Hour))

	entries := Parse(out)
	if entries["A"].Status != StatusCompleted {
		t.Error("A should be completed")
	}
	if entries["B"].Status != StatusInProgress {
		t.Error("B should remain in progress")
	}
}
