package history

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), ".cursor-iter", "history.db"))
	if err != nil {
		t.Fatalf("Failed to open history storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := newTestStorage(t)

	base := time.Date(2025, 1, 8, 18, 0, 0, 0, time.UTC)
	runs := []Run{
		{TaskTitle: "Setup DB", StartedAt: base, FinishedAt: base.Add(time.Minute), Outcome: OutcomeRetry},
		{TaskTitle: "Setup DB", StartedAt: base.Add(2 * time.Minute), FinishedAt: base.Add(3 * time.Minute), Outcome: OutcomeCompleted, Notes: "all criteria met"},
		{TaskTitle: "Add API", StartedAt: base.Add(4 * time.Minute), FinishedAt: base.Add(4 * time.Minute), Outcome: OutcomeFailed, Notes: "agent exited 1"},
	}
	for _, r := range runs {
		if err := s.RecordRun(r); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	got, err := s.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(got))
	}

	// Newest first.
	if got[0].TaskTitle != "Add API" || got[0].Outcome != OutcomeFailed {
		t.Errorf("Unexpected newest run: %+v", got[0])
	}
	if got[2].TaskTitle != "Setup DB" || got[2].Outcome != OutcomeRetry {
		t.Errorf("Unexpected oldest run: %+v", got[2])
	}
	if got[1].Notes != "all criteria met" {
		t.Errorf("Notes not persisted: %q", got[1].Notes)
	}
	for i, r := range got {
		if r.ID == "" {
			t.Errorf("Run %d missing assigned ID", i)
		}
	}
}

func TestRecentRunsLimit(t *testing.T) {
	s := newTestStorage(t)

	base := time.Date(2025, 1, 8, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := Run{
			TaskTitle: "Setup DB",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Outcome:   OutcomeRetry,
		}
		if err := s.RecordRun(run); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Expected limit of 2 runs, got %d", len(got))
	}
}

func TestKeepsCallerAssignedID(t *testing.T) {
	s := newTestStorage(t)

	run := Run{ID: "run-1", TaskTitle: "Setup DB", StartedAt: time.Now(), Outcome: OutcomeCompleted}
	if err := s.RecordRun(run); err != nil {
		t.Fatal(err)
	}

	got, err := s.RecentRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "run-1" {
		t.Errorf("Expected caller-assigned ID to survive, got %+v", got)
	}
}
