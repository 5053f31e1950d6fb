// Package track joins the backlog with the progress ledger to answer the
// orchestrator's standing questions: what is active, what is next, are we
// done. Titles are the only identity; the join is exact string equality
// after trimming, centralized in Classify.
package track

import (
	"fmt"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/progress"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
)

// State classifies a backlog task against the ledger.
type State int

const (
	StatePending State = iota
	StateInProgress
	StateCompleted
)

// Report summarizes a document pair for status output.
type Report struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

// Classify resolves a task's state. A nil entries map selects the legacy
// single-document mode, where only the acceptance-criteria ratio is
// consulted: complete iff every item is checked and at least one exists,
// in-progress iff some but not all items are checked. With a ledger, the
// entry (or its absence) is authoritative and the ratio is ignored.
func Classify(t taskdoc.Task, entries map[string]progress.Entry) State {
	if entries == nil {
		switch {
		case t.AcceptanceTotal > 0 && t.AcceptanceChecked == t.AcceptanceTotal:
			return StateCompleted
		case t.AcceptanceChecked > 0:
			return StateInProgress
		default:
			return StatePending
		}
	}
	e, ok := entries[t.Title]
	if !ok {
		return StatePending
	}
	if e.Status == progress.StatusCompleted {
		return StateCompleted
	}
	return StateInProgress
}

// NextPending returns the first task in document order with no ledger entry
// (or, in legacy mode, the first pending task).
func NextPending(tasks []taskdoc.Task, entries map[string]progress.Entry) (taskdoc.Task, bool) {
	for _, t := range tasks {
		if Classify(t, entries) == StatePending {
			return t, true
		}
	}
	return taskdoc.Task{}, false
}

// CurrentActive returns the first task in document order whose ledger entry
// is in progress.
func CurrentActive(tasks []taskdoc.Task, entries map[string]progress.Entry) (taskdoc.Task, bool) {
	for _, t := range tasks {
		if Classify(t, entries) == StateInProgress {
			return t, true
		}
	}
	return taskdoc.Task{}, false
}

// AllComplete reports whether at least one task exists and every task is
// completed.
func AllComplete(tasks []taskdoc.Task, entries map[string]progress.Entry) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if Classify(t, entries) != StateCompleted {
			return false
		}
	}
	return true
}

// BuildReport tallies task states for status output.
func BuildReport(tasks []taskdoc.Task, entries map[string]progress.Entry) Report {
	r := Report{Total: len(tasks)}
	for _, t := range tasks {
		switch Classify(t, entries) {
		case StateCompleted:
			r.Completed++
		case StateInProgress:
			r.InProgress++
		default:
			r.Pending++
		}
	}
	return r
}

// StatusLine renders the terse one-line status: the active task with its
// criteria ratio, else the next pending task, else completion.
func StatusLine(tasks []taskdoc.Task, entries map[string]progress.Entry) string {
	if t, ok := CurrentActive(tasks, entries); ok {
		return fmt.Sprintf("working on: %s (%d/%d criteria)", t.Title, t.AcceptanceChecked, t.AcceptanceTotal)
	}
	if t, ok := NextPending(tasks, entries); ok {
		return fmt.Sprintf("next task: %s", t.Title)
	}
	return "all tasks completed"
}
