// Package orchestrator drives repeated agent invocations until the backlog
// is exhausted or the iteration ceiling is hit.
//
// Each iteration holds the advisory lock only for the read/decide/mark-active
// critical section; the agent invocation itself runs unlocked so concurrent
// status inspection is never blocked. Documents are re-read fresh from
// storage on every pass; the agent (or a human) is expected to edit them
// between reads, so no in-memory state survives an iteration.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/agent"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/history"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/lockfile"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/progress"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/store"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/track"
)

// DefaultMaxIterations is the safety ceiling on loop iterations.
const DefaultMaxIterations = 50

// Outcome of a full loop run.
type Outcome int

const (
	OutcomeCompleted Outcome = iota // every backlog task completed
	OutcomeExhausted                // iteration ceiling hit first
	OutcomeAborted                  // agent failure or cancellation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeExhausted:
		return "exhausted retry ceiling"
	default:
		return "aborted on error"
	}
}

// Result summarizes a loop run.
type Result struct {
	Outcome    Outcome
	Iterations int
	LastStatus string
}

// Orchestrator owns one loop over one document pair. A single agent process
// is awaited at a time; the concurrency cap below is cooperative and only
// restrains this instance.
type Orchestrator struct {
	Store         store.Store
	Lock          *lockfile.Lock
	Runner        agent.Runner
	History       *history.Storage // optional
	MaxIterations int
	MaxConcurrent int // max simultaneously in-progress tasks; 0 = unlimited
	LockWait      time.Duration
	Out           io.Writer
	Now           func() time.Time // test hook
}

// Iteration describes what a single orchestrator step did.
type Iteration struct {
	AllComplete bool   // backlog fully completed; no agent invoked
	TaskTitle   string // task worked this step, if any
	Completed   bool   // ledger marked TaskTitle completed after the agent ran
	CapReached  bool   // concurrency cap prevented starting a new task
}

// Run executes the loop until completion, the iteration ceiling, agent
// failure, or cancellation.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	max := o.maxIterations()

	for i := 1; i <= max; i++ {
		select {
		case <-ctx.Done():
			res := Result{Outcome: OutcomeAborted, Iterations: i - 1, LastStatus: o.lastStatus()}
			return res, ctx.Err()
		default:
		}

		fmt.Fprintf(o.out(), "iteration %d/%d\n", i, max)

		it, err := o.RunOnce(ctx)
		if err != nil {
			return Result{Outcome: OutcomeAborted, Iterations: i, LastStatus: o.lastStatus()}, err
		}
		if it.AllComplete {
			return Result{Outcome: OutcomeCompleted, Iterations: i, LastStatus: "all tasks completed"}, nil
		}
		if it.TaskTitle != "" && !it.Completed {
			fmt.Fprintf(o.out(), "task %q not completed yet; will retry\n", it.TaskTitle)
		}
	}

	return Result{Outcome: OutcomeExhausted, Iterations: max, LastStatus: o.lastStatus()}, nil
}

// RunOnce performs a single iteration: lock, re-read, pick or continue a
// task, unlock, invoke the agent, re-read, and report whether the task is
// now completed. Agent failure is fatal for the run; re-running the command
// is how retry happens.
func (o *Orchestrator) RunOnce(ctx context.Context) (Iteration, error) {
	active, detail, it, err := o.pickTask()
	if err != nil || it.AllComplete || it.CapReached {
		return it, err
	}

	instruction := agent.BuildInstruction(detail, o.Store.TasksPath(), o.Store.ProgressPath())

	started := o.now()
	runErr := o.Runner.Run(ctx, instruction)
	finished := o.now()

	progressText, loadErr := o.Store.LoadProgress()
	completed := false
	if loadErr == nil {
		entries := progress.Parse(progressText)
		e, ok := entries[active]
		completed = ok && e.Status == progress.StatusCompleted
	}
	it.Completed = completed

	o.record(history.Run{
		TaskTitle:  active,
		StartedAt:  started,
		FinishedAt: finished,
		Outcome:    runOutcome(runErr, completed),
		Notes:      runNotes(runErr),
	})

	if runErr != nil {
		return it, fmt.Errorf("agent invocation for task %q: %w", active, runErr)
	}
	if loadErr != nil {
		return it, loadErr
	}
	return it, nil
}

// pickTask is the lock-protected critical section: re-read both documents,
// decide the task to work, and mark it active if it was pending. The lock
// is released before returning so the agent runs unlocked.
func (o *Orchestrator) pickTask() (title, detail string, it Iteration, err error) {
	if err = o.Lock.Acquire(o.lockWait()); err != nil {
		return "", "", it, err
	}
	defer o.Lock.Release()

	tasksText, err := o.Store.LoadTasks()
	if err != nil {
		return "", "", it, err
	}
	progressText, err := o.Store.LoadProgress()
	if err != nil {
		return "", "", it, err
	}

	tasks := taskdoc.Parse(tasksText)
	entries := progress.Parse(progressText)

	if track.AllComplete(tasks, entries) {
		it.AllComplete = true
		return "", "", it, nil
	}

	active, ok := track.CurrentActive(tasks, entries)
	if !ok {
		next, found := track.NextPending(tasks, entries)
		if !found {
			// Every remaining entry is a dangling in-progress line for a
			// task no longer in the backlog; nothing actionable.
			it.CapReached = true
			fmt.Fprintln(o.out(), "no actionable task; waiting for external completion")
			return "", "", it, nil
		}
		if o.MaxConcurrent > 0 && inProgressCount(entries) >= o.MaxConcurrent {
			it.CapReached = true
			fmt.Fprintf(o.out(), "concurrency cap (%d) reached; not starting %q\n", o.MaxConcurrent, next.Title)
			return "", "", it, nil
		}
		newText := progress.MarkActive(progressText, next.Title, o.now())
		if err = o.Store.SaveProgress(newText); err != nil {
			return "", "", it, err
		}
		active = next
	}

	it.TaskTitle = active.Title
	detail, found := taskdoc.ExtractTaskDetail(tasksText, active.Title)
	if !found {
		detail = fmt.Sprintf("### Task: %s\n", active.Title)
	}
	return active.Title, detail, it, nil
}

func inProgressCount(entries map[string]progress.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Status == progress.StatusInProgress {
			n++
		}
	}
	return n
}

func runOutcome(runErr error, completed bool) string {
	switch {
	case runErr != nil:
		return history.OutcomeFailed
	case completed:
		return history.OutcomeCompleted
	default:
		return history.OutcomeRetry
	}
}

func runNotes(runErr error) string {
	if runErr != nil {
		return runErr.Error()
	}
	return ""
}

func (o *Orchestrator) record(run history.Run) {
	if o.History == nil {
		return
	}
	if err := o.History.RecordRun(run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record run history: %v\n", err)
	}
}

// lastStatus re-reads the documents for a final status line; best effort.
func (o *Orchestrator) lastStatus() string {
	tasksText, err := o.Store.LoadTasks()
	if err != nil {
		return "status unavailable"
	}
	progressText, err := o.Store.LoadProgress()
	if err != nil {
		return "status unavailable"
	}
	return track.StatusLine(taskdoc.Parse(tasksText), progress.Parse(progressText))
}

func (o *Orchestrator) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return DefaultMaxIterations
}

func (o *Orchestrator) lockWait() time.Duration {
	if o.LockWait > 0 {
		return o.LockWait
	}
	return lockfile.DefaultWait
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}
