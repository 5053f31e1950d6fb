package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/agent"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/history"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/orchestrator"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/store"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
)

var (
	loopMaxIterations int
	loopMaxConcurrent int
	loopModel         string
)

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Run the iteration loop until the backlog is done",
	Long: `Repeatedly picks the first actionable task from the backlog, marks it
active in the progress ledger, and invokes the external agent until every
task is completed or the iteration ceiling is hit.

State lives entirely in the documents: interrupting the loop and re-running
it resumes from whatever the files say.`,
	RunE: runLoop,
}

var iterateCmd = &cobra.Command{
	Use:   "iterate",
	Short: "Run a single iteration",
	Long: `Performs one pass of the loop: pick or continue a task, invoke the
agent once, and report whether the task completed.`,
	RunE: runIterate,
}

func init() {
	loopCmd.Flags().IntVar(&loopMaxIterations, "max-iterations", 0, "Maximum loop iterations (default from config)")
	loopCmd.Flags().IntVar(&loopMaxConcurrent, "max-concurrent", 0, "Max tasks held in progress at once (0 = unlimited)")
	loopCmd.Flags().StringVar(&loopModel, "model", "", "Model selector passed to the agent")
	iterateCmd.Flags().StringVar(&loopModel, "model", "", "Model selector passed to the agent")
}

func runLoop(cmd *cobra.Command, args []string) error {
	orch, closeHistory, err := buildOrchestrator()
	if err != nil {
		return err
	}
	defer closeHistory()

	// Stop cleanly between iterations on Ctrl+C; the lock is never left held.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := orch.Run(ctx)
	fmt.Printf("\nLoop finished after %d iterations: %s\n", result.Iterations, result.Outcome)
	fmt.Println(result.LastStatus)

	if err != nil {
		return err
	}
	if result.Outcome != orchestrator.OutcomeCompleted {
		return fmt.Errorf("loop ended without completing the backlog: %s", result.Outcome)
	}
	return nil
}

func runIterate(cmd *cobra.Command, args []string) error {
	orch, closeHistory, err := buildOrchestrator()
	if err != nil {
		return err
	}
	defer closeHistory()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	it, err := orch.RunOnce(ctx)
	if err != nil {
		return err
	}
	switch {
	case it.AllComplete:
		fmt.Println("all tasks completed")
	case it.CapReached:
		// Notice already printed by the orchestrator.
	case it.Completed:
		fmt.Printf("task %q completed\n", it.TaskTitle)
	default:
		fmt.Printf("task %q not completed yet; re-run to retry\n", it.TaskTitle)
	}
	return nil
}

func buildOrchestrator() (*orchestrator.Orchestrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Refuse to orchestrate over a structurally broken backlog.
	tasksText, err := st.LoadTasks()
	if err != nil {
		return nil, nil, err
	}
	if result := taskdoc.Validate(tasksText); !result.Valid {
		printResult(result)
		return nil, nil, fmt.Errorf("backlog validation failed; fix it (or run 'cursor-iter validate --fix') first")
	}

	model := loopModel
	if model == "" {
		model = cfg.Agent.Model
	}
	runner := &agent.ExecRunner{
		Command: cfg.Agent.Command,
		Args:    cfg.Agent.Args,
		Model:   model,
	}

	maxIterations := loopMaxIterations
	if maxIterations == 0 {
		maxIterations = cfg.Loop.MaxIterations
	}
	maxConcurrent := loopMaxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = cfg.Loop.MaxConcurrent
	}

	orch := &orchestrator.Orchestrator{
		Store:         st,
		Lock:          documentLock(st),
		Runner:        runner,
		MaxIterations: maxIterations,
		MaxConcurrent: maxConcurrent,
		LockWait:      lockWait(cfg),
	}

	closeHistory := func() {}
	if cfg.History.Enabled {
		hs, err := history.NewStorage(historyPath(cfg, st))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: iteration history disabled: %v\n", err)
		} else {
			orch.History = hs
			closeHistory = func() { hs.Close() }
		}
	}

	return orch, closeHistory, nil
}

func historyPath(cfg *config.Config, st *store.FileStore) string {
	path := cfg.History.Path
	if path == "" {
		path = ".cursor-iter/history.db"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(st.TasksPath()), path)
	}
	return path
}
