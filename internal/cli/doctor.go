package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/store"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check cursor-iter setup health",
	Long:  `Runs diagnostic checks on the working setup and reports pass/fail for each component.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	passed := 0
	failed := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Printf("  ✓ %s\n", name)
			passed++
		} else {
			fmt.Printf("  ✗ %s: %s\n", name, detail)
			failed++
		}
	}

	cfg, cfgErr := config.Load()

	fmt.Println("Configuration:")
	check("config readable", cfgErr == nil, fmt.Sprint(cfgErr))
	if cfgErr != nil {
		return fmt.Errorf("cannot continue without config")
	}

	fmt.Println()
	fmt.Println("Agent:")
	_, agentErr := exec.LookPath(cfg.Agent.Command)
	check(fmt.Sprintf("%s binary", cfg.Agent.Command), agentErr == nil, "install the agent CLI or set agent.command")

	fmt.Println()
	fmt.Println("Documents:")
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}
	check(st.TasksPath(), exists(st.TasksPath()), "create the backlog or set CURSOR_ITER_DIR")
	if exists(st.TasksPath()) {
		text, err := st.LoadTasks()
		if err == nil {
			result := taskdoc.Validate(text)
			check("backlog structure", result.Valid, "run: cursor-iter validate")
		}
	}
	if st.HasProgress() {
		check(st.ProgressPath(), true, "")
	} else {
		// Not a defect: the ledger is created when the loop first marks a
		// task active; until then status runs in single-document mode.
		fmt.Printf("  - %s: absent (created on first iteration)\n", st.ProgressPath())
	}

	fmt.Println()
	fmt.Println("Lock:")
	lockPath := store.LockPath(st.TasksPath())
	check("no stale lock", !exists(lockPath), fmt.Sprintf("remove %s if no loop is running", lockPath))

	fmt.Println()
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}
