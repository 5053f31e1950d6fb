package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/history"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/progress"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent iteration runs",
	Long: `Shows the most recent agent invocations recorded in the iteration
history database: which task ran, when, for how long, and whether the
ledger marked it completed afterward.`,
	RunE: runHistoryList,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to show")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	path := historyPath(cfg, st)
	if !exists(path) {
		fmt.Println("No iteration history found.")
		return nil
	}

	hs, err := history.NewStorage(path)
	if err != nil {
		return err
	}
	defer hs.Close()

	runs, err := hs.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No iteration history found.")
		return nil
	}

	fmt.Printf("Recent runs (%d):\n\n", len(runs))
	for _, r := range runs {
		duration := r.FinishedAt.Sub(r.StartedAt).Round(time.Second)
		fmt.Printf("  [%s] %-10s %s (%s)\n",
			r.StartedAt.Format(progress.TimeLayout), r.Outcome, r.TaskTitle, duration)
		if r.Notes != "" && verbose {
			fmt.Printf("      %s\n", r.Notes)
		}
	}
	return nil
}
