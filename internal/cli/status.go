package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/progress"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/track"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report backlog/ledger status",
	Long: `Prints task counts and the current working state derived from the
backlog and progress ledger. Without a progress ledger file the legacy
single-document mode applies: a task counts as complete only when every
acceptance criterion is checked.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	tasksText, err := st.LoadTasks()
	if err != nil {
		return err
	}
	tasks := taskdoc.Parse(tasksText)

	var entries map[string]progress.Entry
	if st.HasProgress() {
		progressText, err := st.LoadProgress()
		if err != nil {
			return err
		}
		entries = progress.Parse(progressText)
	} else if verbose {
		fmt.Printf("no progress ledger at %s; using acceptance-criteria status\n", st.ProgressPath())
	}

	r := track.BuildReport(tasks, entries)
	fmt.Printf("Total: %d  Completed: %d  InProgress: %d  Pending: %d\n",
		r.Total, r.Completed, r.InProgress, r.Pending)
	fmt.Println(track.StatusLine(tasks, entries))
	return nil
}
