package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/archive"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
)

var archiveDir string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks into a dated archive file",
	Long: `Sweeps every task the ledger marks completed out of the live
documents: the task block is removed from the backlog, the completed line
is removed from the ledger, and both land in a timestamped file under the
archive directory. In-progress and pending tasks are never touched.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVar(&archiveDir, "dir", "", "Archive directory (default from config)")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	dir := archiveDir
	if dir == "" {
		dir = cfg.Archive.Dir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(st.TasksPath()), dir)
	}

	lock := documentLock(st)
	if err := lock.Acquire(lockWait(cfg)); err != nil {
		return err
	}
	defer lock.Release()

	tasksText, err := st.LoadTasks()
	if err != nil {
		return err
	}
	progressText, err := st.LoadProgress()
	if err != nil {
		return err
	}

	now := time.Now()
	result := archive.Sweep(tasksText, progressText, now)
	if len(result.Titles) == 0 {
		fmt.Println("No completed tasks to archive.")
		return nil
	}

	path, err := archive.Write(dir, result.Archive, now)
	if err != nil {
		return err
	}
	if err := st.SaveTasks(result.Tasks); err != nil {
		return err
	}
	if err := st.SaveProgress(result.Progress); err != nil {
		return err
	}

	fmt.Printf("Archived %d tasks to %s\n", len(result.Titles), path)
	for _, title := range result.Titles {
		fmt.Printf("  ✅ %s\n", title)
	}
	return nil
}
