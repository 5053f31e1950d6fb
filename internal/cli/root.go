package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "cursor-iter",
		Short: "cursor-iter - autonomous task iteration over markdown backlogs",
		Long: `cursor-iter maintains a markdown task backlog (TASKS.md) and progress
ledger (PROGRESS.md) as the source of truth for an autonomous iteration loop
that drives an external code-generation agent.

Run without a subcommand to print the current status.`,
		RunE:          runStatus, // Default action is status
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(iterateCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
