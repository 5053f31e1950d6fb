package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
)

var validateFix bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the backlog document structure",
	Long: `Validates the backlog document against the structure the iteration
loop depends on: the "## Current Tasks" header, and per-task **Context:**,
**Acceptance Criteria:**, and checklist items.

With --fix, a missing "## Current Tasks" header is inserted before the first
non-blank line. No other defect is auto-repaired; the repaired text is only
written back if the document validates cleanly afterward.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "Apply the supported auto-repair")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	text, err := st.LoadTasks()
	if err != nil {
		return err
	}

	result := taskdoc.Validate(text)
	printResult(result)

	if result.Valid {
		fmt.Println("Backlog structure OK.")
		return nil
	}

	if !validateFix {
		return fmt.Errorf("backlog validation failed (%d errors)", len(result.Errors))
	}

	repaired, changed := taskdoc.Repair(text)
	if !changed {
		return fmt.Errorf("backlog validation failed (%d errors); no supported auto-repair applies", len(result.Errors))
	}

	// Fail closed: never overwrite the original with still-invalid text.
	recheck := taskdoc.Validate(repaired)
	if !recheck.Valid {
		fmt.Println("\nAfter repair:")
		printResult(recheck)
		return fmt.Errorf("repair did not resolve all errors; backlog left untouched")
	}

	if err := st.SaveTasks(repaired); err != nil {
		return err
	}
	fmt.Printf("Inserted %q header and saved %s\n", "## Current Tasks", st.TasksPath())
	return nil
}

func printResult(r taskdoc.Result) {
	for _, e := range r.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
