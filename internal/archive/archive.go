// Package archive moves completed work out of the live documents into a
// dated archive file, keeping the backlog small. Only titles the ledger
// marks completed are touched; in-progress and pending tasks survive a
// sweep byte for byte, even when interleaved between completed ones.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/progress"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/taskdoc"
)

// Result holds the rewritten documents and archive content from a sweep.
// The sweep itself is pure; Write persists the archive file.
type Result struct {
	Tasks    string   // backlog with archived task blocks removed
	Progress string   // ledger with archived completed lines removed
	Archive  string   // archive file content
	Titles   []string // archived titles, ledger order
}

// Sweep computes an archival pass over the document pair. When the ledger
// has no completed entries the documents come back unchanged and Titles is
// empty.
func Sweep(tasksText, progressText string, now time.Time) Result {
	completed := progress.Completed(progressText)
	if len(completed) == 0 {
		return Result{Tasks: tasksText, Progress: progressText}
	}

	titles := make(map[string]bool, len(completed))
	var b strings.Builder
	fmt.Fprintf(&b, "# Archived Tasks - %s\n\n", now.Format(progress.TimeLayout))

	r := Result{}
	for _, e := range completed {
		titles[e.Title] = true
		r.Titles = append(r.Titles, e.Title)
		line := fmt.Sprintf("- ✅ [%s] %s", e.CompletedAt.Format(progress.TimeLayout), e.Title)
		if e.Notes != "" {
			line += " - " + e.Notes
		}
		b.WriteString(line + "\n")
	}

	r.Archive = b.String()
	r.Tasks = taskdoc.RemoveTasks(tasksText, titles)
	r.Progress = removeCompletedLines(progressText, titles)
	return r
}

// Filename returns the deterministic archive file name for now.
func Filename(now time.Time) string {
	return fmt.Sprintf("completed_%s.md", now.Format("2006-01-02_15-04-05"))
}

// Write persists archive content under dir, creating the directory if
// absent, and returns the file path.
func Write(dir, content string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write archive %s: %w", path, err)
	}
	return path, nil
}

// removeCompletedLines drops completed-section bullets for archived titles.
// In-progress lines are never touched.
func removeCompletedLines(text string, titles map[string]bool) string {
	var (
		out       []string
		inSection bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "## Completed Tasks" {
			inSection = true
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			inSection = false
		}
		if inSection {
			if title, ok := progress.CompletedLineTitle(trimmed); ok && titles[title] {
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
