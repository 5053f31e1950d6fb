package taskdoc

import (
	"regexp"
	"strings"
)

// Task is one entry parsed from the backlog document. Status is not stored
// here; pending/active/completed lives in the progress ledger, keyed by title.
type Task struct {
	Title             string
	AcceptanceTotal   int
	AcceptanceChecked int
}

const sectionHeader = "## Current Tasks"

var (
	// Optional single status token before "Task:" is stripped.
	taskHeaderRe = regexp.MustCompile(`^###\s+(?:\S+\s+)?Task:\s*(.*)$`)
	checklistRe  = regexp.MustCompile(`^\s*[-*]\s*\[([ xX])\]`)
	boldFieldRe  = regexp.MustCompile(`^\*\*[^*]+:?\*\*`)
)

// Parse extracts the ordered task list from backlog document text. Document
// order is scheduling order. The function is pure and never fails; callers
// that need structural guarantees use Validate first.
func Parse(text string) []Task {
	var (
		tasks      []Task
		cur        *Task
		inSection  bool
		inCriteria bool
	)

	flush := func() {
		if cur != nil {
			tasks = append(tasks, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == sectionHeader {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			// A later section ends the task area.
			break
		}

		if m := taskHeaderRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			cur = &Task{Title: strings.TrimSpace(m[1])}
			inCriteria = false
			continue
		}
		if cur == nil {
			continue
		}

		if strings.Contains(trimmed, "Acceptance Criteria") {
			inCriteria = true
			continue
		}
		if !inCriteria {
			continue
		}
		if m := checklistRe.FindStringSubmatch(line); m != nil {
			cur.AcceptanceTotal++
			if m[1] == "x" || m[1] == "X" {
				cur.AcceptanceChecked++
			}
		} else if boldFieldRe.MatchString(trimmed) {
			// Next **Field:** line ends the criteria block.
			inCriteria = false
		}
	}
	flush()

	return tasks
}

// ExtractTaskDetail returns the full task block for title: the header line
// through the last line before the next task or section boundary. The block
// is what gets embedded in the agent instruction payload.
func ExtractTaskDetail(text, title string) (string, bool) {
	var (
		inSection bool
		capturing bool
		block     []string
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == sectionHeader {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			break
		}

		if m := taskHeaderRe.FindStringSubmatch(trimmed); m != nil {
			if capturing {
				break
			}
			if strings.TrimSpace(m[1]) == title {
				capturing = true
				block = append(block, line)
			}
			continue
		}
		if capturing {
			block = append(block, line)
		}
	}

	if !capturing {
		return "", false
	}
	return strings.TrimRight(strings.Join(block, "\n"), "\n") + "\n", true
}

// RemoveTasks returns new backlog text with the entire block of every task
// whose title is in titles removed, header line through the last line
// before the next task header or section boundary. Tasks not named are
// preserved byte for byte, even when interleaved between removed ones.
func RemoveTasks(text string, titles map[string]bool) string {
	var (
		out       []string
		inSection bool
		skipping  bool
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == sectionHeader {
			inSection = true
			out = append(out, line)
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "## ") {
			inSection = false
			skipping = false
		}
		if inSection {
			if m := taskHeaderRe.FindStringSubmatch(trimmed); m != nil {
				skipping = titles[strings.TrimSpace(m[1])]
			}
			if skipping {
				continue
			}
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
