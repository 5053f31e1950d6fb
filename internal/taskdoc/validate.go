package taskdoc

import (
	"fmt"
	"strings"
)

// Result is the outcome of validating a backlog document.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Each task must show its required fields within this many lines of its
// header.
const fieldWindow = 20

// Validate checks the backlog document for the structural invariants the
// orchestrator depends on. Errors block orchestration; warnings do not.
func Validate(text string) Result {
	var r Result

	lines := strings.Split(text, "\n")

	sectionAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == sectionHeader {
			sectionAt = i
			break
		}
	}
	if sectionAt == -1 {
		r.Errors = append(r.Errors, fmt.Sprintf("missing %q header", sectionHeader))
		return r
	}

	taskCount := 0
	for i := sectionAt + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "## ") {
			break
		}
		m := taskHeaderRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		taskCount++

		title := strings.TrimSpace(m[1])
		if title == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("task header at line %d has an empty title", i+1))
			title = fmt.Sprintf("(untitled, line %d)", i+1)
		}

		hasContext, hasCriteria, hasChecklist := false, false, false
		for j := i + 1; j < len(lines) && j <= i+fieldWindow; j++ {
			t := strings.TrimSpace(lines[j])
			if strings.HasPrefix(t, "## ") || taskHeaderRe.MatchString(t) {
				break
			}
			switch {
			case strings.HasPrefix(t, "**Context:**"):
				hasContext = true
			case strings.Contains(t, "Acceptance Criteria"):
				hasCriteria = true
			case checklistRe.MatchString(lines[j]):
				hasChecklist = true
			}
		}
		if !hasContext {
			r.Errors = append(r.Errors, fmt.Sprintf("task %q is missing a **Context:** line", title))
		}
		if !hasCriteria {
			r.Errors = append(r.Errors, fmt.Sprintf("task %q is missing an **Acceptance Criteria:** line", title))
		}
		if !hasChecklist {
			r.Errors = append(r.Errors, fmt.Sprintf("task %q has no acceptance checklist items", title))
		}
	}

	if taskCount == 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("no tasks found under %q", sectionHeader))
	}

	r.Valid = len(r.Errors) == 0
	return r
}

// Repair applies the single supported auto-fix: inserting a
// "## Current Tasks" header before the first non-blank line when the header
// is missing entirely. Returns the (possibly unchanged) text and whether a
// change was made. Callers must re-validate and must not write the repaired
// text back if the document is still invalid.
func Repair(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == sectionHeader {
			return text, false
		}
	}

	at := 0
	for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
		at++
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:at]...)
	out = append(out, sectionHeader, "")
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n"), true
}
