package progress

import (
	"fmt"
	"strings"
	"time"
)

const skeleton = `# Progress Log

## In Progress

## Completed Tasks
`

// MarkActive returns new ledger text with a timestamped active entry for
// title appended to the "## In Progress" section, creating the section (and
// a minimal skeleton for an empty document) if absent.
func MarkActive(text, title string, now time.Time) string {
	text = ensureSections(text)
	line := fmt.Sprintf("- 🔄 [%s] %s", now.Format(TimeLayout), title)
	return appendToSection(text, inProgressHeader, line)
}

// LogCompletion returns new ledger text with a timestamped completed entry
// for title appended to the "## Completed Tasks" section.
func LogCompletion(text, title, notes string, now time.Time) string {
	text = ensureSections(text)
	return appendToSection(text, completedHeader, completedLine(title, notes, now))
}

// MoveToCompleted removes every active entry for title from "## In
// Progress" and appends a completed entry to "## Completed Tasks".
func MoveToCompleted(text, title, notes string, now time.Time) string {
	text = ensureSections(text)
	text = removeActiveLines(text, title)
	return appendToSection(text, completedHeader, completedLine(title, notes, now))
}

func completedLine(title, notes string, now time.Time) string {
	line := fmt.Sprintf("- ✅ [%s] %s", now.Format(TimeLayout), title)
	if notes != "" {
		line += " - " + notes
	}
	return line
}

func ensureSections(text string) string {
	if strings.TrimSpace(text) == "" {
		return skeleton
	}
	if !hasLine(text, inProgressHeader) {
		text = strings.TrimRight(text, "\n") + "\n\n" + inProgressHeader + "\n"
	}
	if !hasLine(text, completedHeader) {
		text = strings.TrimRight(text, "\n") + "\n\n" + completedHeader + "\n"
	}
	return text
}

func hasLine(text, want string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

// appendToSection inserts bullet after the last non-blank line of the named
// section, leaving everything else byte for byte intact.
func appendToSection(text, header, bullet string) string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			start = i
			break
		}
	}
	if start == -1 {
		// ensureSections should have prevented this; degrade gracefully.
		return strings.TrimRight(text, "\n") + "\n\n" + header + "\n" + bullet + "\n"
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}

	insert := start + 1
	for i := start + 1; i < end; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			insert = i + 1
		}
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insert]...)
	out = append(out, bullet)
	out = append(out, lines[insert:]...)
	return strings.Join(out, "\n")
}

func removeActiveLines(text, title string) string {
	var (
		out       []string
		inSection bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == inProgressHeader {
			inSection = true
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			inSection = false
		}
		if inSection {
			if m := activeLineRe.FindStringSubmatch(trimmed); m != nil {
				if got, _ := splitTitleNotes(m[2]); got == title {
					continue
				}
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
