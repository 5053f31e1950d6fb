package progress

import (
	"regexp"
	"strings"
	"time"
)

// Status of a ledger entry.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Entry is one line of the progress ledger. Title is a soft reference to a
// backlog task title; a dangling entry is tolerated.
type Entry struct {
	Title       string
	Status      Status
	StartedAt   time.Time
	CompletedAt time.Time
	Notes       string
}

// TimeLayout is the bracketed timestamp literal used in ledger lines.
const TimeLayout = "2006-01-02 15:04"

const (
	inProgressHeader = "## In Progress"
	completedHeader  = "## Completed Tasks"
)

var (
	activeLineRe    = regexp.MustCompile(`^-\s*🔄\s*\[([^\]]+)\]\s*(.*)$`)
	completedLineRe = regexp.MustCompile(`^-\s*✅\s*\[([^\]]+)\]\s*(.*)$`)
)

// Parse extracts ledger entries keyed by task title. Lines outside the two
// recognized sections are ignored; malformed lines are skipped silently.
// Duplicate titles resolve last-write-wins in document order.
func Parse(text string) map[string]Entry {
	entries := make(map[string]Entry)
	for _, e := range parseOrdered(text) {
		entries[e.Title] = e
	}
	return entries
}

// Completed returns the ledger's completed entries in document order, one
// per title (a later duplicate replaces the earlier one in place).
func Completed(text string) []Entry {
	var (
		out   []Entry
		index = make(map[string]int)
	)
	for _, e := range parseOrdered(text) {
		if e.Status != StatusCompleted {
			continue
		}
		if i, ok := index[e.Title]; ok {
			out[i] = e
			continue
		}
		index[e.Title] = len(out)
		out = append(out, e)
	}
	return out
}

func parseOrdered(text string) []Entry {
	var (
		entries []Entry
		section string
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch trimmed {
		case inProgressHeader:
			section = inProgressHeader
			continue
		case completedHeader:
			section = completedHeader
			continue
		}
		if strings.HasPrefix(trimmed, "## ") {
			section = ""
			continue
		}

		var (
			m      []string
			status Status
		)
		switch section {
		case inProgressHeader:
			m = activeLineRe.FindStringSubmatch(trimmed)
			status = StatusInProgress
		case completedHeader:
			m = completedLineRe.FindStringSubmatch(trimmed)
			status = StatusCompleted
		}
		if m == nil {
			continue
		}

		ts, err := time.Parse(TimeLayout, strings.TrimSpace(m[1]))
		if err != nil {
			continue
		}
		title, notes := splitTitleNotes(m[2])
		if title == "" {
			continue
		}

		e := Entry{Title: title, Status: status, Notes: notes}
		if status == StatusCompleted {
			e.CompletedAt = ts
		} else {
			e.StartedAt = ts
		}
		entries = append(entries, e)
	}

	return entries
}

// CompletedLineTitle extracts the task title from a single completed-entry
// bullet, for callers that rewrite the completed section line by line.
func CompletedLineTitle(line string) (string, bool) {
	m := completedLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	title, _ := splitTitleNotes(m[2])
	return title, title != ""
}

// splitTitleNotes separates "<title> - <notes>" at the first separator.
// Notes are optional.
func splitTitleNotes(s string) (string, string) {
	if i := strings.Index(s, " - "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+3:])
	}
	return strings.TrimSpace(s), ""
}
