package agent

import (
	"fmt"
	"strings"
)

// BuildInstruction assembles the payload sent to the agent for one task:
// the extracted task block plus references to the document files the agent
// is expected to update as it works.
func BuildInstruction(taskDetail, tasksPath, progressPath string) string {
	var b strings.Builder

	b.WriteString("Work on the following task from the backlog:\n\n")
	b.WriteString(strings.TrimRight(taskDetail, "\n"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "The backlog lives at %s. Check off each acceptance criterion there as you satisfy it.\n", tasksPath)
	fmt.Fprintf(&b, "The progress ledger lives at %s. When every criterion is met, move the task's entry from \"## In Progress\" to \"## Completed Tasks\" using the same bullet format, with a brief completion note.\n", progressPath)
	b.WriteString("Do not modify any other task in either file.\n")

	return b.String()
}
