// Package progress parses and mutates the progress ledger (PROGRESS.md).
//
// The ledger has two recognized sections:
//
//	# Progress Log
//
//	## In Progress
//
//	- 🔄 [2025-01-08 19:00] Add user authentication - working on handler
//
//	## Completed Tasks
//
//	- ✅ [2025-01-08 18:30] Set up project skeleton - all criteria met
//
// Parsing is deliberately forgiving: the ledger is hand-edited (and edited
// by the agent itself), so malformed bullets and unparsable timestamps are
// skipped silently rather than reported. If a title appears in both
// sections, whichever line parses last in document order wins.
//
// Mutations are pure text-to-text functions; the caller owns writing the
// result back to storage. They are not deduplicated: marking the same
// title active twice appends two lines, which is stable downstream because
// parsing takes last-write-wins.
package progress
