// Package taskdoc parses and validates the backlog document (TASKS.md).
//
// # Document Format
//
// Tasks live under a single "## Current Tasks" section. Content before that
// header, or under any later "## " section, is ignored entirely; a document
// without the header yields zero tasks. Each task looks like:
//
//	### Task: Add user authentication
//
//	**Context:** Why this task exists.
//	**Acceptance Criteria:**
//
//	* [ ] Login endpoint returns a session token
//	* [x] Password hashing uses bcrypt
//
//	**Files to Modify:** auth/handler.go
//	**Tests:** auth/handler_test.go
//
// The task header may carry a single leading status token (for example
// "### ✅ Task: ..."); the token is stripped and the title is the join key
// with the progress ledger. No numeric IDs exist.
//
// # Parsing vs. Validation
//
// Parse is forgiving and pure: it extracts whatever task-shaped content it
// finds and never fails. Validate reports structural defects (missing
// section header, tasks without context or acceptance criteria) so callers
// can refuse to orchestrate over a broken document. Repair fixes exactly one
// defect class, a missing "## Current Tasks" header, and nothing else,
// since rewriting task bodies risks destroying hand-authored content.
package taskdoc
