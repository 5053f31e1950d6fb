// Package agent invokes the external code-generation agent. The agent is
// an opaque blocking command that reads and writes the project, including
// the backlog and ledger documents themselves, and reports success or
// failure through its exit code.
package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner runs the agent once with an instruction payload and blocks until
// it exits.
type Runner interface {
	Run(ctx context.Context, instruction string) error
}

// ExecRunner shells out to the agent CLI. The instruction payload is passed
// on stdin; the agent's own output streams through unchanged.
type ExecRunner struct {
	Command string   // agent binary, e.g. "cursor-agent"
	Args    []string // extra arguments placed before the model selector
	Model   string   // optional model selector, passed as --model
	Dir     string   // working directory; empty means inherit
	Stdout  io.Writer
	Stderr  io.Writer
}

// CheckInstalled verifies the agent binary is reachable.
func (r *ExecRunner) CheckInstalled() error {
	if r.Command == "" {
		return fmt.Errorf("agent command is not configured")
	}
	if _, err := exec.LookPath(r.Command); err != nil {
		return fmt.Errorf("agent %q not found in PATH: %w", r.Command, err)
	}
	return nil
}

func (r *ExecRunner) Run(ctx context.Context, instruction string) error {
	if err := r.CheckInstalled(); err != nil {
		return err
	}

	args := append([]string{}, r.Args...)
	if r.Model != "" {
		args = append(args, "--model", r.Model)
	}

	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = strings.NewReader(instruction)
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("agent %q failed: %w", r.Command, err)
	}
	return nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
