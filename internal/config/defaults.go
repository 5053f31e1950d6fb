package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Agent: AgentConfig{
			Command: "cursor-agent",
		},
		Loop: LoopConfig{
			MaxIterations:   50,
			MaxConcurrent:   0,
			LockWaitSeconds: 30,
		},
		Paths: PathsConfig{
			TasksFile:    "TASKS.md",
			ProgressFile: "PROGRESS.md",
		},
		Archive: ArchiveConfig{
			Dir: "archive",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".cursor-iter/history.db",
		},
	}
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	content := `# cursor-iter Project Configuration
version: "1"

# External agent
agent:
  command: cursor-agent
  # args: []
  # model: ""

# Iteration loop
loop:
  max_iterations: 50
  # Max tasks held in progress at once (0 = unlimited)
  max_concurrent: 0
  lock_wait_seconds: 30

# Document files (resolved from the working directory, CURSOR_ITER_DIR,
# or the parent directory)
paths:
  tasks_file: TASKS.md
  progress_file: PROGRESS.md

# Completed-task archive directory
archive:
  dir: archive

# Iteration history
history:
  enabled: true
  path: .cursor-iter/history.db
`
	return os.WriteFile(path, []byte(content), 0644)
}
