package config

// Config represents the full cursor-iter configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// External agent invocation
	Agent AgentConfig `yaml:"agent" mapstructure:"agent"`

	// Iteration loop behavior
	Loop LoopConfig `yaml:"loop" mapstructure:"loop"`

	// Document file names, resolved against the working directory (or
	// CURSOR_ITER_DIR, or the parent directory as a fallback)
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`

	// Completed-task archival
	Archive ArchiveConfig `yaml:"archive" mapstructure:"archive"`

	// Iteration history database
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

// AgentConfig configures the external code-generation agent
type AgentConfig struct {
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args" mapstructure:"args"`
	Model   string   `yaml:"model" mapstructure:"model"`
}

// LoopConfig configures the iteration loop
type LoopConfig struct {
	// Hard cap on loop iterations (safety ceiling against runaway loops)
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations"`

	// Max tasks this instance will hold in progress at once (0 = unlimited).
	// Cooperative only: a second instance is not restrained by it.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`

	// Bounded wait before a stale document lock is taken over
	LockWaitSeconds int `yaml:"lock_wait_seconds" mapstructure:"lock_wait_seconds"`
}

// PathsConfig names the backlog and progress ledger files
type PathsConfig struct {
	TasksFile    string `yaml:"tasks_file" mapstructure:"tasks_file"`
	ProgressFile string `yaml:"progress_file" mapstructure:"progress_file"`
}

// ArchiveConfig configures completed-task archival
type ArchiveConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// HistoryConfig configures the SQLite iteration history
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}
