package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const configDirName = ".cursor-iter"

// Load loads and merges configuration from global and project sources
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Return defaults if no home dir
	}

	cwd, err := os.Getwd()
	if err != nil {
		return cfg, nil // Return defaults if no cwd
	}

	// Global first, then project on top. A missing or malformed file at
	// either level falls back to whatever is already loaded.
	_ = loadFile(filepath.Join(home, configDirName, "config.yaml"), cfg)
	_ = loadFile(filepath.Join(cwd, configDirName, "config.yaml"), cfg)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, configDirName, "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, configDirName, "config.yaml")
}

// ProjectConfigDir returns the path to the project cursor-iter directory
func ProjectConfigDir() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, configDirName)
}
