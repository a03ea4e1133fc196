// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default values.
const (
	DefaultBackend   = BackendFile
	DefaultTasksFile = "tasks.txt"
	DefaultDBFile    = "tasks.db"
	DefaultLogLevel  = "info"
)

// Config holds the full configuration for tasktrack.
type Config struct {
	Backend   string `toml:"backend"`    // file | sqlite
	TasksFile string `toml:"tasks_file"` // flat-file backend path
	DBFile    string `toml:"db_file"`    // sqlite backend path
	LogLevel  string `toml:"log_level"`  // debug | info | warn | error
}

// Load builds the configuration in priority order: defaults, user config
// file, project config file in dir, environment variables. An empty dir
// means the current directory.
func Load(dir string) (*Config, error) {
	cfg := &Config{
		Backend:   DefaultBackend,
		TasksFile: DefaultTasksFile,
		DBFile:    DefaultDBFile,
		LogLevel:  DefaultLogLevel,
	}
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}
	if path := findProjectConfigFile(dir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}
	loadFromEnv(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func findUserConfigFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "tasktrack", "tasktrack.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func findProjectConfigFile(dir string) string {
	if dir == "" {
		dir = "."
	}
	for _, name := range []string{"tasktrack.toml", ".tasktrack.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKTRACK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TASKTRACK_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("TASKTRACK_DB"); v != "" {
		cfg.DBFile = v
	}
	if v := os.Getenv("TASKTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendFile, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q (expected %s or %s)", cfg.Backend, BackendFile, BackendSQLite)
}
