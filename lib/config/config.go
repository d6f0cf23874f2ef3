// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "FCCASE_CONFIG"

// Config is the configuration of the fccase tools.
type Config struct {
	// Log configures the process logger.
	Log LogConfig `yaml:"log"`

	// Output configures how case files are written.
	Output OutputConfig `yaml:"output"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text, or
	// json.
	// Default: auto
	Format string `yaml:"format"`
}

// OutputConfig configures how case files are written.
type OutputConfig struct {
	// Compression wraps written files: none, zstd, or lz4. A ".zst" or
	// ".lz4" output path selects its own compression when this is
	// none.
	// Default: none
	Compression string `yaml:"compression"`

	// Indent writes indented JSON.
	// Default: false
	Indent bool `yaml:"indent"`

	// CompactOnSave compacts every model before it is written.
	// Default: false
	CompactOnSave bool `yaml:"compact_on_save"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// WorkDir is the directory relative file arguments resolve
	// against. Empty means the process working directory.
	WorkDir string `yaml:"work_dir"`
}

var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"auto", "text", "json"}
	compressions = []string{"none", "zstd", "lz4"}
)

// Default returns the default configuration. Every field is set, so a
// file only needs the values it changes.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Output: OutputConfig{
			Compression: "none",
		},
	}
}

// Load loads configuration from the file FCCASE_CONFIG names. It fails
// when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your fccase.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads the file at path over the defaults and expands
// variables in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.WorkDir = expandVars(c.Paths.WorkDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, looking in
// vars first and then the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}
	if !slices.Contains(compressions, c.Output.Compression) {
		errs = append(errs, fmt.Errorf("output.compression must be one of: %v", compressions))
	}
	if c.Paths.WorkDir != "" {
		if info, err := os.Stat(c.Paths.WorkDir); err != nil {
			errs = append(errs, fmt.Errorf("paths.work_dir: %w", err))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Errorf("paths.work_dir %s is not a directory", c.Paths.WorkDir))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel returns log.level as a slog level. Unknown names give info;
// Validate rejects them.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolvePath joins a relative path onto paths.work_dir. Absolute
// paths, and every path when work_dir is empty, pass through.
func (c *Config) ResolvePath(path string) string {
	if c.Paths.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Paths.WorkDir, path)
}
