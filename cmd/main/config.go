package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// configEnvVar names the environment variable holding the config file path.
const configEnvVar = "MARKOVTEXT_CONFIG"

const (
	storeMemory = "memory"
	storeSQLite = "sqlite"
)

// Config holds everything that can be tuned without touching the command line.
type Config struct {
	LogLevel     string  `json:"log_level" yaml:"log_level"`
	LogFormat    string  `json:"log_format" yaml:"log_format"`
	Store        string  `json:"store" yaml:"store"`
	DatabasePath string  `json:"database_path" yaml:"database_path"`
	Seed         *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	MaxWords     int     `json:"max_words" yaml:"max_words"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		LogFormat:    "text",
		Store:        storeMemory,
		DatabasePath: ":memory:",
		MaxWords:     10000,
	}
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig reads the configuration from the file at the given path. An empty
// path returns the defaults. If the file doesn't exist, it creates one with
// default values.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	// Initialize with default configurations
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			if isYAML(path) {
				data, err = yaml.Marshal(config)
			} else {
				data, err = json.MarshalIndent(config, "", "  ")
			}
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the program can still run with defaults.
				logger.Warn("Failed to write default config file", "path", path, "error", err)
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// validate rejects values the program cannot act on.
func (c *Config) validate() error {
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	switch c.Store {
	case storeMemory:
	case storeSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("store %q needs a database_path", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MaxWords < 0 {
		return fmt.Errorf("max_words must not be negative, got %d", c.MaxWords)
	}
	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", level)
	}
}
