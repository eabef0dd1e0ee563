package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the CLI configuration.
type Config struct {
	// LogLevel selects the slog level: debug, info, warn or error.
	LogLevel string `json:"log_level"`

	// StartDelim and EndDelim override the template section delimiters.
	StartDelim string `json:"start_delim"`
	EndDelim   string `json:"end_delim"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		StartDelim: "%{",
		EndDelim:   "}%",
	}
}

// loadConfig reads the JSON config file at path. A missing file is not an
// error; the defaults are returned unchanged.
func loadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func (c *Config) slogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
