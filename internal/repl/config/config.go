// Package config provides configuration management for the JEL console.
// It loads the ~/.jelrc startup file, which is written in the expression
// language itself, and maps the variables it binds onto the Config struct.
package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Config holds console settings. Zero values are never used directly;
// start from DefaultConfig.
type Config struct {
	// Prompt is printed before every input line
	Prompt string

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// ConsumeTrailingLine reads and discards one extra line after every
	// non-quit command, for terminals that deliver a second line terminator.
	ConsumeTrailingLine bool

	// HistoryLimit is the number of past lines loaded into the line editor
	HistoryLimit int

	// Color enables styled output
	Color bool

	// Banner prints the welcome banner at startup
	Banner bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:              "> ",
		LogLevel:            "info",
		ConsumeTrailingLine: false,
		HistoryLimit:        500,
		Color:               true,
		Banner:              true,
	}
}

// ZapLevel parses LogLevel into a zap level.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
