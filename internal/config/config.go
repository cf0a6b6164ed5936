// Package config provides configuration management for stepline with layered
// precedence.
//
// Configuration sources are loaded in the following order (highest precedence
// first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (STEPLINE_* prefix)
//  3. Project config (.stepline/config.yaml)
//  4. Global config (~/.stepline/config.yaml)
//  5. Built-in defaults
//
// This package may import internal/constants, internal/errors, and
// internal/report, but MUST NOT import the execution packages.
package config

import (
	"fmt"

	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/report"
)

// Config is the root configuration structure for stepline.
type Config struct {
	// Loop contains settings for WHILE loop execution.
	Loop LoopConfig `yaml:"loop" mapstructure:"loop"`

	// Run contains settings for multi-script run invocations.
	Run RunConfig `yaml:"run" mapstructure:"run"`

	// Output contains settings for result rendering.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Log contains settings for CLI logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LoopConfig contains settings for WHILE loop execution.
type LoopConfig struct {
	// DefaultLimit is the iteration-count bound applied to WHILE directives
	// that declare no 'limit' argument.
	// Default: 10000
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}

// RunConfig contains settings for multi-script run invocations.
type RunConfig struct {
	// Parallel is the number of script files executed concurrently.
	// Default: 4
	Parallel int `yaml:"parallel" mapstructure:"parallel"`
}

// OutputConfig contains settings for result rendering.
type OutputConfig struct {
	// Format is the result output format: "text" or "json".
	// Default: "text"
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig contains settings for CLI logging.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`
}

// Validate checks the configuration for invalid values and returns an error
// describing the first failure found.
func Validate(cfg *Config) error {
	if cfg.Loop.DefaultLimit < 0 {
		return fmt.Errorf("%w: loop.default_limit must not be negative, got %d",
			steplineerrors.ErrConfigInvalid, cfg.Loop.DefaultLimit)
	}
	if cfg.Run.Parallel < 1 {
		return fmt.Errorf("%w: run.parallel must be at least 1, got %d",
			steplineerrors.ErrConfigInvalid, cfg.Run.Parallel)
	}
	if !report.IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: output.format must be one of %v, got %q",
			steplineerrors.ErrConfigInvalid, report.ValidFormats(), cfg.Output.Format)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be one of debug, info, warn, error, got %q",
			steplineerrors.ErrConfigInvalid, cfg.Log.Level)
	}
	return nil
}
