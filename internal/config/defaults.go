package config

import (
	"github.com/stepline/stepline/internal/constants"
	"github.com/stepline/stepline/internal/report"
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files, environment variables,
// and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Loop: LoopConfig{
			DefaultLimit: constants.DefaultLoopLimit,
		},
		Run: RunConfig{
			Parallel: constants.DefaultParallel,
		},
		Output: OutputConfig{
			Format: report.FormatText,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
