// Package constants provides centralized constant values used throughout stepline.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory and file names used by stepline for organizing data.
const (
	// SteplineHome is the hidden directory name where stepline stores its data.
	// This directory is created in the user's home directory.
	SteplineHome = ".stepline"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "stepline.log"

	// ConfigFileName is the name of the configuration file, both globally
	// (~/.stepline) and per project (.stepline).
	ConfigFileName = "config.yaml"
)

// Loop execution defaults.
const (
	// DefaultLoopLimit is the iteration-count limit applied to WHILE loops
	// that declare no explicit 'limit' argument. It guarantees termination
	// of condition-only loops whose condition never turns false.
	DefaultLoopLimit = 10000
)

// Run defaults.
const (
	// DefaultParallel is the number of script files executed concurrently
	// by a single run invocation.
	DefaultParallel = 4
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of rotated files.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)
