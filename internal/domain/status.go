package domain

// RunStatus describes the terminal outcome of a script run.
type RunStatus string

// Run statuses.
const (
	// RunStatusPassed indicates every step completed successfully.
	RunStatusPassed RunStatus = "passed"

	// RunStatusFailed indicates a step failed, a condition could not be
	// evaluated, or a loop hit its limit with on_limit=fail.
	RunStatusFailed RunStatus = "failed"
)
