// Package errors provides centralized error handling for stepline.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrLoopArgument indicates that a WHILE directive declared invalid
	// arguments (multiple conditions, bad limit syntax, bad on_limit value).
	ErrLoopArgument = errors.New("invalid WHILE loop argument")

	// ErrLoopLimitExceeded indicates that a WHILE loop hit its configured
	// limit with on_limit=fail.
	ErrLoopLimitExceeded = errors.New("WHILE loop limit exceeded")

	// ErrConditionEval indicates that a condition expression could not be
	// evaluated by the expression engine.
	ErrConditionEval = errors.New("condition evaluation failed")

	// ErrStepFailed indicates that a step inside a script failed.
	ErrStepFailed = errors.New("step failed")

	// ErrExecutorNotFound indicates no executor is registered for the given step type.
	ErrExecutorNotFound = errors.New("executor not found for step type")

	// ErrScriptFileMissing indicates the script file does not exist.
	ErrScriptFileMissing = errors.New("script file not found")

	// ErrScriptParseError indicates the script file has invalid YAML syntax.
	ErrScriptParseError = errors.New("script parse error")

	// ErrScriptInvalid indicates a script failed structural validation.
	ErrScriptInvalid = errors.New("invalid script")

	// ErrScriptEmpty indicates a script declares no steps.
	ErrScriptEmpty = errors.New("script has no steps")

	// ErrStepConfigInvalid indicates a step's config map could not be decoded.
	ErrStepConfigInvalid = errors.New("invalid step configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrNoScriptFiles indicates a run invocation named no script files.
	ErrNoScriptFiles = errors.New("no script files provided")

	// ErrRunFailed indicates that at least one script in a run failed.
	// Commands return this so the process exits non-zero without repeating
	// messages already reported per script.
	ErrRunFailed = errors.New("run failed")
)
