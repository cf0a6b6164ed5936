// Package testutil provides testing utilities for stepline.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockStepFailed indicates a mock step failure (used in tests).
	ErrMockStepFailed = errors.New("step failed")

	// ErrMockEvaluation indicates a mock expression-evaluation failure (used in tests).
	ErrMockEvaluation = errors.New("evaluation failed")

	// ErrMockFileNotFound indicates a mock file was not found (used in tests).
	ErrMockFileNotFound = errors.New("file not found")
)
