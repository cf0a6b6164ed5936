// Package domain contains the core data types for stepline.
//
// Types here are pure data with no behavior beyond small helpers.
// This package MUST NOT import any other internal packages.
package domain

// StepType identifies the executor responsible for a step.
type StepType string

// Built-in step types.
const (
	// StepTypeSet evaluates an expression and assigns the result to a variable.
	StepTypeSet StepType = "set"

	// StepTypeLog writes an interpolated message to the run log.
	StepTypeLog StepType = "log"

	// StepTypeFail fails the script with an interpolated message.
	StepTypeFail StepType = "fail"

	// StepTypeSleep pauses execution for a configured duration.
	StepTypeSleep StepType = "sleep"

	// StepTypeWhile repeats a body of steps while a condition holds,
	// bounded by an iteration-count or duration limit.
	StepTypeWhile StepType = "while"
)

// Script is one loaded test script: a name, initial variables, and an
// ordered list of steps.
type Script struct {
	Name  string         `yaml:"name"`
	Vars  map[string]any `yaml:"vars,omitempty"`
	Steps []Step         `yaml:"steps"`
}

// Step is a single executable unit within a script.
//
// Args carries the raw directive argument tokens exactly as written in the
// script; for a while step these are the condition plus limit/on_limit/
// on_limit_message key=value tokens, validated at directive entry, never at
// load time. Body holds the nested steps of a while step. Config carries
// executor-specific settings for the other step types.
type Step struct {
	Name   string         `yaml:"name,omitempty"`
	Type   StepType       `yaml:"type"`
	Args   []string       `yaml:"args,omitempty"`
	Config map[string]any `yaml:"config,omitempty"`
	Body   []Step         `yaml:"body,omitempty"`
}

// Label returns a human-readable identifier for the step: its name when
// present, otherwise its type.
func (s *Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Type)
}
