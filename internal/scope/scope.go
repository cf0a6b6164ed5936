// Package scope implements the variable scope consumed by step executors
// and the WHILE directive.
//
// A Scope is a flat, mutable name->value map owned by a single script run.
// It provides ${name} interpolation for string templates; expression
// evaluation against the scope lives in internal/condition.
package scope

import (
	"fmt"
	"maps"
	"regexp"
)

// varPattern matches ${variable} patterns for interpolation.
// This is a package-level compiled regex for performance (immutable after init).
var varPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Scope holds the variables of one script run.
// It is not safe for concurrent use; a run executes on a single goroutine.
type Scope struct {
	vars map[string]any
}

// New creates a scope seeded with the given initial variables.
// The initial map is copied; nil is allowed.
func New(initial map[string]any) *Scope {
	vars := make(map[string]any, len(initial))
	maps.Copy(vars, initial)
	return &Scope{vars: vars}
}

// Set assigns a variable, overwriting any existing value.
func (s *Scope) Set(name string, value any) {
	s.vars[name] = value
}

// Get returns the value of a variable and whether it is defined.
func (s *Scope) Get(name string) (any, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Len returns the number of defined variables.
func (s *Scope) Len() int {
	return len(s.vars)
}

// Snapshot returns a copy of the current variables. Mutating the returned
// map does not affect the scope.
func (s *Scope) Snapshot() map[string]any {
	out := make(map[string]any, len(s.vars))
	maps.Copy(out, s.vars)
	return out
}

// Interpolate replaces ${name} patterns with the current variable values,
// rendered with fmt.Sprint. Unmatched patterns are left as-is.
//
// Interpolation reads the scope at call time: a message template rendered
// when a loop limit fires sees the values written by the last completed
// iteration, not the values at directive entry.
func (s *Scope) Interpolate(template string) string {
	return varPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := s.vars[name]; ok {
			return fmt.Sprint(val)
		}
		return match // Leave unexpanded if not found
	})
}
