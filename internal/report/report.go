// Package report collects and renders script run results.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// Output formats.
const (
	// FormatText is the default human-readable output format.
	FormatText = "text"
	// FormatJSON is the machine-readable JSON output format.
	FormatJSON = "json"
)

// StepResult records the outcome of one top-level step.
type StepResult struct {
	Name       string           `json:"name"`
	Type       domain.StepType  `json:"type"`
	Status     domain.RunStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	DurationMs int64            `json:"duration_ms"`
}

// Run is the complete result of one script run.
type Run struct {
	ID         string           `json:"id"`
	Script     string           `json:"script"`
	Status     domain.RunStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMs int64            `json:"duration_ms"`
	Steps      []StepResult     `json:"steps"`
}

// NewRunID generates a unique identifier for a script run.
func NewRunID() string {
	return uuid.NewString()
}

// Render formats the run result in the requested output format.
func (r *Run) Render(format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal run result: %w", err)
		}
		return string(data), nil
	case FormatText:
		return r.renderText(), nil
	default:
		return "", fmt.Errorf("%w: %s", steplineerrors.ErrInvalidOutputFormat, format)
	}
}

// renderText produces the human-readable summary: one line per step and a
// trailing verdict line.
func (r *Run) renderText() string {
	var b strings.Builder
	for _, step := range r.Steps {
		fmt.Fprintf(&b, "  %-6s %s (%dms)\n", strings.ToUpper(string(step.Status)), step.Name, step.DurationMs)
		if step.Error != "" {
			fmt.Fprintf(&b, "         %s\n", step.Error)
		}
	}
	fmt.Fprintf(&b, "%s %s (%dms)", strings.ToUpper(string(r.Status)), r.Script, r.DurationMs)
	if r.Error != "" {
		fmt.Fprintf(&b, "\n%s", r.Error)
	}
	return b.String()
}

// ValidFormats returns the list of valid output format values.
func ValidFormats() []string {
	return []string{FormatText, FormatJSON}
}

// IsValidFormat checks if the given format is a valid output format.
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats() {
		if format == valid {
			return true
		}
	}
	return false
}
