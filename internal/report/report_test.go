package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
)

func sampleRun() *Run {
	return &Run{
		ID:         NewRunID(),
		Script:     "health check",
		Status:     domain.RunStatusFailed,
		Error:      "step failed: database unreachable",
		StartedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationMs: 42,
		Steps: []StepResult{
			{Name: "warm up", Type: domain.StepTypeSet, Status: domain.RunStatusPassed, DurationMs: 1},
			{Name: "probe", Type: domain.StepTypeWhile, Status: domain.RunStatusFailed, Error: "step failed: database unreachable", DurationMs: 41},
		},
	}
}

func TestRun_RenderText(t *testing.T) {
	out, err := sampleRun().Render(FormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "warm up")
	assert.Contains(t, out, "FAILED health check (42ms)")
	assert.Contains(t, out, "database unreachable")
}

func TestRun_RenderJSON(t *testing.T) {
	out, err := sampleRun().Render(FormatJSON)
	require.NoError(t, err)

	var decoded Run
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "health check", decoded.Script)
	assert.Equal(t, domain.RunStatusFailed, decoded.Status)
	assert.Len(t, decoded.Steps, 2)
}

func TestRun_RenderUnknownFormat(t *testing.T) {
	_, err := sampleRun().Render("xml")
	assert.ErrorIs(t, err, steplineerrors.ErrInvalidOutputFormat)
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, IsValidFormat(FormatText))
	assert.True(t, IsValidFormat(FormatJSON))
	assert.False(t, IsValidFormat("yaml"))
	assert.False(t, IsValidFormat(""))
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}
