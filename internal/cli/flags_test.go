package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	steplineerrors "github.com/stepline/stepline/internal/errors"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "generic error", err: stderrors.New("boom"), want: ExitError},
		{name: "run failed", err: steplineerrors.ErrRunFailed, want: ExitError},
		{name: "loop limit exceeded", err: steplineerrors.ErrLoopLimitExceeded, want: ExitError},
		{name: "invalid output format", err: steplineerrors.ErrInvalidOutputFormat, want: ExitInvalidInput},
		{name: "missing script file", err: steplineerrors.ErrScriptFileMissing, want: ExitInvalidInput},
		{name: "script parse error", err: steplineerrors.ErrScriptParseError, want: ExitInvalidInput},
		{name: "invalid config", err: steplineerrors.ErrConfigInvalid, want: ExitInvalidInput},
		{name: "wrapped input error", err: steplineerrors.Wrap(steplineerrors.ErrScriptEmpty, "script x"), want: ExitInvalidInput},
		{name: "cobra unknown flag", err: stderrors.New("unknown flag: --frobnicate"), want: ExitInvalidInput},
		{name: "cobra unknown command", err: stderrors.New(`unknown command "frobnicate" for "stepline"`), want: ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
