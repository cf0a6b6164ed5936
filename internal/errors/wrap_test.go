package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("adds context and preserves chain", func(t *testing.T) {
		err := Wrap(ErrStepFailed, "running script")
		assert.EqualError(t, err, "running script: step failed")
		assert.ErrorIs(t, err, ErrStepFailed)
	})
}

func TestWrapf(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "script %s", "a"))
	})

	t.Run("formats context and preserves chain", func(t *testing.T) {
		err := Wrapf(ErrScriptEmpty, "script %q", "smoke")
		assert.EqualError(t, err, `script "smoke": script has no steps`)
		assert.ErrorIs(t, err, ErrScriptEmpty)
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, stderrors.Is(ErrLoopArgument, ErrLoopLimitExceeded))
	assert.False(t, stderrors.Is(ErrScriptParseError, ErrScriptInvalid))
}
