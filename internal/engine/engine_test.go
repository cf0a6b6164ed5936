package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/loop"
)

// whileStep builds a while step from raw tokens and a body.
func whileStep(body []domain.Step, tokens ...string) domain.Step {
	return domain.Step{Type: domain.StepTypeWhile, Args: tokens, Body: body}
}

// setStep builds a set step assigning the result of an expression.
func setStep(variable, value string) domain.Step {
	return domain.Step{
		Type:   domain.StepTypeSet,
		Config: map[string]any{"variable": variable, "value": value},
	}
}

func TestEngine_RunSimpleScript(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "simple",
		Vars: map[string]any{"count": 0},
		Steps: []domain.Step{
			setStep("count", "count + 1"),
			setStep("count", "count * 10"),
		},
	}

	result, err := e.Run(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusPassed, result.Status)
	assert.Len(t, result.Steps, 2)
	assert.NotEmpty(t, result.ID)
}

func TestEngine_WhileCountsIterations(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "counting loop",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{setStep("i", "i + 1")},
				"i < 4",
			),
			setStep("final", "i"),
		},
	}

	result, err := e.Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusPassed, result.Status)
}

func TestEngine_WhileLimitFailStopsScript(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "limited loop",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{setStep("i", "i + 1")},
				"true", "limit=5",
			),
		},
	}

	result, err := e.Run(context.Background(), script)
	require.Error(t, err)

	assert.ErrorIs(t, err, steplineerrors.ErrLoopLimitExceeded)
	assert.Equal(t, domain.RunStatusFailed, result.Status)
	assert.Contains(t, result.Error, "limit of 5 iterations")
}

func TestEngine_WhileLimitPassContinuesScript(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "pass disposition",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{setStep("i", "i + 1")},
				"true", "limit=3", "on_limit=pass",
			),
			setStep("after", "i"),
		},
	}

	result, err := e.Run(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusPassed, result.Status)
	assert.Len(t, result.Steps, 2, "steps after a passed loop still run")
}

func TestEngine_WhileCustomMessageSeesCurrentScope(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "custom message",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{setStep("i", "i + 1")},
				"true", "limit=2", "on_limit_message=stopped at ${i}",
			),
		},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)
	assert.Equal(t, "stopped at 2", err.Error())
}

func TestEngine_BodyFailurePropagatesVerbatim(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "failing body",
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{{
					Type:   domain.StepTypeFail,
					Config: map[string]any{"message": "database unreachable"},
				}},
				"true", "limit=5", "on_limit=pass",
			),
		},
	}

	result, err := e.Run(context.Background(), script)
	require.Error(t, err)

	assert.ErrorIs(t, err, steplineerrors.ErrStepFailed)
	assert.NotErrorIs(t, err, steplineerrors.ErrLoopLimitExceeded,
		"body failures bypass the disposition machinery")
	assert.Contains(t, result.Error, "database unreachable")
}

func TestEngine_WhileArgumentErrorAbortsBeforeIterating(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "bad arguments",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{setStep("i", "i + 1")},
				"i < 2", "limit=5", "limit_exceed_messag=oops",
			),
		},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)

	assert.ErrorIs(t, err, steplineerrors.ErrLoopArgument)
	assert.Equal(t,
		"WHILE cannot have more than one condition, got 'i < 2' and 'limit_exceed_messag=oops'.",
		err.Error())
}

func TestEngine_NestedWhileLoopsAreIsolated(t *testing.T) {
	e := New()
	// The inner loop exhausts its own limit with pass on every outer
	// iteration; the outer loop fails with its own message.
	script := &domain.Script{
		Name: "nested",
		Vars: map[string]any{"inner_total": 0},
		Steps: []domain.Step{
			whileStep(
				[]domain.Step{
					whileStep(
						[]domain.Step{setStep("inner_total", "inner_total + 1")},
						"true", "limit=2", "on_limit=pass", "on_limit_message=inner",
					),
				},
				"true", "limit=3", "on_limit_message=outer gave up at ${inner_total}",
			),
		},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)

	assert.Equal(t, "outer gave up at 6", err.Error(),
		"each nested entry runs its own two iterations; the outer message wins")
}

func TestEngine_EvaluationErrorFailsRun(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name: "bad condition",
		Steps: []domain.Step{
			whileStep(nil, "undefined_var < 5", "on_limit=pass"),
		},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)
	assert.ErrorIs(t, err, steplineerrors.ErrConditionEval)
}

func TestEngine_UnknownStepType(t *testing.T) {
	e := New()
	script := &domain.Script{
		Name:  "unknown step",
		Steps: []domain.Step{{Type: "teleport"}},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)
	assert.ErrorIs(t, err, steplineerrors.ErrExecutorNotFound)
}

func TestEngine_DefaultLoopLimitIsConfigurable(t *testing.T) {
	e := New(WithDefaultLoopLimit(7))
	script := &domain.Script{
		Name: "condition-only loop",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep([]domain.Step{setStep("i", "i + 1")}, "true"),
		},
	}

	_, err := e.Run(context.Background(), script)
	require.Error(t, err)

	assert.ErrorIs(t, err, steplineerrors.ErrLoopLimitExceeded)
	assert.Contains(t, err.Error(), "limit of 7 iterations",
		"the default limit guarantees termination of condition-only loops")
}

func TestEngine_WhileDirectiveStateIsPerEntry(t *testing.T) {
	// Running the same script twice through one engine must not leak
	// iteration counts between runs.
	e := New()
	script := &domain.Script{
		Name: "repeat",
		Vars: map[string]any{"i": 0},
		Steps: []domain.Step{
			whileStep([]domain.Step{setStep("i", "i + 1")}, "i < 3"),
		},
	}

	for range 2 {
		_, err := e.Run(context.Background(), script)
		require.NoError(t, err)
	}
}

var _ loop.BodyRunner = (*Engine)(nil)
