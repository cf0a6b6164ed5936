package condition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/scope"
)

func TestEvaluator_EvalBool(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		vars       map[string]any
		want       bool
	}{
		{"true literal", "true", nil, true},
		{"false literal", "false", nil, false},
		{"comparison true", "count < 5", map[string]any{"count": 3}, true},
		{"comparison false", "count < 5", map[string]any{"count": 5}, false},
		{"string equality", `status == "ready"`, map[string]any{"status": "ready"}, true},
		{"boolean operators", "a && !b", map[string]any{"a": true, "b": false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator()
			got, err := e.EvalBool(context.Background(), tt.expression, scope.New(tt.vars))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_EvalBool_Errors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		vars       map[string]any
	}{
		{"undefined variable", "missing < 5", nil},
		{"syntax error", "count <", map[string]any{"count": 1}},
		{"non-boolean result", "count + 1", map[string]any{"count": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator()
			_, err := e.EvalBool(context.Background(), tt.expression, scope.New(tt.vars))
			require.Error(t, err)
			assert.ErrorIs(t, err, steplineerrors.ErrConditionEval)
		})
	}
}

func TestEvaluator_Eval(t *testing.T) {
	e := NewEvaluator()
	sc := scope.New(map[string]any{"attempts": 2})

	out, err := e.Eval(context.Background(), "attempts + 1", sc)
	require.NoError(t, err)
	assert.Equal(t, 3, out)
}

func TestEvaluator_Eval_CanceledContext(t *testing.T) {
	e := NewEvaluator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Eval(ctx, "true", scope.New(nil))
	assert.ErrorIs(t, err, context.Canceled)
}
