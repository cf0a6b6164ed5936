// Package condition is the boundary to the host expression engine.
//
// The WHILE directive and the set step consume expression evaluation through
// the narrow interfaces defined here; the implementation delegates to
// expr-lang, evaluating expressions against a snapshot of the current
// variable scope. Evaluation errors are categorized with ErrConditionEval
// and propagate to the caller unchanged in meaning - they are never retried
// or converted into a limit outcome.
package condition

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/stepline/stepline/internal/ctxutil"
	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/scope"
)

// BoolEvaluator evaluates a boolean condition expression against a scope.
// This is the contract the loop executor consumes.
type BoolEvaluator interface {
	EvalBool(ctx context.Context, expression string, sc *scope.Scope) (bool, error)
}

// Evaluator evaluates expressions against a variable scope using expr-lang.
// The zero value is usable.
type Evaluator struct{}

// NewEvaluator creates an expression evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Eval evaluates an expression and returns its result.
// Scope variables are exposed to the expression by name.
func (e *Evaluator) Eval(ctx context.Context, expression string, sc *scope.Scope) (any, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	out, err := expr.Eval(expression, sc.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", steplineerrors.ErrConditionEval, expression, err)
	}
	return out, nil
}

// EvalBool evaluates an expression expected to yield a boolean.
// A non-boolean result is an evaluation error, not a falsy value.
func (e *Evaluator) EvalBool(ctx context.Context, expression string, sc *scope.Scope) (bool, error) {
	out, err := e.Eval(ctx, expression, sc)
	if err != nil {
		return false, err
	}

	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q: expected boolean result, got %T",
			steplineerrors.ErrConditionEval, expression, out)
	}
	return b, nil
}

// Ensure Evaluator implements BoolEvaluator.
var _ BoolEvaluator = (*Evaluator)(nil)
