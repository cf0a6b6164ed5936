package loop

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stepline/stepline/internal/clock"
	"github.com/stepline/stepline/internal/condition"
	"github.com/stepline/stepline/internal/ctxutil"
	"github.com/stepline/stepline/internal/domain"
	"github.com/stepline/stepline/internal/scope"
)

// BodyRunner executes the loop body once per iteration.
// The engine's step dispatcher satisfies this; the interface enables mocking
// body execution in tests.
type BodyRunner interface {
	RunBody(ctx context.Context, body []domain.Step, sc *scope.Scope) error
}

// Executor runs WHILE directives. One Executor is shared across directives;
// all per-entry state lives in a fresh runState inside Run, so nested and
// repeated entries are fully isolated from each other.
type Executor struct {
	eval   condition.BoolEvaluator // Mockable: condition evaluation
	runner BodyRunner              // Mockable: body execution
	clk    clock.Clock
	logger zerolog.Logger
}

// NewExecutor creates a loop executor with injectable dependencies.
func NewExecutor(eval condition.BoolEvaluator, runner BodyRunner, opts ...ExecutorOption) *Executor {
	e := &Executor{
		eval:   eval,
		runner: runner,
		clk:    clock.RealClock{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithClock sets the clock used for duration-limit sampling.
func WithClock(c clock.Clock) ExecutorOption {
	return func(e *Executor) { e.clk = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// runState is the mutable state of one directive entry. It is created at
// entry and destroyed on exit; nothing here outlives or is shared across
// entries.
type runState struct {
	iterations int
	startedAt  time.Time
}

// Run executes one WHILE directive entry: it repeatedly evaluates the
// condition, checks the limit, and runs the body.
//
// The cycle per iteration is condition -> limit check -> body. A false
// condition exits cleanly regardless of the limit; the limit check never
// fires on an iteration whose condition was already false. Evaluation errors
// and body failures propagate immediately and unconditionally - the
// disposition machinery never intercepts them. Hitting the limit delegates
// to the disposition: pass exits cleanly, fail returns a LimitExceededError.
func (e *Executor) Run(ctx context.Context, d *Directive, body []domain.Step, sc *scope.Scope) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	state := &runState{startedAt: e.clk.Now()}

	e.logger.Debug().
		Str("condition", d.Condition).
		Str("limit", d.Limit.String()).
		Str("on_limit", string(d.OnLimit)).
		Msg("entering WHILE loop")

	for {
		if err := ctxutil.Canceled(ctx); err != nil {
			return err
		}

		holds := true
		if d.HasCondition {
			var err error
			holds, err = e.eval.EvalBool(ctx, d.Condition, sc)
			if err != nil {
				// Never retried, never converted to a limit outcome.
				return err
			}
		}
		if !holds {
			e.logger.Debug().
				Int("iterations", state.iterations).
				Msg("WHILE condition false, exiting loop")
			return nil
		}

		// Sampled immediately before the check, once per iteration.
		if d.Limit.Exceeded(state.iterations, e.clk.Now().Sub(state.startedAt)) {
			e.logger.Debug().
				Int("iterations", state.iterations).
				Str("limit", d.Limit.String()).
				Str("on_limit", string(d.OnLimit)).
				Msg("WHILE loop limit reached")
			return resolveLimitOutcome(d, sc)
		}

		if err := e.runner.RunBody(ctx, body, sc); err != nil {
			return err
		}
		state.iterations++
	}
}
