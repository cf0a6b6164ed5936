package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stepline/stepline/internal/clock"
	"github.com/stepline/stepline/internal/condition"
	"github.com/stepline/stepline/internal/constants"
	"github.com/stepline/stepline/internal/ctxutil"
	"github.com/stepline/stepline/internal/domain"
	"github.com/stepline/stepline/internal/loop"
	"github.com/stepline/stepline/internal/report"
	"github.com/stepline/stepline/internal/scope"
)

// Engine runs scripts by dispatching their steps through the executor
// registry. It also satisfies loop.BodyRunner, so WHILE bodies re-enter the
// same dispatch path as top-level steps.
type Engine struct {
	registry     *ExecutorRegistry
	clk          clock.Clock
	logger       zerolog.Logger
	defaultLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the clock used for step timing and loop duration limits.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clk = c }
}

// WithDefaultLoopLimit sets the iteration-count bound applied to WHILE
// directives that declare no limit.
func WithDefaultLoopLimit(n int) Option {
	return func(e *Engine) { e.defaultLimit = n }
}

// WithExecutor registers an additional or replacement step executor.
func WithExecutor(ex StepExecutor) Option {
	return func(e *Engine) { e.registry.Register(ex) }
}

// New creates an engine with the built-in step executors registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry:     NewExecutorRegistry(),
		clk:          clock.RealClock{},
		logger:       zerolog.Nop(),
		defaultLimit: constants.DefaultLoopLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	eval := condition.NewEvaluator()
	loopExec := loop.NewExecutor(eval, e,
		loop.WithClock(e.clk),
		loop.WithLogger(e.logger))

	// Executors registered via options take precedence; built-ins fill
	// the remaining types.
	for _, ex := range []StepExecutor{
		NewSetExecutor(eval),
		NewLogExecutor(e.logger),
		NewFailExecutor(),
		NewSleepExecutor(),
		NewWhileExecutor(loopExec, e.defaultLimit, e.logger),
	} {
		if !e.registry.Has(ex.Type()) {
			e.registry.Register(ex)
		}
	}

	return e
}

// Run executes a script from start to finish and returns its result.
// The returned error is non-nil when the run failed; the result is always
// populated so callers can render it either way.
func (e *Engine) Run(ctx context.Context, script *domain.Script) (*report.Run, error) {
	runID := report.NewRunID()
	sc := scope.New(script.Vars)
	startedAt := e.clk.Now()

	logger := e.logger.With().Str("run_id", runID).Str("script", script.Name).Logger()
	logger.Info().Int("steps", len(script.Steps)).Msg("starting script run")

	result := &report.Run{
		ID:        runID,
		Script:    script.Name,
		Status:    domain.RunStatusPassed,
		StartedAt: startedAt,
		Steps:     make([]report.StepResult, 0, len(script.Steps)),
	}

	var runErr error
	for i := range script.Steps {
		step := &script.Steps[i]
		stepStart := e.clk.Now()
		err := e.executeStep(ctx, step, sc)
		stepResult := report.StepResult{
			Name:       step.Label(),
			Type:       step.Type,
			Status:     domain.RunStatusPassed,
			DurationMs: e.clk.Now().Sub(stepStart).Milliseconds(),
		}
		if err != nil {
			stepResult.Status = domain.RunStatusFailed
			stepResult.Error = err.Error()
			result.Steps = append(result.Steps, stepResult)
			runErr = err
			break
		}
		result.Steps = append(result.Steps, stepResult)
	}

	result.DurationMs = e.clk.Now().Sub(startedAt).Milliseconds()
	if runErr != nil {
		result.Status = domain.RunStatusFailed
		result.Error = runErr.Error()
		logger.Error().Err(runErr).Int64("duration_ms", result.DurationMs).Msg("script run failed")
		return result, runErr
	}

	logger.Info().Int64("duration_ms", result.DurationMs).Msg("script run passed")
	return result, nil
}

// RunBody executes a sequence of steps against the given scope.
// This is the loop.BodyRunner contract: any step failure propagates
// immediately and unconditionally.
func (e *Engine) RunBody(ctx context.Context, body []domain.Step, sc *scope.Scope) error {
	for i := range body {
		if err := e.executeStep(ctx, &body[i], sc); err != nil {
			return err
		}
	}
	return nil
}

// executeStep resolves and runs one step, logging its outcome.
// Errors are returned unchanged so failure messages reach the caller verbatim.
func (e *Engine) executeStep(ctx context.Context, step *domain.Step, sc *scope.Scope) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	executor, err := e.registry.Get(step.Type)
	if err != nil {
		return err
	}

	e.logger.Debug().
		Str("step", step.Label()).
		Str("step_type", string(step.Type)).
		Msg("executing step")

	start := e.clk.Now()
	if err := executor.Execute(ctx, step, sc); err != nil {
		e.logger.Debug().
			Str("step", step.Label()).
			Int64("duration_ms", e.clk.Now().Sub(start).Milliseconds()).
			Err(err).
			Msg("step failed")
		return err
	}

	e.logger.Debug().
		Str("step", step.Label()).
		Int64("duration_ms", e.clk.Now().Sub(start).Milliseconds()).
		Msg("step completed")
	return nil
}
