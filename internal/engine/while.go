package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stepline/stepline/internal/domain"
	"github.com/stepline/stepline/internal/loop"
	"github.com/stepline/stepline/internal/scope"
)

// WhileExecutor bridges the step dispatcher and the WHILE directive.
//
// Every Execute call validates the step's raw argument tokens from scratch
// and runs a fresh directive entry: a while step nested inside another
// while's body is re-instantiated on every outer iteration and shares no
// state with its siblings or with the outer loop.
type WhileExecutor struct {
	loop         *loop.Executor
	defaultLimit int
	logger       zerolog.Logger
}

// NewWhileExecutor creates a while step executor. defaultLimit is the
// iteration-count bound applied to directives that declare no limit.
func NewWhileExecutor(loopExec *loop.Executor, defaultLimit int, logger zerolog.Logger) *WhileExecutor {
	return &WhileExecutor{
		loop:         loopExec,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Execute validates the directive arguments once at entry and runs the loop.
// Argument errors abort before any iteration; they are never softened by the
// directive's own on_limit setting.
func (e *WhileExecutor) Execute(ctx context.Context, step *domain.Step, sc *scope.Scope) error {
	d, err := loop.ParseArgs(step.Args, e.defaultLimit)
	if err != nil {
		e.logger.Debug().
			Str("step", step.Label()).
			Strs("args", step.Args).
			Err(err).
			Msg("WHILE argument validation failed")
		return err
	}
	return e.loop.Run(ctx, d, step.Body, sc)
}

// Type returns the step type this executor handles.
func (e *WhileExecutor) Type() domain.StepType { return domain.StepTypeWhile }
