package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/stepline/stepline/internal/condition"
	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/scope"
)

// decodeConfig decodes a step's config map into a typed struct.
func decodeConfig(step *domain.Step, out any) error {
	if err := mapstructure.Decode(step.Config, out); err != nil {
		return fmt.Errorf("%w: %s step: %w", steplineerrors.ErrStepConfigInvalid, step.Type, err)
	}
	return nil
}

// SetExecutor evaluates an expression and assigns the result to a variable.
type SetExecutor struct {
	eval *condition.Evaluator
}

// NewSetExecutor creates a set step executor.
func NewSetExecutor(eval *condition.Evaluator) *SetExecutor {
	return &SetExecutor{eval: eval}
}

type setConfig struct {
	Variable string `mapstructure:"variable"`
	Value    string `mapstructure:"value"`
}

// Execute evaluates config.value against the scope and stores the result
// under config.variable.
func (e *SetExecutor) Execute(ctx context.Context, step *domain.Step, sc *scope.Scope) error {
	var cfg setConfig
	if err := decodeConfig(step, &cfg); err != nil {
		return err
	}
	if cfg.Variable == "" {
		return fmt.Errorf("%w: set step requires a 'variable' name", steplineerrors.ErrStepConfigInvalid)
	}

	result, err := e.eval.Eval(ctx, cfg.Value, sc)
	if err != nil {
		return err
	}
	sc.Set(cfg.Variable, result)
	return nil
}

// Type returns the step type this executor handles.
func (e *SetExecutor) Type() domain.StepType { return domain.StepTypeSet }

// LogExecutor writes an interpolated message to the run log.
type LogExecutor struct {
	logger zerolog.Logger
}

// NewLogExecutor creates a log step executor.
func NewLogExecutor(logger zerolog.Logger) *LogExecutor {
	return &LogExecutor{logger: logger}
}

type logConfig struct {
	Message string `mapstructure:"message"`
}

// Execute renders config.message against the scope and logs it.
func (e *LogExecutor) Execute(_ context.Context, step *domain.Step, sc *scope.Scope) error {
	var cfg logConfig
	if err := decodeConfig(step, &cfg); err != nil {
		return err
	}
	e.logger.Info().Str("step", step.Label()).Msg(sc.Interpolate(cfg.Message))
	return nil
}

// Type returns the step type this executor handles.
func (e *LogExecutor) Type() domain.StepType { return domain.StepTypeLog }

// FailExecutor fails the script with an interpolated message.
type FailExecutor struct{}

// NewFailExecutor creates a fail step executor.
func NewFailExecutor() *FailExecutor {
	return &FailExecutor{}
}

type failConfig struct {
	Message string `mapstructure:"message"`
}

// Execute always returns a step failure carrying the rendered message.
func (e *FailExecutor) Execute(_ context.Context, step *domain.Step, sc *scope.Scope) error {
	var cfg failConfig
	if err := decodeConfig(step, &cfg); err != nil {
		return err
	}
	if cfg.Message == "" {
		return steplineerrors.ErrStepFailed
	}
	return fmt.Errorf("%w: %s", steplineerrors.ErrStepFailed, sc.Interpolate(cfg.Message))
}

// Type returns the step type this executor handles.
func (e *FailExecutor) Type() domain.StepType { return domain.StepTypeFail }

// SleepExecutor pauses execution for a configured duration.
type SleepExecutor struct{}

// NewSleepExecutor creates a sleep step executor.
func NewSleepExecutor() *SleepExecutor {
	return &SleepExecutor{}
}

type sleepConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// Execute sleeps for config.duration, honoring context cancellation.
func (e *SleepExecutor) Execute(ctx context.Context, step *domain.Step, _ *scope.Scope) error {
	var cfg sleepConfig
	if err := decodeConfigWithDuration(step, &cfg); err != nil {
		return err
	}
	if cfg.Duration <= 0 {
		return nil
	}

	timer := time.NewTimer(cfg.Duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Type returns the step type this executor handles.
func (e *SleepExecutor) Type() domain.StepType { return domain.StepTypeSleep }

// decodeConfigWithDuration decodes a step config with string->duration support,
// so scripts can write duration: 250ms.
func decodeConfigWithDuration(step *domain.Step, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     out,
	})
	if err != nil {
		return fmt.Errorf("%w: %s step: %w", steplineerrors.ErrStepConfigInvalid, step.Type, err)
	}
	if err := decoder.Decode(step.Config); err != nil {
		return fmt.Errorf("%w: %s step: %w", steplineerrors.ErrStepConfigInvalid, step.Type, err)
	}
	return nil
}
