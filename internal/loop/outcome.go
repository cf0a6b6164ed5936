package loop

import (
	"fmt"

	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// Interpolator renders ${name} placeholders against the variable scope
// active at the moment the limit is detected. Satisfied by *scope.Scope.
type Interpolator interface {
	Interpolate(template string) string
}

// LimitExceededError reports a loop that hit its limit with on_limit=fail.
// Its Error text is the exact user-facing message; it unwraps to
// ErrLoopLimitExceeded for categorization with errors.Is().
type LimitExceededError struct {
	Message string
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string { return e.Message }

// Unwrap returns the sentinel categorizing this error.
func (e *LimitExceededError) Unwrap() error { return steplineerrors.ErrLoopLimitExceeded }

// resolveLimitOutcome decides the terminal outcome when the limit is hit.
//
// DispositionPass terminates the directive as if the condition had evaluated
// false: no failure and no message, including a configured one. Only
// DispositionFail surfaces a message - the interpolated custom template when
// present, otherwise the built-in default for the limit kind.
//
// This is the only path that can fail purely due to the limit; body failures
// propagate directly from the executor and never reach this resolver.
func resolveLimitOutcome(d *Directive, interp Interpolator) error {
	if d.OnLimit == DispositionPass {
		return nil
	}

	message := defaultLimitMessage(d.Limit)
	if d.HasMessage {
		message = interp.Interpolate(d.Message)
	}
	return &LimitExceededError{Message: message}
}

// defaultLimitMessage synthesizes the built-in limit-exceeded message.
func defaultLimitMessage(l Limit) string {
	return fmt.Sprintf("WHILE loop was aborted because it did not finish within the limit of %s. "+
		"Use the 'limit' argument to increase or remove the limit if needed.", l)
}
