// Package loop implements the bounded WHILE directive: argument validation,
// limit tracking, disposition resolution, and the loop executor itself.
//
// A directive is re-validated and re-instantiated fresh on every entry,
// including every entry of a nested occurrence inside an outer iteration.
// No state is shared between instances.
package loop

import (
	"fmt"
	"strings"

	steplineerrors "github.com/stepline/stepline/internal/errors"
)

// Disposition is the policy applied when a loop hits its limit.
type Disposition string

// Dispositions.
const (
	// DispositionFail reports the limit as a failure with a message.
	// This is the default when on_limit is omitted.
	DispositionFail Disposition = "fail"

	// DispositionPass exits the loop cleanly, as if the condition had
	// evaluated false.
	DispositionPass Disposition = "pass"
)

// Recognized argument keys. Matching is case-sensitive; anything else,
// including a repeated key, is classified as a condition token.
const (
	keyLimit          = "limit"
	keyOnLimit        = "on_limit"
	keyOnLimitMessage = "on_limit_message"
)

// Directive is the validated configuration of one WHILE occurrence.
type Directive struct {
	// Condition is the boolean expression gating each iteration.
	// Only meaningful when HasCondition is true; an absent condition
	// means always-true.
	Condition    string
	HasCondition bool

	// Limit is the termination bound. When the script supplies no limit
	// argument this holds the configured default iteration count.
	Limit Limit

	// OnLimit decides pass-through vs. failure when the limit is hit.
	OnLimit Disposition

	// Message is the raw on_limit_message template, stored unevaluated.
	// Interpolation happens at the moment the limit fires.
	Message    string
	HasMessage bool
}

// ArgumentError reports invalid WHILE directive arguments. Its Error text is
// the exact user-facing message; it unwraps to ErrLoopArgument for
// categorization with errors.Is().
type ArgumentError struct {
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string { return e.Message }

// Unwrap returns the sentinel categorizing this error.
func (e *ArgumentError) Unwrap() error { return steplineerrors.ErrLoopArgument }

// ParseArgs validates the raw argument tokens of a WHILE directive and
// produces its configuration. defaultLimit is the iteration-count bound
// applied when no limit argument is supplied.
//
// Each token is classified as a recognized key=value pair (first occurrence
// wins per key) or accumulated as a condition token in the order given.
// Zero condition tokens mean always-true, one is the condition, and two or
// more fail with a consolidated ArgumentError listing every token.
// ParseArgs has no side effects.
func ParseArgs(tokens []string, defaultLimit int) (*Directive, error) {
	d := &Directive{
		Limit:   CountLimit(defaultLimit),
		OnLimit: DispositionFail,
	}

	var conditions []string
	var rawLimit, rawOnLimit string
	var hasLimit, hasOnLimit bool
	seen := make(map[string]bool, 3)

	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if !found || !isRecognizedKey(key) || seen[key] {
			conditions = append(conditions, token)
			continue
		}
		seen[key] = true

		switch key {
		case keyLimit:
			rawLimit, hasLimit = value, true
		case keyOnLimit:
			rawOnLimit, hasOnLimit = value, true
		case keyOnLimitMessage:
			d.Message, d.HasMessage = value, true
		}
	}

	switch len(conditions) {
	case 0:
		// Always-true condition.
	case 1:
		d.Condition = conditions[0]
		d.HasCondition = true
	default:
		return nil, &ArgumentError{Message: fmt.Sprintf(
			"WHILE cannot have more than one condition, got %s.", quotedList(conditions))}
	}

	if hasLimit {
		limit, err := parseLimit(rawLimit)
		if err != nil {
			return nil, err
		}
		d.Limit = limit
	}

	if hasOnLimit {
		disposition, err := parseOnLimit(rawOnLimit)
		if err != nil {
			return nil, err
		}
		d.OnLimit = disposition
	}

	return d, nil
}

// isRecognizedKey reports whether key exactly matches one of the directive's
// argument names. Matching is case-sensitive by design: 'Limit=5' is a
// condition token, not a limit.
func isRecognizedKey(key string) bool {
	return key == keyLimit || key == keyOnLimit || key == keyOnLimitMessage
}

// parseOnLimit normalizes an on_limit value case-insensitively.
func parseOnLimit(value string) (Disposition, error) {
	switch strings.ToLower(value) {
	case string(DispositionPass):
		return DispositionPass, nil
	case string(DispositionFail):
		return DispositionFail, nil
	default:
		return "", &ArgumentError{Message: fmt.Sprintf(
			"Invalid WHILE loop on_limit: must be one of 'pass', 'fail', got '%s'.", value)}
	}
}

// quotedList renders tokens as 'a', 'b' and 'c' - commas between all but the
// last pair, which is joined with "and". Exactly two tokens use "and" alone.
// Callers only invoke this with two or more tokens.
func quotedList(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = "'" + t + "'"
	}
	if len(quoted) == 2 {
		return quoted[0] + " and " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
