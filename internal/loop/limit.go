package loop

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LimitKind tags a Limit as iteration-count or wall-clock based.
type LimitKind string

// Limit kinds.
const (
	// LimitCount bounds the loop by completed iterations.
	LimitCount LimitKind = "count"

	// LimitDuration bounds the loop by elapsed wall-clock time.
	LimitDuration LimitKind = "duration"
)

// Limit is the termination bound of a WHILE directive.
type Limit struct {
	Kind     LimitKind
	Count    int
	Duration time.Duration
}

// CountLimit returns an iteration-count limit.
func CountLimit(n int) Limit {
	return Limit{Kind: LimitCount, Count: n}
}

// DurationLimit returns a wall-clock limit.
func DurationLimit(d time.Duration) Limit {
	return Limit{Kind: LimitDuration, Duration: d}
}

// Exceeded reports whether the limit has been reached, given the number of
// completed iterations and the time elapsed since directive entry.
//
// The caller samples elapsed time immediately before each check; a body step
// that runs long is only observed to overshoot a duration limit at the next
// pre-body check, never interrupted mid-execution.
func (l Limit) Exceeded(iterations int, elapsed time.Duration) bool {
	switch l.Kind {
	case LimitCount:
		return iterations >= l.Count
	case LimitDuration:
		return elapsed >= l.Duration
	default:
		return false
	}
}

// String renders the limit the way user-facing messages refer to it:
// '5 iterations' or '1.5 seconds'.
func (l Limit) String() string {
	if l.Kind == LimitDuration {
		return formatSeconds(l.Duration) + " seconds"
	}
	return strconv.Itoa(l.Count) + " iterations"
}

// timeUnits maps recognized time-unit suffixes to their duration. The empty
// suffix covers bare decimal numbers, which are read as seconds.
var timeUnits = map[string]time.Duration{
	"":             time.Second,
	"ms":           time.Millisecond,
	"millisecond":  time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"secs":         time.Second,
	"second":       time.Second,
	"seconds":      time.Second,
	"min":          time.Minute,
	"mins":         time.Minute,
	"minute":       time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hour":         time.Hour,
	"hours":        time.Hour,
}

// parseLimit parses a limit argument value. A bare non-negative integer is an
// iteration count; a non-negative number with a recognized time-unit suffix,
// a bare decimal number (seconds), or a Go duration string is a wall-clock
// limit. Anything else is an ArgumentError.
func parseLimit(raw string) (Limit, error) {
	s := strings.TrimSpace(raw)

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Limit{}, negativeLimitError(raw)
		}
		return CountLimit(n), nil
	}

	if d, ok := parseTimeString(s); ok {
		if d < 0 {
			return Limit{}, negativeLimitError(raw)
		}
		return DurationLimit(d), nil
	}

	// Compound Go duration strings such as '1h30m'.
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return Limit{}, negativeLimitError(raw)
		}
		return DurationLimit(d), nil
	}

	return Limit{}, &ArgumentError{Message: fmt.Sprintf(
		"Invalid WHILE loop limit: must be an iteration count or a time string, got '%s'.", raw)}
}

// parseTimeString parses 'number [unit]' forms: '1.5', '10 s', '2 minutes'.
func parseTimeString(s string) (time.Duration, bool) {
	lower := strings.ToLower(s)

	i := 0
	for i < len(lower) && (lower[i] == '-' || lower[i] == '+' || lower[i] == '.' ||
		(lower[i] >= '0' && lower[i] <= '9')) {
		i++
	}

	value, err := strconv.ParseFloat(lower[:i], 64)
	if err != nil {
		return 0, false
	}

	unit, ok := timeUnits[strings.TrimSpace(lower[i:])]
	if !ok {
		return 0, false
	}
	return time.Duration(value * float64(unit)), true
}

func negativeLimitError(raw string) error {
	return &ArgumentError{Message: fmt.Sprintf(
		"Invalid WHILE loop limit: value must be non-negative, got '%s'.", raw)}
}

// formatSeconds renders a duration as seconds with minimal decimals:
// 1.5s -> '1.5', 90s -> '90'.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
