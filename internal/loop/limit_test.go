package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimit_Exceeded_Count(t *testing.T) {
	tests := []struct {
		name       string
		limit      Limit
		iterations int
		want       bool
	}{
		{"below limit", CountLimit(5), 4, false},
		{"at limit", CountLimit(5), 5, true},
		{"above limit", CountLimit(5), 6, true},
		{"zero limit fires immediately", CountLimit(0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.Exceeded(tt.iterations, 0))
		})
	}
}

func TestLimit_Exceeded_Duration(t *testing.T) {
	tests := []struct {
		name    string
		limit   Limit
		elapsed time.Duration
		want    bool
	}{
		{"below limit", DurationLimit(time.Second), 999 * time.Millisecond, false},
		{"at limit", DurationLimit(time.Second), time.Second, true},
		{"above limit", DurationLimit(time.Second), 2 * time.Second, true},
		{"iterations are irrelevant", DurationLimit(time.Minute), time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.Exceeded(1000, tt.elapsed))
		})
	}
}

func TestLimit_String(t *testing.T) {
	tests := []struct {
		name  string
		limit Limit
		want  string
	}{
		{"count", CountLimit(5), "5 iterations"},
		{"whole seconds", DurationLimit(10 * time.Second), "10 seconds"},
		{"fractional seconds", DurationLimit(1500 * time.Millisecond), "1.5 seconds"},
		{"sub-second", DurationLimit(500 * time.Millisecond), "0.5 seconds"},
		{"minutes rendered as seconds", DurationLimit(2 * time.Minute), "120 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.String())
		})
	}
}
