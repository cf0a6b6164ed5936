package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_SetAndGet(t *testing.T) {
	s := New(nil)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("count", 3)
	v, ok := s.Get("count")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	// Overwrite
	s.Set("count", 4)
	v, _ = s.Get("count")
	assert.Equal(t, 4, v)
}

func TestNew_CopiesInitialMap(t *testing.T) {
	initial := map[string]any{"a": 1}
	s := New(initial)

	initial["a"] = 99
	v, _ := s.Get("a")
	assert.Equal(t, 1, v, "scope should not alias the initial map")
}

func TestScope_Snapshot(t *testing.T) {
	s := New(map[string]any{"x": "one"})

	snap := s.Snapshot()
	assert.Equal(t, map[string]any{"x": "one"}, snap)

	// Mutating the snapshot does not affect the scope
	snap["x"] = "two"
	v, _ := s.Get("x")
	assert.Equal(t, "one", v)
}

func TestScope_Interpolate(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]any
		template string
		want     string
	}{
		{
			name:     "single variable",
			vars:     map[string]any{"user": "alice"},
			template: "hello ${user}",
			want:     "hello alice",
		},
		{
			name:     "multiple variables",
			vars:     map[string]any{"a": 1, "b": 2},
			template: "${a} + ${b}",
			want:     "1 + 2",
		},
		{
			name:     "unmatched pattern left as-is",
			vars:     map[string]any{},
			template: "value is ${missing}",
			want:     "value is ${missing}",
		},
		{
			name:     "non-string value rendered with Sprint",
			vars:     map[string]any{"n": 1.5},
			template: "limit ${n}",
			want:     "limit 1.5",
		},
		{
			name:     "no patterns",
			vars:     map[string]any{"a": 1},
			template: "plain text",
			want:     "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.vars)
			assert.Equal(t, tt.want, s.Interpolate(tt.template))
		})
	}
}

func TestScope_Interpolate_ReadsCurrentValues(t *testing.T) {
	s := New(map[string]any{"i": 0})
	s.Set("i", 7)

	assert.Equal(t, "iteration 7", s.Interpolate("iteration ${i}"))
}
