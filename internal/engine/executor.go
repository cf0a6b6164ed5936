// Package engine dispatches script steps to their executors.
//
// The StepExecutor interface and ExecutorRegistry map step types to
// implementations. The Engine walks a script's steps, resolves each through
// the registry, and doubles as the body runner consumed by the WHILE
// directive, so nested loops re-enter the same dispatch path.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/stepline/stepline/internal/domain"
	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/scope"
)

// StepExecutor defines the interface for executing a single step type.
//
// All Execute implementations must:
//   - Check ctx at the start and during long operations
//   - Read their settings from the step, never from shared state
//   - Return errors unchanged in meaning; the engine does not retry
type StepExecutor interface {
	// Execute runs the step against the current variable scope.
	Execute(ctx context.Context, step *domain.Step, sc *scope.Scope) error

	// Type returns the StepType this executor handles.
	Type() domain.StepType
}

// ExecutorRegistry maps step types to their executors.
// It is safe for concurrent read access after initialization.
// Use NewExecutorRegistry() to create and Register() to add executors.
type ExecutorRegistry struct {
	mu        sync.RWMutex
	executors map[domain.StepType]StepExecutor
}

// NewExecutorRegistry creates a new empty executor registry.
func NewExecutorRegistry() *ExecutorRegistry {
	return &ExecutorRegistry{
		executors: make(map[domain.StepType]StepExecutor),
	}
}

// Register adds an executor to the registry.
// If an executor for the same type already exists, it will be replaced.
func (r *ExecutorRegistry) Register(e StepExecutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[e.Type()] = e
}

// Get retrieves the executor for a step type.
// Returns ErrExecutorNotFound if no executor is registered for the type.
func (r *ExecutorRegistry) Get(stepType domain.StepType) (StepExecutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.executors[stepType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", steplineerrors.ErrExecutorNotFound, stepType)
	}
	return e, nil
}

// Has checks if an executor is registered for the given step type.
func (r *ExecutorRegistry) Has(stepType domain.StepType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.executors[stepType]
	return ok
}

// Types returns all registered step types.
func (r *ExecutorRegistry) Types() []domain.StepType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.StepType, 0, len(r.executors))
	for t := range r.executors {
		types = append(types, t)
	}
	return types
}
