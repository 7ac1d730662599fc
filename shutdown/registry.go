// Package shutdown runs the CLI's cleanup steps in a fixed order, whether
// the build finishes or is interrupted.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Func is a cleanup step. It receives a context that may carry a deadline.
type Func func(ctx context.Context) error

// Priorities used by the CLI. Lower values run first.
const (
	PriorityResources = 30 // close the ledger
	PriorityTempFiles = 40 // remove leftover temporaries
	PriorityLogger    = 90 // flush logs last so earlier steps can log
)

type entry struct {
	name     string
	fn       Func
	priority int
}

// Registry is an ordered set of cleanup steps.
//
// Usage:
//
//	registry := shutdown.NewRegistry()
//	registry.Register("ledger", shutdown.PriorityResources, func(ctx context.Context) error {
//	    return ledger.Close()
//	})
//	defer registry.Shutdown(context.Background())
type Registry struct {
	mu      sync.Mutex
	entries []entry
	closed  bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn. Steps with equal priority run in registration order.
// Registration after Shutdown is a no-op.
func (r *Registry) Register(name string, priority int, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.entries = append(r.entries, entry{name: name, fn: fn, priority: priority})
}

// Shutdown runs every step once, in priority order, even when some fail.
// The failures are joined into the returned error. Later calls return nil.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	sorted := r.sortedLocked()
	r.mu.Unlock()

	var errs []error
	for _, e := range sorted {
		if err := e.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

// Names returns the step names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := r.sortedLocked()
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.name
	}
	return names
}

func (r *Registry) sortedLocked() []entry {
	sorted := make([]entry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority < sorted[j].priority
	})
	return sorted
}
