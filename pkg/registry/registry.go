package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
)

// ErrLauncherNotFound is returned when no launcher is registered for a type.
var ErrLauncherNotFound = errors.New("launcher not found")

// Registry maps aggregation type names to the launchers that execute them.
type Registry struct {
	mu        sync.RWMutex
	launchers map[string]hierarchy.Launcher
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		launchers: make(map[string]hierarchy.Launcher),
	}
}

// Register adds a launcher for typeName.
// If one is already registered, it is overwritten.
func (r *Registry) Register(typeName string, l hierarchy.Launcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launchers[typeName] = l
}

// Lookup returns the launcher registered for typeName.
func (r *Registry) Lookup(typeName string) (hierarchy.Launcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.launchers[typeName]
	return l, ok
}

// Launch finds the launcher for cfg's type and hands cfg to it.
func (r *Registry) Launch(ctx context.Context, cfg hierarchy.Config, source, searchContext any, parent hierarchy.Aggregator) (hierarchy.Aggregator, error) {
	l, ok := r.Lookup(cfg.Type())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLauncherNotFound, cfg.Type())
	}
	return cfg.Launch(ctx, l, source, searchContext, parent)
}
