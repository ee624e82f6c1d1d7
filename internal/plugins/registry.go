// Package plugins resolves plugin ids to implementations and applies them
// to projects.
package plugins

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/buildlogic/internal/core/domain"
)

// Factory creates a fresh plugin instance.
type Factory func() domain.Plugin

// Registry maps implementation names to factories. Artifacts linked into the
// binary register their implementations from init.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default is the registry populated by linked artifacts.
var Default = NewRegistry()

// Register adds an implementation to the Default registry.
func Register(implementation string, f Factory) {
	Default.Register(implementation, f)
}

// Register adds an implementation. Registering a name twice panics.
func (r *Registry) Register(implementation string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[implementation]; exists {
		panic(fmt.Sprintf("plugins: implementation %q registered twice", implementation))
	}
	r.factories[implementation] = f
}

// Lookup returns the factory registered for implementation.
func (r *Registry) Lookup(implementation string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[implementation]
	return f, ok
}

// Implementations returns the registered names in lexical order.
func (r *Registry) Implementations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.factories))
}
