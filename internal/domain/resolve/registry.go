// Package resolve computes a session's attribute chain and preview
// dispatcher chain from global configuration, and hosts the static
// capability registries those chains are resolved against.
package resolve

import (
	"fmt"
	"sync"

	"github.com/pathlane/dirview/internal/shared/types"
)

// Built-in attribute names present in every session's chain.
const (
	AttrHighlightLine = "highlight-line"
	AttrZoom          = "zoom"
	AttrSymlinkTarget = "symlink-target"
)

// Reserved dispatcher names pinning the ends of every preview chain.
const (
	DispatcherDisable = "disable"
	DispatcherDefault = "default"
)

// BuiltinAttributes returns the fixed attribute set in chain order.
func BuiltinAttributes() []string {
	return []string{AttrHighlightLine, AttrZoom, AttrSymlinkTarget}
}

// Registry is the static capability table populated at startup. Names
// are resolved at refresh time rather than generated per attribute at
// compile time; unknown names are a configuration error reported at
// load, not a runtime dispatch failure.
type Registry struct {
	mu          sync.RWMutex
	attributes  map[string]types.AttributePair
	dispatchers map[string]types.Dispatcher
}

// NewRegistry creates an empty capability registry.
func NewRegistry() *Registry {
	return &Registry{
		attributes:  make(map[string]types.AttributePair),
		dispatchers: make(map[string]types.Dispatcher),
	}
}

// RegisterAttribute adds a named setup/per-row capability pair.
// Registering the same name twice is a startup defect.
func (r *Registry) RegisterAttribute(pair types.AttributePair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pair.Name == "" {
		return fmt.Errorf("attribute registration requires a name")
	}
	if _, exists := r.attributes[pair.Name]; exists {
		return fmt.Errorf("attribute %q registered twice", pair.Name)
	}
	r.attributes[pair.Name] = pair
	return nil
}

// RegisterDispatcher adds a named preview dispatcher.
func (r *Registry) RegisterDispatcher(d types.Dispatcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Name == "" {
		return fmt.Errorf("dispatcher registration requires a name")
	}
	if _, exists := r.dispatchers[d.Name]; exists {
		return fmt.Errorf("dispatcher %q registered twice", d.Name)
	}
	r.dispatchers[d.Name] = d
	return nil
}

// Attribute looks up a capability pair by name.
func (r *Registry) Attribute(name string) (types.AttributePair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pair, ok := r.attributes[name]
	return pair, ok
}

// Dispatcher looks up a preview dispatcher by name.
func (r *Registry) Dispatcher(name string) (types.Dispatcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dispatchers[name]
	return d, ok
}

// KnownAttributes returns the registered attribute names as a set, for
// configuration validation.
func (r *Registry) KnownAttributes() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(r.attributes))
	for name := range r.attributes {
		out[name] = true
	}
	return out
}

// KnownDispatchers returns the registered dispatcher names as a set.
func (r *Registry) KnownDispatchers() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(r.dispatchers))
	for name := range r.dispatchers {
		out[name] = true
	}
	return out
}
