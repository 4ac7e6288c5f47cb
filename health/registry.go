package health

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds check definitions in registration order.
//
// A registry is built once at process start. There is no removal; the order
// of registration is the canonical order of every report produced from it.
type Registry struct {
	mu    sync.RWMutex
	specs []CheckSpec
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make([]CheckSpec, 0),
		index: make(map[string]int),
	}
}

// Register adds a check definition.
// Returns a *DuplicateCheckError if the id is taken, leaving the registry unchanged.
func (r *Registry) Register(spec CheckSpec) error {
	spec.ID = strings.TrimSpace(spec.ID)
	if err := validateSpec(spec); err != nil {
		return err
	}
	if spec.Timeout == 0 {
		spec.Timeout = DefaultTimeout
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[spec.ID]; exists {
		return &DuplicateCheckError{ID: spec.ID}
	}
	r.index[spec.ID] = len(r.specs)
	r.specs = append(r.specs, spec)
	return nil
}

// All returns the registered specs in registration order.
func (r *Registry) All() []CheckSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]CheckSpec, len(r.specs))
	copy(specs, r.specs)
	return specs
}

// Lookup returns the spec registered under id.
func (r *Registry) Lookup(id string) (CheckSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return CheckSpec{}, false
	}
	return r.specs[i], true
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}

// Subset returns a new registry holding only the given ids, kept in the
// original registration order.
func (r *Registry) Subset(ids ...string) (*Registry, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrCheckNotFound, id)
		}
		want[id] = true
	}

	sub := NewRegistry()
	for _, spec := range r.All() {
		if !want[spec.ID] {
			continue
		}
		if err := sub.Register(spec); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func validateSpec(spec CheckSpec) error {
	switch {
	case spec.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidCheck)
	case spec.Probe == nil:
		return fmt.Errorf("%w: %q has no probe", ErrInvalidCheck, spec.ID)
	case !spec.Severity.Valid():
		return fmt.Errorf("%w: %q has unknown severity %d", ErrInvalidCheck, spec.ID, int(spec.Severity))
	case spec.Timeout < 0:
		return fmt.Errorf("%w: %q has negative timeout %s", ErrInvalidCheck, spec.ID, spec.Timeout)
	}
	return nil
}
