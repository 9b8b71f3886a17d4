// Package registry tracks the set of subjects that have already been
// recorded so a subject can only be accepted once.
package registry

import "sync"

// Registry maintains the set of used subject ids.
type Registry struct {
	mu   sync.RWMutex
	used map[string]struct{}
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		used: make(map[string]struct{}),
	}
}

// Register adds the subject to the registry. It returns false if the subject
// was already registered.
func (r *Registry) Register(subjectID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.used[subjectID]; exists {
		return false
	}

	r.used[subjectID] = struct{}{}
	return true
}

// Contains reports if the subject has been registered.
func (r *Registry) Contains(subjectID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.used[subjectID]
	return exists
}

// Len returns the number of registered subjects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.used)
}
