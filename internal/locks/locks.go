// Package locks provides named run locks. The batch processor holds one per
// action type so overlapping ticks of the same action never run concurrently.
package locks

import "sync"

// Locker hands out mutually exclusive named locks without blocking.
type Locker interface {
	// TryAcquire returns a release func and true when the name was free.
	// The caller must invoke release exactly once when done.
	TryAcquire(name string) (func(), bool)
}

// Registry is an in-process Locker.
type Registry struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewRegistry returns an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{held: make(map[string]struct{})}
}

// TryAcquire implements Locker.
func (r *Registry) TryAcquire(name string) (func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.held[name]; taken {
		return nil, false
	}
	r.held[name] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.held, name)
			r.mu.Unlock()
		})
	}
	return release, true
}
