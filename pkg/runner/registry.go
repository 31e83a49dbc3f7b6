package runner

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps method names to test functions. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tests map[string]TestFunc
}

// NewRegistry creates a new, empty Registry.
func NewRegistry() *Registry {
	return &Registry{tests: make(map[string]TestFunc)}
}

// Default is the package-level registry, typically filled from init
// functions of test packages.
var Default = NewRegistry()

// Register adds fn for method. Returns an error if method is
// already registered.
func (r *Registry) Register(method string, fn TestFunc) error {
	if method == "" {
		return fmt.Errorf("method name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("test function for %s is nil", method)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tests[method]; exists {
		return fmt.Errorf("test already registered: %s", method)
	}
	r.tests[method] = fn
	return nil
}

// Get retrieves the test function of method.
func (r *Registry) Get(method string) (TestFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.tests[method]
	return fn, ok
}

// Methods returns all registered method names sorted.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tests))
	for name := range r.tests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of registered tests.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tests)
}

// Clear removes all registered tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests = make(map[string]TestFunc)
}
