package backend

import "sync"

// Registry manages backend instances, keyed by provider.
type Registry struct {
	backends map[Provider]Backend
	mu       sync.RWMutex
}

// NewRegistry creates a new backend registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[Provider]Backend),
	}
}

// Register adds a backend to the registry.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends[b.Provider()] = b
}

// Get retrieves a backend by provider.
func (r *Registry) Get(provider Provider) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[provider]
	return b, ok
}

// Has reports whether a backend is registered for the provider.
func (r *Registry) Has(provider Provider) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.backends[provider]
	return ok
}

// Close closes all registered backends.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.backends {
		if err := b.Close(); err != nil {
			return err
		}
	}

	return nil
}
