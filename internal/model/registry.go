package model

import (
	"context"
	"sync"
	"time"
)

// LoaderFunc produces the opaque loaded-model reference for a model id.
// It must be idempotent and free of side effects beyond producing the model.
type LoaderFunc func(ctx context.Context) (any, error)

// Registry caches loaded model handles, at most one per model id for the
// registry's lifetime. It is constructed at process start, injected where
// needed, and torn down explicitly; there is no ambient global instance.
//
// Concurrent GetOrLoad calls for the same id serialize: one loader runs,
// the rest wait and receive its handle. Different ids load independently.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ready  chan struct{}
	handle *Handle
	err    error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// GetOrLoad returns the cached handle for id, running loader on first demand.
// Repeated calls with the same id return the identical handle without paying
// the load cost again. A failed load is surfaced as a *LoadError and leaves
// nothing cached, so the next call retries.
func (r *Registry) GetOrLoad(ctx context.Context, id string, loader LoaderFunc) (*Handle, error) {
	r.mu.Lock()
	if e, ok := r.entries[id]; ok {
		r.mu.Unlock()

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if e.err != nil {
			return nil, e.err
		}
		return e.handle, nil
	}

	e := &entry{ready: make(chan struct{})}
	r.entries[id] = e
	r.mu.Unlock()

	ref, err := loader(ctx)
	if err != nil {
		e.err = &LoadError{ModelID: id, Err: err}

		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()

		close(e.ready)
		return nil, e.err
	}

	e.handle = &Handle{ID: id, Ref: ref, LoadedAt: time.Now()}
	close(e.ready)
	return e.handle, nil
}

// Get returns the handle for id if it is loaded. An in-flight load does not
// count: the handle is only visible once its ready channel has closed, which
// is also what orders the loader's write before this read.
func (r *Registry) Get(id string) (*Handle, bool) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	select {
	case <-e.ready:
	default:
		return nil, false
	}

	if e.err != nil || e.handle == nil {
		return nil, false
	}
	return e.handle, true
}

// Len returns the number of loaded or in-flight entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Evict drops the handle for id. The next GetOrLoad reloads it.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
}

// Close tears the registry down, dropping every cached handle.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*entry)
}
