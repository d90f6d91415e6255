package breaker

import "sync"

// Registry manages one breaker per resource key, created lazily from a
// shared config. The registry itself is safe for concurrent use; the
// breakers it hands out are not (see the package comment).
type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker
	cfg      Config
	opts     []Option
}

// NewRegistry creates a Registry whose breakers are built from cfg and
// opts. Per-breaker options such as [WithStore] should instead be passed to
// [Registry.Get] so each resource gets its own key.
func NewRegistry(cfg Config, opts ...Option) *Registry {
	return &Registry{
		breakers: make(map[string]*Breaker),
		cfg:      cfg,
		opts:     opts,
	}
}

// Get returns the breaker registered under resourceKey, creating it with
// the registry config (plus any extra options) if it does not exist yet.
func (r *Registry) Get(resourceKey string, extra ...Option) (*Breaker, error) {
	r.mu.RLock()
	b, ok := r.breakers[resourceKey]
	r.mu.RUnlock()
	if ok {
		return b, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if b, ok = r.breakers[resourceKey]; ok {
		return b, nil
	}

	opts := append(append([]Option{}, r.opts...), extra...)
	b, err := New(r.cfg, opts...)
	if err != nil {
		return nil, err
	}
	r.breakers[resourceKey] = b
	return b, nil
}

// All returns a snapshot of the registered breakers keyed by resource.
func (r *Registry) All() map[string]*Breaker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Breaker, len(r.breakers))
	for k, v := range r.breakers {
		out[k] = v
	}
	return out
}
