package summarize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrModeNotRegistered = errors.New("no summarizer registered for mode")

// Factory acquires a capability, e.g. loads a model or dials a backend.
type Factory func(ctx context.Context) (Capability, error)

// Provider lazily acquires a capability on first use and hands out the same
// handle for the rest of the process. A failed acquisition is not cached.
// The provider never releases the handle; its owner does.
type Provider struct {
	mu      sync.Mutex
	factory Factory
	handle  Capability
}

func NewProvider(f Factory) *Provider {
	return &Provider{factory: f}
}

// Static wraps an already acquired capability.
func Static(c Capability) *Provider {
	return &Provider{handle: c}
}

// Get returns the memoized capability, creating it if needed.
func (p *Provider) Get(ctx context.Context) (Capability, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != nil {
		return p.handle, nil
	}
	if p.factory == nil {
		return nil, errors.New("summarizer provider has no factory")
	}

	h, err := p.factory(ctx)
	if err != nil {
		return nil, err
	}
	p.handle = h
	return h, nil
}

// Warm reports whether the capability has already been acquired.
func (p *Provider) Warm() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle != nil
}

// Registry maps each Mode to the provider of its capability.
type Registry struct {
	mu        sync.RWMutex
	providers map[Mode]*Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[Mode]*Provider)}
}

func (r *Registry) Register(m Mode, p *Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[m] = p
}

// Resolve returns the capability for m, acquiring it on first use.
func (r *Registry) Resolve(ctx context.Context, m Mode) (Capability, error) {
	r.mu.RLock()
	p, ok := r.providers[m]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModeNotRegistered, m)
	}
	return p.Get(ctx)
}

// Modes lists the registered modes in lexical order.
func (r *Registry) Modes() []Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Mode, 0, len(r.providers))
	for m := range r.providers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Ready reports, per registered mode, whether its capability is acquired.
func (r *Registry) Ready() map[Mode]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[Mode]bool, len(r.providers))
	for m, p := range r.providers {
		out[m] = p.Warm()
	}
	return out
}
