package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/duckdocs/screenshot-analyzer/pkg/client"
)

// Handle is a resolved model: the identifier the runtime accepted plus the
// client that serves it. The weights themselves live inside the runtime; the
// handle is only a transient reference, there is nothing to unload.
type Handle struct {
	Model  string
	Client client.VisionClient
}

// Loader resolves a model identifier into a handle. The production loader asks
// the runtime whether the model is present; tests inject their own.
type Loader func(ctx context.Context, model string) (*Handle, error)

// Registry caches resolved model handles for the lifetime of the process, so
// repeated analyses within one process resolve the model once. It stands in
// for the runtime's implicit model cache and makes it injectable.
type Registry struct {
	mu      sync.Mutex
	load    Loader
	handles map[string]*Handle
}

// New creates a registry around the given loader.
func New(load Loader) *Registry {
	return &Registry{
		load:    load,
		handles: make(map[string]*Handle),
	}
}

// NewWithClient creates a registry whose loader verifies model presence
// against the given vision client.
func NewWithClient(c client.VisionClient) *Registry {
	return New(func(ctx context.Context, model string) (*Handle, error) {
		ok, err := c.HasModel(ctx, model)
		if err != nil {
			return nil, fmt.Errorf("failed to query models: %v", err)
		}
		if !ok {
			return nil, fmt.Errorf("model %q not available on server", model)
		}
		return &Handle{Model: model, Client: c}, nil
	})
}

// Resolve returns the cached handle for a model, loading it on first use.
// Failed loads are not cached; the next call retries.
func (r *Registry) Resolve(ctx context.Context, model string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[model]; ok {
		return h, nil
	}

	h, err := r.load(ctx, model)
	if err != nil {
		return nil, err
	}
	r.handles[model] = h
	return h, nil
}
