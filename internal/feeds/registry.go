// Package feeds maps source fetcher names to their implementations so
// new feed protocols can be plugged in without touching the poller.
package feeds

import (
	"context"
	"fmt"

	"painradar/internal/domain"
)

// Fetcher captures a single feed-protocol implementation (RSS, etc.).
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, src domain.Source) ([]domain.Post, error)
}

// Registry keeps a mapping from fetcher names to their implementations.
type Registry struct {
	fetchers map[string]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]Fetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(fetcher Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[string]Fetcher{}
	}
	r.fetchers[fetcher.Name()] = fetcher
}

// Resolve returns a fetcher by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Fetcher, error) {
	if fetcher, ok := r.fetchers[name]; ok {
		return fetcher, nil
	}
	return nil, fmt.Errorf("fetcher %s is not registered", name)
}
