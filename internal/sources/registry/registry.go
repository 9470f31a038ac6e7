// Package registry holds the normalizer factories source packages register
// from their init functions. It is separate from the source packages to avoid
// import cycles.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Factory builds a normalizer with the given options applied.
type Factory func(opts ...sources.Option) (sources.Normalizer, error)

var (
	mu        sync.RWMutex
	factories = make(map[sources.ID]Factory)
)

// Register registers the factory for a source ID.
// This is called by source packages in their init() functions.
func Register(id sources.ID, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[id] = factory
}

// Get creates a NEW normalizer for the given source.
func Get(id sources.ID, opts ...sources.Option) (sources.Normalizer, error) {
	mu.RLock()
	factory, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("no normalizer registered for source: %s", id),
		}
	}
	return factory(opts...)
}

// Has checks if a source ID has a registered normalizer.
func Has(id sources.ID) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}

// List returns the registered source IDs in sorted order.
func List() []sources.ID {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]sources.ID, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
