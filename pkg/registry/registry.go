// Package registry stores named data sources. It owns no data, only the
// indirection from an id to a source.Source definition.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-festoon/pkg/source"
)

var (
	// ErrInvalidID reports an empty or blank source id.
	ErrInvalidID = errors.New("registry: invalid source id")
	// ErrInvalidSources reports a nil source set passed to Replace.
	ErrInvalidSources = errors.New("registry: sources must be a non-nil map")
)

// Registry maps source ids to definitions. Every access is guarded, but no
// snapshot is taken across calls: a resolution that performs several lookups
// observes mutations made between them.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]source.Source
}

// New creates an empty registry instance.
func New() *Registry {
	return &Registry{
		sources: make(map[string]source.Source),
	}
}

// Set upserts a single source; the last write for an id wins.
func (r *Registry) Set(id string, src source.Source) error {
	if err := validate(id, src); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[id] = src
	return nil
}

// Replace swaps the whole registry for the supplied set. Nothing changes when
// any entry is invalid.
func (r *Registry) Replace(sources map[string]source.Source) error {
	if sources == nil {
		return ErrInvalidSources
	}
	next := make(map[string]source.Source, len(sources))
	for id, src := range sources {
		if err := validate(id, src); err != nil {
			return err
		}
		next[id] = src
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = next
	return nil
}

// Add upserts every entry of the supplied map.
func (r *Registry) Add(sources map[string]source.Source) error {
	for id, src := range sources {
		if err := validate(id, src); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, src := range sources {
		r.sources[id] = src
	}
	return nil
}

// AddEntries upserts entries in order, so a later duplicate id wins.
func (r *Registry) AddEntries(entries ...source.Entry) error {
	for _, entry := range entries {
		if err := validate(entry.ID, entry.Source); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		r.sources[entry.ID] = entry.Source
	}
	return nil
}

// Get retrieves a source by id.
func (r *Registry) Get(id string) (source.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[id]
	return src, ok
}

// Has reports whether an id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// IDs returns a sorted list of registered ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

func validate(id string, src source.Source) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if src == nil {
		return fmt.Errorf("registry: source %q is nil", id)
	}
	return nil
}
