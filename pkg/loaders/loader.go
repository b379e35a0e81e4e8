package loaders

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
)

// DefaultKey addresses the fallback loader when used as an extension.
const DefaultKey = "default"

// ErrNoLoader reports a file whose extension has no loader and no fallback.
var ErrNoLoader = errors.New("loaders: no loader found")

// NoLoaderError names the file that could not be matched.
type NoLoaderError struct {
	Name      string
	Extension string
}

func (e *NoLoaderError) Error() string {
	return fmt.Sprintf("loaders: no loader found for %q (extension %q)", e.Name, e.Extension)
}

func (e *NoLoaderError) Is(target error) bool {
	return target == ErrNoLoader
}

// Loader produces data for a file name. Implementations must be safe for
// concurrent use; retries, if any, belong here rather than in the resolver.
type Loader interface {
	Load(ctx context.Context, name string) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, name string) (any, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, name string) (any, error) {
	return f(ctx, name)
}

// Table maps file extensions to loaders with an optional fallback.
type Table struct {
	mu       sync.RWMutex
	loaders  map[string]Loader
	fallback Loader
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{loaders: make(map[string]Loader)}
}

// Set registers loader for ext. The extension is matched case-insensitively
// and may carry a leading dot; "default" sets the fallback loader.
func (t *Table) Set(ext string, loader Loader) error {
	key := normalizeExt(ext)
	if key == "" {
		return fmt.Errorf("loaders: extension is required")
	}
	if loader == nil {
		return fmt.Errorf("loaders: loader for %q is nil", key)
	}
	if key == DefaultKey {
		t.SetDefault(loader)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaders[key] = loader
	return nil
}

// SetDefault sets the loader used for unrecognised extensions. Pass nil to
// remove it.
func (t *Table) SetDefault(loader Loader) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = loader
}

// Lookup returns the loader responsible for name.
func (t *Table) Lookup(name string) (Loader, error) {
	ext := Ext(name)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if loader, ok := t.loaders[ext]; ok && ext != "" {
		return loader, nil
	}
	if t.fallback != nil {
		return t.fallback, nil
	}
	return nil, &NoLoaderError{Name: name, Extension: ext}
}

// Has reports whether ext has a dedicated loader.
func (t *Table) Has(ext string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.loaders[normalizeExt(ext)]
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (t *Table) Extensions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.loaders))
	for ext := range t.loaders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clone := &Table{
		loaders:  make(map[string]Loader, len(t.loaders)),
		fallback: t.fallback,
	}
	for ext, loader := range t.loaders {
		clone.loaders[ext] = loader
	}
	return clone
}

// Ext returns the lower-cased extension used for loader lookup. URL query
// strings and fragments are ignored, as is a trailing compression suffix, so
// "data/foo.csv.gz" yields "csv".
func Ext(name string) string {
	clean := name
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Host != "" {
		clean = u.Path
	}
	base := strings.ToLower(path.Base(strings.ReplaceAll(clean, "\\", "/")))
	if trimmed, ok := TrimCompression(base); ok {
		base = trimmed
	}
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx+1:]
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
