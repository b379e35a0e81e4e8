package middleware

import (
	"context"
	"sync"
)

// Data is the request scoped container decorated handlers merge into.
type Data struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewData returns an empty container.
func NewData() *Data {
	return &Data{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (d *Data) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.values[key]
	return value, ok
}

// Set stores value under key.
func (d *Data) Set(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[key] = value
}

// Merge copies every entry of values into the container, overwriting
// existing keys.
func (d *Data) Merge(values map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, value := range values {
		d.values[key] = value
	}
}

// Map returns a copy of the container.
func (d *Data) Map() map[string]any {
	if d == nil {
		return map[string]any{}
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]any, len(d.values))
	for key, value := range d.values {
		out[key] = value
	}
	return out
}

type dataKey struct{}

// WithData attaches data to ctx.
func WithData(ctx context.Context, data *Data) context.Context {
	return context.WithValue(ctx, dataKey{}, data)
}

// DataFromContext returns the container attached to ctx, or nil.
func DataFromContext(ctx context.Context) *Data {
	data, _ := ctx.Value(dataKey{}).(*Data)
	return data
}
