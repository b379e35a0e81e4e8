package resolver

import "encoding/json"

// Result holds resolved data keyed by alias. Positional results come from IDs
// requests and keep the requested order; keyed results are ordered by key.
type Result struct {
	keys       []string
	values     map[string]any
	positional bool
}

func newResult(keys []string, values []any, positional bool) Result {
	out := Result{
		keys:       append([]string(nil), keys...),
		values:     make(map[string]any, len(keys)),
		positional: positional,
	}
	for idx, key := range keys {
		out.values[key] = values[idx]
	}
	return out
}

// Get returns the data stored under key.
func (r Result) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Keys returns the result keys in order.
func (r Result) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Values returns the data in key order.
func (r Result) Values() []any {
	out := make([]any, len(r.keys))
	for idx, key := range r.keys {
		out[idx] = r.values[key]
	}
	return out
}

// Map returns a copy of the keyed data.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}

// Positional reports whether the result came from an ordered list of ids.
func (r Result) Positional() bool {
	return r.positional
}

// Len returns the number of entries.
func (r Result) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the result as an object keyed by alias.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
