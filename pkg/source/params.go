package source

import (
	"fmt"
	"strconv"
)

// Params carries the per-request scalar values used for placeholder
// substitution and handed to Func sources.
type Params map[string]any

// Lookup returns the textual form of the named parameter.
func (p Params) Lookup(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[name]
	if !ok {
		return "", false
	}
	return FormatScalar(value), true
}

// Clone returns a shallow copy; a nil receiver yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Merge returns a copy of p overlaid with the entries of others, later maps
// winning.
func (p Params) Merge(others ...Params) Params {
	out := p.Clone()
	for _, other := range others {
		for key, value := range other {
			out[key] = value
		}
	}
	return out
}

// FormatScalar renders a parameter value the way it is spliced into a
// template.
func FormatScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
