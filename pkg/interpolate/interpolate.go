package interpolate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-festoon/pkg/source"
)

const (
	// ReferenceSigil prefixes a template that points at another source id.
	ReferenceSigil = "#"

	// DefaultMaxDepth bounds how many references a single value may follow.
	DefaultMaxDepth = 32
)

// DefaultPattern recognises ":identifier" placeholders.
var DefaultPattern = regexp.MustCompile(`:(\w+)`)

// Lookup resolves reference targets. *registry.Registry satisfies it.
type Lookup interface {
	Get(id string) (source.Source, bool)
}

// Option customises an Interpolator.
type Option func(*Interpolator)

// WithPattern overrides the placeholder pattern. The first capture group names
// the parameter; a pattern without groups uses the whole match.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(in *Interpolator) {
		if pattern != nil {
			in.pattern = pattern
		}
	}
}

// WithMaxDepth overrides the reference depth bound. Values below one keep the
// default.
func WithMaxDepth(depth int) Option {
	return func(in *Interpolator) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// Interpolator is immutable after construction and safe for concurrent use.
type Interpolator struct {
	pattern  *regexp.Regexp
	maxDepth int
}

// New constructs an Interpolator with the default pattern and depth bound.
func New(options ...Option) *Interpolator {
	in := &Interpolator{
		pattern:  DefaultPattern,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(in)
	}
	return in
}

// Pattern returns the placeholder pattern in use.
func (in *Interpolator) Pattern() *regexp.Regexp {
	return in.pattern
}

// Interpolate resolves src against params, preserving List order and Map
// keys. Reference targets are resolved without params.
func (in *Interpolator) Interpolate(src source.Source, params source.Params, lookup Lookup) (source.Source, error) {
	return in.interpolate(src, params, lookup, 0)
}

func (in *Interpolator) interpolate(src source.Source, params source.Params, lookup Lookup, depth int) (source.Source, error) {
	switch s := src.(type) {
	case source.Func:
		return s, nil
	case source.List:
		out := make(source.List, len(s))
		for idx, item := range s {
			resolved, err := in.interpolate(item, params, lookup, depth)
			if err != nil {
				return nil, err
			}
			out[idx] = resolved
		}
		return out, nil
	case source.Map:
		out := make(source.Map, len(s))
		for key, item := range s {
			resolved, err := in.interpolate(item, params, lookup, depth)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case source.Path:
		value, err := in.Expand(string(s), params)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(value, ReferenceSigil) {
			return source.Path(value), nil
		}
		return in.follow(value, lookup, depth)
	default:
		return src, nil
	}
}

func (in *Interpolator) follow(reference string, lookup Lookup, depth int) (source.Source, error) {
	id := strings.TrimPrefix(reference, ReferenceSigil)
	if lookup == nil {
		return nil, &ReferenceError{ID: id, Template: reference}
	}
	target, ok := lookup.Get(id)
	if !ok {
		return nil, &ReferenceError{ID: id, Template: reference}
	}
	if depth+1 > in.maxDepth {
		return nil, fmt.Errorf("%w: %q after %d references", ErrReferenceCycle, reference, in.maxDepth)
	}
	return in.interpolate(target, nil, lookup, depth+1)
}

// Expand substitutes every placeholder in template. It fails on the first
// placeholder that has no entry in params.
func (in *Interpolator) Expand(template string, params source.Params) (string, error) {
	matches := in.pattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, m := range matches {
		name := template[m[0]:m[1]]
		if len(m) >= 4 && m[2] >= 0 {
			name = template[m[2]:m[3]]
		}
		value, ok := params.Lookup(name)
		if !ok {
			return "", &MissingParameterError{Name: name, Template: template}
		}
		b.WriteString(template[last:m[0]])
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(template[last:])
	return b.String(), nil
}

// Placeholders lists the parameter names referenced by template in order of
// appearance, without duplicates.
func (in *Interpolator) Placeholders(template string) []string {
	matches := in.pattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		name := m[0]
		if len(m) > 1 {
			name = m[1]
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
