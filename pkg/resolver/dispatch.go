package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/source"
)

// loadSource produces data for one interpolated source.
func (r *Resolver) loadSource(ctx context.Context, src source.Source, params source.Params) (out any, err error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidSourceKind)
	}

	kind := src.Kind()
	start := time.Now()
	defer func() {
		r.metrics.observe(kind, start, err)
	}()

	switch s := src.(type) {
	case source.Path:
		return r.loadPath(ctx, string(s))
	case source.Func:
		if s == nil {
			return nil, fmt.Errorf("%w: nil func", ErrInvalidSourceKind)
		}
		return s(ctx, params)
	case source.List:
		return r.aggregate(ctx, s, params)
	case source.Map:
		keys := sortedKeys(s)
		nested := make([]source.Source, len(keys))
		for idx, key := range keys {
			nested[idx] = s[key]
		}
		values, err := r.aggregate(ctx, nested, params)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]any, len(keys))
		for idx, key := range keys {
			merged[key] = values[idx]
		}
		return merged, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSourceKind, src)
	}
}

func (r *Resolver) loadPath(ctx context.Context, name string) (any, error) {
	full := r.fullPath(name)
	loader, err := r.loaders.Lookup(full)
	if err != nil {
		return nil, err
	}

	loggerFrom(ctx, r.logger).Debug("loading file", "path", full, "ext", loaders.Ext(full))
	data, err := loader.Load(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("resolver: load %q: %w", full, err)
	}
	return data, nil
}

func (r *Resolver) fullPath(name string) string {
	if r.basePath == "" || loaders.IsURL(name) || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.basePath, name)
}
