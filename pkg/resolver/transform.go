package resolver

import (
	"context"
	"fmt"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/source"
)

// TransformFunc derives new data from a loaded source. Params are the request
// params of the load that invoked the transform.
type TransformFunc func(data any, params source.Params) (any, error)

// Transform returns a Func source that loads id with the caller's params and
// passes the data through fn.
func (r *Resolver) Transform(id string, fn TransformFunc) source.Func {
	return func(ctx context.Context, params source.Params) (any, error) {
		res, err := r.Load(ctx, ID(id), params)
		if err != nil {
			return nil, err
		}
		data, ok := res.Get(id)
		if !ok {
			loggerFrom(ctx, r.logger).Warn("data lacks key", "id", id, "keys", res.Keys())
		}
		return fn(data, params)
	}
}

// Filter returns a Func source keeping the list items of id for which keep
// reports true. A non-list value is returned as is when kept, nil otherwise.
func (r *Resolver) Filter(id string, keep func(item any, params source.Params) bool) source.Func {
	return r.Transform(id, func(data any, params source.Params) (any, error) {
		items, ok := data.([]any)
		if !ok {
			if keep(data, params) {
				return data, nil
			}
			return nil, nil
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			if keep(item, params) {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

// FindByParam returns a Func source yielding the first item of id whose key
// field equals params[param], compared as text. key defaults to param. The
// result is nil when nothing matches.
func (r *Resolver) FindByParam(id, param, key string) source.Func {
	if key == "" {
		key = param
	}
	return r.Transform(id, func(data any, params source.Params) (any, error) {
		want, ok := params.Lookup(param)
		if !ok {
			return nil, &interpolate.MissingParameterError{Name: param, Template: id}
		}
		items, ok := data.([]any)
		if !ok {
			return nil, fmt.Errorf("resolver: find by %q: source %q is not a list (got %T)", param, id, data)
		}
		for _, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			value, ok := record[key]
			if !ok {
				continue
			}
			if source.FormatScalar(value) == want {
				return record, nil
			}
		}
		return nil, nil
	})
}
