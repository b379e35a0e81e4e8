package middleware

import (
	"context"
	"net/http"

	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
)

// Loader is the resolver surface Decorate needs. *resolver.Resolver
// satisfies it.
type Loader interface {
	Load(ctx context.Context, req resolver.Request, params source.Params) (resolver.Result, error)
}

// Decorate returns a wrapper that resolves req for every request and merges
// the result into the request's Data container. An existing container on the
// request context is reused, so stacked decorators accumulate data.
func Decorate(loader Loader, req resolver.Request, fns ...Option) func(http.Handler) http.Handler {
	opts := NewOptions(fns...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			res, err := loader.Load(r.Context(), req, Params(r, opts))
			if err != nil {
				opts.Logger.Warn("decorate: load failed",
					"request", req.String(),
					"path", r.URL.Path,
					"error", err,
				)
				opts.ErrorHandler(w, r, err)
				return
			}

			data := DataFromContext(r.Context())
			if data == nil {
				data = NewData()
				r = r.WithContext(WithData(r.Context(), data))
			}
			data.Merge(res.Map())
			next.ServeHTTP(w, r)
		})
	}
}

// Params collects load parameters from r: path wildcards first, then query
// values, then the custom extractor. Later sources win; the first value of a
// repeated query key is used.
func Params(r *http.Request, opts Options) source.Params {
	params := source.Params{}
	for _, name := range opts.PathParams {
		if value := r.PathValue(name); value != "" {
			params[name] = value
		}
	}
	if opts.Query && r.URL != nil {
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
	}
	if opts.Params != nil {
		params = params.Merge(opts.Params(r))
	}
	return params
}
