package middleware

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-festoon/pkg/source"
)

// ParamsFunc extracts load parameters from a request.
type ParamsFunc func(r *http.Request) source.Params

// Options configures Decorate.
type Options struct {
	PathParams   []string
	Query        bool
	Params       ParamsFunc
	ErrorHandler ErrorHandler
	Logger       *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions reads query parameters and uses DefaultErrorHandler.
func DefaultOptions() Options {
	return Options{
		Query:        true,
		ErrorHandler: DefaultErrorHandler,
	}
}

// NewOptions applies fns over DefaultOptions.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = DefaultErrorHandler
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.PathParams != nil {
		opts.PathParams = append([]string{}, opts.PathParams...)
	}
	return opts
}

// WithPathParams names the ServeMux wildcards copied into params.
func WithPathParams(names ...string) Option {
	return func(o *Options) {
		o.PathParams = append(o.PathParams, names...)
	}
}

// WithQuery toggles copying query parameters into params.
func WithQuery(enabled bool) Option {
	return func(o *Options) {
		o.Query = enabled
	}
}

// WithParams adds a custom extractor, applied last.
func WithParams(fn ParamsFunc) Option {
	return func(o *Options) {
		o.Params = fn
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *Options) {
		o.ErrorHandler = handler
	}
}

// WithLogger logs load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
