package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-festoon/internal/fetch"
	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/registry"
	"github.com/goliatone/go-festoon/pkg/source"
)

// Resolver resolves requests against its registered sources. It is safe for
// concurrent use; registry mutations made while a Load is in flight may or may
// not be observed by that Load.
type Resolver struct {
	registry *registry.Registry
	interp   *interpolate.Interpolator
	loaders  *loaders.Table
	basePath string
	logger   *slog.Logger
	metrics  *metrics
	initErr  error
}

// New constructs a Resolver. Invalid construction input (bad source ids,
// loader overrides or a failing metrics registration) is reported by the
// first Load.
func New(options ...Option) *Resolver {
	s := &settings{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	r := &Resolver{
		registry: registry.New(),
		interp:   interpolate.New(s.interpolation...),
		basePath: s.basePath,
		logger:   s.logger,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	reader := s.reader
	if reader == nil {
		reader = fetch.New(loaders.NewReaderOptions(s.readerOptions...))
	}
	if s.table != nil {
		r.loaders = s.table.Clone()
	} else {
		r.loaders = loaders.NewDefaultTable(reader)
	}

	var errs []error
	for _, builtin := range s.builtins {
		loader, err := loaders.Builtin(builtin.name, reader)
		if err == nil {
			err = r.loaders.Set(builtin.ext, loader)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	for _, override := range s.overrides {
		if err := r.loaders.Set(override.ext, override.loader); err != nil {
			errs = append(errs, err)
		}
	}
	if s.fallback != nil {
		r.loaders.SetDefault(s.fallback)
	}
	if len(s.sources) > 0 {
		if err := r.registry.Add(s.sources); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.entries) > 0 {
		if err := r.registry.AddEntries(s.entries...); err != nil {
			errs = append(errs, err)
		}
	}
	if s.registerer != nil {
		m, err := newMetrics(s.registerer)
		if err != nil {
			errs = append(errs, err)
		}
		r.metrics = m
	}
	if len(errs) > 0 {
		r.initErr = fmt.Errorf("resolver: initialise: %w", errors.Join(errs...))
	}
	return r
}

// Err reports a construction failure, if any.
func (r *Resolver) Err() error {
	return r.initErr
}

// SetSource upserts a source.
func (r *Resolver) SetSource(id string, src source.Source) error {
	return r.registry.Set(id, src)
}

// SetSources replaces every registered source.
func (r *Resolver) SetSources(sources map[string]source.Source) error {
	return r.registry.Replace(sources)
}

// AddSources upserts every entry of sources.
func (r *Resolver) AddSources(sources map[string]source.Source) error {
	return r.registry.Add(sources)
}

// AddEntries upserts ordered entries; a later duplicate id wins.
func (r *Resolver) AddEntries(entries ...source.Entry) error {
	return r.registry.AddEntries(entries...)
}

// IDs lists the registered ids in sorted order.
func (r *Resolver) IDs() []string {
	return r.registry.IDs()
}

// Has reports whether id is registered.
func (r *Resolver) Has(id string) bool {
	return r.registry.Has(id)
}

// SetLoader registers a loader for ext on this instance.
func (r *Resolver) SetLoader(ext string, loader loaders.Loader) error {
	return r.loaders.Set(ext, loader)
}

// Load resolves req with params. A nil params map behaves as empty. Either the
// complete Result or an error is returned, never both.
func (r *Resolver) Load(ctx context.Context, req Request, params source.Params) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("resolver: context is required")
	}
	if err := r.initErr; err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if params == nil {
		params = source.Params{}
	}

	logger := r.logger.With("load_id", uuid.NewString())
	ctx = withLogger(ctx, logger)
	start := time.Now()

	p, err := r.normalize(req)
	if err != nil {
		logger.Debug("request rejected", "request", req.String(), "error", err)
		return Result{}, err
	}

	resolved := make([]source.Source, len(p.sources))
	for idx, src := range p.sources {
		out, err := r.interp.Interpolate(src, params, r.registry)
		if err != nil {
			logger.Debug("interpolation failed", "key", p.keys[idx], "error", err)
			return Result{}, fmt.Errorf("resolver: source %q: %w", p.keys[idx], err)
		}
		resolved[idx] = out
	}

	logger.Debug("resolving sources",
		"request", req.String(),
		"entries", len(resolved),
		"positional", p.positional,
	)

	values, err := r.aggregate(ctx, resolved, params)
	if err != nil {
		logger.Debug("load failed", "error", err, "duration", time.Since(start))
		return Result{}, err
	}

	logger.Debug("load complete", "entries", len(values), "duration", time.Since(start))
	return newResult(p.keys, values, p.positional), nil
}
