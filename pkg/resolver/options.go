package resolver

import (
	"io/fs"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/source"
)

// Option customises a Resolver at construction time.
type Option func(*settings)

type loaderOverride struct {
	ext    string
	loader loaders.Loader
}

type builtinOverride struct {
	ext  string
	name string
}

type settings struct {
	basePath      string
	builtins      []builtinOverride
	readerOptions []loaders.ReaderOption
	reader        loaders.Reader
	table         *loaders.Table
	overrides     []loaderOverride
	fallback      loaders.Loader
	interpolation []interpolate.Option
	sources       map[string]source.Source
	entries       []source.Entry
	logger        *slog.Logger
	registerer    prometheus.Registerer
}

// WithBasePath prefixes relative, non-URL file sources.
func WithBasePath(path string) Option {
	return func(s *settings) {
		s.basePath = path
	}
}

// WithFileSystem serves file sources from files instead of the OS.
func WithFileSystem(files fs.FS) Option {
	return func(s *settings) {
		s.readerOptions = append(s.readerOptions, loaders.WithFileSystem(files))
	}
}

// WithHTTPClient enables http(s) file sources through client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.readerOptions = append(s.readerOptions, loaders.WithHTTPClient(client))
	}
}

// WithHTTPFallback enables http(s) file sources with a default client.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(s *settings) {
		s.readerOptions = append(s.readerOptions, loaders.WithHTTPFallback(timeout))
	}
}

// WithReader replaces the byte reader used by the built-in loaders. Reader
// options such as WithFileSystem are ignored when a reader is supplied.
func WithReader(reader loaders.Reader) Option {
	return func(s *settings) {
		s.reader = reader
	}
}

// WithLoaders starts from a copy of table instead of the built-in table.
func WithLoaders(table *loaders.Table) Option {
	return func(s *settings) {
		s.table = table
	}
}

// WithLoader registers loader for ext on this instance only.
func WithLoader(ext string, loader loaders.Loader) Option {
	return func(s *settings) {
		s.overrides = append(s.overrides, loaderOverride{ext: ext, loader: loader})
	}
}

// WithBuiltinLoader maps ext to the named built-in loader, reading through
// this instance's reader. An ext of "default" sets the fallback loader.
func WithBuiltinLoader(ext, name string) Option {
	return func(s *settings) {
		s.builtins = append(s.builtins, builtinOverride{ext: ext, name: name})
	}
}

// WithDefaultLoader sets the loader used for unrecognised extensions.
func WithDefaultLoader(loader loaders.Loader) Option {
	return func(s *settings) {
		s.fallback = loader
	}
}

// WithInterpolationPattern overrides the ":identifier" placeholder pattern.
func WithInterpolationPattern(pattern *regexp.Regexp) Option {
	return func(s *settings) {
		s.interpolation = append(s.interpolation, interpolate.WithPattern(pattern))
	}
}

// WithMaxReferenceDepth bounds "#id" reference chains.
func WithMaxReferenceDepth(depth int) Option {
	return func(s *settings) {
		s.interpolation = append(s.interpolation, interpolate.WithMaxDepth(depth))
	}
}

// WithSources registers sources at construction.
func WithSources(sources map[string]source.Source) Option {
	return func(s *settings) {
		if s.sources == nil {
			s.sources = make(map[string]source.Source, len(sources))
		}
		for id, src := range sources {
			s.sources[id] = src
		}
	}
}

// WithEntries registers ordered entries at construction, after WithSources.
func WithEntries(entries ...source.Entry) Option {
	return func(s *settings) {
		s.entries = append(s.entries, entries...)
	}
}

// WithLogger sets the structured logger. Loads log at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics registers load counters and latency histograms with reg.
// Resolvers sharing a registerer share the collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = reg
	}
}
