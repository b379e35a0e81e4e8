package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
)

// DefaultEnvPrefix is the environment variable prefix.
const DefaultEnvPrefix = "FESTOON_"

// DefaultHTTPTimeout applies when http.enabled is set without a timeout.
const DefaultHTTPTimeout = 10 * time.Second

// HTTP configures fetching of http(s) file sources.
type HTTP struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout"`
}

// Config is the decoded configuration.
type Config struct {
	BasePath          string            `koanf:"base_path"`
	DefaultLoader     string            `koanf:"default_loader"`
	Pattern           string            `koanf:"pattern"`
	MaxReferenceDepth int               `koanf:"max_reference_depth"`
	HTTP              HTTP              `koanf:"http"`
	Loaders           map[string]string `koanf:"loaders"`

	// Sources and Entries are decoded from the "sources" key.
	Sources map[string]source.Source `koanf:"-"`
	Entries []source.Entry           `koanf:"-"`

	pattern *regexp.Regexp
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	envPrefix string
	overrides map[string]any
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) {
		l.envPrefix = prefix
	}
}

// WithOverrides applies values on top of the file and environment, using the
// same keys as the file ("base_path", "http": {"enabled": true}, ...).
func WithOverrides(values map[string]any) Option {
	return func(l *loader) {
		if l.overrides == nil {
			l.overrides = make(map[string]any, len(values))
		}
		for key, value := range values {
			l.overrides[key] = value
		}
	}
}

// Load reads path (optional), then the environment, then overrides. Later
// layers win.
func Load(path string, opts ...Option) (*Config, error) {
	l := &loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(l)
	}

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(l.envPrefix, ".", l.envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}
	if len(l.overrides) > 0 {
		if err := k.Load(mapProvider(l.overrides), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.decodeSources(k.Get("sources")); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps FESTOON_HTTP_TIMEOUT to http.timeout and FESTOON_BASE_PATH to
// base_path. Only the http section nests.
func (l *loader) envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	if rest, ok := strings.CutPrefix(s, "http_"); ok {
		return "http." + rest
	}
	return s
}

func (c *Config) decodeSources(raw any) error {
	switch value := raw.(type) {
	case nil:
		return nil
	case []any:
		entries, err := source.EntriesFromValue(value)
		if err != nil {
			return fmt.Errorf("config: sources: %w", err)
		}
		c.Entries = entries
	default:
		sources, err := source.MapFromValue(value)
		if err != nil {
			return fmt.Errorf("config: sources: %w", err)
		}
		c.Sources = sources
	}
	return nil
}

func (c *Config) validate() error {
	if c.Pattern != "" {
		pattern, err := regexp.Compile(c.Pattern)
		if err != nil {
			return fmt.Errorf("config: pattern: %w", err)
		}
		c.pattern = pattern
	}
	if c.MaxReferenceDepth < 0 {
		return fmt.Errorf("config: max_reference_depth must not be negative, got %d", c.MaxReferenceDepth)
	}
	if c.DefaultLoader != "" && !loaders.IsBuiltin(c.DefaultLoader) {
		return fmt.Errorf("config: default_loader: unknown loader %q", c.DefaultLoader)
	}
	for ext, name := range c.Loaders {
		if !loaders.IsBuiltin(name) {
			return fmt.Errorf("config: loaders.%s: unknown loader %q", ext, name)
		}
	}
	if c.HTTP.Enabled && c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	return nil
}

// Options converts the configuration into resolver options.
func (c *Config) Options() []resolver.Option {
	var opts []resolver.Option
	if c.BasePath != "" {
		opts = append(opts, resolver.WithBasePath(c.BasePath))
	}
	if c.HTTP.Enabled {
		opts = append(opts, resolver.WithHTTPFallback(c.HTTP.Timeout))
	}
	if c.pattern != nil {
		opts = append(opts, resolver.WithInterpolationPattern(c.pattern))
	}
	if c.MaxReferenceDepth > 0 {
		opts = append(opts, resolver.WithMaxReferenceDepth(c.MaxReferenceDepth))
	}

	exts := make([]string, 0, len(c.Loaders))
	for ext := range c.Loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		opts = append(opts, resolver.WithBuiltinLoader(ext, c.Loaders[ext]))
	}
	if c.DefaultLoader != "" {
		opts = append(opts, resolver.WithBuiltinLoader(loaders.DefaultKey, c.DefaultLoader))
	}

	if len(c.Sources) > 0 {
		opts = append(opts, resolver.WithSources(c.Sources))
	}
	if len(c.Entries) > 0 {
		opts = append(opts, resolver.WithEntries(c.Entries...))
	}
	return opts
}

// SourceMap returns the configured sources as one map, entries applied after
// the keyed sources.
func (c *Config) SourceMap() map[string]source.Source {
	out := make(map[string]source.Source, len(c.Sources)+len(c.Entries))
	for id, src := range c.Sources {
		out[id] = src
	}
	for _, entry := range c.Entries {
		out[entry.ID] = entry.Source
	}
	return out
}
