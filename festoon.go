// Package festoon resolves named data sources into concrete data. Sources are
// file paths, loader functions, or lists and maps of sources; paths may carry
// ":param" placeholders and "#id" references to other sources. The packages
// under pkg/ hold the implementation; this package re-exports the common
// entry points.
package festoon

import (
	"context"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/registry"
	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
)

// Source is any of Path, Func, List or Map.
type Source = source.Source

// Path names a file, a URL or a "#id" reference.
type Path = source.Path

// Func produces data from the request params.
type Func = source.Func

// List resolves to a slice in the same order.
type List = source.List

// Map resolves to a map with the same keys.
type Map = source.Map

// Params are the per-request values.
type Params = source.Params

// Request selects which sources to resolve.
type Request = resolver.Request

// Result is the resolved data.
type Result = resolver.Result

// Resolver aliases the engine type.
type Resolver = resolver.Resolver

// Loader produces data for a file name.
type Loader = loaders.Loader

// Errors callers typically match with errors.Is.
var (
	ErrInvalidID         = registry.ErrInvalidID
	ErrInvalidSources    = registry.ErrInvalidSources
	ErrUnknownSource     = resolver.ErrUnknownSource
	ErrInvalidSourceKind = resolver.ErrInvalidSourceKind
	ErrMissingParameter  = interpolate.ErrMissingParameter
	ErrUnknownReference  = interpolate.ErrUnknownReference
	ErrReferenceCycle    = interpolate.ErrReferenceCycle
	ErrNoLoader          = loaders.ErrNoLoader
)

// New exposes the resolver constructor from the top-level module.
func New(options ...resolver.Option) *resolver.Resolver {
	return resolver.New(options...)
}

// Load builds a one-off resolver over sources and resolves req. It is the
// simplest entry point for callers that do not keep a registry around.
func Load(ctx context.Context, sources map[string]Source, req Request, params Params, options ...resolver.Option) (Result, error) {
	r := resolver.New(append(options, resolver.WithSources(sources))...)
	return r.Load(ctx, req, params)
}

// All, ID, IDs and Aliases build requests.
var (
	All     = resolver.All
	ID      = resolver.ID
	IDs     = resolver.IDs
	Aliases = resolver.Aliases
)
