// Package resolver is the resolution engine. A Resolver owns a source
// registry, an interpolator and an extension keyed loader table; Load turns a
// Request (all ids, one id, a positional list of ids, or an alias map) into a
// Result by normalising the request, interpolating every selected source
// against the request params, and dispatching loaders concurrently while
// preserving the requested shape.
//
// Loads fan out without a concurrency cap. The first failure, by completion
// order, is returned and cancels the context handed to sibling loads; no
// partial data is returned alongside an error.
package resolver
