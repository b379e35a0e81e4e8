// Package source defines the data model shared by the registry, the
// interpolator and the resolver. A Source is a closed union of four variants:
// Path (a literal template naming a file or URL, optionally a "#id"
// reference), Func (a callback producing data from request params), List (an
// ordered sequence of nested sources) and Map (alias keyed nested sources).
// Callers never see Source definitions in results, only the resolved data.
package source
