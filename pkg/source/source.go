package source

import "context"

// Kind enumerates the Source variants.
type Kind string

const (
	KindPath Kind = "path"
	KindFunc Kind = "func"
	KindList Kind = "list"
	KindMap  Kind = "map"
)

// Source is implemented only by the variants declared in this package, so a
// type switch over Path, Func, List and Map is exhaustive.
type Source interface {
	Kind() Kind
	sealed()
}

// Path is a literal template. Placeholders such as ":name" are substituted
// from params and a leading "#" turns the value into a reference to another
// registered source.
type Path string

func (Path) Kind() Kind { return KindPath }
func (Path) sealed()    {}

// String returns the raw template.
func (p Path) String() string { return string(p) }

// Func produces data directly from the request params. It receives the params
// as supplied to the load call, never interpolated strings.
type Func func(ctx context.Context, params Params) (any, error)

func (Func) Kind() Kind { return KindFunc }
func (Func) sealed()    {}

// List loads every element independently and yields a []any in declaration
// order.
type List []Source

func (List) Kind() Kind { return KindList }
func (List) sealed()    {}

// Map loads every value independently and yields a map[string]any keyed by
// the same aliases.
type Map map[string]Source

func (Map) Kind() Kind { return KindMap }
func (Map) sealed()    {}

// Entry pairs an id with its Source for bulk registration from ordered
// collections.
type Entry struct {
	ID     string
	Source Source
}
