package resolver

import (
	"sort"
	"strings"

	"github.com/goliatone/go-festoon/pkg/source"
)

// Wildcard selects every registered id.
const Wildcard = "*"

type requestKind uint8

const (
	requestNone requestKind = iota
	requestAll
	requestID
	requestIDs
	requestAliases
)

// Request selects which sources a Load resolves and the shape of its Result.
// Build one with All, ID, IDs or Aliases.
type Request struct {
	kind    requestKind
	ids     []string
	aliases map[string]string
}

// All selects every registered id; results are keyed by id.
func All() Request {
	return Request{kind: requestAll}
}

// ID selects a single id; results are keyed by id. "*" is equivalent to All.
func ID(id string) Request {
	if id == Wildcard {
		return All()
	}
	return Request{kind: requestID, ids: []string{id}}
}

// IDs selects several ids and yields a positional Result in the given order.
// Repeated ids are loaded once and keep their first position, so the Result
// can be shorter than the argument list.
func IDs(ids ...string) Request {
	return Request{kind: requestIDs, ids: append([]string(nil), ids...)}
}

// Aliases maps result keys to source ids.
func Aliases(aliases map[string]string) Request {
	clone := make(map[string]string, len(aliases))
	for alias, id := range aliases {
		clone[alias] = id
	}
	return Request{kind: requestAliases, aliases: clone}
}

// ParseRequest builds a Request from command style arguments: no argument or
// a lone "*" selects everything, "alias=id" arguments build an alias map, a
// single id selects one source and several ids a positional list.
func ParseRequest(args []string) Request {
	switch {
	case len(args) == 0:
		return All()
	case len(args) == 1 && !strings.Contains(args[0], "="):
		return ID(args[0])
	}

	aliases := make(map[string]string, len(args))
	keyed := false
	for _, arg := range args {
		alias, id, ok := strings.Cut(arg, "=")
		if !ok {
			alias, id = arg, arg
		} else {
			keyed = true
		}
		aliases[alias] = id
	}
	if keyed {
		return Aliases(aliases)
	}
	return IDs(args...)
}

// String describes the request shape for logs.
func (r Request) String() string {
	switch r.kind {
	case requestAll:
		return Wildcard
	case requestID:
		return r.ids[0]
	case requestIDs:
		return "[" + strings.Join(r.ids, ",") + "]"
	case requestAliases:
		pairs := make([]string, 0, len(r.aliases))
		for _, alias := range sortedKeys(r.aliases) {
			pairs = append(pairs, alias+"="+r.aliases[alias])
		}
		return "{" + strings.Join(pairs, ",") + "}"
	default:
		return "<empty>"
	}
}

// plan is the canonical alias -> source mapping of a request.
type plan struct {
	keys       []string
	sources    []source.Source
	positional bool
}

// normalize resolves every referenced id against the registry. It stops at
// the first unknown id in declaration order, before any loader runs.
func (r *Resolver) normalize(req Request) (plan, error) {
	var (
		keys       []string
		ids        []string
		positional bool
	)

	switch req.kind {
	case requestAll:
		ids = r.registry.IDs()
		keys = ids
	case requestID:
		ids = req.ids
		keys = ids
	case requestIDs:
		seen := make(map[string]struct{}, len(req.ids))
		for _, id := range req.ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		keys = ids
		positional = true
	case requestAliases:
		keys = sortedKeys(req.aliases)
		ids = make([]string, len(keys))
		for idx, alias := range keys {
			ids[idx] = req.aliases[alias]
		}
	default:
		return plan{}, ErrEmptyRequest
	}

	p := plan{
		keys:       keys,
		sources:    make([]source.Source, len(ids)),
		positional: positional,
	}
	for idx, id := range ids {
		src, ok := r.registry.Get(id)
		if !ok {
			return plan{}, &UnknownSourceError{ID: id}
		}
		p.sources[idx] = src
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
