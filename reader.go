package festoon

import (
	"github.com/goliatone/go-festoon/internal/fetch"
	"github.com/goliatone/go-festoon/pkg/loaders"
)

// NewReader constructs the byte reader used by the built-in loaders while
// keeping the concrete type hidden from consumers.
func NewReader(options ...loaders.ReaderOption) loaders.Reader {
	return fetch.New(loaders.NewReaderOptions(options...))
}

// NewLoaders returns a table with every built-in extension wired to reader.
// A nil reader reads from the OS filesystem. Pass the result to
// resolver.WithLoaders to share a customised table between resolvers; each
// resolver keeps its own copy.
func NewLoaders(reader loaders.Reader) *loaders.Table {
	if reader == nil {
		reader = NewReader()
	}
	return loaders.NewDefaultTable(reader)
}
