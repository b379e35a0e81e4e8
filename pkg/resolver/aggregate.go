package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-festoon/pkg/source"
)

// aggregate loads every source concurrently and returns the values in slot
// order. The first error cancels the shared context; loaders that ignore
// cancellation keep running and their results are discarded.
func (r *Resolver) aggregate(ctx context.Context, sources []source.Source, params source.Params) ([]any, error) {
	out := make([]any, len(sources))
	if len(sources) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for idx, src := range sources {
		g.Go(func() error {
			value, err := r.loadSource(gctx, src, params)
			if err != nil {
				return err
			}
			out[idx] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
