package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach calls fn for every index in [0, n) on at most workers goroutines.
// The first error cancels the context handed to the remaining calls and is
// returned once all started calls have finished.
func forEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
