package coinfolio

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps the number of in-flight requests of a fan-out.
const DefaultConcurrency = 4

// fanOut calls fn for every index in [0, n) with at most limit calls in flight.
//
// fn returns a per-item error. Fatal errors (see IsFatal) cancel the remaining
// calls and are returned. Other errors are collected in the returned slice at
// the item's index, so that the result never depends on completion order.
func fanOut(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) ([]error, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	errs := make([]error, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	var mu sync.Mutex
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := fn(ctx, i)
			if err == nil {
				return nil
			}
			if IsFatal(err) {
				return err
			}
			mu.Lock()
			errs[i] = err
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return errs, nil
}
