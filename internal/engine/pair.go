package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Both runs calc for two births concurrently and returns both results, or
// the first error. Charts are independent so the sides never share state.
func Both[T any](ctx context.Context, a, b Birth, calc func(Birth) (T, error)) (T, T, error) {
	var ra, rb T
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := calc(a)
		if err != nil {
			return fmt.Errorf("chart a: %w", err)
		}
		ra = r
		return ctx.Err()
	})
	g.Go(func() error {
		r, err := calc(b)
		if err != nil {
			return fmt.Errorf("chart b: %w", err)
		}
		rb = r
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		var zero T
		return zero, zero, err
	}
	return ra, rb, nil
}
