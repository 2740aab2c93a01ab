package archive

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of decoding one asset. Err is set instead of Asset
// when that asset failed.
type Result struct {
	ID    int
	Asset *Asset
	Err   error
}

// DecodeAll decodes every asset using up to workers goroutines and hands
// the results to fn in index order. A failing asset is delivered with Err
// set and does not stop the others; an error returned by fn does.
func (a *Archive) DecodeAll(ctx context.Context, workers int, fn func(*Result) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	slots := make([]chan *Result, a.Len())
	for i := range slots {
		slots[i] = make(chan *Result, 1)
	}
	// Bounds how far decoding may run ahead of fn.
	window := make(chan struct{}, workers*4)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var dec errgroup.Group
		dec.SetLimit(workers)
		defer dec.Wait()

		for id := range slots {
			select {
			case window <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			id := id
			dec.Go(func() error {
				asset, err := a.Asset(id)
				slots[id] <- &Result{ID: id, Asset: asset, Err: err}
				return nil
			})
		}
		return nil
	})

	g.Go(func() error {
		for id := range slots {
			var r *Result
			select {
			case r = <-slots[id]:
			case <-ctx.Done():
				return ctx.Err()
			}
			if err := fn(r); err != nil {
				return err
			}
			<-window
		}
		return nil
	})

	return g.Wait()
}
