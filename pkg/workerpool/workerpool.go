// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Process runs process over every item using up to workerCount goroutines.
// Items are claimed through a shared cursor, so each item is processed exactly
// once. The first process error cancels the remaining work and is returned;
// onCancel, if set, fires once on that first error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		cursor   atomic.Int64
		firstErr error
		errOnce  sync.Once
		wg       sync.WaitGroup
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			if onCancel != nil {
				onCancel()
			}
			cancel()
		})
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				next := cursor.Add(1) - 1
				if next >= int64(len(items)) {
					return
				}
				if err := process(ctx, items[next]); err != nil {
					fail(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
