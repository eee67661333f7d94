// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher buffers items and flushes them to a callback when the buffer reaches
// flushSize or the flush interval elapses, whichever comes first. Flushes are
// smoothed by a rate limiter.
type Batcher[T any] struct {
	flush         func(context.Context, []T) error
	onFlushError  func(error)
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher. onFlushError may be nil; when set it receives every
// flush callback error in addition to the error being logged.
func New[T any](
	logger *zap.Logger,
	flush func(context.Context, []T) error,
	onFlushError func(error),
	flushSize int,
	flushInterval time.Duration,
	rps int,
) *Batcher[T] {
	if flushSize <= 0 {
		flushSize = 1
	}
	if rps <= 0 {
		rps = 1
	}
	return &Batcher[T]{
		logger:        logger,
		flush:         flush,
		onFlushError:  onFlushError,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop drains outstanding items, flushes them, and stops the loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation. Adding to
// a stopped batcher returns context.Canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	doFlush := func() {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(buf)))
			if b.onFlushError != nil {
				b.onFlushError(err)
			}
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			doFlush()
			return

		case <-b.stop:
			// Drain whatever was queued before Stop.
			for {
				select {
				case item := <-b.itemsCh:
					buf = append(buf, item)
					if len(buf) >= b.flushSize {
						doFlush()
					}
					continue
				default:
				}
				break
			}
			doFlush()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				doFlush()
			}

		case <-ticker.C:
			doFlush()
		}
	}
}
