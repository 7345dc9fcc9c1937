package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/raster"
	"golang.org/x/sync/errgroup"
)

// SourceFunc loads the pixels for the i-th entry of a batch. It may perform I/O.
// An empty roi stores the whole buffer.
type SourceFunc func(ctx context.Context, i int) (buf *raster.Buffer, roi raster.Rect, err error)

// SinkFunc consumes the decoded image of the i-th entry of a batch. The buffer
// is owned by the sink.
type SinkFunc func(ctx context.Context, i int, buf *raster.Buffer) error

// runBatch runs op for every index with at most s.Workers() in flight.
//
// Entries are started in index order. The first error cancels the batch: no
// further entries are started, while running ones finish. If ctx is cancelled
// before every entry has started, the context error is returned.
func (s *Scheduler) runBatch(ctx context.Context, n int, op string, fn func(ctx context.Context, i int) error) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	started := 0
	for i := range n {
		if egCtx.Err() != nil {
			break
		}
		started++

		eg.Go(func() error {
			// Cancellation is only observed between entries.
			if err := egCtx.Err(); err != nil {
				return err
			}
			if err := fn(egCtx, i); err != nil {
				return fmt.Errorf("%s entry %d: %w", op, i, err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.logger.Debug("batch stopped", "op", op, "started", started, "total", n, "err", err)
		return err
	}
	if started < n {
		s.logger.Debug("batch cancelled", "op", op, "started", started, "total", n)
		return ctx.Err()
	}

	return nil
}

// CompressBatch loads and compresses every entry of imgs.
//
// Entries must be distinct and must not have tasks pending on the scheduler.
//
// Parameters:
//   - ctx: Cancels the batch between entries
//   - imgs: Entries to write
//   - source: Loads the pixels for each entry
//
// Returns:
//   - error: The first load or compress error, or the context error when cancelled
func (s *Scheduler) CompressBatch(ctx context.Context, imgs []*CompressedImage, source SourceFunc) error {
	return s.runBatch(ctx, len(imgs), "compress", func(ctx context.Context, i int) error {
		if imgs[i] == nil {
			return ErrNilEntry
		}

		buf, roi, err := source(ctx, i)
		if err != nil {
			return err
		}

		return imgs[i].CompressRegion(buf, roi)
	})
}

// DecompressBatch decodes every entry of imgs and hands the images to sink.
//
// Images are decoded and handed over one entry at a time per worker, so at most
// Workers() decoded images are alive inside the batch at once.
func (s *Scheduler) DecompressBatch(ctx context.Context, imgs []*CompressedImage, sink SinkFunc) error {
	return s.runBatch(ctx, len(imgs), "decompress", func(ctx context.Context, i int) error {
		if imgs[i] == nil {
			return ErrNilEntry
		}

		buf, err := imgs[i].Decompress()
		if err != nil {
			return err
		}

		return sink(ctx, i, buf)
	})
}

// ChangeStrategyBatch runs ChangeStrategy(strategy, reEncode) on every entry of imgs.
//
// Returns:
//   - int: Number of entries that reported a change, including those finished before an error
//   - error: The first failure, or the context error when cancelled
func (s *Scheduler) ChangeStrategyBatch(ctx context.Context, imgs []*CompressedImage, strategy compress.Strategy, reEncode bool) (int, error) {
	if strategy == nil {
		return 0, ErrNilStrategy
	}

	var changed atomic.Int64
	err := s.runBatch(ctx, len(imgs), "change_strategy", func(_ context.Context, i int) error {
		if imgs[i] == nil {
			return ErrNilEntry
		}

		ok, err := imgs[i].ChangeStrategy(strategy, reEncode)
		if err != nil {
			return err
		}
		if ok {
			changed.Add(1)
		}

		return nil
	})

	return int(changed.Load()), err
}
