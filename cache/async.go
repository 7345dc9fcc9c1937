package cache

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/internal/options"
	"github.com/arloliu/pixcache/raster"
	"golang.org/x/sync/semaphore"
)

// Future is the pending result of a task submitted to a Scheduler.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed once the task has finished or was skipped.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the task finishes or ctx is done.
//
// Abandoning the wait does not cancel the task; cancel the context the task was
// submitted with for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// SchedulerConfig holds the configuration of a Scheduler.
type SchedulerConfig struct {
	workers int
	logger  *slog.Logger
}

// NewSchedulerConfig returns the default configuration: GOMAXPROCS workers and
// a discarding logger.
func NewSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SchedulerOption represents a functional option for configuring a Scheduler.
type SchedulerOption = options.Option[*SchedulerConfig]

// WithWorkers sets how many codec tasks may run at once. n must be positive.
func WithWorkers(n int) SchedulerOption {
	return options.New(func(c *SchedulerConfig) error {
		if n < 1 {
			return fmt.Errorf("cache: worker count must be positive, got %d", n)
		}
		c.workers = n

		return nil
	})
}

// WithSchedulerLogger sets the logger for skipped and failed tasks.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return options.NoError(func(c *SchedulerConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// Scheduler runs cache entry operations on a bounded pool of goroutines.
//
// Tasks for the same entry run one at a time in submission order, so a
// ChangeStrategyAsync submitted after a CompressAsync observes its result.
// Tasks for different entries run independently, at most Workers at a time.
//
// Cancellation is cooperative: a task whose context is done before it starts is
// skipped and resolves with the context error. A started task runs to completion.
type Scheduler struct {
	workers int
	sem     *semaphore.Weighted
	logger  *slog.Logger

	mu     sync.Mutex
	lanes  map[*CompressedImage]chan struct{} // completion channel of the last task per entry
	closed bool
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler.
func NewScheduler(opts ...SchedulerOption) (*Scheduler, error) {
	config := NewSchedulerConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Scheduler{
		workers: config.workers,
		sem:     semaphore.NewWeighted(int64(config.workers)),
		logger:  config.logger,
		lanes:   make(map[*CompressedImage]chan struct{}),
	}, nil
}

// Workers returns the maximum number of concurrently running tasks.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Close stops accepting tasks and waits for the submitted ones to finish.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

// submit queues fn on img's lane.
func submit[T any](s *Scheduler, ctx context.Context, img *CompressedImage, op string, fn func() (T, error)) *Future[T] {
	future := newFuture[T]()
	var zero T

	if img == nil {
		future.resolve(zero, ErrNilEntry)
		return future
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		future.resolve(zero, ErrSchedulerClosed)

		return future
	}
	prev := s.lanes[img]
	done := make(chan struct{})
	s.lanes[img] = done
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.finish(img, done)

		// The previous task always completes, so waiting here never leaks.
		if prev != nil {
			<-prev
		}

		if err := ctx.Err(); err != nil {
			s.logger.Debug("task skipped", "op", op, "err", err)
			future.resolve(zero, err)

			return
		}

		if err := s.sem.Acquire(ctx, 1); err != nil {
			s.logger.Debug("task skipped", "op", op, "err", err)
			future.resolve(zero, err)

			return
		}
		defer s.sem.Release(1)

		value, err := fn()
		if err != nil {
			s.logger.Debug("task failed", "op", op, "err", err)
		}
		future.resolve(value, err)
	}()

	return future
}

// finish releases img's lane once the task owning done has completed.
func (s *Scheduler) finish(img *CompressedImage, done chan struct{}) {
	s.mu.Lock()
	if s.lanes[img] == done {
		delete(s.lanes, img)
	}
	s.mu.Unlock()

	close(done)
}

// CompressAsync runs img.Compress(buf) on the scheduler.
// buf must not be modified until the future resolves.
func (s *Scheduler) CompressAsync(ctx context.Context, img *CompressedImage, buf *raster.Buffer) *Future[struct{}] {
	return s.CompressRegionAsync(ctx, img, buf, raster.Rect{})
}

// CompressRegionAsync runs img.CompressRegion(buf, roi) on the scheduler.
// buf must not be modified until the future resolves.
func (s *Scheduler) CompressRegionAsync(ctx context.Context, img *CompressedImage, buf *raster.Buffer, roi raster.Rect) *Future[struct{}] {
	return submit(s, ctx, img, "compress", func() (struct{}, error) {
		return struct{}{}, img.CompressRegion(buf, roi)
	})
}

// DecompressAsync runs img.Decompress() on the scheduler.
func (s *Scheduler) DecompressAsync(ctx context.Context, img *CompressedImage) *Future[*raster.Buffer] {
	return submit(s, ctx, img, "decompress", img.Decompress)
}

// ChangeStrategyAsync runs img.ChangeStrategy(strategy, reEncode) on the scheduler.
func (s *Scheduler) ChangeStrategyAsync(ctx context.Context, img *CompressedImage, strategy compress.Strategy, reEncode bool) *Future[bool] {
	return submit(s, ctx, img, "change_strategy", func() (bool, error) {
		return img.ChangeStrategy(strategy, reEncode)
	})
}
