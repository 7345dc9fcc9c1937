// Package pixcache keeps large layer images of 3D print jobs compressed in memory.
//
// A print job holds one raster per printable layer, often thousands of
// multi-megapixel images. pixcache stores each of them as a cache entry that
// is either compressed with an interchangeable strategy or kept raw when
// compression would not help, and decodes it back byte for byte.
//
// # Core Features
//
//   - Strategies: None, LZ4 (default), Deflate, GZip, PNG, PNG-Greyscale, Zstd, S2
//   - Raw fallback for tiny payloads, failed encodes and payloads that do not shrink
//   - Region-of-interest storage with zero-canvas reconstruction
//   - Strategy migration with optional re-encoding that keeps the ROI
//   - xxHash64 checksum on every decode and a memoized BLAKE3 content hash
//   - Async scheduler with per-entry ordering and cancellable batch operations
//
// # Basic Usage
//
//	import "github.com/arloliu/pixcache"
//
//	// 8-bit single-channel layer image
//	layer := raster.New(raster.Gray8(3840, 2400))
//	// ... fill layer.Pix ...
//
//	img, _ := pixcache.Compress(layer)
//	fmt.Println(img.Len(), img.CompressionRatio())
//
//	pixels, err := img.Decompress()
//
// Storing only the region that holds the model:
//
//	img, _ := pixcache.CompressRegion(layer, raster.NewRect(800, 600, 1200, 900))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the cache and
// compress packages, simplifying the most common use cases. For fine-grained
// control, use those packages directly.
package pixcache

import (
	"fmt"

	"github.com/arloliu/pixcache/cache"
	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/options"
	"github.com/arloliu/pixcache/raster"
)

// NewCompressedImage creates an empty cache entry with custom options.
//
// Parameters:
//   - desc: Full-size descriptor of the image the entry will hold
//   - opts: Optional configuration functions (see cache.Option)
//
// Returns:
//   - *cache.CompressedImage: The created entry
//   - error: An error if the configuration is invalid
//
// Available options:
//   - cache.WithStrategy(strategy) / cache.WithStrategyType(format.StrategyLZ4|...)
//   - cache.WithStrategyLevel(format.StrategyZstd, format.LevelBest)
//   - cache.WithThreshold(bytes)
//   - cache.WithLogger(logger)
func NewCompressedImage(desc raster.Descriptor, opts ...cache.Option) (*cache.CompressedImage, error) {
	return cache.New(desc, opts...)
}

// NewDefaultCompressedImage creates an empty cache entry with the default
// configuration: LZ4 and the default raw-storage threshold.
//
// Use this for layers that are read in tight loops, such as preview scrubbing.
func NewDefaultCompressedImage(desc raster.Descriptor) (*cache.CompressedImage, error) {
	return cache.New(desc)
}

// NewArchivalCompressedImage creates an empty cache entry tuned for ratio over
// speed. Single-channel images use PNG-Greyscale, other layouts use Zstd, both
// at LevelBest. Additional options are applied last.
func NewArchivalCompressedImage(desc raster.Descriptor, opts ...cache.Option) (*cache.CompressedImage, error) {
	return cache.New(desc, archivalStrategy(desc), options.Join(opts...))
}

func archivalStrategy(desc raster.Descriptor) cache.Option {
	if desc.Channels == 1 {
		return cache.WithStrategyLevel(format.StrategyPNGGreyscale, format.LevelBest)
	}

	return cache.WithStrategyLevel(format.StrategyZstd, format.LevelBest)
}

// Compress creates a cache entry holding the whole of buf.
func Compress(buf *raster.Buffer, opts ...cache.Option) (*cache.CompressedImage, error) {
	return cache.NewFromBuffer(buf, raster.Rect{}, opts...)
}

// CompressRegion creates a cache entry holding the roi sub-region of buf.
// Decompressing it yields a full-size image with zero pixels outside roi.
func CompressRegion(buf *raster.Buffer, roi raster.Rect, opts ...cache.Option) (*cache.CompressedImage, error) {
	return cache.NewFromBuffer(buf, roi, opts...)
}

// NewScheduler creates an async scheduler for cache entry operations.
//
// Example:
//
//	s, _ := pixcache.NewScheduler(cache.WithWorkers(8))
//	defer s.Close()
//	err := s.CompressBatch(ctx, entries, loadLayer)
func NewScheduler(opts ...cache.SchedulerOption) (*cache.Scheduler, error) {
	return cache.NewScheduler(opts...)
}

// ParseStrategy resolves a strategy by name and level name, e.g. ("Zstd", "Best").
// An empty level selects the default level.
func ParseStrategy(name, level string) (compress.Strategy, error) {
	st, err := format.ParseStrategyType(name)
	if err != nil {
		return nil, fmt.Errorf("pixcache: %w", err)
	}

	lvl := format.LevelDefault
	if level != "" {
		lvl, err = format.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("pixcache: %w", err)
		}
	}

	return compress.CreateStrategy(st, lvl)
}
