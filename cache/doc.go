// Package cache provides CompressedImage, the cache entry that keeps one layer
// image compressed in memory, and Scheduler, which runs entry operations on a
// bounded goroutine pool.
//
// # Storage
//
// An entry holds either a compressed payload or raw pixel bytes:
//
//	img, _ := cache.New(raster.Gray8(3840, 2160))
//	_ = img.Compress(layer)            // LZ4 unless configured otherwise
//	buf, err := img.Decompress()       // byte-exact copy of layer
//
// Payloads at or below Threshold bytes are stored raw, and so is any payload the
// strategy fails to encode or does not shrink. Compression failures are never
// returned to the caller; decompression failures always are, wrapped in
// ErrDecompression.
//
// # Regions of interest
//
// CompressRegion stores only a rectangle of the buffer. Decompress rebuilds the
// full-size image with zero pixels outside the rectangle:
//
//	_ = img.CompressRegion(layer, raster.NewRect(100, 80, 640, 480))
//
// # Strategy migration
//
// ChangeStrategy switches the strategy for future writes and can re-encode the
// stored bytes right away, keeping the ROI:
//
//	changed, err := img.ChangeStrategy(compress.NewPNGStrategy(format.LevelBest), true)
//
// # Concurrency
//
// Entries carry no lock. Reads may run concurrently as long as nothing writes
// the same entry. Scheduler serializes the tasks submitted for one entry and
// runs tasks for different entries in parallel:
//
//	s, _ := cache.NewScheduler(cache.WithWorkers(8))
//	s.CompressAsync(ctx, img, layer)
//	changed, err := s.ChangeStrategyAsync(ctx, img, compress.Default(), true).Wait(ctx)
//
// CompressBatch, DecompressBatch and ChangeStrategyBatch process many entries
// and stop starting new ones on the first error or when the context is cancelled.
package cache
