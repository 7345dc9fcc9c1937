// Package compress provides the compression strategies used by layer image cache entries.
//
// A strategy turns the pixels of a raster.Buffer into bytes and back. Strategies
// are interchangeable: a cache entry records which one produced its bytes and
// can migrate to another at any time.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(src *raster.Buffer) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, dst *raster.Buffer) error
//	}
//
//	type Strategy interface {
//	    Type() format.StrategyType
//	    Level() format.Level
//	    Compressor
//	    Decompressor
//	}
//
// Strategy identity is Type, compared by value. Level is a typed per-strategy
// setting (LevelDefault, LevelFastest, LevelBest) that each strategy maps to its
// own codec knobs; it never changes the decoded result.
//
// # Supported Algorithms
//
// **None** (format.StrategyNone)
//
//	strategy := compress.NewNoOpStrategy()
//	payload, _ := strategy.Compress(buf)  // packed copy of the pixels
//
// Used as an explicit "no compression" choice and for raw fallback storage.
//
// **LZ4** (format.StrategyLZ4)
//
//	strategy := compress.NewLZ4Strategy(format.LevelDefault)
//
// Block compression directly over the contiguous pixel span. The default
// strategy: layer previews and batch operations touch entries in tight loops.
//
// **Deflate / GZip** (format.StrategyDeflate, format.StrategyGZip)
//
//	strategy := compress.NewDeflateStrategy(format.LevelBest)
//
// Stream compression over a packed view of the buffer. Strided buffers are
// staged through a pooled contiguous copy.
//
// **PNG / PNG-Greyscale** (format.StrategyPNG, format.StrategyPNGGreyscale)
//
//	strategy := compress.NewPNGStrategy(format.LevelDefault)
//
// Encoded through an image codec; typically the best ratio on layer images at
// a higher CPU cost. The greyscale variant forces single-channel decoding.
//
// **Zstd / S2** (format.StrategyZstd, format.StrategyS2)
//
// General-purpose block codecs trading ratio (Zstd) against speed (S2).
//
// # Algorithm Selection Guide
//
// | Workload                     | Recommended | Reason                        |
// |------------------------------|-------------|-------------------------------|
// | Scrubbing / random access    | LZ4         | Fastest decode                |
// | Archival of finished jobs    | PNG or Zstd | Best ratio                    |
// | Mixed read/write batches     | S2          | Balanced speed and ratio      |
// | Interop with stream tooling  | GZip        | Standard, CRC-checked format  |
//
// # Thread Safety
//
// All strategies are immutable values and safe for concurrent use. Codec
// scratch state (encoders, decoders, staging buffers) lives in sync.Pools.
//
// # Error Handling
//
// Compression errors are never fatal to a cache entry: the entry falls back to
// raw storage. Decompression errors wrap ErrCorruptData and must be surfaced,
// since a corrupt entry cannot be repaired.
package compress
