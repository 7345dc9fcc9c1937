package cache

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/hash"
	"github.com/arloliu/pixcache/internal/options"
	"github.com/arloliu/pixcache/raster"
)

// Digest is the BLAKE3-256 content hash of an entry's stored bytes.
type Digest = hash.Digest

// CompressedImage stores one layer image either as the output of a compression
// strategy or, when compression would not help, as raw pixel bytes.
//
// An entry may store only a region of interest (ROI) of the full image; decoding
// rebuilds the full image as a zero canvas with the region pasted at its offset.
//
// CompressedImage has no internal locking. Concurrent reads (Decompress and the
// property getters) are safe while no goroutine writes the same entry; writes
// (Compress, SetRaw, SetEmpty, ChangeStrategy, SetThreshold) need exclusive access.
//
// The zero value is an empty entry using LZ4, the default logger and a zero
// threshold; New applies DefaultThreshold.
type CompressedImage struct {
	data []byte
	desc raster.Descriptor
	roi  raster.Rect

	// compressor is used for the next write; decompressor produced data.
	compressor   compress.Strategy
	decompressor compress.Strategy

	compressed  bool
	initialized bool
	threshold   uint32

	// checksum is the xxHash64 of the pixels data decodes to.
	checksum uint64
	// digest memoizes ContentHash; nil until computed and after every mutation.
	digest atomic.Pointer[hash.Digest]

	logger *slog.Logger
}

// New creates an empty entry for an image described by desc.
//
// Parameters:
//   - desc: Full-size image descriptor, may be the zero value when unknown
//   - opts: Optional configuration (strategy, threshold, logger)
//
// Returns:
//   - *CompressedImage: Empty, uninitialized entry using LZ4 unless configured otherwise
//   - error: Configuration error, or ErrInvalidDescriptor for an unsupported sample layout
func New(desc raster.Descriptor, opts ...Option) (*CompressedImage, error) {
	config := NewConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if desc != (raster.Descriptor{}) {
		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
	}

	return &CompressedImage{
		desc:         desc,
		compressor:   config.strategy,
		decompressor: compress.None(),
		threshold:    config.threshold,
		logger:       config.logger,
	}, nil
}

// NewFromBuffer creates an entry and compresses buf into it.
//
// An empty roi stores the whole buffer.
func NewFromBuffer(buf *raster.Buffer, roi raster.Rect, opts ...Option) (*CompressedImage, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}

	img, err := New(buf.Descriptor, opts...)
	if err != nil {
		return nil, err
	}

	if err := img.CompressRegion(buf, roi); err != nil {
		return nil, err
	}

	return img, nil
}

// Compress stores the whole of buf using the configured strategy.
//
// Compression failures are not errors: the entry falls back to raw storage.
// Errors are returned only for invalid arguments.
func (c *CompressedImage) Compress(buf *raster.Buffer) error {
	return c.CompressRegion(buf, raster.Rect{})
}

// CompressRegion stores the roi sub-region of buf using the configured strategy.
//
// The entry's descriptor becomes buf's full descriptor. An empty roi, or one
// covering all of buf, stores the whole buffer and records no ROI. Payloads of
// at most Threshold bytes, payloads the strategy fails on, and payloads that do
// not shrink are stored raw.
//
// Returns:
//   - error: ErrNilBuffer, ErrInvalidDescriptor, or ErrROIOutOfBounds
func (c *CompressedImage) CompressRegion(buf *raster.Buffer, roi raster.Rect) error {
	src, roi, err := resolveSource(buf, roi)
	if err != nil {
		return err
	}

	c.desc = buf.Descriptor
	if src.IsEmpty() {
		c.clear()
		return nil
	}

	size := src.Len()
	if uint64(size) <= uint64(c.threshold) {
		c.storeRaw(src, roi)
		return nil
	}

	strategy := c.Compressor()
	payload, err := strategy.Compress(src)

	switch {
	case err != nil:
		c.log().Debug("compression failed, storing raw",
			"strategy", strategy.Type(), "size", size, "err", err)
		c.storeRaw(src, roi)
	case strategy.Type() == format.StrategyNone:
		if len(payload) != size {
			c.storeRaw(src, roi)
			return nil
		}
		c.store(payload, src, roi, strategy, false)
	case len(payload) < size:
		c.store(payload, src, roi, strategy, true)
	default:
		c.log().Debug("compression did not shrink payload, storing raw",
			"strategy", strategy.Type(), "size", size, "compressed", len(payload))
		c.storeRaw(src, roi)
	}

	return nil
}

// SetRaw stores the whole of buf verbatim without invoking the compressor.
func (c *CompressedImage) SetRaw(buf *raster.Buffer) error {
	return c.SetRawRegion(buf, raster.Rect{})
}

// SetRawRegion stores the roi sub-region of buf verbatim. ROI handling matches CompressRegion.
func (c *CompressedImage) SetRawRegion(buf *raster.Buffer, roi raster.Rect) error {
	src, roi, err := resolveSource(buf, roi)
	if err != nil {
		return err
	}

	c.desc = buf.Descriptor
	if src.IsEmpty() {
		c.clear()
		return nil
	}
	c.storeRaw(src, roi)

	return nil
}

// SetEmpty drops the stored bytes and marks the entry as explicitly empty.
// The descriptor is kept, so Decompress returns a zero image of that size.
func (c *CompressedImage) SetEmpty() {
	c.clear()
}

// SetEmptyWithDescriptor drops the stored bytes and replaces the descriptor.
func (c *CompressedImage) SetEmptyWithDescriptor(desc raster.Descriptor) error {
	if desc != (raster.Descriptor{}) {
		if err := desc.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
	}

	c.desc = desc
	c.clear()

	return nil
}

// resolveSource validates a write request and returns the effective source
// buffer along with the normalized ROI.
func resolveSource(buf *raster.Buffer, roi raster.Rect) (*raster.Buffer, raster.Rect, error) {
	if buf == nil {
		return nil, raster.Rect{}, ErrNilBuffer
	}
	if err := buf.Validate(); err != nil {
		return nil, raster.Rect{}, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	if roi.IsEmpty() || roi.Covers(buf.Descriptor) {
		return buf, raster.Rect{}, nil
	}
	if !roi.Within(buf.Descriptor) {
		return nil, raster.Rect{}, fmt.Errorf("%w: %s in %s", ErrROIOutOfBounds, roi, buf.Descriptor)
	}

	region, err := buf.Region(roi)
	if err != nil {
		return nil, raster.Rect{}, fmt.Errorf("%w: %w", ErrROIOutOfBounds, err)
	}

	return region, roi, nil
}

func (c *CompressedImage) storeRaw(src *raster.Buffer, roi raster.Rect) {
	payload := make([]byte, src.Len())
	src.CopyTo(payload)
	c.store(payload, src, roi, compress.None(), false)
}

func (c *CompressedImage) store(payload []byte, src *raster.Buffer, roi raster.Rect, producer compress.Strategy, compressed bool) {
	c.data = payload
	c.roi = roi
	c.decompressor = producer
	c.compressed = compressed
	c.checksum = hash.ChecksumBuffer(src)
	c.initialized = true
	c.digest.Store(nil)
}

func (c *CompressedImage) clear() {
	c.data = nil
	c.roi = raster.Rect{}
	c.decompressor = compress.None()
	c.compressed = false
	c.checksum = 0
	c.initialized = true
	c.digest.Store(nil)
}

// Decompress returns a newly allocated full-size image.
//
// Empty entries decode to a zero image of the descriptor's size. Entries that
// store a ROI decode to a zero canvas with the region pasted at its offset.
// Decompress never mutates the entry.
//
// Returns:
//   - *raster.Buffer: Contiguous buffer matching Descriptor()
//   - error: ErrDecompression (wrapping the codec error or ErrChecksumMismatch)
func (c *CompressedImage) Decompress() (*raster.Buffer, error) {
	dst := raster.New(c.desc)
	if err := c.decompressInto(dst, true); err != nil {
		return nil, err
	}

	return dst, nil
}

// DecompressInto decodes the entry into dst, which must match Descriptor().
// dst may be strided; every pixel of it is overwritten.
func (c *CompressedImage) DecompressInto(dst *raster.Buffer) error {
	if dst == nil {
		return ErrNilBuffer
	}
	if dst.Descriptor != c.desc {
		return fmt.Errorf("%w: destination is %s, entry is %s", ErrInvalidDescriptor, dst.Descriptor, c.desc)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	return c.decompressInto(dst, false)
}

func (c *CompressedImage) decompressInto(dst *raster.Buffer, zeroed bool) error {
	if len(c.data) == 0 {
		if !zeroed {
			zero(dst)
		}

		return nil
	}

	target := dst
	if !c.roi.IsEmpty() {
		if !zeroed {
			zero(dst)
		}

		region, err := dst.Region(c.roi)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecompression, err)
		}
		target = region
	}

	decoder := c.Decompressor()
	if !c.compressed {
		decoder = compress.None()
	}
	if err := decoder.Decompress(c.data, target); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecompression, decoder.Type(), err)
	}

	if sum := hash.ChecksumBuffer(target); sum != c.checksum {
		return fmt.Errorf("%w: %w: got %016x, recorded %016x", ErrDecompression, ErrChecksumMismatch, sum, c.checksum)
	}

	return nil
}

func zero(b *raster.Buffer) {
	if b.IsContiguous() {
		clear(b.Pix[:b.Len()])
		return
	}

	for y := range int(b.Height) {
		clear(b.Row(y))
	}
}

// ChangeStrategy sets the strategy used for future writes.
//
// When reEncode is true, the entry is non-empty, and s has a different type than
// the strategy that produced the current bytes, the entry is decoded and
// compressed again with s, keeping its ROI.
//
// Returns:
//   - bool: true when the configured strategy type or the stored encoding changed
//   - error: ErrNilStrategy, or a decompression error (the entry is left unchanged
//     apart from its configured strategy)
func (c *CompressedImage) ChangeStrategy(s compress.Strategy, reEncode bool) (bool, error) {
	if s == nil {
		return false, ErrNilStrategy
	}

	changed := !compress.SameType(c.Compressor(), s)
	c.compressor = s

	if !reEncode || len(c.data) == 0 || compress.SameType(c.Decompressor(), s) {
		return changed, nil
	}

	full, err := c.Decompress()
	if err != nil {
		return changed, err
	}

	from := c.Decompressor().Type()
	roi := c.roi
	// CompressRegion derives the ROI from its argument, so the stored one is passed back explicitly.
	if err := c.CompressRegion(full, roi); err != nil {
		return changed, err
	}

	c.log().Debug("re-encoded entry",
		"from", from, "to", c.Decompressor().Type(), "size", len(c.data), "roi", roi)

	return changed || from != c.Decompressor().Type(), nil
}

// ChangeStrategyType is ChangeStrategy with the built-in default-level strategy of type t.
func (c *CompressedImage) ChangeStrategyType(t format.StrategyType, reEncode bool) (bool, error) {
	s, err := compress.GetStrategy(t)
	if err != nil {
		return false, fmt.Errorf("cache: %w", err)
	}

	return c.ChangeStrategy(s, reEncode)
}

// Width returns the full image width in pixels.
func (c *CompressedImage) Width() uint32 { return c.desc.Width }

// Height returns the full image height in pixels.
func (c *CompressedImage) Height() uint32 { return c.desc.Height }

// Channels returns the number of samples per pixel.
func (c *CompressedImage) Channels() uint8 { return c.desc.Channels }

// BitDepth returns the sample depth.
func (c *CompressedImage) BitDepth() format.BitDepth { return c.desc.Depth }

// Descriptor returns the full-size image descriptor.
func (c *CompressedImage) Descriptor() raster.Descriptor { return c.desc }

// ROI returns the stored region, or the empty rect when the whole image is stored.
func (c *CompressedImage) ROI() raster.Rect { return c.roi }

// HasROI reports whether only a region of the image is stored.
func (c *CompressedImage) HasROI() bool { return !c.roi.IsEmpty() }

// Len returns the number of stored bytes.
func (c *CompressedImage) Len() int { return len(c.data) }

// UncompressedLen returns the number of pixel bytes the stored bytes decode to:
// the ROI area when a region is stored, zero for an empty entry.
func (c *CompressedImage) UncompressedLen() int {
	if len(c.data) == 0 {
		return 0
	}
	if !c.roi.IsEmpty() {
		return c.desc.WithSize(c.roi.Width, c.roi.Height).Len()
	}

	return c.desc.Len()
}

// IsCompressed reports whether the stored bytes are a compressed payload.
func (c *CompressedImage) IsCompressed() bool { return c.compressed }

// IsInitialized reports whether the entry has been written at least once,
// including an explicit SetEmpty.
func (c *CompressedImage) IsInitialized() bool { return c.initialized }

// IsEmpty reports whether no bytes are stored.
func (c *CompressedImage) IsEmpty() bool { return len(c.data) == 0 }

// CompressionRatio returns UncompressedLen / Len, or 0 for an empty entry.
func (c *CompressedImage) CompressionRatio() float64 {
	return c.Stats().CompressionRatio()
}

// CompressionPercentage returns the space saved as a percentage of
// UncompressedLen, or 0 for an empty entry.
func (c *CompressedImage) CompressionPercentage() float64 {
	return c.Stats().SpaceSavings()
}

// Stats returns the compression statistics of the stored bytes.
func (c *CompressedImage) Stats() compress.Stats {
	return compress.Stats{
		Algorithm:      c.Decompressor().Type(),
		OriginalSize:   int64(c.UncompressedLen()),
		CompressedSize: int64(len(c.data)),
	}
}

// ContentHash returns the BLAKE3-256 digest of the stored bytes.
//
// The digest is computed on first use and memoized until the next write.
// Concurrent calls are safe while no goroutine writes the entry.
func (c *CompressedImage) ContentHash() Digest {
	if d := c.digest.Load(); d != nil {
		return *d
	}

	d := hash.Sum(c.data)
	c.digest.Store(&d)

	return d
}

// Compressor returns the strategy used for future writes.
func (c *CompressedImage) Compressor() compress.Strategy {
	if c.compressor == nil {
		return compress.Default()
	}

	return c.compressor
}

// Decompressor returns the strategy that produced the stored bytes.
func (c *CompressedImage) Decompressor() compress.Strategy {
	if c.decompressor == nil {
		return compress.None()
	}

	return c.decompressor
}

func (c *CompressedImage) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}

	return c.logger
}

// Threshold returns the raw-storage threshold in bytes.
func (c *CompressedImage) Threshold() uint32 { return c.threshold }

// SetThreshold changes the raw-storage threshold. It applies to the next write.
func (c *CompressedImage) SetThreshold(threshold uint32) { c.threshold = threshold }

// Bytes returns the stored bytes. The slice is owned by the entry and must not be modified.
func (c *CompressedImage) Bytes() []byte { return c.data }

// Equal reports whether c and other describe the same image with the same
// configuration and byte-identical storage.
func (c *CompressedImage) Equal(other *CompressedImage) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c == other {
		return true
	}

	if len(c.data) != len(other.data) {
		return false
	}

	if c.desc != other.desc ||
		c.roi != other.roi ||
		c.compressed != other.compressed ||
		c.initialized != other.initialized ||
		c.threshold != other.threshold ||
		c.checksum != other.checksum {
		return false
	}

	if !compress.SameType(c.Compressor(), other.Compressor()) ||
		!compress.SameType(c.Decompressor(), other.Decompressor()) {
		return false
	}

	if a, b := c.digest.Load(), other.digest.Load(); a != nil && b != nil && *a != *b {
		return false
	}

	return bytes.Equal(c.data, other.data)
}

// Clone returns an independent deep copy of c. The clone never shares storage with c.
func (c *CompressedImage) Clone() *CompressedImage {
	out := &CompressedImage{
		data:         bytes.Clone(c.data),
		desc:         c.desc,
		roi:          c.roi,
		compressor:   c.compressor,
		decompressor: c.decompressor,
		compressed:   c.compressed,
		initialized:  c.initialized,
		threshold:    c.threshold,
		checksum:     c.checksum,
		logger:       c.logger,
	}
	if d := c.digest.Load(); d != nil {
		memo := *d
		out.digest.Store(&memo)
	}

	return out
}

func (c *CompressedImage) String() string {
	roi := "none"
	if !c.roi.IsEmpty() {
		roi = c.roi.String()
	}

	return fmt.Sprintf("CompressedImage{%s roi=%s strategy=%s compressed=%t bytes=%d/%d}",
		c.desc, roi, c.Decompressor().Type(), c.compressed, len(c.data), c.UncompressedLen())
}
