package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/pool"
	"github.com/arloliu/pixcache/raster"
)

// Compressor encodes the pixels of a raster buffer.
//
// The source buffer may be contiguous or strided; it is only read for the
// duration of the call. The returned slice is newly allocated and owned by the
// caller.
type Compressor interface {
	Compress(src *raster.Buffer) ([]byte, error)
}

// Decompressor decodes data produced by the matching Compressor into dst.
//
// dst must already describe the expected image. Implementations fill every
// pixel of dst or fail; a payload that decodes to a different size, or cannot
// be decoded at all, returns an error wrapping ErrCorruptData.
type Decompressor interface {
	Decompress(data []byte, dst *raster.Buffer) error
}

// Strategy is an interchangeable compression algorithm for layer images.
//
// Strategies are immutable values that are safe for concurrent use by multiple
// goroutines against independent buffers. Two strategies are interchangeable
// when their Type values are equal; Level only tunes the encoder side.
type Strategy interface {
	// Type returns the identity of the algorithm.
	Type() format.StrategyType

	// Level returns the configured encoder effort.
	Level() format.Level

	Compressor
	Decompressor
}

// SameType reports whether a and b decode each other's output.
func SameType(a, b Strategy) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Type() == b.Type()
}

// packed returns the pixels of src as one contiguous span. Strided buffers are
// staged through a pooled copy; the returned release func must be called once
// the span is no longer used.
func packed(src *raster.Buffer) ([]byte, func()) {
	if src.IsContiguous() {
		return src.Pix[:src.Len()], func() {}
	}

	staging := pool.GetStagingBuffer(src.Len())
	src.CopyTo(staging.B)

	return staging.B, func() { pool.PutStagingBuffer(staging) }
}

// decodeInto runs decode against a contiguous span sized for dst and scatters
// the result into dst when dst is strided. decode must fill the whole span and
// report how many bytes it produced.
func decodeInto(dst *raster.Buffer, decode func(out []byte) (int, error)) error {
	want := dst.Len()
	if dst.IsContiguous() {
		n, err := decode(dst.Pix[:want])
		if err != nil {
			return err
		}

		return checkSize(n, want)
	}

	staging := pool.GetStagingBuffer(want)
	defer pool.PutStagingBuffer(staging)

	n, err := decode(staging.B)
	if err != nil {
		return err
	}
	if err := checkSize(n, want); err != nil {
		return err
	}

	rowBytes := dst.RowBytes()
	for y := range int(dst.Height) {
		copy(dst.Row(y), staging.B[y*rowBytes:(y+1)*rowBytes])
	}

	return nil
}

func checkSize(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: decoded %d bytes, expected %d", ErrCorruptData, got, want)
	}

	return nil
}

// readExact fills out from r and verifies that the stream ends exactly there.
func readExact(r io.Reader, out []byte) (int, error) {
	n, err := io.ReadFull(r, out)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return n, fmt.Errorf("%w: stream ended after %d of %d bytes", ErrCorruptData, n, len(out))
		}

		return n, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	var probe [1]byte
	extra, err := r.Read(probe[:])
	if extra > 0 {
		return n, fmt.Errorf("%w: trailing data after %d bytes", ErrCorruptData, n)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	return n, nil
}
