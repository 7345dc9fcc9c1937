package raster

import (
	"bytes"
	"fmt"
)

// Buffer is an uncompressed image: a descriptor plus pixel storage.
//
// Row y starts at Pix[y*Stride]. A buffer is contiguous when Stride equals
// Descriptor.RowBytes(), which is always true for buffers from New and Wrap.
// Views returned by Region share storage with their parent.
type Buffer struct {
	Descriptor

	Stride int
	Pix    []byte
}

// New allocates a zero-filled contiguous buffer for d.
func New(d Descriptor) *Buffer {
	return &Buffer{
		Descriptor: d,
		Stride:     d.RowBytes(),
		Pix:        make([]byte, d.Len()),
	}
}

// Wrap binds d to contiguous pixel bytes without copying.
//
// Returns ErrSizeMismatch when pix is shorter than d.Len(). Extra trailing bytes
// are excluded from the buffer.
func Wrap(d Descriptor, pix []byte) (*Buffer, error) {
	if len(pix) < d.Len() {
		return nil, fmt.Errorf("%w: have %d bytes, %s needs %d", ErrSizeMismatch, len(pix), d, d.Len())
	}

	return &Buffer{Descriptor: d, Stride: d.RowBytes(), Pix: pix[:d.Len()]}, nil
}

// WrapStrided binds d to pixel bytes whose rows are stride bytes apart.
func WrapStrided(d Descriptor, stride int, pix []byte) (*Buffer, error) {
	if stride < d.RowBytes() {
		return nil, fmt.Errorf("%w: stride %d shorter than row %d", ErrSizeMismatch, stride, d.RowBytes())
	}

	need := spanLen(d, stride)
	if len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, strided %s needs %d", ErrSizeMismatch, len(pix), d, need)
	}

	return &Buffer{Descriptor: d, Stride: stride, Pix: pix[:need]}, nil
}

// spanLen returns the number of bytes from the first pixel to the last.
func spanLen(d Descriptor, stride int) int {
	if d.IsEmpty() {
		return 0
	}

	return stride*(int(d.Height)-1) + d.RowBytes()
}

// Validate checks the sample layout and that Stride and Pix can hold every row.
//
// Buffers built from struct literals are not checked at construction, so
// consumers validate them before reading or writing pixels.
func (b *Buffer) Validate() error {
	if err := b.Descriptor.Validate(); err != nil {
		return err
	}
	if b.IsEmpty() {
		return nil
	}
	if b.Height > 1 && b.Stride < b.RowBytes() {
		return fmt.Errorf("%w: stride %d shorter than row %d", ErrSizeMismatch, b.Stride, b.RowBytes())
	}

	stride := b.Stride
	if b.Height == 1 {
		stride = b.RowBytes()
	}
	if need := spanLen(b.Descriptor, stride); len(b.Pix) < need {
		return fmt.Errorf("%w: have %d bytes, %s needs %d", ErrSizeMismatch, len(b.Pix), b.Descriptor, need)
	}

	return nil
}

// IsContiguous reports whether rows are packed back to back.
func (b *Buffer) IsContiguous() bool {
	return b.Stride == b.RowBytes() || b.Height <= 1
}

// Row returns the packed bytes of row y.
func (b *Buffer) Row(y int) []byte {
	start := y * b.Stride
	return b.Pix[start : start+b.RowBytes()]
}

// Bytes returns the pixels as one packed span. Contiguous buffers return their
// own storage; strided buffers return a packed copy.
func (b *Buffer) Bytes() []byte {
	if b.IsContiguous() {
		return b.Pix[:b.Len()]
	}

	out := make([]byte, b.Len())
	b.CopyTo(out)

	return out
}

// CopyTo packs the pixels into dst and returns the number of bytes written.
// dst must hold at least Len() bytes.
func (b *Buffer) CopyTo(dst []byte) int {
	if b.IsContiguous() {
		return copy(dst, b.Pix[:b.Len()])
	}

	rowBytes := b.RowBytes()
	n := 0
	for y := range int(b.Height) {
		n += copy(dst[y*rowBytes:], b.Row(y))
	}

	return n
}

// Region returns a view of r sharing storage with b.
//
// Returns ErrOutOfBounds when r does not lie inside b. An empty r yields an
// empty buffer with b's sample layout.
func (b *Buffer) Region(r Rect) (*Buffer, error) {
	if !r.Within(b.Descriptor) {
		return nil, fmt.Errorf("%w: %s in %s", ErrOutOfBounds, r, b.Descriptor)
	}

	d := b.WithSize(r.Width, r.Height)
	if r.IsEmpty() {
		return &Buffer{Descriptor: d, Stride: d.RowBytes()}, nil
	}

	start := int(r.Y)*b.Stride + int(r.X)*b.PixelSize()

	return &Buffer{
		Descriptor: d,
		Stride:     b.Stride,
		Pix:        b.Pix[start : start+spanLen(d, b.Stride)],
	}, nil
}

// Paste copies src into b with its top-left corner at (x, y).
//
// src must share b's sample layout and fit inside b.
func (b *Buffer) Paste(src *Buffer, x, y uint32) error {
	if src.Depth != b.Depth || src.Channels != b.Channels {
		return fmt.Errorf("%w: paste %s into %s", ErrSizeMismatch, src.Descriptor, b.Descriptor)
	}

	r := NewRect(x, y, src.Width, src.Height)
	if !r.Within(b.Descriptor) {
		return fmt.Errorf("%w: paste %s at %s", ErrOutOfBounds, src.Descriptor, r)
	}

	offset := int(x) * b.PixelSize()
	for row := range int(src.Height) {
		dst := b.Row(int(y) + row)
		copy(dst[offset:], src.Row(row))
	}

	return nil
}

// Clone returns a contiguous deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := New(b.Descriptor)
	b.CopyTo(out.Pix)

	return out
}

// Equal reports whether b and other describe the same image with identical pixels,
// regardless of stride.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Descriptor != other.Descriptor {
		return false
	}
	if b.IsContiguous() && other.IsContiguous() {
		return bytes.Equal(b.Pix[:b.Len()], other.Pix[:other.Len()])
	}

	for y := range int(b.Height) {
		if !bytes.Equal(b.Row(y), other.Row(y)) {
			return false
		}
	}

	return true
}
