package raster

import (
	"fmt"

	"github.com/arloliu/pixcache/format"
)

// MaxChannels is the largest supported channel count.
const MaxChannels = 4

// Descriptor describes an uncompressed image without owning its pixels.
type Descriptor struct {
	Width    uint32
	Height   uint32
	Depth    format.BitDepth
	Channels uint8
}

// NewDescriptor returns a descriptor for a width x height image.
func NewDescriptor(width, height uint32, depth format.BitDepth, channels uint8) Descriptor {
	return Descriptor{Width: width, Height: height, Depth: depth, Channels: channels}
}

// Gray8 returns a single-channel 8-bit descriptor, the common layer image layout.
func Gray8(width, height uint32) Descriptor {
	return NewDescriptor(width, height, format.Depth8U, 1)
}

// Validate checks the sample layout. Zero-sized descriptors are valid.
func (d Descriptor) Validate() error {
	if d.Depth.Bytes() == 0 {
		return fmt.Errorf("%w: depth %s", ErrInvalidDescriptor, d.Depth)
	}
	if d.Channels == 0 || d.Channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrInvalidDescriptor, d.Channels)
	}

	return nil
}

// PixelSize returns the number of bytes per pixel.
func (d Descriptor) PixelSize() int {
	return d.Depth.Bytes() * int(d.Channels)
}

// RowBytes returns the number of bytes in one packed row.
func (d Descriptor) RowBytes() int {
	return int(d.Width) * d.PixelSize()
}

// Len returns the packed byte length of the whole image.
func (d Descriptor) Len() int {
	return d.RowBytes() * int(d.Height)
}

// IsEmpty reports whether the image has no pixels.
func (d Descriptor) IsEmpty() bool {
	return d.Width == 0 || d.Height == 0
}

// Bounds returns the rectangle covering the whole image.
func (d Descriptor) Bounds() Rect {
	return Rect{Width: d.Width, Height: d.Height}
}

// WithSize returns a copy of d with a different size and the same sample layout.
func (d Descriptor) WithSize(width, height uint32) Descriptor {
	d.Width = width
	d.Height = height

	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%dx%d %sC%d", d.Width, d.Height, d.Depth, d.Channels)
}
