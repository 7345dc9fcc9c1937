package raster

import "fmt"

// Rect is a region of interest in pixel coordinates. A rect with zero width or
// height is empty and means "no region".
type Rect struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// NewRect returns the rectangle at (x, y) with the given size.
func NewRect(x, y, width, height uint32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// IsEmpty reports whether r covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Area returns the number of pixels in r.
func (r Rect) Area() int {
	return int(r.Width) * int(r.Height)
}

// Within reports whether r lies entirely inside an image described by d.
func (r Rect) Within(d Descriptor) bool {
	// uint64 sums cannot overflow for uint32 operands.
	return uint64(r.X)+uint64(r.Width) <= uint64(d.Width) &&
		uint64(r.Y)+uint64(r.Height) <= uint64(d.Height)
}

// Covers reports whether r is exactly the full bounds of d.
func (r Rect) Covers(d Descriptor) bool {
	return r == d.Bounds()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
