package raster

import "errors"

// Sentinel errors for raster operations.
var (
	// ErrInvalidDescriptor is returned when a descriptor has an unknown depth or channel count.
	ErrInvalidDescriptor = errors.New("raster: invalid descriptor")

	// ErrOutOfBounds is returned when a rectangle does not fit inside an image.
	ErrOutOfBounds = errors.New("raster: rectangle out of bounds")

	// ErrSizeMismatch is returned when pixel storage does not match a descriptor.
	ErrSizeMismatch = errors.New("raster: size mismatch")
)
