package compress

import "errors"

// Sentinel errors for compression strategies.
var (
	// ErrCorruptData is returned when a payload cannot be decoded into the destination image.
	ErrCorruptData = errors.New("compress: corrupt data")

	// ErrIncompressible is returned by compressors that detect their output would not be smaller.
	ErrIncompressible = errors.New("compress: data is incompressible")

	// ErrUnsupportedStrategy is returned for unknown strategy types.
	ErrUnsupportedStrategy = errors.New("compress: unsupported strategy")

	// ErrUnsupportedLayout is returned when a strategy cannot represent an image's sample layout.
	ErrUnsupportedLayout = errors.New("compress: unsupported pixel layout")
)
