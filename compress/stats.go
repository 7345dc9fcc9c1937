package compress

import "github.com/arloliu/pixcache/format"

// Stats describes the outcome of compressing one image.
type Stats struct {
	// Algorithm identifies the strategy that produced the stored bytes.
	Algorithm format.StrategyType

	// OriginalSize is the size of the pixel bytes before compression.
	OriginalSize int64

	// CompressedSize is the size of the stored bytes.
	CompressedSize int64
}

// CompressionRatio returns how many times smaller the stored bytes are
// (original size / compressed size).
//
// Values greater than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if either size is zero)
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 || s.CompressedSize == 0 {
		return 0.0
	}

	return float64(s.OriginalSize) / float64(s.CompressedSize)
}

// SpaceSavings returns the space savings as a percentage of the original size.
//
// Returns:
//   - float64: Space savings percentage (0.0 if the original size is zero)
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return 100.0 - float64(s.CompressedSize)*100.0/float64(s.OriginalSize)
}
