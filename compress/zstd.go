package compress

import (
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
)

// ZstdStrategy compresses pixels with Zstandard.
//
// Zstd reaches ratios close to PNG on layer images while decoding several
// times faster, which makes it a good fit for entries that are written once
// and read many times.
//
// The pure Go implementation (klauspost/compress/zstd) is used by default.
// Building with the gozstd tag and cgo enabled switches to valyala/gozstd.
type ZstdStrategy struct {
	level format.Level
}

var _ Strategy = (*ZstdStrategy)(nil)

// NewZstdStrategy creates a new Zstd strategy with the given encoder effort.
//
// Example:
//
//	strategy := NewZstdStrategy(format.LevelBest)
//	payload, err := strategy.Compress(buf)
//	if err != nil {
//		return err
//	}
func NewZstdStrategy(level format.Level) ZstdStrategy {
	return ZstdStrategy{level: level}
}

func (s ZstdStrategy) Type() format.StrategyType { return format.StrategyZstd }

func (s ZstdStrategy) Level() format.Level { return s.level }

// Compress compresses the packed pixels of src into a single Zstd frame.
func (s ZstdStrategy) Compress(src *raster.Buffer) ([]byte, error) {
	data, release := packed(src)
	defer release()

	return zstdEncode(data, s.level)
}

// Decompress decodes a Zstd frame into dst.
func (s ZstdStrategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		return zstdDecode(data, out)
	})
}
