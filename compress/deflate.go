package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
	"github.com/klauspost/compress/flate"
)

var deflateWriterPools = newLevelPools(func(level format.Level) streamWriter {
	w, err := flate.NewWriter(nil, deflateLevel(level))
	if err != nil {
		// This should never happen with the fixed levels below
		panic(fmt.Sprintf("failed to create deflate writer for pool: %v", err))
	}

	return w
})

// deflateReaderPool pools inflaters; they are reset onto each payload.
var deflateReaderPool = sync.Pool{
	New: func() any {
		return flate.NewReader(nil)
	},
}

func deflateLevel(level format.Level) int {
	switch level {
	case format.LevelFastest:
		return flate.BestSpeed
	case format.LevelBest:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// DeflateStrategy compresses pixels as a raw deflate stream.
//
// Chosen when ratio matters more than throughput.
type DeflateStrategy struct {
	level format.Level
}

var _ Strategy = (*DeflateStrategy)(nil)

// NewDeflateStrategy creates a new deflate strategy with the given encoder effort.
func NewDeflateStrategy(level format.Level) DeflateStrategy {
	return DeflateStrategy{level: level}
}

func (s DeflateStrategy) Type() format.StrategyType { return format.StrategyDeflate }

func (s DeflateStrategy) Level() format.Level { return s.level }

// Compress deflates the packed pixels of src.
func (s DeflateStrategy) Compress(src *raster.Buffer) ([]byte, error) {
	return streamCompress("deflate", src, deflateWriterPools, s.level)
}

// Decompress inflates data into dst.
func (s DeflateStrategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		r, _ := deflateReaderPool.Get().(io.ReadCloser)
		if err := r.(flate.Resetter).Reset(bytes.NewReader(data), nil); err != nil {
			return 0, fmt.Errorf("%w: deflate: %v", ErrCorruptData, err)
		}
		defer deflateReaderPool.Put(r)

		return readExact(r, out)
	})
}
