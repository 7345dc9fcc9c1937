package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
	"github.com/klauspost/compress/gzip"
)

var gzipWriterPools = newLevelPools(func(level format.Level) streamWriter {
	w, err := gzip.NewWriterLevel(nil, gzipLevel(level))
	if err != nil {
		// This should never happen with the fixed levels below
		panic(fmt.Sprintf("failed to create gzip writer for pool: %v", err))
	}

	return w
})

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

func gzipLevel(level format.Level) int {
	switch level {
	case format.LevelFastest:
		return gzip.BestSpeed
	case format.LevelBest:
		return gzip.BestCompression
	default:
		return gzip.DefaultCompression
	}
}

// GZipStrategy compresses pixels as a single-member gzip stream.
//
// The gzip trailer carries a CRC32, so corrupt payloads are detected on decode.
type GZipStrategy struct {
	level format.Level
}

var _ Strategy = (*GZipStrategy)(nil)

// NewGZipStrategy creates a new gzip strategy with the given encoder effort.
func NewGZipStrategy(level format.Level) GZipStrategy {
	return GZipStrategy{level: level}
}

func (s GZipStrategy) Type() format.StrategyType { return format.StrategyGZip }

func (s GZipStrategy) Level() format.Level { return s.level }

// Compress gzips the packed pixels of src.
func (s GZipStrategy) Compress(src *raster.Buffer) ([]byte, error) {
	return streamCompress("gzip", src, gzipWriterPools, s.level)
}

// Decompress gunzips data into dst.
func (s GZipStrategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		r, _ := gzipReaderPool.Get().(*gzip.Reader)
		if err := r.Reset(bytes.NewReader(data)); err != nil {
			return 0, fmt.Errorf("%w: gzip: %v", ErrCorruptData, err)
		}
		defer gzipReaderPool.Put(r)
		r.Multistream(false)

		return readExact(r, out)
	})
}
