package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains a hash table that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4HCLevel is the high-compression level used for format.LevelBest.
const lz4HCLevel = lz4.Level9

// LZ4Strategy compresses pixels with LZ4 block compression.
//
// It favors low CPU cost over ratio and is the default strategy, since layer
// images are accessed in tight loops (preview scrubbing, batch operations).
// LevelBest switches to the LZ4 high-compression encoder; decoding is identical
// for every level.
type LZ4Strategy struct {
	level format.Level
}

var _ Strategy = (*LZ4Strategy)(nil)

// NewLZ4Strategy creates a new LZ4 strategy.
//
// Parameters:
//   - level: Encoder effort (LevelDefault and LevelFastest use the fast encoder)
//
// Returns:
//   - LZ4Strategy: New LZ4 strategy instance
func NewLZ4Strategy(level format.Level) LZ4Strategy {
	return LZ4Strategy{level: level}
}

func (s LZ4Strategy) Type() format.StrategyType { return format.StrategyLZ4 }

func (s LZ4Strategy) Level() format.Level { return s.level }

// Compress compresses the packed pixel span of src as a single LZ4 block.
//
// Returns ErrIncompressible when LZ4 reports the block cannot be compressed.
func (s LZ4Strategy) Compress(src *raster.Buffer) ([]byte, error) {
	if src.Len() == 0 {
		return nil, nil
	}

	data, release := packed(src)
	defer release()

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var (
		n   int
		err error
	)
	if s.level == format.LevelBest {
		hc := lz4.CompressorHC{Level: lz4HCLevel}
		n, err = hc.CompressBlock(data, dst)
	} else {
		lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
		n, err = lc.CompressBlock(data, dst)
		lz4CompressorPool.Put(lc)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		return nil, ErrIncompressible
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block into dst. The block must decode to exactly
// dst.Len() bytes.
func (s LZ4Strategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		if len(out) == 0 {
			return len(data), nil
		}

		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return n, fmt.Errorf("%w: lz4: %v", ErrCorruptData, err)
		}

		return n, nil
	})
}
