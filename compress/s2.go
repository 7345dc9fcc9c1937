package compress

import (
	"fmt"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
	"github.com/klauspost/compress/s2"
)

// S2Strategy compresses pixels with S2, a Snappy-compatible block format.
//
// LevelFastest uses the plain encoder, LevelDefault the "better" encoder and
// LevelBest the "best" encoder; all produce the same block format.
type S2Strategy struct {
	level format.Level
}

var _ Strategy = (*S2Strategy)(nil)

// NewS2Strategy creates a new S2 strategy with the given encoder effort.
func NewS2Strategy(level format.Level) S2Strategy {
	return S2Strategy{level: level}
}

func (s S2Strategy) Type() format.StrategyType { return format.StrategyS2 }

func (s S2Strategy) Level() format.Level { return s.level }

// Compress compresses the packed pixels of src as one S2 block.
func (s S2Strategy) Compress(src *raster.Buffer) ([]byte, error) {
	data, release := packed(src)
	defer release()

	switch s.level {
	case format.LevelFastest:
		return s2.Encode(nil, data), nil
	case format.LevelBest:
		return s2.EncodeBest(nil, data), nil
	default:
		return s2.EncodeBetter(nil, data), nil
	}
}

// Decompress decodes an S2 block into dst.
func (s S2Strategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		n, err := s2.DecodedLen(data)
		if err != nil {
			return 0, fmt.Errorf("%w: s2: %v", ErrCorruptData, err)
		}
		if n != len(out) {
			return n, nil
		}

		decoded, err := s2.Decode(out, data)
		if err != nil {
			return 0, fmt.Errorf("%w: s2: %v", ErrCorruptData, err)
		}

		return len(decoded), nil
	})
}
