package compress

import (
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
)

// NoOpStrategy stores pixel bytes verbatim.
//
// It is both an explicit "no compression" choice and the strategy recorded for
// entries that fell back to raw storage.
type NoOpStrategy struct{}

var _ Strategy = (*NoOpStrategy)(nil)

// NewNoOpStrategy creates a new no-operation strategy.
func NewNoOpStrategy() NoOpStrategy {
	return NoOpStrategy{}
}

func (s NoOpStrategy) Type() format.StrategyType { return format.StrategyNone }

func (s NoOpStrategy) Level() format.Level { return format.LevelDefault }

// Compress returns a packed copy of the source pixels.
//
// Unlike a pass-through, the result never aliases src, so callers may keep it
// after the source buffer is reused.
func (s NoOpStrategy) Compress(src *raster.Buffer) ([]byte, error) {
	out := make([]byte, src.Len())
	src.CopyTo(out)

	return out, nil
}

// Decompress copies data verbatim into dst. data must be exactly dst.Len() bytes.
func (s NoOpStrategy) Decompress(data []byte, dst *raster.Buffer) error {
	return decodeInto(dst, func(out []byte) (int, error) {
		if len(data) != len(out) {
			return len(data), nil
		}

		return copy(out, data), nil
	})
}
