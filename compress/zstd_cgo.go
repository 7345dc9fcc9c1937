//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/arloliu/pixcache/format"
	"github.com/valyala/gozstd"
)

func gozstdLevel(level format.Level) int {
	switch level {
	case format.LevelFastest:
		return 1
	case format.LevelBest:
		return 19
	default:
		return gozstd.DefaultCompressionLevel
	}
}

func zstdEncode(data []byte, level format.Level) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, gozstdLevel(level)), nil
}

func zstdDecode(data, out []byte) (int, error) {
	decoded, err := gozstd.Decompress(out[:0], data)
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrCorruptData, err)
	}

	return len(decoded), nil
}
