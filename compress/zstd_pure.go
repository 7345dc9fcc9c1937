//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/pixcache/format"
	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation overhead.
// The klauspost/compress/zstd decoder is designed to operate without
// allocations after a warmup, so decoders are kept rather than recreated.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPools holds one encoder pool per format.Level.
var zstdEncoderPools = func() *[3]sync.Pool {
	pools := &[3]sync.Pool{}
	for i, level := range []zstd.EncoderLevel{zstd.SpeedDefault, zstd.SpeedFastest, zstd.SpeedBestCompression} {
		pools[i].New = func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderCRC(true),
			)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}

			return encoder
		}
	}

	return pools
}()

func zstdEncode(data []byte, level format.Level) ([]byte, error) {
	idx := int(level)
	if idx < 0 || idx >= len(zstdEncoderPools) {
		idx = int(format.LevelDefault)
	}

	encoder, _ := zstdEncoderPools[idx].Get().(*zstd.Encoder)
	defer zstdEncoderPools[idx].Put(encoder)

	// EncodeAll is stateless - safe to use with pooled encoder
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func zstdDecode(data, out []byte) (int, error) {
	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll appends to out[:0]; a result longer than out reallocates and
	// is reported as a size mismatch by the caller.
	decoded, err := decoder.DecodeAll(data, out[:0])
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrCorruptData, err)
	}
	return len(decoded), nil
}
