package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/pool"
	"github.com/arloliu/pixcache/raster"
)

// streamWriter is a resettable stream encoder such as flate.Writer or gzip.Writer.
type streamWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// levelPools holds one encoder pool per format.Level. Encoders carry their
// level from construction, so they cannot be shared across levels.
type levelPools [3]sync.Pool

func newLevelPools(newWriter func(level format.Level) streamWriter) *levelPools {
	p := &levelPools{}
	for i, level := range []format.Level{format.LevelDefault, format.LevelFastest, format.LevelBest} {
		p[i].New = func() any { return newWriter(level) }
	}

	return p
}

func (p *levelPools) get(level format.Level) (streamWriter, *sync.Pool) {
	idx := int(level)
	if idx < 0 || idx >= len(p) {
		idx = int(format.LevelDefault)
	}
	w, _ := p[idx].Get().(streamWriter)

	return w, &p[idx]
}

// streamCompress encodes the packed pixels of src through a pooled encoder.
// Strided buffers are staged through a contiguous copy first.
func streamCompress(name string, src *raster.Buffer, pools *levelPools, level format.Level) ([]byte, error) {
	data, release := packed(src)
	defer release()

	sink := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(sink)

	w, wp := pools.get(level)
	w.Reset(sink)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%s compress: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", name, err)
	}
	wp.Put(w)

	return sink.Detach(), nil
}
