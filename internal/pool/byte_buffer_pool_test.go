package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = bb.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("hello world"), bb.B)

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(16)
		assert.Equal(t, CodecBufferDefaultSize, cap(bb.B))
	})

	t.Run("large buffer grows by quarter", func(t *testing.T) {
		size := smallBufferGrowthThreshold * 2
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("grows by at least required", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(CodecBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, cap(bb.B), CodecBufferDefaultSize*3)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(2)
		_, _ = bb.Write([]byte{1, 2})
		bb.Grow(1000)
		assert.Equal(t, []byte{1, 2}, bb.B)
	})
}

func TestByteBuffer_ResizeAndDetach(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Resize(10)
	require.Equal(t, 10, len(bb.B))

	copy(bb.B, []byte("0123456789"))
	detached := bb.Detach()
	bb.B[0] = 'x'
	assert.Equal(t, []byte("0123456789"), detached, "Detach must not alias the buffer")

	bb.Resize(3)
	assert.Equal(t, []byte("x12"), bb.B)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	big := p.Get()
	big.Grow(1024)
	p.Put(big)

	// sync.Pool gives no retention guarantee, so only check that what comes
	// back is empty and never the oversized buffer.
	got := p.Get()
	assert.Equal(t, 0, len(got.B))
	assert.LessOrEqual(t, cap(got.B), 64)

	require.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools(t *testing.T) {
	codec := GetCodecBuffer()
	require.NotNil(t, codec)
	assert.Equal(t, 0, len(codec.B))
	_, _ = codec.Write([]byte("abc"))
	PutCodecBuffer(codec)

	staging := GetStagingBuffer(4096)
	assert.Equal(t, 4096, len(staging.B))
	PutStagingBuffer(staging)

	again := GetCodecBuffer()
	assert.Equal(t, 0, len(again.B), "pooled buffers must come back reset")
	PutCodecBuffer(again)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			for range 100 {
				bb := GetStagingBuffer(256)
				for j := range bb.B {
					bb.B[j] = seed
				}
				for _, v := range bb.B {
					if v != seed {
						t.Errorf("buffer shared between goroutines")
						return
					}
				}
				PutStagingBuffer(bb)
			}
		}(byte(i))
	}
	wg.Wait()
}
