// Package pool provides reusable byte buffers for codec hot paths.
//
// Layer images are large and compressed in tight loops, so encoder sinks and
// the packed staging copies made for strided buffers are recycled instead of
// reallocated for every call.
package pool

import "sync"

// Default pool sizing. Buffers that grew past the max threshold are dropped
// on Put instead of being retained by the pool.
const (
	CodecBufferDefaultSize     = 1024 * 64        // 64KiB
	CodecBufferMaxThreshold    = 1024 * 1024 * 16 // 16MiB
	StagingBufferDefaultSize   = 1024 * 1024      // 1MiB
	StagingBufferMaxThreshold  = 1024 * 1024 * 64 // 64MiB
	smallBufferGrowthThreshold = 4 * CodecBufferDefaultSize
)

// ByteBuffer is a growable byte slice that implements io.Writer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Resize sets the length of the buffer to n, growing it if necessary.
// Contents beyond the previous length are unspecified.
func (bb *ByteBuffer) Resize(n int) {
	if n > cap(bb.B) {
		bb.Grow(n - len(bb.B))
	}
	bb.B = bb.B[:n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by CodecBufferDefaultSize, larger ones by 25% of their
// capacity, and never by less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := CodecBufferDefaultSize
	if cap(bb.B) > smallBufferGrowthThreshold {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// Detach returns a copy of the contents that does not alias pooled memory.
func (bb *ByteBuffer) Detach() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
// A maxThreshold of zero retains buffers of any size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	codecPool   = NewByteBufferPool(CodecBufferDefaultSize, CodecBufferMaxThreshold)
	stagingPool = NewByteBufferPool(StagingBufferDefaultSize, StagingBufferMaxThreshold)
)

// GetCodecBuffer retrieves an empty encoder sink from the default codec pool.
func GetCodecBuffer() *ByteBuffer {
	return codecPool.Get()
}

// PutCodecBuffer returns an encoder sink to the default codec pool.
func PutCodecBuffer(bb *ByteBuffer) {
	codecPool.Put(bb)
}

// GetStagingBuffer retrieves a buffer of length n from the staging pool.
// The contents are unspecified; callers overwrite all n bytes.
func GetStagingBuffer(n int) *ByteBuffer {
	bb := stagingPool.Get()
	bb.Resize(n)

	return bb
}

// PutStagingBuffer returns a staging buffer to the pool.
func PutStagingBuffer(bb *ByteBuffer) {
	stagingPool.Put(bb)
}
