// Package hash provides the checksums and digests used by cache entries.
//
// Checksum is a fast non-cryptographic xxHash64 used to verify decoded pixels.
// Sum is a BLAKE3-256 content digest used for equality and deduplication.
package hash

import (
	"encoding/hex"

	"github.com/arloliu/pixcache/raster"
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a 32-byte BLAKE3 content digest.
type Digest [32]byte

// Sum computes the BLAKE3-256 digest of data.
func Sum(data []byte) Digest {
	return blake3.Sum256(data)
}

// IsZero reports whether d is the zero value (not a computed digest).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ChecksumBuffer computes the xxHash64 of the packed pixels of b. Strided
// buffers are hashed row by row, so the result equals Checksum(b.Bytes()).
func ChecksumBuffer(b *raster.Buffer) uint64 {
	if b.IsContiguous() {
		return xxhash.Sum64(b.Pix[:b.Len()])
	}

	d := xxhash.New()
	for y := range int(b.Height) {
		_, _ = d.Write(b.Row(y))
	}

	return d.Sum64()
}
