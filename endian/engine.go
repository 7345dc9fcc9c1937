// Package endian provides byte order utilities for multi-byte pixel samples.
//
// Raster buffers store 16-bit samples little-endian, while image codecs such as
// PNG (and Go's image.Gray16 / image.NRGBA64 types) use big-endian samples. This
// package combines encoding/binary's ByteOrder and AppendByteOrder into a single
// EndianEngine and provides helpers to move 16-bit sample spans between orders.
//
// # Basic Usage
//
//	le := endian.GetLittleEndianEngine()
//	be := endian.GetBigEndianEngine()
//	endian.ConvertUint16Samples(dst, src, le, be)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the raster sample order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, the PNG sample order.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ConvertUint16Samples copies 16-bit samples from src (encoded with from) into dst
// (encoded with to). It converts min(len(dst), len(src)) bytes rounded down to a
// whole sample and returns the number of bytes written.
//
// dst and src may be the same slice; partial overlap is not supported.
func ConvertUint16Samples(dst, src []byte, from, to EndianEngine) int {
	n := min(len(dst), len(src)) &^ 1
	if from == to {
		copy(dst[:n], src[:n])
		return n
	}

	for i := 0; i < n; i += 2 {
		to.PutUint16(dst[i:], from.Uint16(src[i:]))
	}

	return n
}
