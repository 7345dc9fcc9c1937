// Package raster describes uncompressed layer images.
//
// A Descriptor carries the dimensions and sample layout of an image, a Rect
// selects a region of interest inside it, and a Buffer binds a descriptor to
// pixel bytes. Buffers may be contiguous (Stride == RowBytes) or strided views
// into a larger buffer, as produced by Buffer.Region.
//
// Samples wider than one byte are stored little-endian.
package raster
