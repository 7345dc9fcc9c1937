package cache

import "errors"

// Sentinel errors for cache entry operations.
var (
	// ErrNilBuffer is returned when a nil pixel buffer is passed to a write operation.
	ErrNilBuffer = errors.New("cache: nil buffer")

	// ErrNilEntry is returned when a nil entry is submitted to a scheduler.
	ErrNilEntry = errors.New("cache: nil entry")

	// ErrNilStrategy is returned when a nil strategy is configured.
	ErrNilStrategy = errors.New("cache: nil strategy")

	// ErrInvalidDescriptor is returned when a buffer's sample layout is not supported.
	ErrInvalidDescriptor = errors.New("cache: invalid descriptor")

	// ErrROIOutOfBounds is returned when a region of interest does not fit inside the buffer.
	ErrROIOutOfBounds = errors.New("cache: roi out of bounds")

	// ErrDecompression wraps every failure to reconstruct an entry's pixels.
	ErrDecompression = errors.New("cache: decompression failed")

	// ErrChecksumMismatch is returned when decoded pixels do not match the checksum recorded at write time.
	ErrChecksumMismatch = errors.New("cache: checksum mismatch")

	// ErrSchedulerClosed is returned when a task is submitted to a closed scheduler.
	ErrSchedulerClosed = errors.New("cache: scheduler closed")
)
