package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no graphics API has a usable adapter.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrSurfaceUnsupported is returned by ClaimWindow when the adapter
	// cannot present to the window's surface.
	ErrSurfaceUnsupported = errors.New("native: surface not supported by adapter")

	// ErrTimeout is returned by WaitIdle when the GPU does not finish in time.
	ErrTimeout = errors.New("native: timed out waiting for GPU")

	// ErrNoPipeline is returned by Submit when a render pass bound samplers
	// or drew before binding a pipeline.
	ErrNoPipeline = errors.New("native: no pipeline bound")

	// ErrUnsupportedFormat is returned by Submit for texture uploads in a format
	// without a fixed texel size.
	ErrUnsupportedFormat = errors.New("native: unsupported texture format")

	// ErrUnsupportedRegion is returned by Submit for uploads that overrun
	// their buffers or target a texture region away from the origin.
	ErrUnsupportedRegion = errors.New("native: unsupported upload region")

	// ErrInvalidSize is returned when creating zero-sized resources.
	ErrInvalidSize = errors.New("native: invalid size")
)
