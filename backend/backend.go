package backend

import (
	"errors"

	"github.com/gogpu/quad/gpucore"
)

// Backend names.
const (
	// BackendNative is the gogpu/wgpu HAL backend.
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoShaderFormat is returned when a device accepts none of the
	// requested shader formats.
	ErrNoShaderFormat = errors.New("backend: no compatible shader format")
)

// Options configures device creation.
type Options struct {
	// ShaderFormats is the set of shader formats the caller can provide.
	// Zero means any.
	ShaderFormats gpucore.ShaderFormat

	// Debug enables verbose resource logging in backends that support it.
	Debug bool

	// LowPower prefers integrated over discrete adapters.
	LowPower bool
}

// Factory opens a device.
type Factory func(opts Options) (gpucore.Device, error)
