package gpucore

import (
	"fmt"
)

// Resource is the common interface of every device-owned object.
type Resource interface {
	// Label returns the debug label given at creation.
	Label() string
}

// Shader is a compiled shader stage.
type Shader interface {
	Resource
	Stage() ShaderStage
}

// GraphicsPipeline is a linked vertex+fragment pipeline with fixed state.
type GraphicsPipeline interface {
	Resource
}

// Buffer is device-local buffer storage.
type Buffer interface {
	Resource
	Size() uint32
}

// TransferBuffer is host-visible staging memory.
type TransferBuffer interface {
	Resource
	Size() uint32
}

// Texture is a device texture. Swapchain textures returned by
// AcquireSwapchainTexture also implement this interface.
type Texture interface {
	Resource
	Width() uint32
	Height() uint32
}

// Sampler is a texture sampler.
type Sampler interface {
	Resource
}

// ShaderStage identifies the pipeline stage a shader runs in.
type ShaderStage uint8

// Shader stages.
const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", s)
	}
}

// ShaderFormat is a bitmask of shader code formats.
type ShaderFormat uint32

// Shader formats.
const (
	// ShaderFormatSPIRV is SPIR-V bytecode (little-endian words).
	ShaderFormatSPIRV ShaderFormat = 1 << iota

	// ShaderFormatWGSL is WGSL source text.
	ShaderFormatWGSL
)

// Has reports whether all formats in f2 are present in f.
func (f ShaderFormat) Has(f2 ShaderFormat) bool { return f&f2 == f2 }

// PresentMode governs how rendered images become visible.
type PresentMode uint8

// Present modes.
const (
	// PresentModeVSync waits for vertical blank. Always supported.
	PresentModeVSync PresentMode = iota

	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate

	// PresentModeMailbox replaces the queued image without blocking.
	PresentModeMailbox
)

// String returns the present mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	default:
		return fmt.Sprintf("PresentMode(%d)", m)
	}
}

// SwapchainComposition describes the color space of the swapchain.
type SwapchainComposition uint8

// Swapchain compositions.
const (
	// SwapchainCompositionSDR is 8-bit sRGB-encoded output.
	SwapchainCompositionSDR SwapchainComposition = iota

	// SwapchainCompositionSDRLinear is 8-bit linear output.
	SwapchainCompositionSDRLinear
)

// TransferUsage is the direction of a transfer buffer.
type TransferUsage uint8

// Transfer usages.
const (
	TransferUsageUpload TransferUsage = iota
	TransferUsageDownload
)

// FillMode selects how triangles are rasterized.
type FillMode uint8

// Fill modes.
const (
	FillModeFill FillMode = iota
	FillModeLine
)

// SurfaceHandle is the pair of native handles a backend needs to create a
// presentation surface. Display is the X11 Display*, the Win32 HINSTANCE,
// or zero; Window is the X11 window id, the HWND, or a CAMetalLayer.
type SurfaceHandle struct {
	Display uintptr
	Window  uintptr
}

// Window is a presentable OS window.
type Window interface {
	// PixelSize returns the drawable size in pixels.
	PixelSize() (width, height int)

	// Minimized reports whether the window is currently minimized.
	Minimized() bool

	// SurfaceHandle returns the native handles for surface creation.
	SurfaceHandle() (SurfaceHandle, error)
}
