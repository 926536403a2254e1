package gpucore

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Device errors shared by all implementations.
var (
	// ErrWindowClaimed is returned when a device already presents to a window.
	ErrWindowClaimed = errors.New("gpucore: window already claimed")

	// ErrWindowNotClaimed is returned for swapchain operations on an unclaimed window.
	ErrWindowNotClaimed = errors.New("gpucore: window not claimed")

	// ErrPresentModeUnsupported is returned by SetSwapchainParameters for a
	// mode the surface does not support.
	ErrPresentModeUnsupported = errors.New("gpucore: present mode not supported")

	// ErrCompositionUnsupported is returned by SetSwapchainParameters for a
	// swapchain composition the surface does not support.
	ErrCompositionUnsupported = errors.New("gpucore: swapchain composition not supported")

	// ErrShaderFormat is returned when shader code is in a format the device
	// cannot consume.
	ErrShaderFormat = errors.New("gpucore: unsupported shader format")

	// ErrTransferMapped is returned when mapping an already mapped transfer buffer.
	ErrTransferMapped = errors.New("gpucore: transfer buffer already mapped")

	// ErrPassActive is returned when beginning a pass while another pass on
	// the same command buffer has not ended.
	ErrPassActive = errors.New("gpucore: pass already active")

	// ErrSubmitted is returned when using a command buffer after Submit.
	ErrSubmitted = errors.New("gpucore: command buffer already submitted")
)

// Device is a GPU device able to present to one window.
//
// Devices are not safe for concurrent use; all calls are expected from the
// thread that created the device.
//
// Resource lifecycle:
//   - Resources are created via Create* methods from immutable descriptors
//   - Resources must be released exactly once via the matching Release* method
//   - All resources must be released before Destroy
type Device interface {
	// Driver returns the native graphics API name, e.g. "vulkan".
	Driver() string

	// ShaderFormats returns the shader formats CreateShader accepts.
	ShaderFormats() ShaderFormat

	// ClaimWindow creates the window's swapchain. A device presents to at
	// most one window; a second claim returns ErrWindowClaimed.
	ClaimWindow(w Window) error

	// ReleaseWindow destroys the swapchain of a claimed window.
	ReleaseWindow(w Window)

	// SupportsPresentMode reports whether the claimed window's surface
	// supports the mode. PresentModeVSync is always supported.
	SupportsPresentMode(w Window, mode PresentMode) bool

	// SetSwapchainParameters reconfigures the swapchain. On error the
	// previous parameters stay active.
	SetSwapchainParameters(w Window, composition SwapchainComposition, mode PresentMode) error

	// SwapchainFormat returns the texture format of the window's swapchain.
	SwapchainFormat(w Window) gputypes.TextureFormat

	// CreateShader creates a shader stage.
	CreateShader(desc *ShaderDesc) (Shader, error)
	ReleaseShader(s Shader)

	// CreateGraphicsPipeline links a graphics pipeline. Shaders may be
	// released once this returns.
	CreateGraphicsPipeline(desc *GraphicsPipelineDesc) (GraphicsPipeline, error)
	ReleaseGraphicsPipeline(p GraphicsPipeline)

	// CreateBuffer creates device-local buffer storage.
	CreateBuffer(desc *BufferDesc) (Buffer, error)
	ReleaseBuffer(b Buffer)

	// CreateTransferBuffer creates host-visible staging memory.
	CreateTransferBuffer(desc *TransferBufferDesc) (TransferBuffer, error)

	// ReleaseTransferBuffer releases staging memory. Destruction is deferred
	// until submitted work referencing the buffer completes.
	ReleaseTransferBuffer(tb TransferBuffer)

	// MapTransferBuffer returns host memory of the buffer's full size.
	// The slice is valid until UnmapTransferBuffer.
	MapTransferBuffer(tb TransferBuffer, cycle bool) ([]byte, error)
	UnmapTransferBuffer(tb TransferBuffer)

	// CreateTexture creates a texture.
	CreateTexture(desc *TextureDesc) (Texture, error)
	ReleaseTexture(t Texture)

	// CreateSampler creates a sampler.
	CreateSampler(desc *SamplerDesc) (Sampler, error)
	ReleaseSampler(s Sampler)

	// AcquireCommandBuffer returns a new command buffer ready for recording.
	AcquireCommandBuffer() (CommandBuffer, error)

	// WaitIdle blocks until all submitted work has completed.
	WaitIdle() error

	// Destroy releases the device. It must be called after every resource
	// and the claimed window have been released.
	Destroy()
}

// CommandBuffer records passes for one submission.
type CommandBuffer interface {
	// BeginCopyPass starts a copy pass.
	BeginCopyPass() (CopyPass, error)

	// AcquireSwapchainTexture returns the next swapchain image of the window.
	// It returns (nil, nil) when no image is available, which is not an error.
	AcquireSwapchainTexture(w Window) (Texture, error)

	// BeginRenderPass starts a render pass on the given color targets.
	BeginRenderPass(targets []ColorTargetInfo) (RenderPass, error)

	// Submit hands recorded work to the device queue and presents any
	// acquired swapchain texture. The command buffer cannot be reused.
	Submit() error

	// Cancel discards the command buffer without submitting it. It must not
	// be called after a swapchain texture was acquired.
	Cancel()
}

// CopyPass records transfers from staging memory to device resources.
type CopyPass interface {
	UploadToBuffer(src TransferBufferLocation, dst BufferRegion, cycle bool)
	UploadToTexture(src TextureTransferInfo, dst TextureRegion, cycle bool)
	End()
}

// RenderPass records draw commands.
type RenderPass interface {
	BindGraphicsPipeline(p GraphicsPipeline)
	BindVertexBuffers(firstSlot uint32, bindings []BufferBinding)
	BindFragmentSamplers(firstSlot uint32, bindings []TextureSamplerBinding)
	DrawPrimitives(numVertices, numInstances, firstVertex, firstInstance uint32)
	End()
}
