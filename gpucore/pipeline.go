package gpucore

import "github.com/gogpu/gputypes"

// ShaderDesc describes a shader stage to create.
type ShaderDesc struct {
	// Label is an optional debug name.
	Label string

	// Code is the shader code in Format.
	Code []byte

	// Format is exactly one of the ShaderFormat flags.
	Format ShaderFormat

	// Stage is the pipeline stage.
	Stage ShaderStage

	// EntryPoint is the name of the entry function.
	EntryPoint string

	// NumSamplers is the number of texture+sampler pairs the stage reads.
	NumSamplers uint32

	// NumUniformBuffers is the number of uniform buffers the stage reads.
	NumUniformBuffers uint32
}

// VertexBufferDesc describes one vertex buffer binding slot.
type VertexBufferDesc struct {
	Slot     uint32
	Pitch    uint32
	StepMode gputypes.VertexStepMode
}

// VertexAttribute maps a region of a vertex buffer slot to a shader input.
type VertexAttribute struct {
	Location   uint32
	BufferSlot uint32
	Format     gputypes.VertexFormat
	Offset     uint32
}

// RasterizerState is the fixed rasterizer configuration of a pipeline.
type RasterizerState struct {
	FillMode  FillMode
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace
}

// ColorTargetDesc describes one color attachment of a pipeline.
// A nil Blend disables blending.
type ColorTargetDesc struct {
	Format gputypes.TextureFormat
	Blend  *gputypes.BlendState
}

// DepthStencilDesc enables depth testing when non-nil on a pipeline.
type DepthStencilDesc struct {
	Format       gputypes.TextureFormat
	DepthCompare gputypes.CompareFunction
	DepthWrite   bool
}

// GraphicsPipelineDesc describes a graphics pipeline to link.
type GraphicsPipelineDesc struct {
	Label            string
	VertexShader     Shader
	FragmentShader   Shader
	VertexBuffers    []VertexBufferDesc
	VertexAttributes []VertexAttribute
	Topology         gputypes.PrimitiveTopology
	Rasterizer       RasterizerState
	SampleCount      uint32
	DepthStencil     *DepthStencilDesc
	ColorTargets     []ColorTargetDesc
}

// BufferDesc describes a device-local buffer.
type BufferDesc struct {
	Label string
	Usage gputypes.BufferUsage
	Size  uint32
}

// TransferBufferDesc describes a staging buffer.
type TransferBufferDesc struct {
	Label string
	Usage TransferUsage
	Size  uint32
}

// TextureDesc describes a texture.
type TextureDesc struct {
	Label             string
	Dimension         gputypes.TextureDimension
	Format            gputypes.TextureFormat
	Usage             gputypes.TextureUsage
	Width             uint32
	Height            uint32
	LayerCountOrDepth uint32
	NumLevels         uint32
	SampleCount       uint32
}

// SamplerDesc describes a sampler.
type SamplerDesc struct {
	Label            string
	MinFilter        gputypes.FilterMode
	MagFilter        gputypes.FilterMode
	MipmapFilter     gputypes.FilterMode
	AddressModeU     gputypes.AddressMode
	AddressModeV     gputypes.AddressMode
	AddressModeW     gputypes.AddressMode
	MaxAnisotropy    uint16
	EnableAnisotropy bool
}

// TransferBufferLocation is a byte offset into a transfer buffer.
type TransferBufferLocation struct {
	TransferBuffer TransferBuffer
	Offset         uint32
}

// BufferRegion is a byte range of a buffer.
type BufferRegion struct {
	Buffer Buffer
	Offset uint32
	Size   uint32
}

// TextureTransferInfo describes the layout of pixel data in a transfer buffer.
// PixelsPerRow and RowsPerLayer of zero mean tightly packed.
type TextureTransferInfo struct {
	TransferBuffer TransferBuffer
	Offset         uint32
	PixelsPerRow   uint32
	RowsPerLayer   uint32
}

// TextureRegion is a box within one mip level and layer of a texture.
type TextureRegion struct {
	Texture  Texture
	MipLevel uint32
	Layer    uint32
	X, Y, Z  uint32
	W, H, D  uint32
}

// ColorTargetInfo describes a render pass color attachment.
type ColorTargetInfo struct {
	Texture    Texture
	ClearColor gputypes.Color
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
}

// BufferBinding binds a buffer at an offset.
type BufferBinding struct {
	Buffer Buffer
	Offset uint32
}

// TextureSamplerBinding binds a texture together with a sampler.
type TextureSamplerBinding struct {
	Texture Texture
	Sampler Sampler
}
