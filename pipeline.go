package quad

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/assets"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/internal/shader"
)

// VertexLayout describes how Vertex values are read from slot 0.
type VertexLayout struct {
	Stride     uint32
	StepMode   gputypes.VertexStepMode
	Attributes [2]gpucore.VertexAttribute
}

// PipelineSpec is the fixed-function state of the quad pipeline.
// It is a value type; DefaultPipelineSpec returns a fresh copy.
type PipelineSpec struct {
	Label       string
	EntryPoint  string
	Vertex      VertexLayout
	Topology    gputypes.PrimitiveTopology
	Rasterizer  gpucore.RasterizerState
	SampleCount uint32

	// FragmentSamplers is the number of texture+sampler pairs the fragment
	// stage reads.
	FragmentSamplers uint32
}

// DefaultPipelineSpec returns the quad pipeline state: interleaved
// float32x2 position and texcoord, a triangle list, no culling, clockwise
// front faces, one sample, no depth and no blending.
func DefaultPipelineSpec() PipelineSpec {
	return PipelineSpec{
		Label:      "Quad pipeline",
		EntryPoint: assets.EntryPoint,
		Vertex: VertexLayout{
			Stride:   VertexSize,
			StepMode: gputypes.VertexStepModeVertex,
			Attributes: [2]gpucore.VertexAttribute{
				{Location: 0, BufferSlot: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
				{Location: 1, BufferSlot: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 8},
			},
		},
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Rasterizer: gpucore.RasterizerState{
			FillMode:  gpucore.FillModeFill,
			CullMode:  gputypes.CullModeNone,
			FrontFace: gputypes.FrontFaceCW,
		},
		SampleCount:      1,
		FragmentSamplers: 1,
	}
}

// desc builds the device descriptor for the spec with the given shaders
// and a single color target of format.
func (s PipelineSpec) desc(vs, fs gpucore.Shader, format gputypes.TextureFormat) *gpucore.GraphicsPipelineDesc {
	return &gpucore.GraphicsPipelineDesc{
		Label:          s.Label,
		VertexShader:   vs,
		FragmentShader: fs,
		VertexBuffers: []gpucore.VertexBufferDesc{
			{Slot: 0, Pitch: s.Vertex.Stride, StepMode: s.Vertex.StepMode},
		},
		VertexAttributes: s.Vertex.Attributes[:],
		Topology:         s.Topology,
		Rasterizer:       s.Rasterizer,
		SampleCount:      s.SampleCount,
		ColorTargets:     []gpucore.ColorTargetDesc{{Format: format}},
	}
}

// shaderCode returns the code and format to hand the device for a WGSL
// source. SPIR-V is preferred when the device consumes it.
func shaderCode(dev gpucore.Device, label string, wgsl []byte) ([]byte, gpucore.ShaderFormat, error) {
	formats := dev.ShaderFormats()
	switch {
	case formats.Has(gpucore.ShaderFormatSPIRV):
		code, err := shader.CompileWGSL(label, wgsl)
		if err != nil {
			return nil, 0, err
		}
		return code, gpucore.ShaderFormatSPIRV, nil
	case formats.Has(gpucore.ShaderFormatWGSL):
		return wgsl, gpucore.ShaderFormatWGSL, nil
	default:
		return nil, 0, gpucore.ErrShaderFormat
	}
}

func createShader(dev gpucore.Device, label string, stage gpucore.ShaderStage, wgsl []byte, spec PipelineSpec) (gpucore.Shader, error) {
	code, format, err := shaderCode(dev, label, wgsl)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	desc := &gpucore.ShaderDesc{
		Label:      label,
		Code:       code,
		Format:     format,
		Stage:      stage,
		EntryPoint: spec.EntryPoint,
	}
	if stage == gpucore.ShaderStageFragment {
		desc.NumSamplers = spec.FragmentSamplers
	}
	s, err := dev.CreateShader(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s shader: %w", stage, err)
	}
	return s, nil
}

// BuildPipeline compiles the bundled shaders and links the quad pipeline
// targeting format. Shader objects are released before returning, on
// success and on failure.
func BuildPipeline(dev gpucore.Device, format gputypes.TextureFormat, spec PipelineSpec, bundle assets.Bundle) (gpucore.GraphicsPipeline, error) {
	log := Logger()

	vs, err := createShader(dev, "Quad vertex shader", gpucore.ShaderStageVertex, bundle.VertexShader, spec)
	if err != nil {
		return nil, err
	}
	defer dev.ReleaseShader(vs)

	fs, err := createShader(dev, "Quad fragment shader", gpucore.ShaderStageFragment, bundle.FragmentShader, spec)
	if err != nil {
		return nil, err
	}
	defer dev.ReleaseShader(fs)

	p, err := dev.CreateGraphicsPipeline(spec.desc(vs, fs, format))
	if err != nil {
		return nil, fmt.Errorf("link pipeline: %w", err)
	}
	log.Debug("pipeline created", "label", spec.Label, "format", format)
	return p, nil
}
