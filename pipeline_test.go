package quad

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/assets"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/gpucore/gputest"
	"github.com/gogpu/quad/internal/shader"
)

func TestBuildPipelineState(t *testing.T) {
	dev := wgslDevice()
	p, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	desc := p.(*gputest.Pipeline).Desc

	if len(desc.VertexBuffers) != 1 {
		t.Fatalf("vertex buffers = %d, want 1", len(desc.VertexBuffers))
	}
	vb := desc.VertexBuffers[0]
	if vb.Slot != 0 || vb.Pitch != VertexSize || vb.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("vertex buffer = %+v, want slot 0, pitch %d, per vertex", vb, VertexSize)
	}

	wantAttrs := []gpucore.VertexAttribute{
		{Location: 0, BufferSlot: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
		{Location: 1, BufferSlot: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 8},
	}
	if !slices.Equal(desc.VertexAttributes, wantAttrs) {
		t.Errorf("attributes = %+v, want %+v", desc.VertexAttributes, wantAttrs)
	}

	if desc.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("topology = %v, want triangle list", desc.Topology)
	}
	wantRaster := gpucore.RasterizerState{
		FillMode:  gpucore.FillModeFill,
		CullMode:  gputypes.CullModeNone,
		FrontFace: gputypes.FrontFaceCW,
	}
	if desc.Rasterizer != wantRaster {
		t.Errorf("rasterizer = %+v, want %+v", desc.Rasterizer, wantRaster)
	}
	if desc.SampleCount != 1 {
		t.Errorf("sample count = %d, want 1", desc.SampleCount)
	}
	if desc.DepthStencil != nil {
		t.Error("depth stencil enabled")
	}
	if len(desc.ColorTargets) != 1 {
		t.Fatalf("color targets = %d, want 1", len(desc.ColorTargets))
	}
	if ct := desc.ColorTargets[0]; ct.Format != dev.Format || ct.Blend != nil {
		t.Errorf("color target = %+v, want swapchain format without blending", ct)
	}
}

func TestBuildPipelineShaders(t *testing.T) {
	dev := wgslDevice()
	p, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	desc := p.(*gputest.Pipeline).Desc
	vs := desc.VertexShader.(*gputest.Shader).Desc
	fs := desc.FragmentShader.(*gputest.Shader).Desc

	if vs.Stage != gpucore.ShaderStageVertex || fs.Stage != gpucore.ShaderStageFragment {
		t.Errorf("stages = %v/%v", vs.Stage, fs.Stage)
	}
	if vs.EntryPoint != "main" || fs.EntryPoint != "main" {
		t.Errorf("entry points = %q/%q, want main", vs.EntryPoint, fs.EntryPoint)
	}
	if vs.NumSamplers != 0 || fs.NumSamplers != 1 {
		t.Errorf("samplers = %d/%d, want 0/1", vs.NumSamplers, fs.NumSamplers)
	}

	// Shaders are released right after link.
	if got := dev.Live(); !slices.Equal(got, []string{"Quad pipeline"}) {
		t.Errorf("live = %v, want only the pipeline", got)
	}
}

func TestBuildPipelineCompilesSPIRV(t *testing.T) {
	dev := gputest.New()
	dev.Formats = gpucore.ShaderFormatSPIRV | gpucore.ShaderFormatWGSL

	p, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	desc := p.(*gputest.Pipeline).Desc
	for _, s := range []gpucore.Shader{desc.VertexShader, desc.FragmentShader} {
		sd := s.(*gputest.Shader).Desc
		if sd.Format != gpucore.ShaderFormatSPIRV {
			t.Errorf("%s format = %d, want SPIR-V", sd.Label, sd.Format)
		}
		if err := shader.Validate(sd.Code); err != nil {
			t.Errorf("%s: %v", sd.Label, err)
		}
	}
}

func TestBuildPipelineFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name         string
		op           string
		wantReleased []string
	}{
		{"vertex shader", gputest.OpCreateShader, nil},
		{"link", gputest.OpCreateGraphicsPipeline, []string{"Quad fragment shader", "Quad vertex shader"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := wgslDevice()
			dev.Fail(tt.op, boom)

			_, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
			if !errors.Is(err, boom) {
				t.Fatalf("BuildPipeline() error = %v, want %v", err, boom)
			}
			if live := dev.Live(); len(live) != 0 {
				t.Errorf("leaked %v", live)
			}
			if got := dev.Released(); !slices.Equal(got, tt.wantReleased) {
				t.Errorf("released = %v, want %v", got, tt.wantReleased)
			}
		})
	}
}

func TestBuildPipelineNoShaderFormat(t *testing.T) {
	dev := gputest.New()
	dev.Formats = 0

	_, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
	if !errors.Is(err, gpucore.ErrShaderFormat) {
		t.Fatalf("BuildPipeline() error = %v, want ErrShaderFormat", err)
	}
}

func TestBuildPipelineInvalidWGSL(t *testing.T) {
	dev := gputest.New()
	bundle := assets.Default()
	bundle.VertexShader = []byte("this is not wgsl")

	if _, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), bundle); err == nil {
		t.Fatal("BuildPipeline() succeeded with invalid WGSL")
	}
	if dev.CallCount(gputest.OpCreateShader) != 0 {
		t.Error("shader created from source that failed to compile")
	}
}
