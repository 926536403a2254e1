package quad

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/assets"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/gpucore/gputest"
)

// newTestFrame claims win on dev and creates stand-in frame resources.
func newTestFrame(t *testing.T, dev *gputest.Device, win gpucore.Window) *Frame {
	t.Helper()
	if err := dev.ClaimWindow(win); err != nil {
		t.Fatalf("ClaimWindow() error = %v", err)
	}
	buf, err := dev.CreateBuffer(&gpucore.BufferDesc{Label: "vb", Size: 96})
	if err != nil {
		t.Fatal(err)
	}
	tex, err := dev.CreateTexture(&gpucore.TextureDesc{Label: "tex", Width: 1, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	s, err := dev.CreateSampler(&gpucore.SamplerDesc{Label: "sampler"})
	if err != nil {
		t.Fatal(err)
	}
	dev.Formats = gpucore.ShaderFormatWGSL
	p, err := BuildPipeline(dev, dev.Format, DefaultPipelineSpec(), assets.Default())
	if err != nil {
		t.Fatal(err)
	}
	return &Frame{
		Window:       win,
		Pipeline:     p,
		VertexBuffer: buf,
		Texture:      tex,
		Sampler:      s,
		ClearColor:   gputypes.Color{A: 1},
	}
}

var drawOps = []string{
	"AcquireSwapchainTexture",
	"BeginRenderPass",
	"BindGraphicsPipeline",
	"BindFragmentSamplers",
	"BindVertexBuffers",
	"DrawPrimitives",
	"EndRenderPass",
}

func TestRenderFrameIdempotent(t *testing.T) {
	dev := gputest.New()
	f := newTestFrame(t, dev, gputest.NewWindow(1920, 1080))

	const frames = 3
	for i := range frames {
		if err := RenderFrame(dev, f); err != nil {
			t.Fatalf("frame %d: RenderFrame() error = %v", i, err)
		}
	}

	subs := dev.Submitted()
	if len(subs) != frames {
		t.Fatalf("submitted %d command buffers, want %d", len(subs), frames)
	}
	for i, cmd := range subs {
		if got := cmd.Ops(); !slices.Equal(got, drawOps) {
			t.Errorf("frame %d ops = %v, want %v", i, got, drawOps)
		}
		if cmd.Count("BeginRenderPass") != 1 || cmd.Count("DrawPrimitives") != 1 {
			t.Errorf("frame %d: want exactly one clear and one draw", i)
		}
		for _, c := range cmd.Commands() {
			switch c.Op {
			case "BeginRenderPass":
				if c.Load != gputypes.LoadOpClear || c.Clear != (gputypes.Color{A: 1}) {
					t.Errorf("frame %d: pass load %v clear %+v, want clear to opaque black", i, c.Load, c.Clear)
				}
			case "DrawPrimitives":
				if want := []uint32{6, 1, 0, 0}; !slices.Equal(c.Args, want) {
					t.Errorf("frame %d: draw args = %v, want %v", i, c.Args, want)
				}
			case "BindFragmentSamplers":
				if len(c.Refs) != 2 || c.Refs[0] != f.Texture || c.Refs[1] != f.Sampler {
					t.Errorf("frame %d: fragment samplers bind %v", i, c.Refs)
				}
			case "BindVertexBuffers":
				if c.Args[0] != 0 || len(c.Refs) != 1 || c.Refs[0] != f.VertexBuffer {
					t.Errorf("frame %d: vertex buffers bind slot %d %v", i, c.Args[0], c.Refs)
				}
			}
		}
	}
}

func TestRenderFrameSwapchainUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gputest.Device, *gputest.Window)
	}{
		{"unavailable", func(d *gputest.Device, _ *gputest.Window) { d.SwapchainUnavailable = true }},
		{"minimized", func(_ *gputest.Device, w *gputest.Window) { w.IsMinimized = true }},
		{"acquire error", func(d *gputest.Device, _ *gputest.Window) { d.Fail(gputest.OpAcquireSwapchain, errors.New("lost")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.New()
			win := gputest.NewWindow(800, 600)
			f := newTestFrame(t, dev, win)
			tt.setup(dev, win)

			if err := RenderFrame(dev, f); err != nil {
				t.Fatalf("RenderFrame() error = %v", err)
			}
			subs := dev.Submitted()
			if len(subs) != 1 {
				t.Fatalf("submitted %d command buffers, want 1", len(subs))
			}
			if n := subs[0].Count("DrawPrimitives") + subs[0].Count("BindGraphicsPipeline"); n != 0 {
				t.Errorf("ops = %v, want no bind or draw", subs[0].Ops())
			}
		})
	}
}

func TestRenderFrameClearColor(t *testing.T) {
	dev := gputest.New()
	f := newTestFrame(t, dev, gputest.NewWindow(64, 64))
	f.ClearColor = gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}

	if err := RenderFrame(dev, f); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	pass := dev.Submitted()[0].Commands()[1]
	if pass.Clear != f.ClearColor {
		t.Errorf("clear = %+v, want %+v", pass.Clear, f.ClearColor)
	}
}

func TestRenderFrameFatalErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		op      string
		wantErr error
	}{
		{gputest.OpAcquireCommandBuffer, ErrAcquireCommandBuffer},
		{gputest.OpBeginRenderPass, boom},
		{gputest.OpSubmit, boom},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			dev := gputest.New()
			f := newTestFrame(t, dev, gputest.NewWindow(64, 64))
			dev.Fail(tt.op, boom)

			err := RenderFrame(dev, f)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RenderFrame() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
