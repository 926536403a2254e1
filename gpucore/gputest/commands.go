package gputest

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
)

type resource struct{ label string }

func (r *resource) Label() string { return r.label }

// Shader is a fake shader.
type Shader struct {
	resource
	Desc gpucore.ShaderDesc
}

// Stage implements gpucore.Shader.
func (s *Shader) Stage() gpucore.ShaderStage { return s.Desc.Stage }

// Pipeline is a fake graphics pipeline.
type Pipeline struct {
	resource
	Desc gpucore.GraphicsPipelineDesc
}

// Buffer is a fake device buffer.
type Buffer struct {
	resource
	Desc gpucore.BufferDesc
}

// Size implements gpucore.Buffer.
func (b *Buffer) Size() uint32 { return b.Desc.Size }

// TransferBuffer is a fake staging buffer backed by host memory.
type TransferBuffer struct {
	resource
	Desc   gpucore.TransferBufferDesc
	data   []byte
	mapped bool
}

// Size implements gpucore.TransferBuffer.
func (t *TransferBuffer) Size() uint32 { return t.Desc.Size }

// Texture is a fake texture. Swapchain textures have Swapchain set.
type Texture struct {
	resource
	Desc      gpucore.TextureDesc
	Swapchain bool
}

// Width implements gpucore.Texture.
func (t *Texture) Width() uint32 { return t.Desc.Width }

// Height implements gpucore.Texture.
func (t *Texture) Height() uint32 { return t.Desc.Height }

// Sampler is a fake sampler.
type Sampler struct {
	resource
	Desc gpucore.SamplerDesc
}

// Command is one recorded command buffer entry.
type Command struct {
	// Op is the method name, e.g. "DrawPrimitives".
	Op string

	// Args holds the integer arguments of draw and bind calls.
	Args []uint32

	// Clear is the clear color of a BeginRenderPass.
	Clear gputypes.Color

	// Load is the load op of a BeginRenderPass.
	Load gputypes.LoadOp

	// Refs holds the resources referenced by the command.
	Refs []gpucore.Resource
}

// CommandBuffer is a recording command buffer.
type CommandBuffer struct {
	dev       *Device
	commands  []Command
	pass      bool
	submitted bool
}

// Commands returns the recorded commands.
func (c *CommandBuffer) Commands() []Command { return c.commands }

// Ops returns the recorded command names.
func (c *CommandBuffer) Ops() []string {
	ops := make([]string, len(c.commands))
	for i, cmd := range c.commands {
		ops[i] = cmd.Op
	}
	return ops
}

// Count returns how many commands named op were recorded.
func (c *CommandBuffer) Count(op string) int {
	n := 0
	for _, cmd := range c.commands {
		if cmd.Op == op {
			n++
		}
	}
	return n
}

func (c *CommandBuffer) add(cmd Command) { c.commands = append(c.commands, cmd) }

// BeginCopyPass implements gpucore.CommandBuffer.
func (c *CommandBuffer) BeginCopyPass() (gpucore.CopyPass, error) {
	c.dev.mu.Lock()
	err := c.dev.record(OpBeginCopyPass)
	c.dev.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if c.submitted {
		return nil, gpucore.ErrSubmitted
	}
	if c.pass {
		return nil, gpucore.ErrPassActive
	}
	c.pass = true
	c.add(Command{Op: "BeginCopyPass"})
	return &copyPass{cmd: c}, nil
}

// AcquireSwapchainTexture implements gpucore.CommandBuffer.
func (c *CommandBuffer) AcquireSwapchainTexture(w gpucore.Window) (gpucore.Texture, error) {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	if err := c.dev.record(OpAcquireSwapchain); err != nil {
		return nil, err
	}
	if c.dev.claimed == nil || c.dev.claimed != w {
		return nil, gpucore.ErrWindowNotClaimed
	}
	c.add(Command{Op: "AcquireSwapchainTexture"})
	if c.dev.SwapchainUnavailable || w.Minimized() {
		return nil, nil
	}
	width, height := c.dev.SwapchainWidth, c.dev.SwapchainHeight
	if width == 0 || height == 0 {
		pw, ph := w.PixelSize()
		width, height = uint32(pw), uint32(ph)
	}
	return &Texture{
		resource:  resource{label: "swapchain"},
		Desc:      gpucore.TextureDesc{Width: width, Height: height, Format: c.dev.Format},
		Swapchain: true,
	}, nil
}

// BeginRenderPass implements gpucore.CommandBuffer.
func (c *CommandBuffer) BeginRenderPass(targets []gpucore.ColorTargetInfo) (gpucore.RenderPass, error) {
	c.dev.mu.Lock()
	err := c.dev.record(OpBeginRenderPass)
	c.dev.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if c.submitted {
		return nil, gpucore.ErrSubmitted
	}
	if c.pass {
		return nil, gpucore.ErrPassActive
	}
	c.pass = true
	cmd := Command{Op: "BeginRenderPass"}
	if len(targets) > 0 {
		cmd.Clear = targets[0].ClearColor
		cmd.Load = targets[0].LoadOp
		cmd.Refs = []gpucore.Resource{targets[0].Texture}
	}
	c.add(cmd)
	return &renderPass{cmd: c}, nil
}

// Submit implements gpucore.CommandBuffer.
func (c *CommandBuffer) Submit() error {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	if err := c.dev.record(OpSubmit); err != nil {
		return err
	}
	if c.submitted {
		return gpucore.ErrSubmitted
	}
	if c.pass {
		return gpucore.ErrPassActive
	}
	c.submitted = true
	c.dev.submitted = append(c.dev.submitted, c)
	return nil
}

// Cancel implements gpucore.CommandBuffer.
func (c *CommandBuffer) Cancel() {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	c.dev.calls = append(c.dev.calls, "Cancel")
	c.submitted = true
	c.pass = false
}

type copyPass struct{ cmd *CommandBuffer }

func (p *copyPass) UploadToBuffer(src gpucore.TransferBufferLocation, dst gpucore.BufferRegion, _ bool) {
	tb := src.TransferBuffer.(*TransferBuffer)
	data := make([]byte, dst.Size)
	copy(data, tb.data[src.Offset:])
	p.store(dst.Buffer, dst.Offset, data)
	p.cmd.add(Command{
		Op:   "UploadToBuffer",
		Args: []uint32{src.Offset, dst.Offset, dst.Size},
		Refs: []gpucore.Resource{tb, dst.Buffer},
	})
}

func (p *copyPass) UploadToTexture(src gpucore.TextureTransferInfo, dst gpucore.TextureRegion, _ bool) {
	tb := src.TransferBuffer.(*TransferBuffer)
	data := make([]byte, len(tb.data)-int(src.Offset))
	copy(data, tb.data[src.Offset:])
	p.store(dst.Texture, 0, data)
	p.cmd.add(Command{
		Op:   "UploadToTexture",
		Args: []uint32{src.Offset, src.PixelsPerRow, src.RowsPerLayer, dst.W, dst.H, dst.D},
		Refs: []gpucore.Resource{tb, dst.Texture},
	})
}

func (p *copyPass) store(r gpucore.Resource, offset uint32, data []byte) {
	d := p.cmd.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.contents == nil {
		d.contents = make(map[gpucore.Resource][]byte)
	}
	buf := d.contents[r]
	if need := int(offset) + len(data); len(buf) < need {
		buf = append(buf, make([]byte, need-len(buf))...)
	}
	copy(buf[offset:], data)
	d.contents[r] = buf
}

func (p *copyPass) End() {
	p.cmd.pass = false
	p.cmd.add(Command{Op: "EndCopyPass"})
}

type renderPass struct{ cmd *CommandBuffer }

func (p *renderPass) BindGraphicsPipeline(pl gpucore.GraphicsPipeline) {
	p.cmd.add(Command{Op: "BindGraphicsPipeline", Refs: []gpucore.Resource{pl}})
}

func (p *renderPass) BindVertexBuffers(firstSlot uint32, bindings []gpucore.BufferBinding) {
	cmd := Command{Op: "BindVertexBuffers", Args: []uint32{firstSlot, uint32(len(bindings))}}
	for _, b := range bindings {
		cmd.Refs = append(cmd.Refs, b.Buffer)
	}
	p.cmd.add(cmd)
}

func (p *renderPass) BindFragmentSamplers(firstSlot uint32, bindings []gpucore.TextureSamplerBinding) {
	cmd := Command{Op: "BindFragmentSamplers", Args: []uint32{firstSlot, uint32(len(bindings))}}
	for _, b := range bindings {
		cmd.Refs = append(cmd.Refs, b.Texture, b.Sampler)
	}
	p.cmd.add(cmd)
}

func (p *renderPass) DrawPrimitives(numVertices, numInstances, firstVertex, firstInstance uint32) {
	p.cmd.add(Command{
		Op:   "DrawPrimitives",
		Args: []uint32{numVertices, numInstances, firstVertex, firstInstance},
	})
}

func (p *renderPass) End() {
	p.cmd.pass = false
	p.cmd.add(Command{Op: "EndRenderPass"})
}
