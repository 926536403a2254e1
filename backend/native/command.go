package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// commandBuffer wraps one HAL command encoder.
type commandBuffer struct {
	dev     *Device
	encoder hal.CommandEncoder
	pass    bool
	done    bool

	// err is the first recording error; Submit reports it.
	err error

	// acquired is the surface image to present on submit.
	acquired *hal.AcquiredSurfaceTexture
	swapTex  *texture

	// transient bind groups are destroyed once the submission completes.
	transient []hal.BindGroup
}

// AcquireCommandBuffer implements gpucore.Device.
func (d *Device) AcquireCommandBuffer() (gpucore.CommandBuffer, error) {
	d.collect()
	enc, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "quad commands"})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("quad commands"); err != nil {
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}
	return &commandBuffer{dev: d, encoder: enc}, nil
}

func (c *commandBuffer) check() error {
	switch {
	case c.done:
		return gpucore.ErrSubmitted
	case c.pass:
		return gpucore.ErrPassActive
	}
	return nil
}

func (c *commandBuffer) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// BeginCopyPass implements gpucore.CommandBuffer.
func (c *commandBuffer) BeginCopyPass() (gpucore.CopyPass, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	c.pass = true
	return &copyPass{cmd: c}, nil
}

// AcquireSwapchainTexture implements gpucore.CommandBuffer.
func (c *commandBuffer) AcquireSwapchainTexture(w gpucore.Window) (gpucore.Texture, error) {
	if c.done {
		return nil, gpucore.ErrSubmitted
	}
	sc, err := c.dev.claimed(w)
	if err != nil {
		return nil, err
	}
	if c.swapTex != nil {
		return c.swapTex, nil
	}
	st, err := c.dev.acquire(sc)
	if err != nil || st == nil {
		return nil, err
	}
	view, err := c.dev.device.CreateTextureView(st.Texture, &hal.TextureViewDescriptor{
		Label:         "swapchain view",
		Format:        sc.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		sc.surface.DiscardTexture(st.Texture)
		return nil, fmt.Errorf("native: swapchain view: %w", err)
	}
	c.acquired = st
	c.swapTex = &texture{
		label:     "swapchain",
		width:     sc.width,
		height:    sc.height,
		format:    sc.format,
		tex:       st.Texture,
		view:      view,
		swapchain: true,
	}
	return c.swapTex, nil
}

// BeginRenderPass implements gpucore.CommandBuffer.
func (c *commandBuffer) BeginRenderPass(targets []gpucore.ColorTargetInfo) (gpucore.RenderPass, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	attachments := make([]hal.RenderPassColorAttachment, len(targets))
	for i, t := range targets {
		tx, ok := t.Texture.(*texture)
		if !ok || tx == nil {
			return nil, fmt.Errorf("native: render pass target %d: no texture", i)
		}
		attachments[i] = hal.RenderPassColorAttachment{
			View:       tx.view,
			LoadOp:     t.LoadOp,
			StoreOp:    t.StoreOp,
			ClearValue: t.ClearColor,
		}
	}
	rp := c.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "quad render pass",
		ColorAttachments: attachments,
	})
	c.pass = true
	return &renderPass{cmd: c, rp: rp}, nil
}

// Submit implements gpucore.CommandBuffer.
func (c *commandBuffer) Submit() error {
	if err := c.check(); err != nil {
		return err
	}
	c.done = true
	d := c.dev

	if c.err != nil {
		c.encoder.DiscardEncoding()
		c.discardSwapchain()
		return c.err
	}
	cb, err := c.encoder.EndEncoding()
	if err != nil {
		c.discardSwapchain()
		return fmt.Errorf("native: end encoding: %w", err)
	}

	d.submitted++
	if err := d.queue.Submit([]hal.CommandBuffer{cb}, d.fence, d.submitted); err != nil {
		d.submitted--
		d.device.FreeCommandBuffer(cb)
		c.discardSwapchain()
		return fmt.Errorf("native: submit: %w", err)
	}

	var perr error
	if c.acquired != nil {
		if err := d.queue.Present(d.swap.surface, c.acquired.Texture); err != nil {
			perr = fmt.Errorf("native: present: %w", err)
		}
		view := c.swapTex.view
		d.deferRelease(func() { d.device.DestroyTextureView(view) })
	}
	transient := c.transient
	d.deferRelease(func() {
		d.device.FreeCommandBuffer(cb)
		for _, bg := range transient {
			d.device.DestroyBindGroup(bg)
		}
	})
	d.collect()
	return perr
}

// Cancel implements gpucore.CommandBuffer.
func (c *commandBuffer) Cancel() {
	if c.done {
		return
	}
	c.done = true
	c.pass = false
	c.encoder.DiscardEncoding()
	c.discardSwapchain()
	for _, bg := range c.transient {
		c.dev.device.DestroyBindGroup(bg)
	}
}

func (c *commandBuffer) discardSwapchain() {
	if c.acquired == nil {
		return
	}
	c.dev.device.DestroyTextureView(c.swapTex.view)
	if c.dev.swap != nil {
		c.dev.swap.surface.DiscardTexture(c.acquired.Texture)
	}
	c.acquired = nil
	c.swapTex = nil
}

type copyPass struct{ cmd *commandBuffer }

func (p *copyPass) UploadToBuffer(src gpucore.TransferBufferLocation, dst gpucore.BufferRegion, _ bool) {
	tb := src.TransferBuffer.(*transferBuffer)
	buf := dst.Buffer.(*buffer)
	if dst.Offset+dst.Size > buf.size || src.Offset+dst.Size > tb.size {
		p.cmd.fail(fmt.Errorf("native: upload to %q: %w", buf.label, ErrUnsupportedRegion))
		return
	}
	p.cmd.encoder.CopyBufferToBuffer(tb.staging, buf.buf, []hal.BufferCopy{{
		SrcOffset: uint64(src.Offset),
		DstOffset: uint64(dst.Offset),
		Size:      uint64(align4(dst.Size)),
	}})
}

func (p *copyPass) UploadToTexture(src gpucore.TextureTransferInfo, dst gpucore.TextureRegion, _ bool) {
	tb := src.TransferBuffer.(*transferBuffer)
	tx := dst.Texture.(*texture)
	texel, ok := texelSize(tx.format)
	if !ok {
		p.cmd.fail(fmt.Errorf("native: upload to %q: %w", tx.label, ErrUnsupportedFormat))
		return
	}
	if dst.X != 0 || dst.Y != 0 || dst.Z != 0 || dst.Layer != 0 {
		p.cmd.fail(fmt.Errorf("native: upload to %q: %w", tx.label, ErrUnsupportedRegion))
		return
	}
	rowPixels := src.PixelsPerRow
	if rowPixels == 0 {
		rowPixels = dst.W
	}
	rows := src.RowsPerLayer
	if rows == 0 {
		rows = dst.H
	}

	enc := p.cmd.encoder
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: tx.tex,
		Usage:   hal.TextureUsageTransition{OldUsage: tx.usage, NewUsage: gputypes.TextureUsageCopyDst},
	}})
	enc.CopyBufferToTexture(tb.staging, tx.tex, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       uint64(src.Offset),
			BytesPerRow:  rowPixels * texel,
			RowsPerImage: rows,
		},
		TextureBase: hal.ImageCopyTexture{Texture: tx.tex, MipLevel: dst.MipLevel},
		Size:        hal.Extent3D{Width: dst.W, Height: dst.H, DepthOrArrayLayers: max(dst.D, 1)},
	}})
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: tx.tex,
		Usage:   hal.TextureUsageTransition{OldUsage: gputypes.TextureUsageCopyDst, NewUsage: gputypes.TextureUsageTextureBinding},
	}})
	tx.usage = gputypes.TextureUsageTextureBinding
}

func (p *copyPass) End() { p.cmd.pass = false }

// texelSize returns the bytes per texel of uncompressed 8-bit color formats.
func texelSize(f gputypes.TextureFormat) (uint32, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return 4, true
	case gputypes.TextureFormatR8Unorm:
		return 1, true
	}
	return 0, false
}

type renderPass struct {
	cmd      *commandBuffer
	rp       hal.RenderPassEncoder
	pipeline *pipeline
}

func (p *renderPass) BindGraphicsPipeline(gp gpucore.GraphicsPipeline) {
	pl := gp.(*pipeline)
	p.pipeline = pl
	p.rp.SetPipeline(pl.pipeline)
}

func (p *renderPass) BindVertexBuffers(firstSlot uint32, bindings []gpucore.BufferBinding) {
	for i, b := range bindings {
		p.rp.SetVertexBuffer(firstSlot+uint32(i), b.Buffer.(*buffer).buf, uint64(b.Offset))
	}
}

func (p *renderPass) BindFragmentSamplers(firstSlot uint32, bindings []gpucore.TextureSamplerBinding) {
	if p.pipeline == nil {
		p.cmd.fail(ErrNoPipeline)
		return
	}
	bg, cached, err := p.cmd.dev.samplerBindGroup(p.pipeline, firstSlot, bindings)
	if err != nil {
		p.cmd.fail(err)
		return
	}
	if !cached {
		p.cmd.transient = append(p.cmd.transient, bg)
	}
	p.rp.SetBindGroup(samplerGroup, bg, nil)
}

func (p *renderPass) DrawPrimitives(numVertices, numInstances, firstVertex, firstInstance uint32) {
	if p.pipeline == nil {
		p.cmd.fail(ErrNoPipeline)
		return
	}
	p.rp.Draw(numVertices, numInstances, firstVertex, firstInstance)
}

func (p *renderPass) End() {
	p.rp.End()
	p.cmd.pass = false
}
