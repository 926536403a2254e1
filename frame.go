package quad

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
)

// Frame holds what RenderFrame draws.
type Frame struct {
	Window       gpucore.Window
	Pipeline     gpucore.GraphicsPipeline
	VertexBuffer gpucore.Buffer
	Texture      gpucore.Texture
	Sampler      gpucore.Sampler
	ClearColor   gputypes.Color
}

// RenderFrame records and submits one frame. When the swapchain has no
// image, e.g. while the window is minimized, the command buffer is
// submitted empty and the frame counts as rendered.
//
// Command buffer acquisition and submit failures are returned; both are
// fatal to the render loop.
func RenderFrame(dev gpucore.Device, f *Frame) error {
	cmd, err := dev.AcquireCommandBuffer()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquireCommandBuffer, err)
	}

	target, err := cmd.AcquireSwapchainTexture(f.Window)
	if err != nil {
		Logger().Warn("swapchain texture unavailable", "error", err)
		target = nil
	}

	if target != nil {
		pass, err := cmd.BeginRenderPass([]gpucore.ColorTargetInfo{{
			Texture:    target,
			ClearColor: f.ClearColor,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
		}})
		if err != nil {
			// The acquired image still has to go back to the swapchain.
			return errors.Join(fmt.Errorf("begin render pass: %w", err), cmd.Submit())
		}
		pass.BindGraphicsPipeline(f.Pipeline)
		pass.BindFragmentSamplers(0, []gpucore.TextureSamplerBinding{{Texture: f.Texture, Sampler: f.Sampler}})
		pass.BindVertexBuffers(0, []gpucore.BufferBinding{{Buffer: f.VertexBuffer}})
		pass.DrawPrimitives(QuadVertexCount, 1, 0, 0)
		pass.End()
	}

	if err := cmd.Submit(); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	return nil
}
