// Package gpucore defines the GPU device abstraction the quad renderer is
// written against.
//
// The abstraction follows a claim/acquire/submit model:
//
//	               +------------------+
//	               |   quad.App       |
//	               | (init + frames)  |
//	               +--------+---------+
//	                        |
//	                  gpucore.Device
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v---------+         +--------v---------+
//	|  backend/native  |         | gpucore/gputest  |
//	|  (gogpu/wgpu hal)|         | (recording fake) |
//	+------------------+         +------------------+
//
// A [Device] claims a [Window] for presentation, creates resources from
// immutable descriptors, and hands out [CommandBuffer] values. Work is
// recorded into a command buffer through a [CopyPass] or a [RenderPass]
// and becomes visible to the device on [CommandBuffer.Submit].
//
// # Swapchain Acquisition
//
// [CommandBuffer.AcquireSwapchainTexture] returns a nil texture and a nil
// error when the window cannot be presented to, for example while it is
// minimized. Callers skip rendering for that frame but still submit.
//
// # Transfer Buffers
//
// Data reaches device-local resources through a [TransferBuffer]:
//
//	tb, _ := dev.CreateTransferBuffer(&gpucore.TransferBufferDesc{Size: n})
//	dst, _ := dev.MapTransferBuffer(tb, false)
//	copy(dst, payload)
//	dev.UnmapTransferBuffer(tb)
//	cmd, _ := dev.AcquireCommandBuffer()
//	pass, _ := cmd.BeginCopyPass()
//	pass.UploadToBuffer(gpucore.TransferBufferLocation{TransferBuffer: tb}, region, false)
//	pass.End()
//	_ = cmd.Submit()
//	dev.ReleaseTransferBuffer(tb)
//
// Releasing a transfer buffer that is still referenced by in-flight work is
// allowed; implementations defer destruction until the work completes.
package gpucore
