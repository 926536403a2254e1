// Package native implements gpucore.Device on the gogpu/wgpu HAL.
//
// Importing the package registers it with the backend registry under
// [backend.BackendNative]:
//
//	import _ "github.com/gogpu/quad/backend/native"
//
// # Graphics APIs
//
// Open tries the platform's graphics APIs in order and uses the first one
// with a usable adapter: Metal then Vulkan on darwin, Vulkan elsewhere.
// Discrete and integrated GPUs are preferred over software adapters; with
// [backend.Options.LowPower] integrated GPUs come first.
//
// # Transfers
//
// Transfer buffers are host memory paired with a device staging buffer.
// Unmapping writes the host bytes to the staging buffer through the queue;
// copy passes then record buffer-to-buffer and buffer-to-texture copies
// from it.
//
// # Deferred destruction
//
// Every submission signals a device fence with an increasing value.
// Releasing a resource that submitted work may still reference queues its
// destruction until the fence passes the last submitted value. Pending
// destructions are collected on each submit, on WaitIdle and on Destroy.
//
// # Sharing
//
// [Device.Provider] exposes the HAL device and queue as a
// gpucontext.DeviceProvider for libraries that draw into the same device.
package native
