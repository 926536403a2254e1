package native

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// provider shares a Device with gpucontext consumers.
type provider struct{ d *Device }

var (
	_ gpucontext.DeviceProvider = provider{}
	_ gpucontext.HalProvider    = provider{}
)

// Provider returns a gpucontext.DeviceProvider for the device. It also
// implements gpucontext.HalProvider, returning the hal.Device and hal.Queue.
// SurfaceFormat is the claimed window's swapchain format, or the zero
// format before a window is claimed.
func (d *Device) Provider() gpucontext.DeviceProvider { return provider{d: d} }

func (p provider) Device() gpucontext.Device   { return p.d }
func (p provider) Queue() gpucontext.Queue     { return p.d.queue }
func (p provider) Adapter() gpucontext.Adapter { return p.d.adapter }
func (p provider) HalDevice() any              { return p.d.device }
func (p provider) HalQueue() any               { return p.d.queue }

func (p provider) SurfaceFormat() gputypes.TextureFormat {
	if p.d.swap == nil {
		return 0
	}
	return p.d.swap.format
}
