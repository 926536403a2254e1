package native

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/backend"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// waitTimeout bounds WaitIdle.
const waitTimeout = 5 * time.Second

// candidate is a HAL graphics API Open may try.
type candidate struct {
	api    gputypes.Backend
	driver string
}

// instanceFactory creates HAL instances. hal.Backend implements it.
type instanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// pendingRelease is a destruction waiting for the fence to reach value.
type pendingRelease struct {
	value uint64
	fn    func()
}

// Device is a gpucore.Device backed by a HAL device and queue.
type Device struct {
	driver   string
	instance hal.Instance
	adapter  hal.Adapter
	name     string
	device   hal.Device
	queue    hal.Queue

	fence      hal.Fence
	submitted  uint64
	completed  uint64
	pending    []pendingRelease
	bindGroups map[bindGroupKey]hal.BindGroup

	swap  *swapchain
	debug bool
	log   *slog.Logger
}

var _ gpucore.Device = (*Device)(nil)

// Open opens a device on the first platform graphics API with a usable
// adapter.
func Open(opts backend.Options) (*Device, error) {
	log := backend.Logger()
	var errs []error
	for _, c := range candidates {
		b, ok := hal.GetBackend(c.api)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: backend not compiled in", c.driver))
			continue
		}
		d, err := openWith(b, c.driver, opts)
		if err != nil {
			log.Debug("native: graphics API unavailable", "driver", c.driver, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.driver, err))
			continue
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrNoGPU, errors.Join(errs...))
}

// openWith creates an instance from f, picks an adapter and opens it.
func openWith(f instanceFactory, driver string, opts backend.Options) (*Device, error) {
	instance, err := f.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	selected := selectAdapter(adapters, opts.LowPower)

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	fence, err := openDev.Device.CreateFence()
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("create fence: %w", err)
	}

	d := &Device{
		driver:     driver,
		instance:   instance,
		adapter:    selected.Adapter,
		name:       selected.Info.Name,
		device:     openDev.Device,
		queue:      openDev.Queue,
		fence:      fence,
		bindGroups: make(map[bindGroupKey]hal.BindGroup),
		debug:      opts.Debug,
		log:        backend.Logger(),
	}
	d.log.Info("native: device opened", "driver", driver, "adapter", selected.Info.Name, "type", selected.Info.DeviceType)
	return d, nil
}

// selectAdapter prefers hardware adapters: discrete first, or integrated
// first when lowPower is set.
func selectAdapter(adapters []hal.ExposedAdapter, lowPower bool) *hal.ExposedAdapter {
	rank := func(t gputypes.DeviceType) int {
		switch t {
		case gputypes.DeviceTypeDiscreteGPU:
			if lowPower {
				return 1
			}
			return 0
		case gputypes.DeviceTypeIntegratedGPU:
			if lowPower {
				return 0
			}
			return 1
		default:
			return 2
		}
	}
	order := make([]int, len(adapters))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(rank(adapters[a].Info.DeviceType), rank(adapters[b].Info.DeviceType))
	})
	return &adapters[order[0]]
}

// Driver implements gpucore.Device.
func (d *Device) Driver() string { return d.driver }

// AdapterName returns the name of the selected adapter.
func (d *Device) AdapterName() string { return d.name }

// ShaderFormats implements gpucore.Device. The HAL accepts SPIR-V and
// compiles WGSL itself.
func (d *Device) ShaderFormats() gpucore.ShaderFormat {
	return gpucore.ShaderFormatSPIRV | gpucore.ShaderFormatWGSL
}

// created logs a resource creation when the device was opened with Debug.
func (d *Device) created(kind, label string) {
	if d.debug {
		d.log.Debug("native: created", "kind", kind, "label", label)
	}
}

// deferRelease runs fn once all work submitted so far has completed.
func (d *Device) deferRelease(fn func()) {
	if d.submitted <= d.completed {
		fn()
		return
	}
	d.pending = append(d.pending, pendingRelease{value: d.submitted, fn: fn})
}

// collect polls the fence and runs pending releases that are now safe.
func (d *Device) collect() {
	if d.submitted > d.completed {
		ok, err := d.device.Wait(d.fence, d.submitted, 0)
		switch {
		case err != nil:
			d.log.Warn("native: fence poll failed", "error", err)
		case ok:
			d.completed = d.submitted
		}
	}
	d.runPending()
}

func (d *Device) runPending() {
	n := 0
	for _, p := range d.pending {
		if p.value <= d.completed {
			p.fn()
			continue
		}
		d.pending[n] = p
		n++
	}
	clear(d.pending[n:])
	d.pending = d.pending[:n]
}

// WaitIdle implements gpucore.Device.
func (d *Device) WaitIdle() error {
	if d.submitted > d.completed {
		ok, err := d.device.Wait(d.fence, d.submitted, waitTimeout)
		if err != nil {
			return fmt.Errorf("native: wait idle: %w", err)
		}
		if !ok {
			return ErrTimeout
		}
		d.completed = d.submitted
	}
	d.runPending()
	return nil
}

// Poll implements gpucontext.Device.
func (d *Device) Poll(wait bool) {
	if !wait {
		d.collect()
		return
	}
	if err := d.WaitIdle(); err != nil {
		d.log.Warn("native: poll", "error", err)
	}
}

// Destroy implements gpucore.Device. Pending destructions run after the
// GPU goes idle; a window still claimed is released first.
func (d *Device) Destroy() {
	if d.device == nil {
		return
	}
	if err := d.WaitIdle(); err != nil {
		d.log.Warn("native: destroy before idle", "error", err)
	}
	if d.swap != nil {
		d.log.Warn("native: destroying device with a claimed window")
		d.releaseSwapchain()
	}
	d.completed = d.submitted
	d.runPending()
	for k, bg := range d.bindGroups {
		d.device.DestroyBindGroup(bg)
		delete(d.bindGroups, k)
	}
	d.device.DestroyFence(d.fence)
	d.device.Destroy()
	d.instance.Destroy()
	d.device = nil
	d.queue = nil
	d.log.Debug("native: device destroyed", "driver", d.driver)
}
