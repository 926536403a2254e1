// Package gputest provides a recording gpucore.Device for tests.
//
// The fake performs no GPU work. It records every device call, tracks live
// resources so tests can check for leaks and release order, copies uploaded
// bytes into per-resource storage, and fails chosen operations on demand.
package gputest

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
)

// Operation names accepted by Device.Fail.
const (
	OpClaimWindow            = "ClaimWindow"
	OpSetSwapchainParameters = "SetSwapchainParameters"
	OpCreateShader           = "CreateShader"
	OpCreateGraphicsPipeline = "CreateGraphicsPipeline"
	OpCreateBuffer           = "CreateBuffer"
	OpCreateTransferBuffer   = "CreateTransferBuffer"
	OpMapTransferBuffer      = "MapTransferBuffer"
	OpCreateTexture          = "CreateTexture"
	OpCreateSampler          = "CreateSampler"
	OpAcquireCommandBuffer   = "AcquireCommandBuffer"
	OpAcquireSwapchain       = "AcquireSwapchainTexture"
	OpBeginCopyPass          = "BeginCopyPass"
	OpBeginRenderPass        = "BeginRenderPass"
	OpSubmit                 = "Submit"
)

// Device is a recording fake implementing gpucore.Device.
type Device struct {
	// DriverName is returned by Driver. Defaults to "fake".
	DriverName string

	// Formats is returned by ShaderFormats. Defaults to SPIR-V.
	Formats gpucore.ShaderFormat

	// PresentModes lists supported present modes besides VSync.
	PresentModes []gpucore.PresentMode

	// Format is the swapchain format. Defaults to BGRA8Unorm.
	Format gputypes.TextureFormat

	// SwapchainUnavailable makes AcquireSwapchainTexture return nil.
	SwapchainUnavailable bool

	// SwapchainWidth and SwapchainHeight size acquired swapchain textures.
	// Zero means the window's pixel size.
	SwapchainWidth, SwapchainHeight uint32

	mu        sync.Mutex
	fail      map[string]error
	calls     []string
	live      map[gpucore.Resource]struct{}
	released  []string
	claimed   gpucore.Window
	mode      gpucore.PresentMode
	submitted []*CommandBuffer
	contents  map[gpucore.Resource][]byte
	destroyed bool
}

// New returns a fake device with default settings.
func New() *Device {
	return &Device{
		DriverName: "fake",
		Formats:    gpucore.ShaderFormatSPIRV,
		Format:     gputypes.TextureFormatBGRA8Unorm,
	}
}

// Fail makes every later call of op return err. A nil err clears it.
func (d *Device) Fail(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail == nil {
		d.fail = make(map[string]error)
	}
	if err == nil {
		delete(d.fail, op)
		return
	}
	d.fail[op] = err
}

// Calls returns the names of all recorded device calls, in order.
func (d *Device) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// CallCount returns how many times op was called.
func (d *Device) CallCount(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c == op {
			n++
		}
	}
	return n
}

// Live returns the labels of resources that were created and not released,
// sorted.
func (d *Device) Live() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	labels := make([]string, 0, len(d.live))
	for r := range d.live {
		labels = append(labels, r.Label())
	}
	slices.Sort(labels)
	return labels
}

// Released returns the labels of released resources in release order.
func (d *Device) Released() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.released)
}

// Submitted returns the submitted command buffers in submission order.
func (d *Device) Submitted() []*CommandBuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.submitted)
}

// Contents returns a copy of the bytes uploaded into a buffer or texture.
func (d *Device) Contents(r gpucore.Resource) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.contents[r])
}

// PresentMode returns the last present mode applied successfully.
func (d *Device) PresentMode() gpucore.PresentMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Claimed returns the currently claimed window, or nil.
func (d *Device) Claimed() gpucore.Window {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.claimed
}

// Destroyed reports whether Destroy was called.
func (d *Device) Destroyed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

// record logs op and returns the injected failure, if any. Callers hold d.mu.
func (d *Device) record(op string) error {
	d.calls = append(d.calls, op)
	return d.fail[op]
}

func (d *Device) track(r gpucore.Resource) {
	if d.live == nil {
		d.live = make(map[gpucore.Resource]struct{})
	}
	d.live[r] = struct{}{}
}

func (d *Device) untrack(op string, r gpucore.Resource) {
	d.calls = append(d.calls, op)
	if r == nil {
		return
	}
	if _, ok := d.live[r]; !ok {
		panic(fmt.Sprintf("gputest: %s of unknown or already released %q", op, r.Label()))
	}
	delete(d.live, r)
	d.released = append(d.released, r.Label())
}

// Driver implements gpucore.Device.
func (d *Device) Driver() string { return d.DriverName }

// ShaderFormats implements gpucore.Device.
func (d *Device) ShaderFormats() gpucore.ShaderFormat { return d.Formats }

// ClaimWindow implements gpucore.Device.
func (d *Device) ClaimWindow(w gpucore.Window) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpClaimWindow); err != nil {
		return err
	}
	if d.claimed != nil {
		return gpucore.ErrWindowClaimed
	}
	d.claimed = w
	d.mode = gpucore.PresentModeVSync
	return nil
}

// ReleaseWindow implements gpucore.Device.
func (d *Device) ReleaseWindow(w gpucore.Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "ReleaseWindow")
	if d.claimed == w {
		d.claimed = nil
	}
}

// SupportsPresentMode implements gpucore.Device.
func (d *Device) SupportsPresentMode(_ gpucore.Window, mode gpucore.PresentMode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "SupportsPresentMode")
	return mode == gpucore.PresentModeVSync || slices.Contains(d.PresentModes, mode)
}

// SetSwapchainParameters implements gpucore.Device.
func (d *Device) SetSwapchainParameters(w gpucore.Window, composition gpucore.SwapchainComposition, mode gpucore.PresentMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpSetSwapchainParameters); err != nil {
		return err
	}
	if d.claimed == nil || d.claimed != w {
		return gpucore.ErrWindowNotClaimed
	}
	if composition != gpucore.SwapchainCompositionSDR {
		return gpucore.ErrCompositionUnsupported
	}
	if mode != gpucore.PresentModeVSync && !slices.Contains(d.PresentModes, mode) {
		return gpucore.ErrPresentModeUnsupported
	}
	d.mode = mode
	return nil
}

// SwapchainFormat implements gpucore.Device.
func (d *Device) SwapchainFormat(gpucore.Window) gputypes.TextureFormat { return d.Format }

// CreateShader implements gpucore.Device.
func (d *Device) CreateShader(desc *gpucore.ShaderDesc) (gpucore.Shader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateShader); err != nil {
		return nil, err
	}
	if desc.Format == 0 || !d.Formats.Has(desc.Format) {
		return nil, gpucore.ErrShaderFormat
	}
	s := &Shader{resource: resource{label: desc.Label}, Desc: *desc}
	d.track(s)
	return s, nil
}

// ReleaseShader implements gpucore.Device.
func (d *Device) ReleaseShader(s gpucore.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseShader", s)
}

// CreateGraphicsPipeline implements gpucore.Device.
func (d *Device) CreateGraphicsPipeline(desc *gpucore.GraphicsPipelineDesc) (gpucore.GraphicsPipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateGraphicsPipeline); err != nil {
		return nil, err
	}
	for _, s := range []gpucore.Shader{desc.VertexShader, desc.FragmentShader} {
		if _, ok := d.live[s]; !ok {
			return nil, fmt.Errorf("gputest: pipeline %q references a released shader", desc.Label)
		}
	}
	p := &Pipeline{resource: resource{label: desc.Label}, Desc: *desc}
	d.track(p)
	return p, nil
}

// ReleaseGraphicsPipeline implements gpucore.Device.
func (d *Device) ReleaseGraphicsPipeline(p gpucore.GraphicsPipeline) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseGraphicsPipeline", p)
}

// CreateBuffer implements gpucore.Device.
func (d *Device) CreateBuffer(desc *gpucore.BufferDesc) (gpucore.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateBuffer); err != nil {
		return nil, err
	}
	b := &Buffer{resource: resource{label: desc.Label}, Desc: *desc}
	d.track(b)
	return b, nil
}

// ReleaseBuffer implements gpucore.Device.
func (d *Device) ReleaseBuffer(b gpucore.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseBuffer", b)
}

// CreateTransferBuffer implements gpucore.Device.
func (d *Device) CreateTransferBuffer(desc *gpucore.TransferBufferDesc) (gpucore.TransferBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateTransferBuffer); err != nil {
		return nil, err
	}
	tb := &TransferBuffer{resource: resource{label: desc.Label}, Desc: *desc, data: make([]byte, desc.Size)}
	d.track(tb)
	return tb, nil
}

// ReleaseTransferBuffer implements gpucore.Device.
func (d *Device) ReleaseTransferBuffer(tb gpucore.TransferBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseTransferBuffer", tb)
}

// MapTransferBuffer implements gpucore.Device.
func (d *Device) MapTransferBuffer(tb gpucore.TransferBuffer, _ bool) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpMapTransferBuffer); err != nil {
		return nil, err
	}
	t := tb.(*TransferBuffer)
	if t.mapped {
		return nil, gpucore.ErrTransferMapped
	}
	t.mapped = true
	return t.data, nil
}

// UnmapTransferBuffer implements gpucore.Device.
func (d *Device) UnmapTransferBuffer(tb gpucore.TransferBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "UnmapTransferBuffer")
	tb.(*TransferBuffer).mapped = false
}

// CreateTexture implements gpucore.Device.
func (d *Device) CreateTexture(desc *gpucore.TextureDesc) (gpucore.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateTexture); err != nil {
		return nil, err
	}
	t := &Texture{resource: resource{label: desc.Label}, Desc: *desc}
	d.track(t)
	return t, nil
}

// ReleaseTexture implements gpucore.Device.
func (d *Device) ReleaseTexture(t gpucore.Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseTexture", t)
}

// CreateSampler implements gpucore.Device.
func (d *Device) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.Sampler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpCreateSampler); err != nil {
		return nil, err
	}
	s := &Sampler{resource: resource{label: desc.Label}, Desc: *desc}
	d.track(s)
	return s, nil
}

// ReleaseSampler implements gpucore.Device.
func (d *Device) ReleaseSampler(s gpucore.Sampler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.untrack("ReleaseSampler", s)
}

// AcquireCommandBuffer implements gpucore.Device.
func (d *Device) AcquireCommandBuffer() (gpucore.CommandBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpAcquireCommandBuffer); err != nil {
		return nil, err
	}
	return &CommandBuffer{dev: d}, nil
}

// WaitIdle implements gpucore.Device.
func (d *Device) WaitIdle() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "WaitIdle")
	return nil
}

// Destroy implements gpucore.Device. It panics if resources are still live
// or a window is still claimed.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, "Destroy")
	if len(d.live) > 0 {
		panic(fmt.Sprintf("gputest: Destroy with %d live resources", len(d.live)))
	}
	if d.claimed != nil {
		panic("gputest: Destroy with a claimed window")
	}
	d.destroyed = true
}

var _ gpucore.Device = (*Device)(nil)
