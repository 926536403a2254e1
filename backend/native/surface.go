package native

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// swapchain is the configured surface of the claimed window.
type swapchain struct {
	window  gpucore.Window
	surface hal.Surface
	caps    *hal.SurfaceCapabilities

	format      gputypes.TextureFormat
	mode        gpucore.PresentMode
	composition gpucore.SwapchainComposition

	width, height  uint32
	needsConfigure bool
}

// halPresentMode maps a present mode onto the surface's mode.
func halPresentMode(m gpucore.PresentMode) hal.PresentMode {
	switch m {
	case gpucore.PresentModeMailbox:
		return hal.PresentModeMailbox
	case gpucore.PresentModeImmediate:
		return hal.PresentModeImmediate
	default:
		return hal.PresentModeFifo
	}
}

// pickFormat prefers BGRA8, then RGBA8, then whatever comes first.
func pickFormat(formats []gputypes.TextureFormat) gputypes.TextureFormat {
	for _, f := range []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm} {
		if slices.Contains(formats, f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// compositionFormat returns the swapchain format for a composition.
// SDR keeps the surface's base format; SDRLinear needs its sRGB variant.
func compositionFormat(base gputypes.TextureFormat, c gpucore.SwapchainComposition) (gputypes.TextureFormat, bool) {
	switch c {
	case gpucore.SwapchainCompositionSDR:
		return base, true
	case gpucore.SwapchainCompositionSDRLinear:
		switch base {
		case gputypes.TextureFormatBGRA8Unorm:
			return gputypes.TextureFormatBGRA8UnormSrgb, true
		case gputypes.TextureFormatRGBA8Unorm:
			return gputypes.TextureFormatRGBA8UnormSrgb, true
		}
	}
	return 0, false
}

// ClaimWindow implements gpucore.Device.
func (d *Device) ClaimWindow(w gpucore.Window) error {
	if d.swap != nil {
		return gpucore.ErrWindowClaimed
	}
	h, err := w.SurfaceHandle()
	if err != nil {
		return fmt.Errorf("native: surface handle: %w", err)
	}
	surface, err := d.instance.CreateSurface(h.Display, h.Window)
	if err != nil {
		return fmt.Errorf("native: create surface: %w", err)
	}
	caps := d.adapter.SurfaceCapabilities(surface)
	if caps == nil || len(caps.Formats) == 0 {
		surface.Destroy()
		return ErrSurfaceUnsupported
	}

	sc := &swapchain{
		window:  w,
		surface: surface,
		caps:    caps,
		format:  pickFormat(caps.Formats),
		mode:    gpucore.PresentModeVSync,
	}
	if err := d.configure(sc, sc.format, sc.mode); err != nil {
		surface.Destroy()
		return err
	}
	d.swap = sc
	d.log.Debug("native: window claimed", "format", sc.format, "width", sc.width, "height", sc.height)
	return nil
}

// configure applies format and mode at the window's current pixel size.
// A minimized window is left unconfigured until it has a size again.
func (d *Device) configure(sc *swapchain, format gputypes.TextureFormat, mode gpucore.PresentMode) error {
	pw, ph := sc.window.PixelSize()
	if pw <= 0 || ph <= 0 {
		sc.needsConfigure = true
		return nil
	}
	err := sc.surface.Configure(d.device, &hal.SurfaceConfiguration{
		Width:       uint32(pw),
		Height:      uint32(ph),
		Format:      format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: halPresentMode(mode),
		AlphaMode:   hal.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("native: configure surface: %w", err)
	}
	sc.width, sc.height = uint32(pw), uint32(ph)
	sc.needsConfigure = false
	return nil
}

// ReleaseWindow implements gpucore.Device.
func (d *Device) ReleaseWindow(w gpucore.Window) {
	if d.swap == nil || d.swap.window != w {
		return
	}
	if err := d.WaitIdle(); err != nil {
		d.log.Warn("native: release window before idle", "error", err)
	}
	d.releaseSwapchain()
}

func (d *Device) releaseSwapchain() {
	d.swap.surface.Unconfigure(d.device)
	d.swap.surface.Destroy()
	d.swap = nil
}

func (d *Device) claimed(w gpucore.Window) (*swapchain, error) {
	if d.swap == nil || d.swap.window != w {
		return nil, gpucore.ErrWindowNotClaimed
	}
	return d.swap, nil
}

// SupportsPresentMode implements gpucore.Device.
func (d *Device) SupportsPresentMode(w gpucore.Window, mode gpucore.PresentMode) bool {
	sc, err := d.claimed(w)
	if err != nil {
		return false
	}
	if mode == gpucore.PresentModeVSync {
		return true
	}
	return slices.Contains(sc.caps.PresentModes, halPresentMode(mode))
}

// SetSwapchainParameters implements gpucore.Device.
func (d *Device) SetSwapchainParameters(w gpucore.Window, composition gpucore.SwapchainComposition, mode gpucore.PresentMode) error {
	sc, err := d.claimed(w)
	if err != nil {
		return err
	}
	if !d.SupportsPresentMode(w, mode) {
		return fmt.Errorf("%w: %s", gpucore.ErrPresentModeUnsupported, mode)
	}
	format, ok := compositionFormat(pickFormat(sc.caps.Formats), composition)
	if !ok || !slices.Contains(sc.caps.Formats, format) {
		return gpucore.ErrCompositionUnsupported
	}
	if err := d.configure(sc, format, mode); err != nil {
		if rerr := d.configure(sc, sc.format, sc.mode); rerr != nil {
			d.log.Warn("native: restoring swapchain failed", "error", rerr)
		}
		return err
	}
	sc.format, sc.mode, sc.composition = format, mode, composition
	return nil
}

// SwapchainFormat implements gpucore.Device. It returns the zero format
// for a window the device has not claimed.
func (d *Device) SwapchainFormat(w gpucore.Window) gputypes.TextureFormat {
	sc, err := d.claimed(w)
	if err != nil {
		return 0
	}
	return sc.format
}

// acquire returns the next surface texture, or nil when the window has no
// drawable area. The swapchain is reconfigured when the window size changed
// or the last image was suboptimal.
func (d *Device) acquire(sc *swapchain) (*hal.AcquiredSurfaceTexture, error) {
	if sc.window.Minimized() {
		return nil, nil
	}
	pw, ph := sc.window.PixelSize()
	if pw <= 0 || ph <= 0 {
		return nil, nil
	}
	if sc.needsConfigure || uint32(pw) != sc.width || uint32(ph) != sc.height {
		if err := d.configure(sc, sc.format, sc.mode); err != nil {
			return nil, err
		}
	}
	st, err := sc.surface.AcquireTexture(nil)
	if err != nil {
		return nil, fmt.Errorf("native: acquire surface texture: %w", err)
	}
	if st.Suboptimal {
		sc.needsConfigure = true
	}
	return st, nil
}
