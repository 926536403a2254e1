package quad

import (
	"log/slog"

	"github.com/gogpu/quad/gpucore"
)

// PresentModePriority is the order present modes are tried in:
// low-latency non-blocking, then tearing-allowed, then blocking vsync.
var PresentModePriority = [...]gpucore.PresentMode{
	gpucore.PresentModeMailbox,
	gpucore.PresentModeImmediate,
	gpucore.PresentModeVSync,
}

// ChoosePresentMode returns the first mode in PresentModePriority that
// supported reports true for. VSync is returned when none is.
func ChoosePresentMode(supported func(gpucore.PresentMode) bool) gpucore.PresentMode {
	for _, mode := range PresentModePriority {
		if mode == gpucore.PresentModeVSync || supported(mode) {
			return mode
		}
	}
	return gpucore.PresentModeVSync
}

// negotiatePresentMode picks and applies the best present mode for the
// claimed window. A failed update is logged and the previous mode stays.
func negotiatePresentMode(log *slog.Logger, dev gpucore.Device, w gpucore.Window) gpucore.PresentMode {
	mode := ChoosePresentMode(func(m gpucore.PresentMode) bool {
		log.Debug("trying present mode", "mode", m)
		return dev.SupportsPresentMode(w, m)
	})
	if err := dev.SetSwapchainParameters(w, gpucore.SwapchainCompositionSDR, mode); err != nil {
		log.Warn("setting present mode failed, keeping previous mode", "mode", mode, "error", err)
		return mode
	}
	log.Info("present mode set", "mode", mode)
	return mode
}
