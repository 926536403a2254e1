//go:build linux

package window

import (
	"fmt"

	"github.com/gogpu/quad/gpucore"
	"github.com/veandco/go-sdl2/sdl"
)

const platformFlags = sdl.WINDOW_VULKAN

type platformState struct{}

func (platformState) init(*sdl.Window) error { return nil }
func (platformState) release()               {}

// handle returns the X11 display and window. Wayland sessions need
// SDL_VIDEODRIVER=x11.
func (platformState) handle(win *sdl.Window) (gpucore.SurfaceHandle, error) {
	info, err := win.GetWMInfo()
	if err != nil {
		return gpucore.SurfaceHandle{}, fmt.Errorf("window: wm info: %w", err)
	}
	if info.Subsystem != sdl.SYSWM_X11 {
		return gpucore.SurfaceHandle{}, fmt.Errorf("%w: %d", ErrUnsupportedSubsystem, info.Subsystem)
	}
	x11 := info.GetX11Info()
	return gpucore.SurfaceHandle{
		Display: uintptr(x11.Display),
		Window:  uintptr(x11.Window),
	}, nil
}
