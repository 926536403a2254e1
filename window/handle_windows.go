//go:build windows

package window

import (
	"fmt"

	"github.com/gogpu/quad/gpucore"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sys/windows"
)

const platformFlags = sdl.WINDOW_VULKAN

type platformState struct{}

func (platformState) init(*sdl.Window) error { return nil }
func (platformState) release()               {}

// handle returns the module HINSTANCE and the HWND.
func (platformState) handle(win *sdl.Window) (gpucore.SurfaceHandle, error) {
	info, err := win.GetWMInfo()
	if err != nil {
		return gpucore.SurfaceHandle{}, fmt.Errorf("window: wm info: %w", err)
	}
	if info.Subsystem != sdl.SYSWM_WINDOWS {
		return gpucore.SurfaceHandle{}, fmt.Errorf("%w: %d", ErrUnsupportedSubsystem, info.Subsystem)
	}
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return gpucore.SurfaceHandle{}, fmt.Errorf("window: module handle: %w", err)
	}
	return gpucore.SurfaceHandle{
		Display: uintptr(instance),
		Window:  uintptr(info.GetWindowsInfo().Window),
	}, nil
}
