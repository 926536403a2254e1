//go:build darwin

package window

import (
	"errors"

	"github.com/gogpu/quad/gpucore"
	"github.com/veandco/go-sdl2/sdl"
)

const platformFlags = sdl.WINDOW_METAL

// platformState owns the Metal view backing the window's CAMetalLayer.
type platformState struct {
	view sdl.MetalView
}

func (p *platformState) init(win *sdl.Window) error {
	p.view = sdl.MetalCreateView(win)
	if p.view == nil {
		return errors.New("create metal view")
	}
	return nil
}

func (p *platformState) release() {
	if p.view != nil {
		sdl.MetalDestroyView(p.view)
		p.view = nil
	}
}

// handle returns the CAMetalLayer of the window's Metal view.
func (p *platformState) handle(*sdl.Window) (gpucore.SurfaceHandle, error) {
	layer := sdl.MetalGetLayer(p.view)
	if layer == nil {
		return gpucore.SurfaceHandle{}, ErrUnsupportedSubsystem
	}
	return gpucore.SurfaceHandle{Window: uintptr(layer)}, nil
}
