//go:build !linux && !windows && !darwin

package window

import (
	"github.com/gogpu/quad/gpucore"
	"github.com/veandco/go-sdl2/sdl"
)

const platformFlags = 0

type platformState struct{}

func (platformState) init(*sdl.Window) error { return nil }
func (platformState) release()               {}

func (platformState) handle(*sdl.Window) (gpucore.SurfaceHandle, error) {
	return gpucore.SurfaceHandle{}, ErrUnsupportedSubsystem
}
