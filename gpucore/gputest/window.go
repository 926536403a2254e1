package gputest

import "github.com/gogpu/quad/gpucore"

// Window is a fake gpucore.Window.
type Window struct {
	Width, Height int
	IsMinimized   bool
	Handle        gpucore.SurfaceHandle
	HandleErr     error
}

// NewWindow returns a fake window of the given pixel size.
func NewWindow(width, height int) *Window {
	return &Window{Width: width, Height: height}
}

// PixelSize implements gpucore.Window.
func (w *Window) PixelSize() (int, int) { return w.Width, w.Height }

// Minimized implements gpucore.Window.
func (w *Window) Minimized() bool { return w.IsMinimized }

// SurfaceHandle implements gpucore.Window.
func (w *Window) SurfaceHandle() (gpucore.SurfaceHandle, error) { return w.Handle, w.HandleErr }

var _ gpucore.Window = (*Window)(nil)
