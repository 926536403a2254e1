// Package window opens quad windows with SDL2.
//
// SDL must be driven from the main OS thread; callers lock it with
// runtime.LockOSThread before calling Open.
package window

import (
	"errors"
	"fmt"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/gpucore"
	"github.com/veandco/go-sdl2/sdl"
)

// ErrUnsupportedSubsystem is returned by SurfaceHandle on window systems
// the backends cannot create surfaces for.
var ErrUnsupportedSubsystem = errors.New("window: unsupported window subsystem")

// Window is an SDL window.
type Window struct {
	win      *sdl.Window
	platform platformState
	closed   bool
}

var _ quad.Window = (*Window)(nil)

// Open initializes SDL video and opens a window. It matches
// quad.WindowFactory.
func Open(cfg quad.WindowConfig) (quad.Window, error) {
	if cfg.AppID != "" {
		sdl.SetHint("SDL_APP_NAME", cfg.Title)
		sdl.SetHint("SDL_VIDEO_X11_WMCLASS", cfg.AppID)
		sdl.SetHint("SDL_VIDEO_WAYLAND_WMCLASS", cfg.AppID)
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("window: init SDL video: %w", err)
	}

	var flags uint32 = sdl.WINDOW_SHOWN | platformFlags
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("window: create window: %w", err)
	}
	w := &Window{win: win}
	if err := w.platform.init(win); err != nil {
		_ = win.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("window: %w", err)
	}
	quad.Logger().Debug("window: opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return w, nil
}

// PixelSize implements gpucore.Window.
func (w *Window) PixelSize() (width, height int) {
	pw, ph := w.win.GetSize()
	return int(pw), int(ph)
}

// Minimized implements gpucore.Window.
func (w *Window) Minimized() bool {
	return w.win.GetFlags()&sdl.WINDOW_MINIMIZED != 0
}

// SurfaceHandle implements gpucore.Window.
func (w *Window) SurfaceHandle() (gpucore.SurfaceHandle, error) {
	return w.platform.handle(w.win)
}

// PollEvent implements quad.Window. It drains events that carry no
// meaning for the App and returns the next one that does.
func (w *Window) PollEvent() (quad.Event, bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := translate(ev); ok {
			return e, true
		}
	}
	return quad.Event{}, false
}

// translate maps an SDL event to a quad event. Events without a quad kind
// are dropped.
func translate(ev sdl.Event) (quad.Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return quad.Event{Kind: quad.EventQuit}, true
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			return quad.Event{Kind: quad.EventWindowResized, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_MINIMIZED:
			return quad.Event{Kind: quad.EventWindowMinimized}, true
		case sdl.WINDOWEVENT_RESTORED:
			return quad.Event{Kind: quad.EventWindowRestored}, true
		case sdl.WINDOWEVENT_CLOSE:
			return quad.Event{Kind: quad.EventQuit}, true
		}
	}
	return quad.Event{}, false
}

// Destroy implements quad.Window. It is safe to call more than once.
func (w *Window) Destroy() {
	if w.closed {
		return
	}
	w.closed = true
	w.platform.release()
	if err := w.win.Destroy(); err != nil {
		quad.Logger().Warn("window: destroy", "error", err)
	}
	sdl.Quit()
}
