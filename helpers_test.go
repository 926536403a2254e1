package quad

import (
	"testing"

	"github.com/gogpu/quad/backend"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/gpucore/gputest"
)

// testWindow is a fake Window with a scripted event queue.
type testWindow struct {
	*gputest.Window

	events []Event

	// quitAfter, when positive, makes the queue report EventQuit after it
	// has been found empty that many times.
	quitAfter int

	destroyed int
}

func newTestWindow(width, height int) *testWindow {
	return &testWindow{Window: gputest.NewWindow(width, height)}
}

func (w *testWindow) PollEvent() (Event, bool) {
	if len(w.events) > 0 {
		ev := w.events[0]
		w.events = w.events[1:]
		return ev, true
	}
	if w.quitAfter > 0 {
		w.quitAfter--
		if w.quitAfter == 0 {
			return Event{Kind: EventQuit}, true
		}
	}
	return Event{}, false
}

func (w *testWindow) Destroy() { w.destroyed++ }

// useDevice registers a backend serving dev for the duration of the test
// and returns its name.
func useDevice(t *testing.T, dev gpucore.Device) string {
	t.Helper()
	name := "test/" + t.Name()
	backend.Register(name, func(backend.Options) (gpucore.Device, error) {
		return dev, nil
	})
	t.Cleanup(func() { backend.Unregister(name) })
	return name
}

// newTestApp returns an App that opens win and dev.
func newTestApp(t *testing.T, dev *gputest.Device, win *testWindow, opts ...Option) *App {
	t.Helper()
	name := useDevice(t, dev)
	base := []Option{
		WithBackend(name),
		WithWindowFactory(func(WindowConfig) (Window, error) { return win, nil }),
	}
	return New(append(base, opts...)...)
}

// wgslDevice returns a fake device that consumes WGSL directly.
func wgslDevice() *gputest.Device {
	dev := gputest.New()
	dev.Formats = gpucore.ShaderFormatWGSL
	return dev
}
