package quad

import "github.com/gogpu/quad/gpucore"

// EventKind classifies window events.
type EventKind int

// Event kinds delivered by Window.PollEvent.
const (
	EventOther EventKind = iota
	EventQuit
	EventWindowResized
	EventWindowMinimized
	EventWindowRestored
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventWindowResized:
		return "resized"
	case EventWindowMinimized:
		return "minimized"
	case EventWindowRestored:
		return "restored"
	default:
		return "other"
	}
}

// Event is a window or application event.
type Event struct {
	Kind EventKind

	// Width and Height carry the new size of EventWindowResized.
	Width, Height int
}

// Window is an OS window the App presents to.
type Window interface {
	gpucore.Window

	// PollEvent returns the next pending event, or false when the queue is empty.
	PollEvent() (Event, bool)

	// Destroy closes the window.
	Destroy()
}

// WindowFactory opens a window from its configuration.
type WindowFactory func(cfg WindowConfig) (Window, error)
