package quad

import (
	"context"
	"fmt"
)

// Result is the outcome of a lifecycle callback.
type Result int

const (
	// Continue keeps the application running.
	Continue Result = iota

	// Success ends the application normally.
	Success

	// Failure ends the application after a fatal error.
	Failure
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	if r == Failure {
		return 1
	}
	return 0
}

// Run initializes app and drives it until a callback ends the loop or ctx
// is cancelled. Pending window events are dispatched before each frame.
// Quit always runs before Run returns.
//
// Cancellation ends the loop with Success, like a quit event.
func Run(ctx context.Context, app *App) Result {
	defer app.Quit()

	if r := app.Init(); r != Continue {
		return r
	}
	for {
		if ctx.Err() != nil {
			app.log.Info("context done", "cause", context.Cause(ctx))
			return Success
		}
		for {
			ev, ok := app.window.PollEvent()
			if !ok {
				break
			}
			if r := app.Event(ev); r != Continue {
				return r
			}
		}
		if r := app.Iterate(); r != Continue {
			return r
		}
	}
}
