// Package quad renders a single textured quad through a GPU device
// abstraction.
//
// # Overview
//
// quad is a GPU smoke test for the GoGPU ecosystem. It opens a window,
// claims it for presentation, links one graphics pipeline, uploads a static
// six-vertex quad and one texture through staging buffers, and then draws
// the quad every frame until the window is closed.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/quad"
//	    _ "github.com/gogpu/quad/backend/native"
//	    "github.com/gogpu/quad/window"
//	)
//
//	app := quad.New(quad.WithWindowFactory(window.Open))
//	os.Exit(quad.Run(ctx, app).ExitCode())
//
// # Lifecycle
//
// An [App] follows the callback lifecycle Init → (Event | Iterate)* → Quit.
// Each callback returns a [Result]; [Run] drives the loop until a callback
// returns [Success] or [Failure].
//
// Init creates every object in dependency order: window, device, swapchain
// claim, pipeline, vertex buffer, texture, sampler. Objects are pushed onto
// a release stack as they are created. If any step fails the stack unwinds
// and Init returns [Failure]; otherwise the App takes ownership of the stack
// and Quit unwinds it.
//
// # Frames
//
// Each Iterate acquires a command buffer and the swapchain texture. When
// the swapchain texture is unavailable, for example while the window is
// minimized, the frame records nothing but the command buffer is still
// submitted. Failure to acquire a command buffer ends the loop.
//
// # Backends
//
// Devices come from the [backend] registry. The native backend in
// backend/native runs on gogpu/wgpu and registers itself on import.
package quad

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"

	// AppName is the window title and application name.
	AppName = "SDL GPU Test"

	// AppID is the reverse-DNS application identifier.
	AppID = "moe.beyleyisnot.sdl_gpu_test"
)
