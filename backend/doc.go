// Package backend provides a pluggable GPU device backend registry.
//
// The backend package allows quad to open devices from multiple
// implementations of [gpucore.Device]. Backends register a [Factory] from
// an init function and are selected at runtime.
//
// # Backend Registration
//
// The native backend registers itself on import:
//
//	import _ "github.com/gogpu/quad/backend/native"
//
// # Backend Selection
//
// Use OpenDefault to open the best available backend, or Open to request
// a specific backend by name:
//
//	// Open the default (best available) backend
//	dev, name, err := backend.OpenDefault(backend.Options{
//		ShaderFormats: gpucore.ShaderFormatSPIRV,
//	})
//
//	// Or request a specific backend
//	dev, err := backend.Open("native", opts)
//
// A backend is skipped by OpenDefault when the device it opens accepts none
// of the shader formats in [Options.ShaderFormats].
//
// # Available Backends
//
//   - "native": gogpu/wgpu HAL (Vulkan, Metal on darwin)
package backend
