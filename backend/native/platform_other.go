//go:build !darwin

package native

import (
	"github.com/gogpu/gputypes"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var candidates = []candidate{
	{api: gputypes.BackendVulkan, driver: "vulkan"},
}
