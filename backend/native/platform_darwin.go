//go:build darwin

package native

import (
	"github.com/gogpu/gputypes"

	// Register the HAL backends tried on darwin.
	_ "github.com/gogpu/wgpu/hal/metal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var candidates = []candidate{
	{api: gputypes.BackendMetal, driver: "metal"},
	{api: gputypes.BackendVulkan, driver: "vulkan"},
}
