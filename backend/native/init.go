package native

import (
	"github.com/gogpu/quad/backend"
	"github.com/gogpu/quad/gpucore"
)

func init() {
	backend.Register(backend.BackendNative, func(opts backend.Options) (gpucore.Device, error) {
		d, err := Open(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
