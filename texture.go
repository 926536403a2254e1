package quad

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/internal/image"
)

// UploadTexture creates a 2D RGBA8 texture sized to px and uploads the
// pixels through a staging buffer. px is released once its bytes are in
// staging memory, whether or not the upload succeeds.
func UploadTexture(dev gpucore.Device, px *image.Pixels) (gpucore.Texture, error) {
	defer px.Release()

	if px.Width <= 0 || px.Height <= 0 || px.Size() != px.Width*px.Height*image.BytesPerPixel {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidPixels, px.Size(), px.Width, px.Height)
	}
	w, h := uint32(px.Width), uint32(px.Height)

	tex, err := dev.CreateTexture(&gpucore.TextureDesc{
		Label:             "Quad texture",
		Dimension:         gputypes.TextureDimension2D,
		Format:            gputypes.TextureFormatRGBA8Unorm,
		Usage:             gputypes.TextureUsageTextureBinding,
		Width:             w,
		Height:            h,
		LayerCountOrDepth: 1,
		NumLevels:         1,
		SampleCount:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	err = uploadStaged(dev, "Quad texture staging", uint32(px.Size()),
		func(dst []byte) {
			copy(dst, px.Pix)
			px.Release()
		},
		func(pass gpucore.CopyPass, tb gpucore.TransferBuffer) {
			pass.UploadToTexture(
				gpucore.TextureTransferInfo{TransferBuffer: tb, PixelsPerRow: w, RowsPerLayer: h},
				gpucore.TextureRegion{Texture: tex, W: w, H: h, D: 1},
				false,
			)
		})
	if err != nil {
		dev.ReleaseTexture(tex)
		return nil, fmt.Errorf("upload texture: %w", err)
	}
	Logger().Debug("texture uploaded", "width", w, "height", h)
	return tex, nil
}

// SamplerSpec is the filtering and addressing state of the quad sampler.
type SamplerSpec struct {
	Label         string
	Filter        gputypes.FilterMode
	MipmapFilter  gputypes.FilterMode
	AddressMode   gputypes.AddressMode
	MaxAnisotropy uint16
}

// DefaultSamplerSpec returns a clamp-to-edge bilinear sampler with no
// anisotropic filtering.
func DefaultSamplerSpec() SamplerSpec {
	return SamplerSpec{
		Label:         "Quad sampler",
		Filter:        gputypes.FilterModeLinear,
		MipmapFilter:  gputypes.FilterModeLinear,
		AddressMode:   gputypes.AddressModeClampToEdge,
		MaxAnisotropy: 1,
	}
}

// CreateSampler creates the quad sampler from spec.
func CreateSampler(dev gpucore.Device, spec SamplerSpec) (gpucore.Sampler, error) {
	s, err := dev.CreateSampler(&gpucore.SamplerDesc{
		Label:            spec.Label,
		MinFilter:        spec.Filter,
		MagFilter:        spec.Filter,
		MipmapFilter:     spec.MipmapFilter,
		AddressModeU:     spec.AddressMode,
		AddressModeV:     spec.AddressMode,
		AddressModeW:     spec.AddressMode,
		MaxAnisotropy:    spec.MaxAnisotropy,
		EnableAnisotropy: spec.MaxAnisotropy > 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return s, nil
}
