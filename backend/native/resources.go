package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/quad/internal/shader"
	"github.com/gogpu/wgpu/hal"
)

type shaderModule struct {
	label    string
	stage    gpucore.ShaderStage
	entry    string
	samplers uint32
	module   hal.ShaderModule
}

func (s *shaderModule) Label() string              { return s.label }
func (s *shaderModule) Stage() gpucore.ShaderStage { return s.stage }

type buffer struct {
	label string
	size  uint32
	buf   hal.Buffer
}

func (b *buffer) Label() string { return b.label }
func (b *buffer) Size() uint32  { return b.size }

// transferBuffer is host memory with a device staging copy. data is
// padded to a multiple of 4 bytes for queue writes.
type transferBuffer struct {
	label   string
	size    uint32
	data    []byte
	staging hal.Buffer
	mapped  bool
}

func (t *transferBuffer) Label() string { return t.label }
func (t *transferBuffer) Size() uint32  { return t.size }

type texture struct {
	label         string
	width, height uint32
	format        gputypes.TextureFormat
	tex           hal.Texture
	view          hal.TextureView

	// usage is the usage the texture was last transitioned to.
	usage gputypes.TextureUsage

	// swapchain textures are owned by the surface.
	swapchain bool
}

func (t *texture) Label() string  { return t.label }
func (t *texture) Width() uint32  { return t.width }
func (t *texture) Height() uint32 { return t.height }

type sampler struct {
	label   string
	sampler hal.Sampler
}

func (s *sampler) Label() string { return s.label }

func align4(n uint32) uint32 { return (n + 3) &^ 3 }

// CreateShader implements gpucore.Device.
func (d *Device) CreateShader(desc *gpucore.ShaderDesc) (gpucore.Shader, error) {
	var src hal.ShaderSource
	switch desc.Format {
	case gpucore.ShaderFormatSPIRV:
		words, err := shader.Words(desc.Code)
		if err != nil {
			return nil, fmt.Errorf("native: shader %q: %w", desc.Label, err)
		}
		src.SPIRV = words
	case gpucore.ShaderFormatWGSL:
		src.WGSL = string(desc.Code)
	default:
		return nil, fmt.Errorf("native: shader %q: %w", desc.Label, gpucore.ErrShaderFormat)
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader %q: %w", desc.Label, err)
	}
	d.created("shader", desc.Label)
	return &shaderModule{
		label:    desc.Label,
		stage:    desc.Stage,
		entry:    desc.EntryPoint,
		samplers: desc.NumSamplers,
		module:   module,
	}, nil
}

// ReleaseShader implements gpucore.Device. Linked pipelines keep working.
func (d *Device) ReleaseShader(s gpucore.Shader) {
	if s == nil {
		return
	}
	d.device.DestroyShaderModule(s.(*shaderModule).module)
}

// CreateBuffer implements gpucore.Device. Buffers are always copy
// destinations so copy passes can fill them.
func (d *Device) CreateBuffer(desc *gpucore.BufferDesc) (gpucore.Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("native: buffer %q: %w", desc.Label, ErrInvalidSize)
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  uint64(align4(desc.Size)),
		Usage: desc.Usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}
	d.created("buffer", desc.Label)
	return &buffer{label: desc.Label, size: desc.Size, buf: buf}, nil
}

// ReleaseBuffer implements gpucore.Device.
func (d *Device) ReleaseBuffer(b gpucore.Buffer) {
	if b == nil {
		return
	}
	hb := b.(*buffer).buf
	d.deferRelease(func() { d.device.DestroyBuffer(hb) })
}

// CreateTransferBuffer implements gpucore.Device. Download buffers are
// not supported.
func (d *Device) CreateTransferBuffer(desc *gpucore.TransferBufferDesc) (gpucore.TransferBuffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("native: transfer buffer %q: %w", desc.Label, ErrInvalidSize)
	}
	if desc.Usage != gpucore.TransferUsageUpload {
		return nil, fmt.Errorf("native: transfer buffer %q: download transfers are not supported", desc.Label)
	}
	size := align4(desc.Size)
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  uint64(size),
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create transfer buffer %q: %w", desc.Label, err)
	}
	d.created("transfer buffer", desc.Label)
	return &transferBuffer{
		label:   desc.Label,
		size:    desc.Size,
		data:    make([]byte, size),
		staging: staging,
	}, nil
}

// ReleaseTransferBuffer implements gpucore.Device.
func (d *Device) ReleaseTransferBuffer(tb gpucore.TransferBuffer) {
	if tb == nil {
		return
	}
	t := tb.(*transferBuffer)
	t.data = nil
	d.deferRelease(func() { d.device.DestroyBuffer(t.staging) })
}

// MapTransferBuffer implements gpucore.Device. The staging copy is only
// updated on unmap, so the cycle flag has no effect.
func (d *Device) MapTransferBuffer(tb gpucore.TransferBuffer, _ bool) ([]byte, error) {
	t := tb.(*transferBuffer)
	if t.mapped {
		return nil, gpucore.ErrTransferMapped
	}
	t.mapped = true
	return t.data[:t.size:t.size], nil
}

// UnmapTransferBuffer implements gpucore.Device.
func (d *Device) UnmapTransferBuffer(tb gpucore.TransferBuffer) {
	t := tb.(*transferBuffer)
	if !t.mapped {
		return
	}
	t.mapped = false
	d.queue.WriteBuffer(t.staging, 0, t.data)
}

// CreateTexture implements gpucore.Device. Textures are always copy
// destinations so copy passes can fill them.
func (d *Device) CreateTexture(desc *gpucore.TextureDesc) (gpucore.Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("native: texture %q: %w", desc.Label, ErrInvalidSize)
	}
	layers := max(desc.LayerCountOrDepth, 1)
	levels := max(desc.NumLevels, 1)
	samples := max(desc.SampleCount, 1)

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: layers},
		MipLevelCount: levels,
		SampleCount:   samples,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label + " view",
		Format:        desc.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: levels,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("native: create texture view %q: %w", desc.Label, err)
	}
	d.created("texture", desc.Label)
	return &texture{
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		tex:    tex,
		view:   view,
	}, nil
}

// ReleaseTexture implements gpucore.Device.
func (d *Device) ReleaseTexture(t gpucore.Texture) {
	if t == nil {
		return
	}
	tx := t.(*texture)
	if tx.swapchain {
		return
	}
	d.evictBindGroups(func(k bindGroupKey) bool { return k.texture == tx })
	d.deferRelease(func() {
		d.device.DestroyTextureView(tx.view)
		d.device.DestroyTexture(tx.tex)
	})
}

// CreateSampler implements gpucore.Device. Anisotropic filtering is not
// applied.
func (d *Device) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.Sampler, error) {
	if desc.EnableAnisotropy {
		d.log.Warn("native: anisotropic filtering ignored", "sampler", desc.Label, "max", desc.MaxAnisotropy)
	}
	s, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create sampler %q: %w", desc.Label, err)
	}
	d.created("sampler", desc.Label)
	return &sampler{label: desc.Label, sampler: s}, nil
}

// ReleaseSampler implements gpucore.Device.
func (d *Device) ReleaseSampler(s gpucore.Sampler) {
	if s == nil {
		return
	}
	sm := s.(*sampler)
	d.evictBindGroups(func(k bindGroupKey) bool { return k.sampler == sm })
	d.deferRelease(func() { d.device.DestroySampler(sm.sampler) })
}
