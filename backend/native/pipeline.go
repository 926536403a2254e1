package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// Fragment texture+sampler pair i is bound in group 0 at bindings 2i
// (texture) and 2i+1 (sampler).
const samplerGroup = 0

type pipeline struct {
	label      string
	pipeline   hal.RenderPipeline
	layout     hal.PipelineLayout
	bindLayout hal.BindGroupLayout
	samplers   uint32
}

func (p *pipeline) Label() string { return p.label }

// bindGroupKey identifies a cached single-pair sampler bind group.
type bindGroupKey struct {
	pipeline *pipeline
	slot     uint32
	texture  *texture
	sampler  *sampler
}

func samplerLayoutEntries(n uint32) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, 2*n)
	for i := range n {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    2 * i,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2*i + 1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return entries
}

func vertexLayouts(desc *gpucore.GraphicsPipelineDesc) []gputypes.VertexBufferLayout {
	layouts := make([]gputypes.VertexBufferLayout, len(desc.VertexBuffers))
	for i, vb := range desc.VertexBuffers {
		layouts[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(vb.Pitch),
			StepMode:    vb.StepMode,
		}
		for _, a := range desc.VertexAttributes {
			if a.BufferSlot != vb.Slot {
				continue
			}
			layouts[i].Attributes = append(layouts[i].Attributes, gputypes.VertexAttribute{
				Format:         a.Format,
				Offset:         uint64(a.Offset),
				ShaderLocation: a.Location,
			})
		}
	}
	return layouts
}

// CreateGraphicsPipeline implements gpucore.Device. The fragment stage's
// NumSamplers decides the sampler bind group layout. Line fill mode is
// not supported.
func (d *Device) CreateGraphicsPipeline(desc *gpucore.GraphicsPipelineDesc) (gpucore.GraphicsPipeline, error) {
	vs, ok := desc.VertexShader.(*shaderModule)
	if !ok || vs == nil {
		return nil, fmt.Errorf("native: pipeline %q: missing vertex shader", desc.Label)
	}
	fs, ok := desc.FragmentShader.(*shaderModule)
	if !ok || fs == nil {
		return nil, fmt.Errorf("native: pipeline %q: missing fragment shader", desc.Label)
	}
	if desc.Rasterizer.FillMode != gpucore.FillModeFill {
		return nil, fmt.Errorf("native: pipeline %q: fill mode %d not supported", desc.Label, desc.Rasterizer.FillMode)
	}

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + " samplers",
		Entries: samplerLayoutEntries(fs.samplers),
	})
	if err != nil {
		return nil, fmt.Errorf("native: pipeline %q: create bind group layout: %w", desc.Label, err)
	}
	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + " layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(bindLayout)
		return nil, fmt.Errorf("native: pipeline %q: create pipeline layout: %w", desc.Label, err)
	}

	targets := make([]gputypes.ColorTargetState, len(desc.ColorTargets))
	for i, ct := range desc.ColorTargets {
		targets[i] = gputypes.ColorTargetState{
			Format:    ct.Format,
			Blend:     ct.Blend,
			WriteMask: gputypes.ColorWriteMaskAll,
		}
	}
	var depth *hal.DepthStencilState
	if ds := desc.DepthStencil; ds != nil {
		depth = &hal.DepthStencilState{
			Format:            ds.Format,
			DepthWriteEnabled: ds.DepthWrite,
			DepthCompare:      ds.DepthCompare,
		}
	}

	multisample := gputypes.MultisampleState{
		Count: max(desc.SampleCount, 1),
		Mask:  0xFFFFFFFF,
	}

	rp, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     vs.module,
			EntryPoint: vs.entry,
			Buffers:    vertexLayouts(desc),
		},
		Fragment: &hal.FragmentState{
			Module:     fs.module,
			EntryPoint: fs.entry,
			Targets:    targets,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  desc.Topology,
			CullMode:  desc.Rasterizer.CullMode,
			FrontFace: desc.Rasterizer.FrontFace,
		},
		DepthStencil: depth,
		Multisample:  multisample,
	})
	if err != nil {
		d.device.DestroyPipelineLayout(layout)
		d.device.DestroyBindGroupLayout(bindLayout)
		return nil, fmt.Errorf("native: create render pipeline %q: %w", desc.Label, err)
	}
	d.created("pipeline", desc.Label)
	return &pipeline{
		label:      desc.Label,
		pipeline:   rp,
		layout:     layout,
		bindLayout: bindLayout,
		samplers:   fs.samplers,
	}, nil
}

// ReleaseGraphicsPipeline implements gpucore.Device.
func (d *Device) ReleaseGraphicsPipeline(p gpucore.GraphicsPipeline) {
	if p == nil {
		return
	}
	pl := p.(*pipeline)
	d.evictBindGroups(func(k bindGroupKey) bool { return k.pipeline == pl })
	d.deferRelease(func() {
		d.device.DestroyRenderPipeline(pl.pipeline)
		d.device.DestroyPipelineLayout(pl.layout)
		d.device.DestroyBindGroupLayout(pl.bindLayout)
	})
}

// samplerBindGroup returns a bind group for the pairs under p's layout.
// Single pairs are cached until one of their objects is released; other
// groups are returned with cached false and must be released by the caller.
func (d *Device) samplerBindGroup(p *pipeline, slot uint32, pairs []gpucore.TextureSamplerBinding) (hal.BindGroup, bool, error) {
	var key bindGroupKey
	if len(pairs) == 1 {
		key = bindGroupKey{pipeline: p, slot: slot, texture: pairs[0].Texture.(*texture), sampler: pairs[0].Sampler.(*sampler)}
		if bg, ok := d.bindGroups[key]; ok {
			return bg, true, nil
		}
	}

	entries := make([]gputypes.BindGroupEntry, 0, 2*len(pairs))
	for i, pair := range pairs {
		n := slot + uint32(i)
		entries = append(entries,
			gputypes.BindGroupEntry{
				Binding:  2 * n,
				Resource: gputypes.TextureViewBinding{TextureView: pair.Texture.(*texture).view.NativeHandle()},
			},
			gputypes.BindGroupEntry{
				Binding:  2*n + 1,
				Resource: gputypes.SamplerBinding{Sampler: pair.Sampler.(*sampler).sampler.NativeHandle()},
			},
		)
	}
	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + " samplers",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, false, fmt.Errorf("native: create sampler bind group: %w", err)
	}
	if len(pairs) == 1 {
		d.bindGroups[key] = bg
		return bg, true, nil
	}
	return bg, false, nil
}

// evictBindGroups drops cached bind groups matching match.
func (d *Device) evictBindGroups(match func(bindGroupKey) bool) {
	for k, bg := range d.bindGroups {
		if !match(k) {
			continue
		}
		delete(d.bindGroups, k)
		d.deferRelease(func() { d.device.DestroyBindGroup(bg) })
	}
}
