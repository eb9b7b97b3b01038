// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a compiled shader program with its fixed-function
// state, vertex layout, and bind group layouts, for drawing into
// a render target of a given format.
type GraphicsPipeline struct {

	// Name of the pipeline, used as the label of its WebGPU objects.
	Name string

	// VertexEntry is the name of the vertex shader function.
	VertexEntry string

	// FragmentEntry is the name of the fragment shader function.
	FragmentEntry string

	// Vertex is the layout of the single vertex buffer.
	Vertex VertexLayout

	// BindGroups are the layouts of the bind groups, indexed by @group.
	BindGroups []*wgpu.BindGroupLayout

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	// Multisample has the multisampling settings.
	Multisample wgpu.MultisampleState

	// Blend is the color blending of the color target.
	Blend wgpu.BlendState

	module         *wgpu.ShaderModule
	layout         *wgpu.PipelineLayout
	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline with the given
// vertex layout and bind group layouts, and default settings.
func NewGraphicsPipeline(name string, vertex VertexLayout, groups ...*wgpu.BindGroupLayout) *GraphicsPipeline {
	pl := &GraphicsPipeline{Name: name, Vertex: vertex, BindGroups: groups}
	pl.SetGraphicsDefaults()
	return pl
}

// SetGraphicsDefaults configures all the default settings:
// vs_main and fs_main entry points, triangle lists with
// counter-clockwise front faces, back face culling, no blending,
// and no multisampling.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.VertexEntry = "vs_main"
	pl.FragmentEntry = "fs_main"
	pl.SetTopology(TriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetAlphaBlend(false)
	pl.SetMultisample(1)
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

// SetMultisample sets the number of samples per pixel.
func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// SetAlphaBlend determines the color blending function:
// either 1-source alpha (alphaBlend) or no blending:
// new color overwrites old.
func (pl *GraphicsPipeline) SetAlphaBlend(alphaBlend bool) *GraphicsPipeline {
	if alphaBlend {
		pl.Blend = wgpu.BlendStateAlphaBlending
	} else {
		pl.Blend = wgpu.BlendStateReplace
	}
	return pl
}

// Config compiles the given WGSL code and creates the pipeline,
// drawing into targets of the given format. Any existing pipeline
// is released first.
func (pl *GraphicsPipeline) Config(gp *GPU, format wgpu.TextureFormat, code string) error {
	if err := pl.Vertex.Validate(); err != nil {
		return err
	}
	pl.Release()
	module, err := gp.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          pl.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.module = module

	layout, err := gp.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pl.Name,
		BindGroupLayouts: pl.BindGroups,
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.layout = layout

	rp, err := gp.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  pl.Name,
		Layout: pl.layout,
		Vertex: wgpu.VertexState{
			Module:     pl.module,
			EntryPoint: pl.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{pl.Vertex.WGPU()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     pl.module,
			EntryPoint: pl.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &pl.Blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:   pl.Primitive,
		Multisample: pl.Multisample,
	})
	if err != nil {
		slog.Error(err.Error(), "pipeline", pl.Name)
		return err
	}
	pl.renderPipeline = rp
	return nil
}

// Bind sets this pipeline as the one to use for the next draw
// commands in the given render pass.
func (pl *GraphicsPipeline) Bind(rp *wgpu.RenderPassEncoder) {
	rp.SetPipeline(pl.renderPipeline)
}

// IsConfigured returns true once [GraphicsPipeline.Config] has succeeded.
func (pl *GraphicsPipeline) IsConfigured() bool {
	return pl.renderPipeline != nil
}

// Release releases the pipeline, its layout and its shader module.
// The bind group layouts are not owned by the pipeline.
func (pl *GraphicsPipeline) Release() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
	if pl.module != nil {
		pl.module.Release()
		pl.module = nil
	}
}

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
