// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indexes used by the shaders.
const (
	// TextureGroup is the @group of the texture and its sampler.
	TextureGroup = 0

	// CameraGroup is the @group of the camera uniform.
	CameraGroup = 1
)

// TextureLayoutEntries returns the layout entries of a texture group:
// a filterable 2D float texture at binding 0 and a filtering sampler
// at binding 1, both read by the fragment stage.
func TextureLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
				Multisampled:  false,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	}
}

// UniformLayoutEntries returns the layout entries of a group
// with one uniform buffer at binding 0 of given minimum size,
// visible to the given stages.
func UniformLayoutEntries(visibility wgpu.ShaderStage, size uint64) []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: false,
				MinBindingSize:   size,
			},
		},
	}
}

// NewBindGroupLayout returns a new bind group layout with the given entries.
// No entries makes an empty layout, for a group the shader does not use.
func NewBindGroupLayout(gp *GPU, label string, entries []wgpu.BindGroupLayoutEntry) (*wgpu.BindGroupLayout, error) {
	bgl, err := gp.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.NewBindGroupLayout %s: %w", label, err)
	}
	return bgl, nil
}

// BindGroup is a set of resources bound together at one @group index.
type BindGroup struct {

	// Name of the group
	Name string

	// Group is the @group index it is bound at.
	Group uint32

	group *wgpu.BindGroup
}

// NewBindGroup returns a new BindGroup for the given layout and entries.
func NewBindGroup(gp *GPU, name string, group uint32, layout *wgpu.BindGroupLayout, entries []wgpu.BindGroupEntry) (*BindGroup, error) {
	bg, err := gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   name,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.NewBindGroup %s: %w", name, err)
	}
	return &BindGroup{Name: name, Group: group, group: bg}, nil
}

// UniformEntries returns the bind group entries for a uniform
// buffer at binding 0.
func UniformEntries(buf *Buffer) []wgpu.BindGroupEntry {
	return []wgpu.BindGroupEntry{{
		Binding: 0,
		Buffer:  buf.WGPU(),
		Offset:  0,
		Size:    buf.Size,
	}}
}

// TextureEntries returns the bind group entries for the texture
// view at binding 0 and its sampler at binding 1.
func TextureEntries(tx *Texture) []wgpu.BindGroupEntry {
	return []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: tx.view},
		{Binding: 1, Sampler: tx.sampler},
	}
}

// Bind sets the group in the given render pass.
func (bg *BindGroup) Bind(rp *wgpu.RenderPassEncoder) {
	rp.SetBindGroup(bg.Group, bg.group, nil)
}

// Release releases the bind group.
func (bg *BindGroup) Release() {
	if bg.group == nil {
		return
	}
	bg.group.Release()
	bg.group = nil
}
