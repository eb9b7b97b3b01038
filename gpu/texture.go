// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrImageLayout is returned by [NewTexture] for an image that is
// not in the standard RGBA format, or whose rows are too short.
var ErrImageLayout = errors.New("gpu: image is not standard RGBA")

// Texture represents a WebGPU Texture with an associated TextureView
// and Sampler, bound together as one [BindGroup] for the fragment shader.
type Texture struct {

	// Name of the texture, used as the label of the GPU objects.
	Name string

	// Format & size of texture
	Format TextureFormat

	// Group is the bind group with the view and the sampler.
	Group *BindGroup

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture

	// WebGPU texture view
	view *wgpu.TextureView

	sampler *wgpu.Sampler
}

// NewTexture uploads the given image to a new texture on the device,
// and makes the view, the sampler and the bind group using the
// given layout, which should have [TextureLayoutEntries].
// Rows are written with the image's actual BytesPerRow.
func NewTexture(gp *GPU, img *Image, layout *wgpu.BindGroupLayout) (*Texture, error) {
	if !img.Format.IsStdRGBA() || img.BytesPerRow < img.Format.Stride() || len(img.Pix) < img.BytesPerRow*img.Height() {
		return nil, fmt.Errorf("gpu.NewTexture %s: %w: %v, %d bytes per row", img.Name, ErrImageLayout, &img.Format, img.BytesPerRow)
	}
	tx := &Texture{Name: img.Name, Format: img.Format}
	if err := tx.create(gp, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst); err != nil {
		tx.Release()
		return nil, err
	}
	size := tx.Format.Extent3D()

	// https://www.w3.org/TR/webgpu/#gpuimagecopytexture
	gp.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.BytesPerRow),
			RowsPerImage: uint32(img.Height()),
		},
		&size,
	)

	var err error
	tx.Group, err = NewBindGroup(gp, tx.Name, TextureGroup, layout, TextureEntries(tx))
	if err != nil {
		tx.Release()
		return nil, err
	}
	return tx, nil
}

// create makes the texture, its view and its sampler.
func (tx *Texture) create(gp *GPU, usage wgpu.TextureUsage) error {
	t, err := gp.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          tx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   uint32(tx.Format.Samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		return err
	}
	tx.view = vw
	sm, err := gp.Device.CreateSampler(SamplerDescriptor(tx.Name))
	if errors.Log(err) != nil {
		return err
	}
	tx.sampler = sm
	return nil
}

// SamplerDescriptor returns the descriptor of the texture sampler:
// clamp to edge in all directions, nearest filtering, no mipmaps.
func SamplerDescriptor(label string) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// Width returns the texture width in pixels.
func (tx *Texture) Width() int { return tx.Format.Size.X }

// Height returns the texture height in pixels.
func (tx *Texture) Height() int { return tx.Format.Size.Y }

// Release frees the bind group, sampler, view and texture.
func (tx *Texture) Release() {
	if tx.Group != nil {
		tx.Group.Release()
		tx.Group = nil
	}
	if tx.sampler != nil {
		tx.sampler.Release()
		tx.sampler = nil
	}
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}
