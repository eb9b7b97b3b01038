// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"
	"image"

	"cogentcore.org/hellogpu/assets"
	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/config"
	"cogentcore.org/hellogpu/gpu"
	"cogentcore.org/hellogpu/gpu/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUDevice is the [Device] drawing with WebGPU into a window surface.
// Textured meshes use the texture group at @group(0), and colored
// meshes an empty group there. Both use the camera at @group(1).
type GPUDevice struct {

	// GPU is the device used
	GPU *gpu.GPU

	// Surface is the window surface drawn into
	Surface *gpu.Surface

	textured *gpu.GraphicsPipeline
	colored  *gpu.GraphicsPipeline

	textureLayout *wgpu.BindGroupLayout
	cameraLayout  *wgpu.BindGroupLayout
	emptyLayout   *wgpu.BindGroupLayout

	cameraBuffer *gpu.Buffer
	cameraGroup  *gpu.BindGroup
	emptyGroup   *gpu.BindGroup
	texture      *gpu.Texture

	meshes [numMeshes]*gpu.MeshBuffers
}

var _ Device = (*GPUDevice)(nil)

// NewGPUDevice returns a new GPUDevice drawing into the given surface,
// with the given encoded image as the texture of the default mesh.
// It owns the surface but not the GPU.
func NewGPUDevice(gp *gpu.GPU, sf *gpu.Surface, texture []byte) (*GPUDevice, error) {
	gd := &GPUDevice{GPU: gp, Surface: sf}
	if err := gd.init(texture); err != nil {
		gd.Release()
		return nil, err
	}
	return gd, nil
}

func (gd *GPUDevice) init(texture []byte) error {
	gp := gd.GPU
	var err error
	if gd.textureLayout, err = gpu.NewBindGroupLayout(gp, "texture", gpu.TextureLayoutEntries()); err != nil {
		return err
	}
	if gd.cameraLayout, err = gpu.NewBindGroupLayout(gp, "camera", gpu.UniformLayoutEntries(wgpu.ShaderStageVertex, camera.UniformSize)); err != nil {
		return err
	}
	if gd.emptyLayout, err = gpu.NewBindGroupLayout(gp, "empty", nil); err != nil {
		return err
	}

	img, err := gpu.LoadImage("texture", texture, gp.MaxTextureSize())
	if err != nil {
		return err
	}
	if gd.texture, err = gpu.NewTexture(gp, img, gd.textureLayout); err != nil {
		return err
	}

	gd.cameraBuffer, err = gpu.NewBufferFrom(gp, "camera", wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, []camera.Uniform{camera.NewUniform()})
	if err != nil {
		return err
	}
	if gd.cameraGroup, err = gpu.NewBindGroup(gp, "camera", gpu.CameraGroup, gd.cameraLayout, gpu.UniformEntries(gd.cameraBuffer)); err != nil {
		return err
	}
	if gd.emptyGroup, err = gpu.NewBindGroup(gp, "empty", gpu.TextureGroup, gd.emptyLayout, nil); err != nil {
		return err
	}

	gd.textured = gpu.NewGraphicsPipeline("textured", gpu.TexturedVertexLayout(), gd.textureLayout, gd.cameraLayout)
	if err := gd.configPipeline(gd.textured, "textured.wgsl"); err != nil {
		return err
	}
	gd.colored = gpu.NewGraphicsPipeline("colored", gpu.ColoredVertexLayout(), gd.emptyLayout, gd.cameraLayout)
	return gd.configPipeline(gd.colored, "colored.wgsl")
}

func (gd *GPUDevice) configPipeline(pl *gpu.GraphicsPipeline, shader string) error {
	code, err := assets.Shader(shader)
	if err != nil {
		return fmt.Errorf("renderer: shader %s: %w", shader, err)
	}
	return pl.Config(gd.GPU, gd.Surface.Format, code)
}

func (gd *GPUDevice) Configure(size image.Point) error {
	return gd.Surface.Configure(size)
}

func (gd *GPUDevice) UploadMeshes(ms *Meshes) error {
	gd.releaseMeshes()
	var err error
	if gd.meshes[Default], err = gpu.NewMeshBuffers(gd.GPU, "default", ms.Default); err != nil {
		return err
	}
	gd.meshes[Generated], err = gpu.NewMeshBuffers(gd.GPU, "generated", ms.Generated)
	return err
}

func (gd *GPUDevice) WriteCamera(u camera.Uniform) error {
	return gd.cameraBuffer.Write(gd.GPU, wgpu.ToBytes([]camera.Uniform{u}))
}

func (gd *GPUDevice) AcquireFrame() (Frame, error) {
	sf, err := gd.Surface.AcquireFrame()
	if err != nil {
		return nil, err
	}
	return &gpuFrame{device: gd, frame: sf}, nil
}

func (gd *GPUDevice) releaseMeshes() {
	for i, mb := range gd.meshes {
		if mb != nil {
			mb.Release()
			gd.meshes[i] = nil
		}
	}
}

// Release releases everything in reverse order of creation,
// ending with the surface.
func (gd *GPUDevice) Release() {
	gd.releaseMeshes()
	for _, pl := range []*gpu.GraphicsPipeline{gd.colored, gd.textured} {
		if pl != nil {
			pl.Release()
		}
	}
	gd.colored, gd.textured = nil, nil
	for _, bg := range []*gpu.BindGroup{gd.emptyGroup, gd.cameraGroup} {
		if bg != nil {
			bg.Release()
		}
	}
	gd.emptyGroup, gd.cameraGroup = nil, nil
	if gd.cameraBuffer != nil {
		gd.cameraBuffer.Release()
		gd.cameraBuffer = nil
	}
	if gd.texture != nil {
		gd.texture.Release()
		gd.texture = nil
	}
	for _, bgl := range []*wgpu.BindGroupLayout{gd.emptyLayout, gd.cameraLayout, gd.textureLayout} {
		if bgl != nil {
			bgl.Release()
		}
	}
	gd.emptyLayout, gd.cameraLayout, gd.textureLayout = nil, nil, nil
	if gd.Surface != nil {
		gd.Surface.Release()
		gd.Surface = nil
	}
}

// gpuFrame is the [Frame] of a [GPUDevice].
type gpuFrame struct {
	device *GPUDevice
	frame  *gpu.SurfaceFrame
}

// ClearValue returns the color as a WebGPU clear color.
// The components are passed through unchanged.
func ClearValue(c config.Color) wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (fr *gpuFrame) Render(p Pass) error {
	gd := fr.device
	pl, group0 := gd.textured, gd.texture.Group
	if p.Mesh == Generated {
		pl, group0 = gd.colored, gd.emptyGroup
	}
	if !pl.IsConfigured() {
		return fmt.Errorf("renderer: pipeline for mesh %v is not configured", p.Mesh)
	}
	mb := gd.meshes[p.Mesh]
	if mb == nil || uint32(mb.NumIndices) != p.NumIndices {
		return fmt.Errorf("renderer: mesh %v is not uploaded with %d indices", p.Mesh, p.NumIndices)
	}

	cmd, err := gd.GPU.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       fr.frame.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: ClearValue(p.Clear),
		}},
	})
	pl.Bind(rp)
	group0.Bind(rp)
	gd.cameraGroup.Bind(rp)
	mb.Draw(rp)
	rp.End()
	rp.Release() // must happen before Finish
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		cmd.Release()
		return err
	}
	gd.GPU.Queue.Submit(cmdBuffer)
	cmdBuffer.Release()
	cmd.Release()
	return nil
}

func (fr *gpuFrame) Present() {
	fr.frame.Present()
}

func (fr *gpuFrame) Release() {
	fr.frame.Release()
}
