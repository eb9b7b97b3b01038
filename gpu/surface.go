// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceNotConfigured is returned when acquiring a frame
// from a surface that has not been given a nonzero size.
var ErrSurfaceNotConfigured = errors.New("gpu: surface is not configured")

// Surface manages the presentation surface of a window: its
// configuration and the acquisition of frames to render into.
type Surface struct {

	// Format is the texture format of the surface images.
	Format wgpu.TextureFormat

	// PresentMode is how images are queued for display.
	PresentMode wgpu.PresentMode

	// AlphaMode is how the surface alpha is composited.
	AlphaMode wgpu.CompositeAlphaMode

	// surface is the WebGPU surface, owned by this Surface.
	// The window it was created from must outlive it.
	surface *wgpu.Surface

	// gpu is the device we render with
	gpu *GPU

	// size is the configured size in pixels
	size image.Point

	// configured is true once Configure has succeeded
	configured bool
}

// NewSurface returns a new Surface for the given WebGPU surface and GPU.
// It takes ownership of the surface. Call [Surface.Configure] with the
// window size before acquiring frames.
func NewSurface(gp *GPU, surface *wgpu.Surface) *Surface {
	sf := &Surface{gpu: gp, surface: surface}
	sf.Defaults()
	return sf
}

// Defaults sets the format, present and alpha modes from the
// surface capabilities: the first sRGB format if available, else
// the first supported format, and the first (preferred) modes.
func (sf *Surface) Defaults() {
	caps := sf.surface.GetCapabilities(sf.gpu.Adapter)
	sf.Format = ChooseSurfaceFormat(caps.Formats)
	if len(caps.PresentModes) > 0 {
		sf.PresentMode = caps.PresentModes[0]
	} else {
		sf.PresentMode = wgpu.PresentModeFifo
	}
	if len(caps.AlphaModes) > 0 {
		sf.AlphaMode = caps.AlphaModes[0]
	} else {
		sf.AlphaMode = wgpu.CompositeAlphaModeAuto
	}
}

// ChooseSurfaceFormat returns the first sRGB format in the list,
// or the first format if none is sRGB. The shaders output linear
// colors and rely on the sRGB conversion of the target.
func ChooseSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if IsSRGB(f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return wgpu.TextureFormatBGRA8UnormSrgb
}

// IsSRGB returns true if the format applies sRGB encoding on write.
func IsSRGB(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// Size returns the configured size of the surface.
func (sf *Surface) Size() image.Point {
	return sf.size
}

// SetSize sets the stored size, returning false if the size
// has a zero dimension or is unchanged.
func (sf *Surface) SetSize(size image.Point) bool {
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	if sf.configured && sf.size == size {
		return false
	}
	sf.size = size
	return true
}

// Configure stores the size and reconfigures the surface, which
// recreates its swap images. A size with a zero dimension, as for a
// minimized window, is ignored. Configure always reconfigures for a
// valid size, even if unchanged, since that is how a lost or outdated
// surface is recovered.
func (sf *Surface) Configure(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	resized := sf.SetSize(size)
	sf.surface.Configure(sf.gpu.Adapter, sf.gpu.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format,
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: sf.PresentMode,
		AlphaMode:   sf.AlphaMode,
	})
	sf.configured = true
	if Debug {
		slog.Info("gpu: surface configured", "size", size, "resized", resized, "format", sf.Format, "presentMode", sf.PresentMode)
	}
	return nil
}

// AcquireFrame returns the next surface image to render into.
// Errors are classified by [ClassifySurfaceError], so callers can
// test them with errors.Is against the ErrSurface* values.
//
// The wgpu binding drops the status of the acquired surface texture,
// and only reports the validation errors raised while acquiring it.
// A timeout, outdated or lost status is therefore seen only when the
// implementation also raises an error for it. An outdated surface from
// a window resize is recovered by reconfiguring in the resize callback.
func (sf *Surface) AcquireFrame() (*SurfaceFrame, error) {
	if !sf.configured {
		return nil, ErrSurfaceNotConfigured
	}
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		return nil, ClassifySurfaceError(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, ClassifySurfaceError(err)
	}
	return &SurfaceFrame{surface: sf, texture: tex, View: view}, nil
}

// Release releases the WebGPU surface.
func (sf *Surface) Release() {
	if sf.surface == nil {
		return
	}
	sf.surface.Release()
	sf.surface = nil
	sf.configured = false
}

// SurfaceFrame is one acquired surface image.
// It must be presented or released before acquiring the next one.
type SurfaceFrame struct {

	// View is the view of the surface image, for the render pass
	View *wgpu.TextureView

	surface *Surface
	texture *wgpu.Texture
}

// Present queues the image for display, and releases the frame.
func (fr *SurfaceFrame) Present() {
	if fr.texture == nil {
		return
	}
	fr.surface.surface.Present()
	fr.Release()
}

// Release releases the view and the texture without presenting.
func (fr *SurfaceFrame) Release() {
	if fr.View != nil {
		fr.View.Release()
		fr.View = nil
	}
	if fr.texture != nil {
		fr.texture.Release()
		fr.texture = nil
	}
}
