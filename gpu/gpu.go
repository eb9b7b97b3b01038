// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu wraps the WebGPU device, surface, pipelines, buffers
// and textures used to draw indexed meshes into a window.
package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug is whether to enable debug mode, getting
// more diagnostic output about GPU configuration.
var Debug = false

var (
	// ErrNoAdapter is returned when no GPU adapter is compatible
	// with the surface and options.
	ErrNoAdapter = errors.New("gpu: no compatible adapter found")

	// ErrNoDevice is returned when the adapter cannot provide a device.
	ErrNoDevice = errors.New("gpu: could not create device")
)

var (
	theInstance     *wgpu.Instance
	theInstanceOnce sync.Once
)

// Instance returns the WebGPU instance, creating it on first use.
func Instance() *wgpu.Instance {
	theInstanceOnce.Do(func() {
		theInstance = wgpu.CreateInstance(nil)
	})
	return theInstance
}

// GPUOptions are the adapter selection options.
type GPUOptions struct {

	// HighPerformance selects a discrete GPU over an integrated one,
	// when both are present.
	HighPerformance bool

	// ForceFallback requests the software fallback adapter.
	ForceFallback bool
}

// Defaults sets the default options: high performance, no fallback.
func (op *GPUOptions) Defaults() {
	op.HighPerformance = true
	op.ForceFallback = false
}

// GPU holds the adapter, logical device and queue, and
// mediates the creation of all other resources.
type GPU struct {

	// Adapter is the physical GPU.
	Adapter *wgpu.Adapter

	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command queue of the device.
	Queue *wgpu.Queue

	// Limits are the supported limits of the adapter.
	Limits wgpu.Limits

	// Options used to select the adapter.
	Options GPUOptions
}

// NewGPU returns a new GPU compatible with the given surface,
// which may be nil for offscreen use. It returns a configuration
// error if no adapter or device is available: there is nothing
// to render with and the caller should abort.
func NewGPU(surface *wgpu.Surface, opts *GPUOptions) (*GPU, error) {
	gp := &GPU{}
	if opts != nil {
		gp.Options = *opts
	} else {
		gp.Options.Defaults()
	}
	if err := gp.init(surface); err != nil {
		gp.Release()
		return nil, err
	}
	return gp, nil
}

func (gp *GPU) init(surface *wgpu.Surface) error {
	power := wgpu.PowerPreferenceLowPower
	if gp.Options.HighPerformance {
		power = wgpu.PowerPreferenceHighPerformance
	}
	adapter, err := Instance().RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		ForceFallbackAdapter: gp.Options.ForceFallback,
		PowerPreference:      power,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if adapter == nil {
		return ErrNoAdapter
	}
	gp.Adapter = adapter
	gp.Limits = adapter.GetLimits().Limits

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "hellogpu device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	if device == nil {
		return ErrNoDevice
	}
	gp.Device = device
	gp.Queue = device.GetQueue()
	if Debug {
		slog.Info("gpu: device ready", "maxTextureDimension2D", gp.Limits.MaxTextureDimension2D, "maxBindGroups", gp.Limits.MaxBindGroups)
	}
	return nil
}

// MaxTextureSize returns the largest supported 2D texture dimension.
func (gp *GPU) MaxTextureSize() int {
	return int(gp.Limits.MaxTextureDimension2D)
}

// Release releases the queue, device and adapter, in that order.
func (gp *GPU) Release() {
	if gp.Queue != nil {
		gp.Queue.Release()
		gp.Queue = nil
	}
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
}
