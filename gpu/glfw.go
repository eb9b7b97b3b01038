// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes glfw for window use.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw. Call as last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// NewGLFWWindow makes a new resizable window of the given size with no
// client graphics API, and a WebGPU surface drawing into it.
// [Init] must have been called.
func NewGLFWWindow(size image.Point, title string) (*glfw.Window, *wgpu.Surface, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("gpu.NewGLFWWindow: %w", err)
	}
	surface := Instance().CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	if surface == nil {
		window.Destroy()
		return nil, nil, fmt.Errorf("gpu.NewGLFWWindow: could not create surface")
	}
	return window, surface, nil
}

// WindowSize returns the current framebuffer size of the window in pixels.
func WindowSize(window *glfw.Window) image.Point {
	w, h := window.GetFramebufferSize()
	return image.Point{w, h}
}
