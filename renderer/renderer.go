// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer draws one of two meshes each frame, seen through an
// orbiting camera, and manages the lifecycle of the surface it draws into:
// resizing, suspension while minimized, and recovery of a lost surface.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"cogentcore.org/hellogpu/config"
	"cogentcore.org/hellogpu/gpu"
	"cogentcore.org/hellogpu/gpu/camera"
	"cogentcore.org/hellogpu/gpu/shape"
	"cogentcore.org/hellogpu/math32"
)

// ErrNotInitialized is returned by operations that need the device
// before [Renderer.Initialize] or after [Renderer.Shutdown].
var ErrNotInitialized = errors.New("renderer: not initialized")

// Meshes are the two meshes drawn by the renderer.
type Meshes struct {

	// Default is the textured mesh.
	Default *shape.Mesh[shape.TexturedVertex]

	// Generated is the vertex colored circle.
	Generated *shape.Mesh[shape.ColoredVertex]
}

// NewMeshes returns the meshes for the given config: a square of
// QuadSide or the pentagon, and a circle of Circle.Vertices.
func NewMeshes(cfg *config.Config) (*Meshes, error) {
	ms := &Meshes{}
	switch cfg.DefaultMesh {
	case config.MeshPentagon:
		ms.Default = shape.Pentagon()
	default:
		ms.Default = shape.TexturedMesh(shape.NewSquare(cfg.QuadSide), nil)
	}
	ci, err := shape.NewCircle(cfg.Circle.Vertices, cfg.Circle.Radius)
	if err != nil {
		return nil, err
	}
	ms.Generated = shape.ColoredMesh(ci, nil)
	return ms, nil
}

// NumIndices returns the number of indices drawn for the given mesh.
func (ms *Meshes) NumIndices(m ActiveMesh) uint32 {
	switch m {
	case Default:
		return uint32(ms.Default.NumIndices())
	case Generated:
		return uint32(ms.Generated.NumIndices())
	}
	return 0
}

// Pass is everything needed to record the commands of one frame.
type Pass struct {

	// Clear is the color the frame is cleared to.
	Clear config.Color

	// Mesh is the mesh to draw.
	Mesh ActiveMesh

	// NumIndices is the number of indices of Mesh.
	NumIndices uint32
}

// Device is the GPU side of the renderer: a configured surface
// with the pipelines and the buffers of the meshes and the camera.
type Device interface {

	// Configure configures the surface for the given nonzero size.
	Configure(size image.Point) error

	// UploadMeshes uploads the vertex and index buffers of the meshes,
	// replacing any uploaded before.
	UploadMeshes(ms *Meshes) error

	// WriteCamera writes the camera uniform buffer.
	WriteCamera(u camera.Uniform) error

	// AcquireFrame returns the next surface image to render into.
	// Errors match the gpu.ErrSurface* values with errors.Is.
	AcquireFrame() (Frame, error)

	// Release releases all GPU resources.
	Release()
}

// Frame is one acquired surface image.
type Frame interface {

	// Render records and submits the commands of the pass.
	Render(p Pass) error

	// Present shows the image, and releases the frame.
	Present()

	// Release releases the frame without presenting it.
	Release()
}

// Renderer renders frames to a [Device].
// It is not safe for concurrent use: all methods must be called
// from the thread running the event loop.
type Renderer struct {
	cfg     config.Config
	dev     Device
	state   State
	size    image.Point
	active  ActiveMesh
	meshes  *Meshes
	camera  *camera.Camera
	uniform camera.Uniform
}

// New returns a new Renderer for the given config, which is
// copied. A nil config uses the defaults.
func New(cfg *config.Config) *Renderer {
	r := &Renderer{camera: camera.New(), uniform: camera.NewUniform()}
	if cfg != nil {
		r.cfg = *cfg
	} else {
		r.cfg.Defaults()
	}
	return r
}

// Initialize uploads the meshes to the device, and configures it for
// the given size. A zero size leaves the renderer Suspended until a
// [Renderer.Resize] with a nonzero size.
func (r *Renderer) Initialize(dev Device, size image.Point) error {
	if r.dev != nil {
		return errors.New("renderer: already initialized")
	}
	ms, err := NewMeshes(&r.cfg)
	if err != nil {
		return fmt.Errorf("renderer.Initialize: %w", err)
	}
	if err := dev.UploadMeshes(ms); err != nil {
		return fmt.Errorf("renderer.Initialize: %w", err)
	}
	Logger().Debug("renderer: meshes uploaded", "defaultTriangles", ms.Default.NumTriangles(), "generatedTriangles", ms.Generated.NumTriangles())
	r.dev = dev
	r.meshes = ms
	r.state = Suspended
	if err := r.Resize(size); err != nil {
		r.dev = nil
		r.state = Uninitialized
		return err
	}
	if err := r.writeCamera(); err != nil {
		r.dev = nil
		r.state = Uninitialized
		return err
	}
	Logger().Info("renderer initialized", "size", size, "defaultMesh", r.cfg.DefaultMesh, "state", r.state)
	return nil
}

// Resize records the new window size and reconfigures the surface.
// A size with a zero dimension, as for a minimized window, suspends
// rendering and changes nothing else. Resize with the current size
// reconfigures too, which is how a lost surface is recovered.
func (r *Renderer) Resize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		if r.state == Ready {
			Logger().Debug("renderer suspended", "size", size)
			r.state = Suspended
		}
		return nil
	}
	if r.dev == nil {
		r.size = size
		return nil
	}
	if err := r.dev.Configure(size); err != nil {
		return fmt.Errorf("renderer.Resize %v: %w", size, err)
	}
	r.size = size
	r.camera.SetAspect(size)
	r.state = Ready
	return nil
}

// Update advances the camera orbit by one frame, and writes
// the camera uniform to the device.
func (r *Renderer) Update() error {
	if r.dev == nil {
		return ErrNotInitialized
	}
	r.camera.Orbit(r.cfg.OrbitSpeed)
	return r.writeCamera()
}

// Pan moves the camera and its target by delta in world units,
// and writes the camera uniform to the device.
func (r *Renderer) Pan(delta math32.Vector3) error {
	if r.dev == nil {
		return ErrNotInitialized
	}
	r.camera.Pan(delta)
	return r.writeCamera()
}

// writeCamera recomputes the uniform from the camera and writes it.
// A degenerate camera keeps the previous matrix.
func (r *Renderer) writeCamera() error {
	if err := r.uniform.Update(r.camera); err != nil {
		Logger().Warn("renderer: keeping previous camera matrix", "err", err)
	}
	if err := r.dev.WriteCamera(r.uniform); err != nil {
		return fmt.Errorf("renderer: writing camera: %w", err)
	}
	return nil
}

// RenderFrame renders one frame of the active mesh and presents it.
// Nothing is done unless the renderer is Ready.
func (r *Renderer) RenderFrame() Status {
	if r.state != Ready {
		return Ok
	}
	fr, err := r.dev.AcquireFrame()
	if err != nil {
		return acquireStatus(err)
	}
	p := Pass{Clear: r.cfg.ClearColor, Mesh: r.active, NumIndices: r.meshes.NumIndices(r.active)}
	if err := fr.Render(p); err != nil {
		fr.Release()
		Logger().Error("renderer: rendering frame", "err", err)
		return FatalShouldExit
	}
	fr.Present()
	return Ok
}

// acquireStatus returns the status for an error acquiring a frame.
func acquireStatus(err error) Status {
	switch {
	case errors.Is(err, gpu.ErrSurfaceTimeout):
		Logger().Warn("renderer: surface timeout, frame skipped", "err", err)
		return Ok
	case gpu.IsRecoverable(err):
		Logger().Error("renderer: surface needs reconfiguring", "err", err)
		return RecoverableNeedsResize
	case errors.Is(err, gpu.ErrSurfaceOutOfMemory):
		Logger().Error("renderer: out of memory", "err", err)
		return FatalShouldExit
	}
	Logger().Error("renderer: acquiring frame", "err", err)
	return FatalShouldExit
}

// HandleStatus applies the status returned by [Renderer.RenderFrame],
// reconfiguring the surface if needed. It returns false if the
// program should exit.
func (r *Renderer) HandleStatus(st Status) bool {
	switch st {
	case Ok:
		return true
	case RecoverableNeedsResize:
		if err := r.Resize(r.size); err != nil {
			Logger().Error("renderer: reconfiguring surface", "err", err)
			return false
		}
		return true
	}
	return false
}

// InputToggle shows the generated mesh while pressed is true,
// and the default mesh otherwise.
func (r *Renderer) InputToggle(pressed bool) {
	if pressed {
		r.SetActiveMesh(Generated)
	} else {
		r.SetActiveMesh(Default)
	}
}

// SetActiveMesh sets the mesh drawn by the next frames.
func (r *Renderer) SetActiveMesh(m ActiveMesh) {
	if m < 0 || m >= numMeshes {
		return
	}
	if m != r.active {
		Logger().Debug("renderer: active mesh", "mesh", m)
	}
	r.active = m
}

// SetConfig applies the clear color and orbit speed of the
// given config, which must be valid. Other changes need a restart.
func (r *Renderer) SetConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cfg.ClearColor = cfg.ClearColor
	r.cfg.OrbitSpeed = cfg.OrbitSpeed
	return nil
}

// Shutdown releases the device. The renderer can be initialized again.
func (r *Renderer) Shutdown() {
	if r.dev == nil {
		return
	}
	r.dev.Release()
	r.dev = nil
	r.meshes = nil
	r.state = Uninitialized
	Logger().Info("renderer shut down")
}

// Size returns the last nonzero size.
func (r *Renderer) Size() image.Point { return r.size }

// State returns the lifecycle state.
func (r *Renderer) State() State { return r.state }

// ActiveMesh returns the mesh being drawn.
func (r *Renderer) ActiveMesh() ActiveMesh { return r.active }

// Camera returns the camera.
func (r *Renderer) Camera() *camera.Camera { return r.camera }

// Uniform returns the camera uniform last written.
func (r *Renderer) Uniform() camera.Uniform { return r.uniform }

// Config returns the config in use.
func (r *Renderer) Config() config.Config { return r.cfg }
