// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a perspective camera looking at a target,
// and the uniform data that carries its matrix to the GPU.
package camera

import (
	"errors"
	"fmt"
	"image"

	"cogentcore.org/hellogpu/math32"
)

// ErrDegenerate is returned when the camera parameters do not
// define a valid view: eye at the target, up parallel to the view
// direction, or invalid clip planes, aspect or field of view.
var ErrDegenerate = errors.New("camera: degenerate view")

// Camera is a right-handed perspective camera at Eye looking at Target.
type Camera struct {

	// Eye is the position of the camera in world coordinates.
	Eye math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// Up is the world direction that is up in the view.
	Up math32.Vector3

	// Aspect is the aspect ratio of the view, width / height.
	Aspect float32

	// FovY is the vertical field of view, in degrees.
	FovY float32

	// ZNear is the distance of the near clipping plane.
	ZNear float32

	// ZFar is the distance of the far clipping plane.
	ZFar float32
}

// New returns a new Camera with [Camera.Defaults].
func New() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

// Defaults sets the camera above and in front of the origin, looking at it.
func (cm *Camera) Defaults() {
	cm.Eye = math32.Vec3(0, 1, 2)
	cm.Target = math32.Vec3(0, 0, 0)
	cm.Up = math32.Vec3(0, 1, 0)
	cm.Aspect = 1
	cm.FovY = 45
	cm.ZNear = 0.1
	cm.ZFar = 100
}

// SetAspect sets the aspect ratio from the given size of the render target.
// A size with a zero dimension is ignored.
func (cm *Camera) SetAspect(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	cm.Aspect = float32(size.X) / float32(size.Y)
}

// ViewMatrix returns the look-at view matrix.
func (cm *Camera) ViewMatrix() (math32.Matrix4, error) {
	view, err := math32.LookAtRH(cm.Eye, cm.Target, cm.Up)
	if err != nil {
		return view, fmt.Errorf("%w: eye %v target %v up %v", ErrDegenerate, cm.Eye, cm.Target, cm.Up)
	}
	return view, nil
}

// ProjectionMatrix returns the perspective projection matrix,
// with depth already remapped to the [0, 1] WebGPU range.
func (cm *Camera) ProjectionMatrix() (math32.Matrix4, error) {
	proj, err := math32.Perspective(cm.FovY, cm.Aspect, cm.ZNear, cm.ZFar)
	if err != nil {
		return proj, fmt.Errorf("%w: fovy %g aspect %g znear %g zfar %g", ErrDegenerate, cm.FovY, cm.Aspect, cm.ZNear, cm.ZFar)
	}
	return math32.OpenGLToWGPU.Mul(proj), nil
}

// ViewProjection returns the combined projection * view matrix.
// On a degenerate camera, it returns the identity and an error
// wrapping [ErrDegenerate].
func (cm *Camera) ViewProjection() (math32.Matrix4, error) {
	view, err := cm.ViewMatrix()
	if err != nil {
		return math32.Identity4(), err
	}
	proj, err := cm.ProjectionMatrix()
	if err != nil {
		return math32.Identity4(), err
	}
	return proj.Mul(view), nil
}

// Orbit rotates the eye around the target about the up axis
// by the given number of degrees, counter-clockwise seen from above.
// The distance to the target is unchanged.
func (cm *Camera) Orbit(deg float32) {
	if deg == 0 || cm.Up.LengthSquared() == 0 {
		return
	}
	cm.Eye = cm.Eye.RotateAround(cm.Target, cm.Up.Normal(), math32.DegToRad(deg))
}

// Pan translates both eye and target by the given offset,
// keeping the view direction.
func (cm *Camera) Pan(delta math32.Vector3) {
	cm.Eye = cm.Eye.Add(delta)
	cm.Target = cm.Target.Add(delta)
}
