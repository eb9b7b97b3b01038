// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"image"
	"testing"
	"unsafe"

	"cogentcore.org/hellogpu/base/tolassert"
	"cogentcore.org/hellogpu/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTargetVisible(t *testing.T) {
	cm := New()
	vp, err := cm.ViewProjection()
	require.NoError(t, err)

	clip := cm.Target.MulMatrix4AsVector4(&vp, 1)
	assert.Greater(t, clip.W, float32(0))
	ndc := clip.PerspDiv()
	tolassert.EqualTol(t, 0, ndc.X, 1e-6)
	tolassert.EqualTol(t, 0, ndc.Y, 1e-6)
	assert.Greater(t, ndc.Z, float32(0))
	assert.Less(t, ndc.Z, float32(1))
}

func TestBehindCameraNotVisible(t *testing.T) {
	cm := New()
	vp, err := cm.ViewProjection()
	require.NoError(t, err)
	behind := math32.Vec3(0, 2, 4).MulMatrix4AsVector4(&vp, 1)
	assert.Less(t, behind.W, float32(0))
}

func TestDegenerate(t *testing.T) {
	cases := map[string]func(cm *Camera){
		"eye at target": func(cm *Camera) { cm.Eye = cm.Target },
		"up along view": func(cm *Camera) { cm.Eye = math32.Vec3(0, 3, 0) },
		"znear zero":    func(cm *Camera) { cm.ZNear = 0 },
		"znear past":    func(cm *Camera) { cm.ZNear = cm.ZFar },
		"aspect zero":   func(cm *Camera) { cm.Aspect = 0 },
		"fovy zero":     func(cm *Camera) { cm.FovY = 0 },
	}
	for name, mod := range cases {
		cm := New()
		mod(cm)
		vp, err := cm.ViewProjection()
		assert.ErrorIs(t, err, ErrDegenerate, name)
		assert.Equal(t, math32.Identity4(), vp, name)
	}
}

func TestSetAspect(t *testing.T) {
	cm := New()
	cm.SetAspect(image.Point{800, 600})
	tolassert.EqualTol(t, 800.0/600.0, cm.Aspect, 1e-6)
	cm.SetAspect(image.Point{0, 600})
	tolassert.EqualTol(t, 800.0/600.0, cm.Aspect, 1e-6)
	cm.SetAspect(image.Point{800, 0})
	tolassert.EqualTol(t, 800.0/600.0, cm.Aspect, 1e-6)
}

func TestOrbit(t *testing.T) {
	cm := New()
	dist := cm.Eye.DistanceTo(cm.Target)
	cm.Orbit(90)
	tolassert.EqualTol(t, 2, cm.Eye.X, 1e-5)
	tolassert.EqualTol(t, 1, cm.Eye.Y, 1e-5)
	tolassert.EqualTol(t, 0, cm.Eye.Z, 1e-5)
	for range 1000 {
		cm.Orbit(0.5)
	}
	tolassert.EqualTol(t, dist, cm.Eye.DistanceTo(cm.Target), 1e-3)
	_, err := cm.ViewProjection()
	assert.NoError(t, err)
}

func TestPan(t *testing.T) {
	cm := New()
	cm.Pan(math32.Vec3(1, 0, 0))
	assert.Equal(t, math32.Vec3(1, 1, 2), cm.Eye)
	assert.Equal(t, math32.Vec3(1, 0, 0), cm.Target)
}

func TestUniform(t *testing.T) {
	assert.Equal(t, uint64(64), UniformSize)
	assert.Equal(t, uintptr(64), unsafe.Sizeof(Uniform{}))

	u := NewUniform()
	id := math32.Identity4()
	assert.Equal(t, id.Columns(), u.ViewProj)

	cm := New()
	require.NoError(t, u.Update(cm))
	vp, err := cm.ViewProjection()
	require.NoError(t, err)
	assert.Equal(t, vp.Columns(), u.ViewProj)
	// the outer index is the column
	assert.Equal(t, vp.Column(3).Array(), u.ViewProj[3])

	prev := u
	cm.Eye = cm.Target
	assert.ErrorIs(t, u.Update(cm), ErrDegenerate)
	assert.Equal(t, prev, u)
}
