// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/hellogpu/base/tolassert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const StandardTol = float32(1.0e-5)

func TolAssertEqualVector3(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
	tolassert.EqualTol(t, vt.Z, va.Z, tol)
}

func TestMatrix4Identity(t *testing.T) {
	id := Identity4()
	v := Vec4(1, 2, 3, 1)
	assert.Equal(t, v, v.MulMatrix4(&id))

	m := Matrix4{}
	m.Set(
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	)
	assert.Equal(t, m, id.Mul(m))
	assert.Equal(t, m, m.Mul(id))
	assert.Equal(t, Vec4(1, 5, 9, 13), m.Column(0))
	assert.Equal(t, [4]float32{4, 8, 12, 16}, m.Columns()[3])
}

func TestMatrix4Mul(t *testing.T) {
	// translate after scale: scale first, then move
	scale := Matrix4{}
	scale.Set(
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	)
	trans := Matrix4{}
	trans.Set(
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
		0, 0, 0, 1,
	)
	m := trans.Mul(scale)
	p := Vec3(1, 0, 0).MulMatrix4AsVector4(&m, 1)
	assert.Equal(t, Vec4(3, 1, 1, 1), p)
}

func TestLookAtRH(t *testing.T) {
	eye := Vec3(0, 1, 2)
	view, err := LookAtRH(eye, Vec3(0, 0, 0), Vec3(0, 1, 0))
	require.NoError(t, err)

	// eye goes to the origin
	TolAssertEqualVector3(t, StandardTol, Vec3(0, 0, 0), eye.MulMatrix4AsVector4(&view, 1).PerspDiv())
	// target is straight ahead along -Z
	tv := Vec3(0, 0, 0).MulMatrix4AsVector4(&view, 1).PerspDiv()
	TolAssertEqualVector3(t, StandardTol, Vec3(0, 0, -Sqrt(5)), tv)

	_, err = LookAtRH(eye, eye, Vec3(0, 1, 0))
	assert.ErrorIs(t, err, ErrDegenerateView)
	_, err = LookAtRH(Vec3(0, 2, 0), Vec3(0, 0, 0), Vec3(0, 1, 0))
	assert.ErrorIs(t, err, ErrDegenerateView)
}

func TestPerspective(t *testing.T) {
	proj, err := Perspective(90, 1, 1, 10)
	require.NoError(t, err)
	pm := OpenGLToWGPU.Mul(proj)

	// the near plane maps to depth 0 and the far plane to depth 1
	near := Vec3(0, 0, -1).MulMatrix4AsVector4(&pm, 1).PerspDiv()
	far := Vec3(0, 0, -10).MulMatrix4AsVector4(&pm, 1).PerspDiv()
	tolassert.EqualTol(t, 0, near.Z, StandardTol)
	tolassert.EqualTol(t, 1, far.Z, StandardTol)

	// 45 degrees off axis lands on the edge of the view with fovy 90
	edge := Vec3(0, 1, -1).MulMatrix4AsVector4(&pm, 1).PerspDiv()
	tolassert.EqualTol(t, 1, edge.Y, StandardTol)

	for _, bad := range [][4]float32{
		{45, 1, 0, 10},
		{45, 1, -1, 10},
		{45, 1, 10, 10},
		{45, 1, 10, 1},
		{45, 0, 0.1, 10},
		{0, 1, 0.1, 10},
		{180, 1, 0.1, 10},
	} {
		_, err := Perspective(bad[0], bad[1], bad[2], bad[3])
		assert.ErrorIs(t, err, ErrDegenerateView, "%v", bad)
	}
}

func TestVector2Cross(t *testing.T) {
	assert.Equal(t, float32(1), Vec2(1, 0).Cross(Vec2(0, 1)))
	assert.Equal(t, float32(-1), Vec2(0, 1).Cross(Vec2(1, 0)))
}
