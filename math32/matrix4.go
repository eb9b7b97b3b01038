// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "errors"

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// ErrDegenerateView is returned when a view or projection matrix
// cannot be formed from the given parameters.
var ErrDegenerateView = errors.New("math32: degenerate view parameters")

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	m := Matrix4{}
	m.SetIdentity()
	return m
}

// OpenGLToWGPU remaps the OpenGL clip-space depth range [-1, 1]
// produced by [Perspective] into the [0, 1] range expected by WebGPU.
var OpenGLToWGPU = Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Column returns column c (0-3) of the matrix.
func (m *Matrix4) Column(c int) Vector4 {
	i := c * 4
	return Vec4(m[i], m[i+1], m[i+2], m[i+3])
}

// Columns returns the matrix as an array of columns, which is the
// memory layout of a WGSL mat4x4<f32>.
func (m *Matrix4) Columns() [4][4]float32 {
	var cols [4][4]float32
	for c := range 4 {
		copy(cols[c][:], m[c*4:c*4+4])
	}
	return cols
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	nm := Matrix4{}
	nm.MulMatrices(&m, &other)
	return nm
}

// MulMatrices sets this matrix as the matrix product a * b.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	for c := range 4 {
		for r := range 4 {
			var s float32
			for k := range 4 {
				s += a[k*4+r] * b[c*4+k]
			}
			m[c*4+r] = s
		}
	}
}

// LookAtRH returns a right-handed view matrix for a camera at eye
// looking at target, with the given up direction. This is the inverse
// of the camera's own transform: it moves eye to the origin looking
// down the negative Z axis. It returns [ErrDegenerateView] if eye
// equals target or up is parallel to the viewing direction.
func LookAtRH(eye, target, up Vector3) (Matrix4, error) {
	dir := target.Sub(eye)
	if dir.LengthSquared() == 0 {
		return Identity4(), ErrDegenerateView
	}
	f := dir.Normal()
	side := f.Cross(up)
	if side.LengthSquared() < 1e-12 {
		return Identity4(), ErrDegenerateView
	}
	s := side.Normal()
	u := s.Cross(f)
	m := Matrix4{}
	m.Set(
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	)
	return m, nil
}

// Perspective returns an OpenGL-convention perspective projection
// matrix for the given vertical field of view in degrees, aspect
// ratio (width / height), and near and far clip distances.
// Depth maps to [-1, 1]; multiply by [OpenGLToWGPU] for WebGPU.
// It returns [ErrDegenerateView] for a non-positive near or aspect,
// far not beyond near, or a field of view outside (0, 180).
func Perspective(fovy, aspect, near, far float32) (Matrix4, error) {
	if near <= 0 || far <= near || aspect <= 0 || fovy <= 0 || fovy >= 180 {
		return Identity4(), ErrDegenerateView
	}
	f := 1 / Tan(DegToRad(fovy)/2)
	nf := near - far
	m := Matrix4{}
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far+near)/nf, 2*far*near/nf,
		0, 0, -1, 0,
	)
	return m, nil
}
