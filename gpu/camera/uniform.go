// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"unsafe"

	"cogentcore.org/hellogpu/math32"
)

// Uniform is the camera data as laid out in the shader uniform
// buffer: a mat4x4<f32>, stored column by column.
type Uniform struct {
	ViewProj [4][4]float32
}

// UniformSize is the size in bytes of [Uniform] in the GPU buffer.
const UniformSize = uint64(unsafe.Sizeof(Uniform{}))

// NewUniform returns a Uniform holding the identity matrix.
func NewUniform() Uniform {
	id := math32.Identity4()
	return Uniform{ViewProj: id.Columns()}
}

// Update sets the uniform from the camera view projection.
// On error the previous value is kept.
func (u *Uniform) Update(cm *Camera) error {
	vp, err := cm.ViewProjection()
	if err != nil {
		return err
	}
	u.ViewProj = vp.Columns()
	return nil
}
