// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"cogentcore.org/hellogpu/gpu/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrVertexLayout is returned by [VertexLayout.Validate] when the
// attributes do not exactly tile the vertex stride.
var ErrVertexLayout = errors.New("gpu: invalid vertex layout")

// VertexAttribute describes one field of a vertex as seen by the shader.
type VertexAttribute struct {

	// Location is the @location of the attribute in the vertex shader.
	Location uint32

	// Offset is the byte offset of the field within the vertex.
	Offset uint64

	// Format is the numeric format of the field.
	Format wgpu.VertexFormat
}

// VertexLayout describes the memory layout of one vertex type:
// the byte stride between vertices and the attributes within one.
type VertexLayout struct {

	// Stride is the size in bytes of one vertex.
	Stride uint64

	// Attributes in order of increasing offset.
	Attributes []VertexAttribute
}

// ColoredVertexLayout returns the layout of [shape.ColoredVertex]:
// position at location 0 and color at location 1.
func ColoredVertexLayout() VertexLayout {
	var v shape.ColoredVertex
	return VertexLayout{
		Stride: uint64(unsafe.Sizeof(v)),
		Attributes: []VertexAttribute{
			{Location: 0, Offset: uint64(unsafe.Offsetof(v.Position)), Format: wgpu.VertexFormatFloat32x3},
			{Location: 1, Offset: uint64(unsafe.Offsetof(v.Color)), Format: wgpu.VertexFormatFloat32x4},
		},
	}
}

// TexturedVertexLayout returns the layout of [shape.TexturedVertex]:
// position at location 0 and texture coordinate at location 1.
func TexturedVertexLayout() VertexLayout {
	var v shape.TexturedVertex
	return VertexLayout{
		Stride: uint64(unsafe.Sizeof(v)),
		Attributes: []VertexAttribute{
			{Location: 0, Offset: uint64(unsafe.Offsetof(v.Position)), Format: wgpu.VertexFormatFloat32x3},
			{Location: 1, Offset: uint64(unsafe.Offsetof(v.TexCoord)), Format: wgpu.VertexFormatFloat32x2},
		},
	}
}

// VertexFormatSize returns the size in bytes of the given vertex
// format, for the float32 formats used here, and 0 otherwise.
func VertexFormatSize(f wgpu.VertexFormat) uint64 {
	switch f {
	case wgpu.VertexFormatFloat32:
		return 4
	case wgpu.VertexFormatFloat32x2:
		return 8
	case wgpu.VertexFormatFloat32x3:
		return 12
	case wgpu.VertexFormatFloat32x4:
		return 16
	}
	return 0
}

// Validate checks that the attributes follow each other with no padding
// and cover exactly the stride.
func (vl *VertexLayout) Validate() error {
	off := uint64(0)
	for i, at := range vl.Attributes {
		sz := VertexFormatSize(at.Format)
		if sz == 0 {
			return fmt.Errorf("%w: attribute %d has unsupported format %v", ErrVertexLayout, i, at.Format)
		}
		if at.Offset != off {
			return fmt.Errorf("%w: attribute %d at offset %d, expected %d", ErrVertexLayout, i, at.Offset, off)
		}
		off += sz
	}
	if off != vl.Stride {
		return fmt.Errorf("%w: attributes end at %d, stride is %d", ErrVertexLayout, off, vl.Stride)
	}
	return nil
}

// WGPU returns the layout as a WebGPU vertex buffer layout.
func (vl *VertexLayout) WGPU() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(vl.Attributes))
	for i, at := range vl.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         at.Format,
			Offset:         at.Offset,
			ShaderLocation: at.Location,
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: vl.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
