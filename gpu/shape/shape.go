// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides functions for generating the vertex and
// index data of standard 2D shapes, ready for upload to the GPU.
package shape

import (
	"image/color"

	"cogentcore.org/hellogpu/math32"
)

// Shape is the interface for all shapes. Shapes are pure
// descriptions: every method returns newly generated data
// that depends only on the shape parameters.
type Shape interface {

	// N returns number of vertex and index points in this shape.
	N() (numVertex, numIndex int)

	// Positions returns the vertex positions.
	Positions() []math32.Vector3

	// TexCoords returns the default texture coordinates,
	// with v running down the image.
	TexCoords() []math32.Vector2

	// Colors returns the default per-vertex colors.
	Colors() []math32.Vector4

	// Indices returns the triangle list indices, with counter-clockwise
	// front faces.
	Indices() []uint16
}

// UVMap maps a vertex position to a texture coordinate.
type UVMap func(pos math32.Vector3) math32.Vector2

// ColoredVertices returns the vertices of the shape with the given color,
// or the shape's own colors if clr is nil.
func ColoredVertices(sh Shape, clr color.Color) []ColoredVertex {
	pos := sh.Positions()
	var clrs []math32.Vector4
	if clr == nil {
		clrs = sh.Colors()
	}
	fc := colorToVector4(clr)
	vs := make([]ColoredVertex, len(pos))
	for i, p := range pos {
		c := fc
		if clrs != nil {
			c = clrs[i]
		}
		vs[i] = ColoredVertex{Position: [3]float32{p.X, p.Y, p.Z}, Color: c.Array()}
	}
	return vs
}

// TexturedVertices returns the vertices of the shape with texture
// coordinates from the given map, or the shape's own texture
// coordinates if uv is nil.
func TexturedVertices(sh Shape, uv UVMap) []TexturedVertex {
	pos := sh.Positions()
	var tcs []math32.Vector2
	if uv == nil {
		tcs = sh.TexCoords()
	}
	vs := make([]TexturedVertex, len(pos))
	for i, p := range pos {
		var tc math32.Vector2
		if tcs != nil {
			tc = tcs[i]
		} else {
			tc = uv(p)
		}
		vs[i] = TexturedVertex{Position: [3]float32{p.X, p.Y, p.Z}, TexCoord: [2]float32{tc.X, tc.Y}}
	}
	return vs
}

// ColoredMesh returns the [Mesh] of the shape using [ColoredVertices].
func ColoredMesh(sh Shape, clr color.Color) *Mesh[ColoredVertex] {
	return &Mesh[ColoredVertex]{Vertices: ColoredVertices(sh, clr), Indices: sh.Indices()}
}

// TexturedMesh returns the [Mesh] of the shape using [TexturedVertices].
func TexturedMesh(sh Shape, uv UVMap) *Mesh[TexturedVertex] {
	return &Mesh[TexturedVertex]{Vertices: TexturedVertices(sh, uv), Indices: sh.Indices()}
}

// colorToVector4 returns the non-premultiplied components of the color
// in [0, 1]. A nil color is opaque white.
func colorToVector4(clr color.Color) math32.Vector4 {
	if clr == nil {
		return math32.Vec4(1, 1, 1, 1)
	}
	nc := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return math32.Vec4(float32(nc.R)/255, float32(nc.G)/255, float32(nc.B)/255, float32(nc.A)/255)
}
