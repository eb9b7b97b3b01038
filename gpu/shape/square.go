// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/hellogpu/math32"

// Square is an axis-aligned square with vertices in top-left,
// top-right, bottom-left, bottom-right order.
type Square struct {

	// Center of the square
	Center math32.Vector2

	// length of each side
	Side float32
}

// NewSquare returns a new [Square] of given side length centered at the origin.
func NewSquare(side float32) *Square {
	return &Square{Side: side}
}

func (sq *Square) N() (numVertex, numIndex int) {
	return 4, 6
}

func (sq *Square) Positions() []math32.Vector3 {
	h := sq.Side / 2
	c := sq.Center
	return []math32.Vector3{
		math32.Vec3(c.X-h, c.Y+h, 0),
		math32.Vec3(c.X+h, c.Y+h, 0),
		math32.Vec3(c.X-h, c.Y-h, 0),
		math32.Vec3(c.X+h, c.Y-h, 0),
	}
}

// TexCoords maps the whole texture onto the square, upright.
func (sq *Square) TexCoords() []math32.Vector2 {
	return []math32.Vector2{
		math32.Vec2(0, 0),
		math32.Vec2(1, 0),
		math32.Vec2(0, 1),
		math32.Vec2(1, 1),
	}
}

// Colors returns red, green, blue and white corners.
func (sq *Square) Colors() []math32.Vector4 {
	return []math32.Vector4{
		math32.Vec4(1, 0, 0, 1),
		math32.Vec4(0, 1, 0, 1),
		math32.Vec4(0, 0, 1, 1),
		math32.Vec4(1, 1, 1, 1),
	}
}

// Indices returns the two triangles sharing the 2-1 diagonal.
func (sq *Square) Indices() []uint16 {
	return []uint16{0, 2, 1, 1, 2, 3}
}
