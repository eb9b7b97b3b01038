// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/hellogpu/math32"
)

var (
	// ErrTooFewVertices is returned for a circle of less than 3 vertices,
	// which cannot form a triangle.
	ErrTooFewVertices = errors.New("shape: circle needs at least 3 vertices")

	// ErrTooManyVertices is returned for a circle whose vertices
	// cannot all be addressed by 16-bit indices.
	ErrTooManyVertices = errors.New("shape: circle vertices exceed 16-bit index range")
)

// Circle is a regular polygon approximating a circle, with its
// vertices running clockwise from the positive X axis, and filled
// as a triangle fan around the first vertex.
type Circle struct {

	// Center of the circle
	Center math32.Vector2

	// Radius of the circle
	Radius float32

	// number of vertices on the rim, at least 3
	Vertices int
}

// NewCircle returns a new [Circle] of given number of vertices and
// radius centered at the origin. It returns [ErrTooFewVertices]
// for n < 3, and [ErrTooManyVertices] if n exceeds the 16-bit index range.
func NewCircle(n int, radius float32) (*Circle, error) {
	ci := &Circle{Radius: radius, Vertices: n}
	if err := ci.Validate(); err != nil {
		return nil, err
	}
	return ci, nil
}

// Validate checks the vertex count; see [NewCircle].
func (ci *Circle) Validate() error {
	switch {
	case ci.Vertices < 3:
		return fmt.Errorf("%w: %d", ErrTooFewVertices, ci.Vertices)
	case ci.Vertices > math.MaxUint16+1:
		return fmt.Errorf("%w: %d", ErrTooManyVertices, ci.Vertices)
	}
	return nil
}

func (ci *Circle) N() (numVertex, numIndex int) {
	if ci.Validate() != nil {
		return 0, 0
	}
	return ci.Vertices, 3 * (ci.Vertices - 2)
}

// angle returns the angle of vertex i, decreasing so that
// the vertices run clockwise.
func (ci *Circle) angle(i int) float32 {
	return -2 * math32.Pi * float32(i) / float32(ci.Vertices)
}

// Positions returns Center + Radius * (cos θ, sin θ) for θ = -2π i / n.
func (ci *Circle) Positions() []math32.Vector3 {
	nv, _ := ci.N()
	ps := make([]math32.Vector3, nv)
	for i := range nv {
		sin, cos := math32.Sincos(ci.angle(i))
		ps[i] = math32.Vec3(ci.Center.X+ci.Radius*cos, ci.Center.Y+ci.Radius*sin, 0)
	}
	return ps
}

// TexCoords maps the circle onto the unit square of the texture.
func (ci *Circle) TexCoords() []math32.Vector2 {
	nv, _ := ci.N()
	tc := make([]math32.Vector2, nv)
	for i := range nv {
		sin, cos := math32.Sincos(ci.angle(i))
		tc[i] = math32.Vec2(0.5+0.5*cos, 0.5-0.5*sin)
	}
	return tc
}

// Colors shades each vertex by its angle around the rim.
func (ci *Circle) Colors() []math32.Vector4 {
	nv, _ := ci.N()
	cs := make([]math32.Vector4, nv)
	for i := range nv {
		sin, cos := math32.Sincos(-ci.angle(i))
		cs[i] = math32.Vec4((1+cos)/2, (1+sin)/2, 1, 1)
	}
	return cs
}

// Indices returns the fan triangles (i+1, i, 0) for i in [1, n-2],
// which are counter-clockwise given the clockwise vertex order.
func (ci *Circle) Indices() []uint16 {
	nv, ni := ci.N()
	idx := make([]uint16, 0, ni)
	for i := 1; i <= nv-2; i++ {
		idx = append(idx, uint16(i+1), uint16(i), 0)
	}
	return idx
}
