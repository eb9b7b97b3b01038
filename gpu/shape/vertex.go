// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"errors"
	"fmt"
)

// ColoredVertex is a vertex with a position and an RGBA color.
// Its memory layout is read directly by the GPU, so fields
// must not be reordered.
type ColoredVertex struct {
	Position [3]float32
	Color    [4]float32
}

// TexturedVertex is a vertex with a position and a texture coordinate.
// Its memory layout is read directly by the GPU, so fields
// must not be reordered.
type TexturedVertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Vertex is the set of vertex types a [Mesh] can hold.
type Vertex interface {
	ColoredVertex | TexturedVertex
}

var (
	// ErrIndexCount is returned when a mesh index count is not a multiple of 3.
	ErrIndexCount = errors.New("shape: index count is not a multiple of 3")

	// ErrIndexRange is returned when a mesh index refers past its vertices.
	ErrIndexRange = errors.New("shape: index out of vertex range")
)

// Mesh is an indexed triangle list: every three indices
// name the vertices of one triangle.
type Mesh[V Vertex] struct {
	Vertices []V
	Indices  []uint16
}

// NumIndices returns the number of indices, for the draw call.
func (ms *Mesh[V]) NumIndices() int {
	return len(ms.Indices)
}

// NumTriangles returns the number of triangles in the mesh.
func (ms *Mesh[V]) NumTriangles() int {
	return len(ms.Indices) / 3
}

// Validate returns an error if the index count is not a multiple
// of 3 or any index is not less than the number of vertices.
func (ms *Mesh[V]) Validate() error {
	if len(ms.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(ms.Indices))
	}
	nv := len(ms.Vertices)
	for i, ix := range ms.Indices {
		if int(ix) >= nv {
			return fmt.Errorf("%w: index %d is %d, with %d vertices", ErrIndexRange, i, ix, nv)
		}
	}
	return nil
}
