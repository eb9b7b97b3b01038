// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"

	"cogentcore.org/hellogpu/gpu/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrBufferSize is returned when writing data whose size
// differs from the size of the buffer.
var ErrBufferSize = errors.New("gpu: data size does not match buffer size")

// ErrEmptyBuffer is returned when creating a buffer with no data.
var ErrEmptyBuffer = errors.New("gpu: buffer data is empty")

// Buffer is a GPU buffer of fixed size, initialized from host data.
type Buffer struct {

	// Name of the buffer, used as its label.
	Name string

	// Usage flags of the buffer.
	Usage wgpu.BufferUsage

	// Size in bytes.
	Size uint64

	buffer *wgpu.Buffer
}

// NewBuffer returns a new Buffer holding a copy of the given data.
func NewBuffer(gp *GPU, name string, usage wgpu.BufferUsage, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, name)
	}
	buf, err := gp.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: data,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.NewBuffer %s: %w", name, err)
	}
	return &Buffer{Name: name, Usage: usage, Size: uint64(len(data)), buffer: buf}, nil
}

// NewBufferFrom returns a new Buffer holding the bytes of the given values,
// which must be plain data with no pointers.
func NewBufferFrom[E any](gp *GPU, name string, usage wgpu.BufferUsage, from []E) (*Buffer, error) {
	return NewBuffer(gp, name, usage, wgpu.ToBytes(from))
}

// Write copies the data into the buffer through the queue. The data
// must be exactly the size of the buffer.
func (bf *Buffer) Write(gp *GPU, data []byte) error {
	if uint64(len(data)) != bf.Size {
		return fmt.Errorf("%w: %s is %d bytes, got %d", ErrBufferSize, bf.Name, bf.Size, len(data))
	}
	if bf.Usage&wgpu.BufferUsageCopyDst == 0 {
		return fmt.Errorf("gpu.Buffer %s: cannot be written, missing CopyDst usage", bf.Name)
	}
	return gp.Queue.WriteBuffer(bf.buffer, 0, data)
}

// WGPU returns the WebGPU buffer.
func (bf *Buffer) WGPU() *wgpu.Buffer {
	return bf.buffer
}

// Release releases the buffer.
func (bf *Buffer) Release() {
	if bf.buffer == nil {
		return
	}
	bf.buffer.Release()
	bf.buffer = nil
}

// MeshBuffers holds the vertex and index buffers of an uploaded mesh.
type MeshBuffers struct {

	// Name of the mesh
	Name string

	// Vertex buffer
	Vertex *Buffer

	// Index buffer, of 16-bit indices
	Index *Buffer

	// NumIndices is the number of indices, drawn in one call.
	NumIndices int
}

// NewMeshBuffers validates the mesh and uploads its vertices and indices.
// WebGPU requires buffer writes to be 4-byte aligned, so an odd number
// of indices is padded with one unused index.
func NewMeshBuffers[V shape.Vertex](gp *GPU, name string, ms *shape.Mesh[V]) (*MeshBuffers, error) {
	if err := ms.Validate(); err != nil {
		return nil, fmt.Errorf("gpu.NewMeshBuffers %s: %w", name, err)
	}
	vb, err := NewBufferFrom(gp, name+" vertices", wgpu.BufferUsageVertex, ms.Vertices)
	if err != nil {
		return nil, err
	}
	ib, err := NewBufferFrom(gp, name+" indices", wgpu.BufferUsageIndex, PadIndices(ms.Indices))
	if err != nil {
		vb.Release()
		return nil, err
	}
	return &MeshBuffers{Name: name, Vertex: vb, Index: ib, NumIndices: ms.NumIndices()}, nil
}

// PadIndices returns the indices padded to an even count, so that
// their size is a multiple of 4 bytes.
func PadIndices(idx []uint16) []uint16 {
	if len(idx)%2 == 0 {
		return idx
	}
	return append(append(make([]uint16, 0, len(idx)+1), idx...), 0)
}

// Draw binds the buffers and draws all indices in the given render pass.
func (mb *MeshBuffers) Draw(rp *wgpu.RenderPassEncoder) {
	rp.SetVertexBuffer(0, mb.Vertex.WGPU(), 0, wgpu.WholeSize)
	rp.SetIndexBuffer(mb.Index.WGPU(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	rp.DrawIndexed(uint32(mb.NumIndices), 1, 0, 0, 0)
}

// Release releases both buffers.
func (mb *MeshBuffers) Release() {
	if mb.Vertex != nil {
		mb.Vertex.Release()
	}
	if mb.Index != nil {
		mb.Index.Release()
	}
}
