// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"testing/fstest"

	"cogentcore.org/hellogpu/base/iox/imagex"
	"cogentcore.org/hellogpu/gpu/shape"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayouts(t *testing.T) {
	cl := ColoredVertexLayout()
	assert.Equal(t, uint64(28), cl.Stride)
	require.Len(t, cl.Attributes, 2)
	assert.Equal(t, VertexAttribute{0, 0, wgpu.VertexFormatFloat32x3}, cl.Attributes[0])
	assert.Equal(t, VertexAttribute{1, 12, wgpu.VertexFormatFloat32x4}, cl.Attributes[1])
	assert.NoError(t, cl.Validate())

	tl := TexturedVertexLayout()
	assert.Equal(t, uint64(20), tl.Stride)
	require.Len(t, tl.Attributes, 2)
	assert.Equal(t, VertexAttribute{0, 0, wgpu.VertexFormatFloat32x3}, tl.Attributes[0])
	assert.Equal(t, VertexAttribute{1, 12, wgpu.VertexFormatFloat32x2}, tl.Attributes[1])
	assert.NoError(t, tl.Validate())

	wl := tl.WGPU()
	assert.Equal(t, uint64(20), wl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, wl.StepMode)
	assert.Equal(t, uint32(1), wl.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), wl.Attributes[1].Offset)
}

// TestVertexBytes checks that the bytes uploaded for a vertex are exactly
// its float32 fields in order, as the layout describes.
func TestVertexBytes(t *testing.T) {
	vs := []shape.TexturedVertex{{Position: [3]float32{1, 2, 3}, TexCoord: [2]float32{0.25, 0.75}}}
	b := wgpu.ToBytes(vs)
	require.Len(t, b, 20)
	want := []float32{1, 2, 3, 0.25, 0.75}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
		assert.Equal(t, w, got, "float %d", i)
	}
}

func TestVertexLayoutInvalid(t *testing.T) {
	gap := VertexLayout{Stride: 28, Attributes: []VertexAttribute{
		{0, 0, wgpu.VertexFormatFloat32x3},
		{1, 16, wgpu.VertexFormatFloat32x3},
	}}
	assert.ErrorIs(t, gap.Validate(), ErrVertexLayout)

	short := VertexLayout{Stride: 32, Attributes: []VertexAttribute{
		{0, 0, wgpu.VertexFormatFloat32x3},
		{1, 12, wgpu.VertexFormatFloat32x4},
	}}
	assert.ErrorIs(t, short.Validate(), ErrVertexLayout)

	unknown := VertexLayout{Stride: 4, Attributes: []VertexAttribute{
		{0, 0, wgpu.VertexFormatUint32},
	}}
	assert.ErrorIs(t, unknown.Validate(), ErrVertexLayout)

	pl := NewGraphicsPipeline("bad", gap)
	assert.ErrorIs(t, pl.Config(nil, wgpu.TextureFormatBGRA8UnormSrgb, ""), ErrVertexLayout)
	assert.False(t, pl.IsConfigured())
}

func TestChooseSurfaceFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, ChooseSurfaceFormat([]wgpu.TextureFormat{
		wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb,
	}))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, ChooseSurfaceFormat([]wgpu.TextureFormat{
		wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm,
	}))
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, ChooseSurfaceFormat(nil))
	assert.True(t, IsSRGB(wgpu.TextureFormatRGBA8UnormSrgb))
	assert.False(t, IsSRGB(wgpu.TextureFormatRGBA8Unorm))
}

func TestClassifySurfaceError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"wgpu.(*Surface).GetCurrentTexture(): Timeout", ErrSurfaceTimeout},
		{"GetCurrentTexture(): Outdated", ErrSurfaceOutdated},
		{"surface Lost", ErrSurfaceLost},
		{"OutOfMemory", ErrSurfaceOutOfMemory},
		{"out of memory", ErrSurfaceOutOfMemory},
	}
	for _, tt := range tests {
		err := ClassifySurfaceError(errors.New(tt.msg))
		assert.ErrorIs(t, err, tt.want, tt.msg)
		assert.Contains(t, err.Error(), tt.msg)
	}
	assert.NoError(t, ClassifySurfaceError(nil))

	unknown := errors.New("device exploded")
	assert.Same(t, unknown, ClassifySurfaceError(unknown))

	wrapped := fmt.Errorf("frame: %w", ErrSurfaceLost)
	assert.Same(t, wrapped, ClassifySurfaceError(wrapped))

	assert.True(t, IsRecoverable(ClassifySurfaceError(errors.New("Outdated"))))
	assert.True(t, IsRecoverable(ErrSurfaceLost))
	assert.False(t, IsRecoverable(ErrSurfaceTimeout))
	assert.False(t, IsRecoverable(ErrSurfaceOutOfMemory))
}

func TestSurfaceUnconfigured(t *testing.T) {
	sf := &Surface{}
	assert.NoError(t, sf.Configure(image.Point{0, 600}))
	assert.NoError(t, sf.Configure(image.Point{800, 0}))
	assert.Equal(t, image.Point{}, sf.Size())
	_, err := sf.AcquireFrame()
	assert.ErrorIs(t, err, ErrSurfaceNotConfigured)

	assert.False(t, sf.SetSize(image.Point{0, 0}))
	assert.True(t, sf.SetSize(image.Point{800, 600}))
	assert.Equal(t, image.Point{800, 600}, sf.Size())

	sf.configured = true
	assert.False(t, sf.SetSize(image.Point{800, 600}))
	assert.True(t, sf.SetSize(image.Point{1024, 768}))
	assert.Equal(t, image.Point{1024, 768}, sf.Size())
	sf.Release()
}

func TestGraphicsDefaults(t *testing.T) {
	pl := NewGraphicsPipeline("test", TexturedVertexLayout())
	assert.Equal(t, "vs_main", pl.VertexEntry)
	assert.Equal(t, "fs_main", pl.FragmentEntry)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, pl.Primitive.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, pl.Primitive.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, pl.Primitive.CullMode)
	assert.Equal(t, uint32(1), pl.Multisample.Count)
	assert.Equal(t, wgpu.BlendStateReplace, pl.Blend)

	pl.SetTopology(LineStrip).SetCullMode(wgpu.CullModeNone).SetAlphaBlend(true).SetMultisample(0)
	assert.Equal(t, wgpu.PrimitiveTopologyLineStrip, pl.Primitive.Topology)
	assert.Equal(t, wgpu.CullModeNone, pl.Primitive.CullMode)
	assert.Equal(t, wgpu.BlendStateAlphaBlending, pl.Blend)
	assert.Equal(t, uint32(1), pl.Multisample.Count)
}

func TestBufferWriteSize(t *testing.T) {
	bf := &Buffer{Name: "camera", Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst, Size: 64}
	assert.ErrorIs(t, bf.Write(nil, make([]byte, 32)), ErrBufferSize)

	ro := &Buffer{Name: "vertices", Usage: wgpu.BufferUsageVertex, Size: 4}
	err := ro.Write(nil, make([]byte, 4))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBufferSize)

	_, err = NewBuffer(nil, "empty", wgpu.BufferUsageVertex, nil)
	assert.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestPadIndices(t *testing.T) {
	even := []uint16{0, 2, 1, 1, 2, 3}
	assert.Equal(t, even, PadIndices(even))
	odd := []uint16{2, 1, 0}
	padded := PadIndices(odd)
	assert.Equal(t, []uint16{2, 1, 0, 0}, padded)
	assert.Equal(t, []uint16{2, 1, 0}, odd)
	assert.Len(t, wgpu.ToBytes(padded), 8)
}

func TestNewMeshBuffersInvalid(t *testing.T) {
	ms := &shape.Mesh[shape.ColoredVertex]{
		Vertices: make([]shape.ColoredVertex, 3),
		Indices:  []uint16{0, 1, 5},
	}
	_, err := NewMeshBuffers(nil, "bad", ms)
	assert.ErrorIs(t, err, shape.ErrIndexRange)
}

func TestBindGroupLayouts(t *testing.T) {
	te := TextureLayoutEntries()
	require.Len(t, te, 2)
	assert.Equal(t, uint32(0), te[0].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, te[0].Visibility)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, te[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, te[0].Texture.ViewDimension)
	assert.False(t, te[0].Texture.Multisampled)
	assert.Equal(t, uint32(1), te[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, te[1].Sampler.Type)

	ue := UniformLayoutEntries(wgpu.ShaderStageVertex, 64)
	require.Len(t, ue, 1)
	assert.Equal(t, uint32(0), ue[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, ue[0].Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, ue[0].Buffer.Type)
	assert.Equal(t, uint64(64), ue[0].Buffer.MinBindingSize)

	sd := SamplerDescriptor("tex")
	assert.Equal(t, wgpu.AddressModeClampToEdge, sd.AddressModeU)
	assert.Equal(t, wgpu.FilterModeNearest, sd.MagFilter)
	assert.Equal(t, wgpu.FilterModeNearest, sd.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeNearest, sd.MipmapFilter)
}

func TestIncludeFS(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/camera.wgsl": {Data: []byte("struct Camera {};")},
	}
	code := "#include \"camera.wgsl\"\nfn main() {}"
	out := IncludeFS(fsys, "shaders", code)
	assert.Equal(t, "// #include \"camera.wgsl\"\nstruct Camera {};\nfn main() {}", out)

	missing := "#include \"nope.wgsl\"\nfn main() {}"
	assert.Equal(t, missing, IncludeFS(fsys, "shaders", missing))
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadImage(t *testing.T) {
	b := encodeTestPNG(t, 256, 256)
	img, err := LoadImage("checker", b, 8192)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Width())
	assert.Equal(t, 256, img.Height())
	assert.Equal(t, 1024, img.BytesPerRow)
	assert.Len(t, img.Pix, 256*1024)
	assert.True(t, img.Format.IsStdRGBA())
	assert.Equal(t, wgpu.Extent3D{Width: 256, Height: 256, DepthOrArrayLayers: 1}, img.Format.Extent3D())
	assert.Equal(t, []byte{3, 2, 0, 255}, img.Pix[2*1024+3*4:2*1024+3*4+4])
}

func TestLoadImageDownscale(t *testing.T) {
	img, err := LoadImage("big", encodeTestPNG(t, 256, 128), 64)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Width())
	assert.Equal(t, 32, img.Height())
	assert.GreaterOrEqual(t, img.BytesPerRow, 64*4)
}

func TestLoadImageInvalid(t *testing.T) {
	img, err := LoadImage("junk", []byte("not a png"), 0)
	assert.ErrorIs(t, err, imagex.ErrNotImage)
	assert.Nil(t, img)

	b := encodeTestPNG(t, 32, 32)
	img, err = LoadImage("truncated", b[:len(b)-20], 0)
	assert.Error(t, err)
	assert.Nil(t, img)
}

func TestTextureFormat(t *testing.T) {
	tf := NewTextureFormat(10, 20)
	assert.True(t, tf.IsStdRGBA())
	assert.Equal(t, 4, tf.BytesPerPixel())
	assert.Equal(t, 40, tf.Stride())
	assert.Equal(t, image.Rect(0, 0, 10, 20), tf.Bounds())
	tf.Format = wgpu.TextureFormatDepth32Float
	assert.Equal(t, 0, tf.BytesPerPixel())
}

func TestNewTextureLayout(t *testing.T) {
	img := NewImage("ok", image.NewRGBA(image.Rect(0, 0, 4, 2)))
	assert.Equal(t, TextureFormat{Size: image.Pt(4, 2), Format: wgpu.TextureFormatRGBA8UnormSrgb, Samples: 1}, img.Format)

	short := *img
	short.BytesPerRow = 8
	tx, err := NewTexture(nil, &short, nil)
	assert.ErrorIs(t, err, ErrImageLayout)
	assert.Nil(t, tx)

	bgra := *img
	bgra.Format.Format = wgpu.TextureFormatBGRA8Unorm
	_, err = NewTexture(nil, &bgra, nil)
	assert.ErrorIs(t, err, ErrImageLayout)

	trunc := *img
	trunc.Pix = trunc.Pix[:12]
	_, err = NewTexture(nil, &trunc, nil)
	assert.ErrorIs(t, err, ErrImageLayout)
}

func TestGPUDevice(t *testing.T) {
	t.Skip("Need software GPU on CI")
	opts := &GPUOptions{}
	opts.Defaults()
	opts.ForceFallback = true
	gp, err := NewGPU(nil, opts)
	require.NoError(t, err)
	defer gp.Release()
	assert.Greater(t, gp.MaxTextureSize(), 0)

	layout, err := NewBindGroupLayout(gp, "texture", TextureLayoutEntries())
	require.NoError(t, err)
	defer layout.Release()
	img, err := LoadImage("checker", encodeTestPNG(t, 16, 16), gp.MaxTextureSize())
	require.NoError(t, err)
	tx, err := NewTexture(gp, img, layout)
	require.NoError(t, err)
	assert.Equal(t, 16, tx.Width())
	assert.Equal(t, 16, tx.Height())
	tx.Release()

	ci, err := shape.NewCircle(5, 0.5)
	require.NoError(t, err)
	ms := shape.ColoredMesh(ci, nil)
	mb, err := NewMeshBuffers(gp, "circle", ms)
	require.NoError(t, err)
	assert.Equal(t, 9, mb.NumIndices)
	assert.Equal(t, uint64(20), mb.Index.Size)
	mb.Release()
}
