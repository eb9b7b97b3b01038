// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 100, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	f, err = ExtToFormat("webp")
	assert.NoError(t, err)
	assert.Equal(t, WebP, f)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat("xyz")
	assert.Error(t, err)
	assert.Equal(t, "PNG", PNG.String())
	assert.Equal(t, "Formats(42)", Formats(42).String())
}

func TestReadBytes(t *testing.T) {
	b := encodePNG(t, testImage(16, 8))
	img, f, err := ReadBytes(b)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, image.Pt(16, 8), img.Bounds().Size())
}

func TestReadBytesInvalid(t *testing.T) {
	_, _, err := ReadBytes(nil)
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = ReadBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotImage)

	b := encodePNG(t, testImage(16, 8))
	img, _, err := ReadBytes(b[:len(b)/2])
	assert.Error(t, err)
	assert.Nil(t, img)
}

func TestReadBytesFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(4, 4)))
	img, f, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, BMP, f)
	assert.Equal(t, color.RGBA{3, 2, 100, 255}, AsRGBA(img).RGBAAt(3, 2))

	buf.Reset()
	require.NoError(t, tiff.Encode(&buf, testImage(4, 4), nil))
	img, f, err = ReadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, TIFF, f)
	assert.Equal(t, color.RGBA{1, 3, 100, 255}, AsRGBA(img).RGBAAt(1, 3))
}

func TestAsRGBA(t *testing.T) {
	img := testImage(4, 4)
	assert.Same(t, img, AsRGBA(img))

	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	r := AsRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), r.Rect)
	assert.Equal(t, color.RGBA{1, 1, 100, 255}, r.RGBAAt(0, 0))
	assert.Nil(t, AsRGBA(nil))
}

func TestFit(t *testing.T) {
	assert.Equal(t, image.Pt(100, 50), FitSize(image.Pt(100, 50), 0))
	assert.Equal(t, image.Pt(100, 50), FitSize(image.Pt(100, 50), 100))
	assert.Equal(t, image.Pt(64, 32), FitSize(image.Pt(128, 64), 64))
	assert.Equal(t, image.Pt(32, 64), FitSize(image.Pt(64, 128), 64))
	assert.Equal(t, image.Pt(1, 64), FitSize(image.Pt(1, 1000), 64))

	big := testImage(128, 64)
	assert.Equal(t, image.Pt(64, 32), Fit(big, 64).Bounds().Size())
	assert.Same(t, big, Fit(big, 256))
}
