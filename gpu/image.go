// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/hellogpu/base/iox/imagex"
)

// Image is decoded RGBA8 pixel data ready for upload to a [Texture].
type Image struct {

	// Name of the image, used as the texture label.
	Name string

	// Format has the size and the texture format.
	Format TextureFormat

	// Pix is the RGBA8 pixel data, with rows BytesPerRow apart.
	Pix []byte

	// BytesPerRow is the distance in bytes between rows in Pix,
	// which can be more than 4 times the width.
	BytesPerRow int
}

// NewImage returns an Image for the given RGBA image. The
// image bounds must start at 0,0.
func NewImage(name string, rgba *image.RGBA) *Image {
	sz := rgba.Rect.Size()
	return &Image{Name: name, Format: *NewTextureFormat(sz.X, sz.Y), Pix: rgba.Pix, BytesPerRow: rgba.Stride}
}

// LoadImage decodes the given encoded image bytes as RGBA8.
// An image with a side larger than maxDim is scaled down to fit
// when maxDim > 0. A decode failure returns nil and the error.
func LoadImage(name string, b []byte, maxDim int) (*Image, error) {
	img, _, err := imagex.ReadBytes(b)
	if err != nil {
		return nil, fmt.Errorf("gpu.LoadImage %s: %w", name, err)
	}
	rgba := imagex.Fit(img, maxDim)
	if rgba.Rect.Dx() == 0 || rgba.Rect.Dy() == 0 {
		return nil, fmt.Errorf("gpu.LoadImage %s: image is empty", name)
	}
	return NewImage(name, rgba), nil
}

// Width returns the width in pixels.
func (im *Image) Width() int { return im.Format.Size.X }

// Height returns the height in pixels.
func (im *Image) Height() int { return im.Format.Size.Y }
