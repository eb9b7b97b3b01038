// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image,
// with bounds starting at 0,0.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(img, img.Rect, src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one
// with bounds at the origin, then it returns that image directly.
// Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	return CloneAsRGBA(src)
}

// FitSize returns the size of sz scaled down, preserving aspect
// ratio, so that neither dimension exceeds maxDim.
// Sizes already within the limit, and maxDim <= 0, are returned as is.
func FitSize(sz image.Point, maxDim int) image.Point {
	if maxDim <= 0 || (sz.X <= maxDim && sz.Y <= maxDim) {
		return sz
	}
	if sz.X >= sz.Y {
		return image.Point{maxDim, max(1, sz.Y*maxDim/sz.X)}
	}
	return image.Point{max(1, sz.X*maxDim/sz.Y), maxDim}
}

// Fit returns img as an RGBA, resized with linear filtering
// if needed so that neither dimension exceeds maxDim.
func Fit(img image.Image, maxDim int) *image.RGBA {
	if img == nil {
		return nil
	}
	sz := img.Bounds().Size()
	tsz := FitSize(sz, maxDim)
	if tsz == sz {
		return AsRGBA(img)
	}
	return transform.Resize(img, tsz.X, tsz.Y, transform.Linear)
}
