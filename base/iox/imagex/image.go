// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"
)

// CloneAsRGBA returns an RGBA copy of the supplied image,
// with its bounds moved to the origin.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one with a
// zero origin and tightly packed rows, it returns that image directly.
// Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	return CloneAsRGBA(src)
}
