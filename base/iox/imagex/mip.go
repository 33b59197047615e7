// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"math/bits"

	"github.com/anthonynsimon/bild/transform"
)

// MipLevels returns the number of levels in a full mip chain
// for the given size, down to 1x1.
func MipLevels(size image.Point) int {
	m := max(size.X, size.Y)
	if m <= 0 {
		return 0
	}
	return bits.Len(uint(m))
}

// MipChain returns the full mip chain for the given image, starting
// with the image itself as level 0, each level half the size of the
// previous one (minimum 1), down to 1x1. If levels > 0, at most that
// many levels are returned.
func MipChain(src *image.RGBA, levels int) []*image.RGBA {
	size := src.Rect.Size()
	n := MipLevels(size)
	if levels > 0 && levels < n {
		n = levels
	}
	chain := make([]*image.RGBA, 0, n)
	chain = append(chain, src)
	cur := src
	for i := 1; i < n; i++ {
		size = image.Pt(max(size.X/2, 1), max(size.Y/2, 1))
		cur = transform.Resize(cur, size.X, size.Y, transform.Box)
		chain = append(chain, cur)
	}
	return chain
}
