// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 200, 255})
		}
	}
	return img
}

func writePNG(t *testing.T, name string, img image.Image) string {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, buf.Bytes(), 0666))
	return fn
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	f, err = ExtToFormat("tga")
	assert.NoError(t, err)
	assert.Equal(t, TGA, f)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat("obj")
	assert.Error(t, err)
	assert.Equal(t, "WebP", WebP.String())
}

func TestOpenSniffsContent(t *testing.T) {
	// the extension lies: the content decides
	fn := writePNG(t, "diffuse.jpg", testImage(4, 3))
	img, f, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())
}

func TestOpenMissing(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestReadGarbage(t *testing.T) {
	_, f, err := Read(bytes.NewReader([]byte("this is not an image at all")))
	assert.Error(t, err)
	assert.Equal(t, None, f)
}

func TestAsRGBA(t *testing.T) {
	src := testImage(3, 2)
	rgba := AsRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), rgba.Rect)
	assert.Equal(t, color.RGBA{10, 10, 200, 255}, rgba.RGBAAt(1, 1))
	assert.Same(t, rgba, AsRGBA(rgba))

	sub := rgba.SubImage(image.Rect(1, 1, 3, 2)).(*image.RGBA)
	moved := AsRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), moved.Rect)
	assert.Nil(t, AsRGBA(nil))
}

func TestMipChain(t *testing.T) {
	assert.Equal(t, 0, MipLevels(image.Point{}))
	assert.Equal(t, 1, MipLevels(image.Pt(1, 1)))
	assert.Equal(t, 4, MipLevels(image.Pt(8, 3)))

	src := AsRGBA(testImage(8, 3))
	chain := MipChain(src, 0)
	require.Len(t, chain, 4)
	assert.Same(t, src, chain[0])
	assert.Equal(t, image.Pt(4, 1), chain[1].Rect.Size())
	assert.Equal(t, image.Pt(2, 1), chain[2].Rect.Size())
	assert.Equal(t, image.Pt(1, 1), chain[3].Rect.Size())

	assert.Len(t, MipChain(src, 2), 2)
}
