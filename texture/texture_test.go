// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 100, 255})
		}
	}
	fn := filepath.Join(dir, name)
	f, err := os.Create(fn)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return fn
}

func newDevice(t *testing.T) (*gputest.Backend, gpu.Device) {
	b := gputest.NewBackend()
	dev, _, err := b.CreateDevice(&gputest.Surface{Sz: image.Pt(4, 4)})
	require.NoError(t, err)
	return b, dev
}

func TestLoad(t *testing.T) {
	b, dev := newDevice(t)
	fn := writePNG(t, t.TempDir(), "diffuse.png", 8, 4)

	tx, err := Load(dev, fn, Options{})
	require.NoError(t, err)
	assert.Equal(t, fn, tx.Path)
	assert.Equal(t, image.Pt(8, 4), tx.Size())
	assert.Equal(t, 1, tx.MipLevels())
	assert.Equal(t, image.Pt(8, 4), tx.View().ViewSize())

	mt, err := Load(dev, fn, Options{Format: gpu.RGBA8Unorm, Mips: true})
	require.NoError(t, err)
	assert.Equal(t, 4, mt.MipLevels())
	assert.Equal(t, gpu.RGBA8Unorm, mt.Texture.(*gputest.Texture).Desc.Format)

	tx.Release()
	mt.Release()
	assert.Zero(t, b.Live["texture"])
}

func TestLoadErrors(t *testing.T) {
	b, dev := newDevice(t)
	_, err := Load(dev, filepath.Join(t.TempDir(), "missing.png"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	fn := writePNG(t, t.TempDir(), "a.png", 2, 2)
	b.FailTexture = errors.New("device lost")
	_, err = Load(dev, fn, Options{})
	assert.ErrorContains(t, err, "device lost")
}

func TestLoadFS(t *testing.T) {
	_, dev := newDevice(t)
	fn := writePNG(t, t.TempDir(), "gloss.png", 2, 2)
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	tx, err := LoadFS(dev, fstest.MapFS{"maps/gloss.png": {Data: data}}, "maps/gloss.png", Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), tx.Size())
}

func TestDecodeAll(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2)
	c := writePNG(t, dir, "c.png", 3, 1)
	imgs, err := DecodeAll(a, filepath.Join(dir, "b.png"), c)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.Len(t, imgs, 3)
	assert.NotNil(t, imgs[0])
	assert.Nil(t, imgs[1])
	assert.Equal(t, image.Rect(0, 0, 3, 1), imgs[2].Rect)

	imgs, err = DecodeAll(a, c)
	assert.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestNewEmpty(t *testing.T) {
	_, dev := newDevice(t)
	_, err := New(dev, "empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), Options{})
	assert.Error(t, err)
}
