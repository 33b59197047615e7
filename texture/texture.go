// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texture uploads images into immutable GPU textures with a
// shader resource view, optionally with a full mip chain.
package texture

import (
	"fmt"
	"image"
	"io/fs"
	"runtime"

	"cogentcore.org/meshview/base/errors"
	"cogentcore.org/meshview/base/iox/imagex"
	"cogentcore.org/meshview/gpu"
	"golang.org/x/sync/errgroup"
)

// Options control how an image is uploaded.
type Options struct {
	// Format is the texture pixel format.
	Format gpu.TextureFormats

	// Mips generates and uploads a full mip chain.
	Mips bool
}

// Texture is a GPU texture loaded from an image file.
type Texture struct {
	gpu.Texture

	// Path is the image file the texture was loaded from.
	Path string
}

// Load decodes the image file at path and uploads it.
func Load(dev gpu.Device, path string, opts Options) (*Texture, error) {
	img, _, err := imagex.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture.Load %s", path)
	}
	return New(dev, path, imagex.AsRGBA(img), opts)
}

// LoadFS is [Load] from a file in fsys.
func LoadFS(dev gpu.Device, fsys fs.FS, path string, opts Options) (*Texture, error) {
	img, _, err := imagex.OpenFS(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture.LoadFS %s", path)
	}
	return New(dev, path, imagex.AsRGBA(img), opts)
}

// New uploads img as a texture labeled with path.
func New(dev gpu.Device, path string, img *image.RGBA, opts Options) (*Texture, error) {
	size := img.Rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("texture.New %s: empty image", path)
	}
	levels := 1
	if opts.Mips {
		levels = 0
	}
	chain := imagex.MipChain(img, levels)
	mips := make([][]byte, len(chain))
	for i, lv := range chain {
		mips[i] = lv.Pix
	}
	tx, err := dev.CreateTexture(gpu.TextureDesc{Label: path, Size: size, Format: opts.Format}, mips)
	if err != nil {
		return nil, errors.Wrapf(err, "texture.New %s", path)
	}
	return &Texture{Texture: tx, Path: path}, nil
}

// DecodeAll decodes the image files at paths in parallel. Images
// that fail to decode are nil, and their errors are joined.
func DecodeAll(paths ...string) ([]*image.RGBA, error) {
	imgs := make([]*image.RGBA, len(paths))
	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			img, _, err := imagex.Open(path)
			if err != nil {
				errs[i] = errors.Wrapf(err, "texture.DecodeAll %s", path)
				return nil
			}
			imgs[i] = imagex.AsRGBA(img)
			return nil
		})
	}
	g.Wait()
	return imgs, errors.Join(errs...)
}
