// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"cogentcore.org/meshview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// depthFormat is the format of all depth buffers.
const depthFormat = wgpu.TextureFormatDepth24Plus

// Device is the WebGPU [gpu.Device]. It owns the instance, surface,
// adapter and queue.
type Device struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	ctx       *Context
	swapChain *SwapChain

	// dummy is bound to resource variables that have no texture.
	dummy *Texture
}

// Release releases the device and everything it owns. Resources
// created from it must be released first.
func (d *Device) Release() {
	if d.dummy != nil {
		d.dummy.Release()
		d.dummy = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// CreateSwapChain configures the surface for presentation.
func (d *Device) CreateSwapChain(surface gpu.Surface, desc gpu.SwapChainDesc) (gpu.SwapChain, error) {
	caps := d.surface.GetCapabilities(d.adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("webgpu.CreateSwapChain: %w: surface has no formats", gpu.ErrUnsupported)
	}
	sc := &SwapChain{dev: d, size: desc.Size, vsync: desc.VSync, caps: caps}
	sc.format = caps.Formats[0]
	for _, f := range caps.Formats {
		// unorm back buffers show clear colors as given
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			sc.format = f
			break
		}
	}
	sc.configure()
	d.swapChain = sc
	return sc, nil
}

// CreateDepthStencil creates a depth buffer.
func (d *Device) CreateDepthStencil(size image.Point) (gpu.DepthStencil, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "depth",
		Size:          extent(size),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu.CreateDepthStencil: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("webgpu.CreateDepthStencil: view: %w", err)
	}
	return &DepthStencil{tex: tex, view: view, size: size}, nil
}

var bufferUsages = map[gpu.BufferUsage]wgpu.BufferUsage{
	gpu.VertexBuffer:  wgpu.BufferUsageVertex,
	gpu.IndexBuffer:   wgpu.BufferUsageIndex,
	gpu.UniformBuffer: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
}

// CreateBuffer creates a buffer initialized with data.
func (d *Device) CreateBuffer(desc gpu.BufferDesc, data []byte) (gpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("webgpu.CreateBuffer %s: no data", desc.Label)
	}
	contents := data
	if pad := len(data) % 4; pad != 0 {
		contents = append(slices.Clone(data), make([]byte, 4-pad)...)
	}
	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    desc.Label,
		Contents: contents,
		Usage:    bufferUsages[desc.Usage],
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu.CreateBuffer %s: %w", desc.Label, err)
	}
	return &Buffer{buf: buf, usage: desc.Usage, n: len(data)}, nil
}

// CreateTexture creates a sampled texture and uploads its mip levels.
func (d *Device) CreateTexture(desc gpu.TextureDesc, mips [][]byte) (gpu.Texture, error) {
	if len(mips) == 0 || len(mips[0]) != 4*desc.Size.X*desc.Size.Y {
		return nil, fmt.Errorf("webgpu.CreateTexture %s: level 0 data does not match size %v", desc.Label, desc.Size)
	}
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         desc.Label,
		Size:          extent(desc.Size),
		MipLevelCount: uint32(len(mips)),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        textureFormat(desc.Format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu.CreateTexture %s: %w", desc.Label, err)
	}
	sz := desc.Size
	for level, pix := range mips {
		size := extent(sz)
		d.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Aspect:   wgpu.TextureAspectAll,
				Texture:  tex,
				MipLevel: uint32(level),
				Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			},
			pix,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  4 * uint32(sz.X),
				RowsPerImage: uint32(sz.Y),
			},
			&size,
		)
		sz = image.Pt(max(sz.X/2, 1), max(sz.Y/2, 1))
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("webgpu.CreateTexture %s: view: %w", desc.Label, err)
	}
	tx := &Texture{tex: tex, size: desc.Size, levels: len(mips)}
	tx.view = &View{view: view, size: desc.Size}
	return tx, nil
}

// dummyView returns the view of a 1x1 white texture, bound to
// resource variables without a texture.
func (d *Device) dummyView() *wgpu.TextureView {
	if d.dummy == nil {
		tx, err := d.CreateTexture(gpu.TextureDesc{Label: "dummy", Size: image.Pt(1, 1), Format: gpu.RGBA8Unorm},
			[][]byte{{255, 255, 255, 255}})
		if err != nil {
			slog.Error("webgpu: could not create dummy texture", "error", err)
			return nil
		}
		d.dummy = tx.(*Texture)
	}
	return d.dummy.view.view
}

func extent(size image.Point) wgpu.Extent3D {
	return wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1}
}

// SwapChain is the configured surface.
type SwapChain struct {
	dev    *Device
	size   image.Point
	vsync  bool
	format wgpu.TextureFormat
	caps   wgpu.SurfaceCapabilities
}

func (sc *SwapChain) configure() {
	sc.dev.surface.Configure(sc.dev.adapter, sc.dev.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sc.format,
		Width:       uint32(sc.size.X),
		Height:      uint32(sc.size.Y),
		PresentMode: sc.presentMode(),
		AlphaMode:   sc.caps.AlphaModes[0],
	})
}

// presentMode returns fifo for vsync, else the first immediate mode
// the surface supports.
func (sc *SwapChain) presentMode() wgpu.PresentMode {
	if sc.vsync {
		return wgpu.PresentModeFifo
	}
	for _, m := range []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeMailbox} {
		if slices.Contains(sc.caps.PresentModes, m) {
			return m
		}
	}
	return wgpu.PresentModeFifo
}

// RenderTarget returns the back buffer target.
func (sc *SwapChain) RenderTarget() gpu.RenderTarget { return (*renderTarget)(sc) }

// Resize reconfigures the surface at the new size.
func (sc *SwapChain) Resize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("webgpu.SwapChain.Resize: invalid size %v", size)
	}
	sc.dev.ctx.dropFrame()
	sc.size = size
	sc.configure()
	return nil
}

// Present submits the frame and presents it. A change between zero
// and non-zero syncInterval reconfigures the present mode first.
func (sc *SwapChain) Present(syncInterval int) error {
	if vs := syncInterval > 0; vs != sc.vsync {
		sc.dev.ctx.dropFrame()
		sc.vsync = vs
		sc.configure()
	}
	return sc.dev.ctx.present()
}

// Release drops any acquired frame.
func (sc *SwapChain) Release() {
	if sc.dev == nil {
		return
	}
	sc.dev.ctx.dropFrame()
	if sc.dev.swapChain == sc {
		sc.dev.swapChain = nil
	}
	sc.dev = nil
}

type renderTarget SwapChain

func (rt *renderTarget) Size() image.Point { return rt.size }

// DepthStencil is a depth buffer.
type DepthStencil struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
	size image.Point
}

func (ds *DepthStencil) Size() image.Point { return ds.size }

func (ds *DepthStencil) Release() {
	if ds.view != nil {
		ds.view.Release()
		ds.view = nil
	}
	if ds.tex != nil {
		ds.tex.Release()
		ds.tex = nil
	}
}

// Buffer is an immutable buffer.
type Buffer struct {
	buf   *wgpu.Buffer
	usage gpu.BufferUsage
	n     int
}

func (b *Buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *Buffer) Len() int               { return b.n }

func (b *Buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

// Texture is a sampled texture.
type Texture struct {
	tex    *wgpu.Texture
	view   *View
	size   image.Point
	levels int
}

func (tx *Texture) Size() image.Point             { return tx.size }
func (tx *Texture) MipLevels() int                { return tx.levels }
func (tx *Texture) View() gpu.ShaderResourceView { return tx.view }

func (tx *Texture) Release() {
	if tx.view != nil && tx.view.view != nil {
		tx.view.view.Release()
		tx.view.view = nil
	}
	if tx.tex != nil {
		tx.tex.Release()
		tx.tex = nil
	}
}

// View is the shader view of a [Texture].
type View struct {
	view *wgpu.TextureView
	size image.Point
}

func (v *View) ViewSize() image.Point { return v.size }
