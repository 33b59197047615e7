// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the GPU backend used by the renderer:
// a device that creates immutable buffers, textures, swap chains
// and compiled effects, and an immediate context that records
// pipeline state and indexed draws. Concrete backends live in
// subpackages (webgpu for the real GPU, gputest for tests).
package gpu

import (
	"image"

	"cogentcore.org/meshview/base/errors"
)

var (
	// ErrDeviceCreation is returned when the backend cannot create
	// its device, context, swap chain or depth buffer.
	ErrDeviceCreation = errors.New("gpu: device creation failed")

	// ErrEffectCompile is returned when an effect program fails to compile.
	ErrEffectCompile = errors.New("gpu: effect compilation failed")

	// ErrUnsupported is returned for requests the backend cannot serve.
	ErrUnsupported = errors.New("gpu: unsupported")
)

// Surface is the presentation target a swap chain is created for,
// typically a window.
type Surface interface {
	// Size returns the current size of the drawable area in pixels.
	Size() image.Point
}

// Backend creates the device and immediate context for a surface.
type Backend interface {
	CreateDevice(surface Surface) (Device, Context, error)
}

// Device creates GPU resources. Every resource it returns is
// exclusively owned by the caller and must be released exactly once.
type Device interface {
	Releaser

	// CreateSwapChain creates the swap chain presenting to the surface.
	CreateSwapChain(surface Surface, desc SwapChainDesc) (SwapChain, error)

	// CreateDepthStencil creates a depth-stencil buffer of the given size.
	CreateDepthStencil(size image.Point) (DepthStencil, error)

	// CreateBuffer creates an immutable buffer initialized with data.
	CreateBuffer(desc BufferDesc, data []byte) (Buffer, error)

	// CreateTexture creates an immutable texture with the given mip
	// levels of tightly packed pixel data, level 0 first.
	CreateTexture(desc TextureDesc, mips [][]byte) (Texture, error)

	// CompileEffect compiles the effect program described by desc
	// from the given shader source.
	CompileEffect(desc *EffectDesc, source []byte) (Effect, error)
}

// Context is the immediate context: it holds the current pipeline
// state and executes clears and draws against it, in call order.
type Context interface {
	Releaser

	SetRenderTargets(rt RenderTarget, ds DepthStencil)
	SetViewport(vp Viewport)
	ClearRenderTarget(rt RenderTarget, c Color)
	ClearDepthStencil(ds DepthStencil, flags ClearFlags, depth float32, stencil uint8)

	SetPrimitiveTopology(tp Topologies)
	SetInputLayout(layout *VertexLayout)
	SetVertexBuffer(slot int, buf Buffer, stride, offset uint32)
	SetIndexBuffer(buf Buffer, format Types, offset uint32)
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32)

	// ClearState resets all state to defaults, unbinding everything.
	ClearState()

	// Flush submits any recorded work to the GPU.
	Flush()
}

// SwapChainDesc describes a swap chain.
type SwapChainDesc struct {
	Size image.Point

	// VSync waits for vertical blank when presenting; otherwise
	// presentation is immediate.
	VSync bool
}

// SwapChain presents rendered frames to a surface.
type SwapChain interface {
	Releaser

	// RenderTarget returns the render target view of the back buffer.
	RenderTarget() RenderTarget

	// Resize resizes the back buffers, invalidating the previous
	// render target size.
	Resize(size image.Point) error

	// Present shows the back buffer. A syncInterval of 0 presents
	// immediately without waiting for vertical blank.
	Present(syncInterval int) error
}

// RenderTarget is a color target a context renders into.
type RenderTarget interface {
	Size() image.Point
}

// DepthStencil is a depth-stencil target.
type DepthStencil interface {
	Releaser
	Size() image.Point
}

// Buffer is an immutable device-resident buffer.
type Buffer interface {
	Releaser
	Usage() BufferUsage
	Len() int
}

// Texture is an immutable texture with a shader resource view.
type Texture interface {
	Releaser
	Size() image.Point
	MipLevels() int
	View() ShaderResourceView
}

// ShaderResourceView is the shader-visible view of a texture.
type ShaderResourceView interface {
	ViewSize() image.Point
}

// BufferDesc describes a buffer.
type BufferDesc struct {
	Label string
	Usage BufferUsage
}

// TextureDesc describes a 2D texture.
type TextureDesc struct {
	Label  string
	Size   image.Point
	Format TextureFormats
}

// Viewport is the render area in pixels, with a depth range.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// FullViewport returns the viewport covering the given size with depth [0, 1].
func FullViewport(size image.Point) Viewport {
	return Viewport{Width: float32(size.X), Height: float32(size.Y), MaxDepth: 1}
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// ClearFlags selects which parts of a depth-stencil target to clear.
type ClearFlags int32

const (
	ClearDepth ClearFlags = 1 << iota
	ClearStencil
)
