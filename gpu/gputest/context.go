// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import "cogentcore.org/meshview/gpu"

// Context is the fake [gpu.Context]; it records every call and
// keeps the current input assembly state for inspection.
type Context struct {
	resource

	Topology    gpu.Topologies
	Layout      *gpu.VertexLayout
	Vertex      gpu.Buffer
	Stride      uint32
	Index       gpu.Buffer
	IndexFormat gpu.Types
}

func (c *Context) SetRenderTargets(rt gpu.RenderTarget, ds gpu.DepthStencil) {
	c.b.record("SetRenderTargets", rt, ds)
}

func (c *Context) SetViewport(vp gpu.Viewport) {
	c.b.record("SetViewport", vp)
}

func (c *Context) ClearRenderTarget(rt gpu.RenderTarget, col gpu.Color) {
	c.b.record("ClearRenderTarget", col)
}

func (c *Context) ClearDepthStencil(ds gpu.DepthStencil, flags gpu.ClearFlags, depth float32, stencil uint8) {
	c.b.record("ClearDepthStencil", flags, depth, stencil)
}

func (c *Context) SetPrimitiveTopology(tp gpu.Topologies) {
	c.Topology = tp
	c.b.record("SetPrimitiveTopology", tp)
}

func (c *Context) SetInputLayout(layout *gpu.VertexLayout) {
	c.Layout = layout
	c.b.record("SetInputLayout", layout.Stride)
}

func (c *Context) SetVertexBuffer(slot int, buf gpu.Buffer, stride, offset uint32) {
	c.Vertex, c.Stride = buf, stride
	c.b.record("SetVertexBuffer", slot, stride, offset)
}

func (c *Context) SetIndexBuffer(buf gpu.Buffer, format gpu.Types, offset uint32) {
	c.Index, c.IndexFormat = buf, format
	c.b.record("SetIndexBuffer", format, offset)
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.b.record("DrawIndexed", indexCount, startIndex, baseVertex, c.Topology)
}

func (c *Context) ClearState() {
	c.Topology, c.Layout, c.Vertex, c.Index, c.Stride = gpu.TriangleList, nil, nil, nil, 0
	c.b.record("ClearState")
}

func (c *Context) Flush() {
	c.b.record("Flush")
}
