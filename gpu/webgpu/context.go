// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/meshview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Context is the WebGPU immediate context. Clears are deferred to
// the load operations of the render pass, which begins at the first
// applied pass or at present, and ends when the frame is submitted.
type Context struct {
	dev *Device

	target   *renderTarget
	depth    *DepthStencil
	viewport gpu.Viewport

	clearColor   *gpu.Color
	clearDepth   *float32
	topology     gpu.Topologies
	layout       *gpu.VertexLayout
	vertices     *Buffer
	vertexSlot   int
	vertexOffset uint32
	indices      *Buffer
	indexFormat  gpu.Types
	indexOffset  uint32

	// applied is the pass bound by the last Apply.
	applied *Pass

	frame   *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

func (c *Context) SetRenderTargets(rt gpu.RenderTarget, ds gpu.DepthStencil) {
	c.endPass()
	c.target, _ = rt.(*renderTarget)
	c.depth, _ = ds.(*DepthStencil)
}

func (c *Context) SetViewport(vp gpu.Viewport) {
	c.viewport = vp
	if c.pass != nil {
		c.pass.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
	}
}

func (c *Context) ClearRenderTarget(rt gpu.RenderTarget, col gpu.Color) {
	c.endPass()
	c.clearColor = &col
}

func (c *Context) ClearDepthStencil(ds gpu.DepthStencil, flags gpu.ClearFlags, depth float32, stencil uint8) {
	if flags&gpu.ClearDepth == 0 {
		return
	}
	c.endPass()
	c.clearDepth = &depth
}

func (c *Context) SetPrimitiveTopology(tp gpu.Topologies) { c.topology = tp }

func (c *Context) SetInputLayout(layout *gpu.VertexLayout) { c.layout = layout }

func (c *Context) SetVertexBuffer(slot int, buf gpu.Buffer, stride, offset uint32) {
	c.vertices, _ = buf.(*Buffer)
	c.vertexSlot = slot
	c.vertexOffset = offset
}

func (c *Context) SetIndexBuffer(buf gpu.Buffer, format gpu.Types, offset uint32) {
	c.indices, _ = buf.(*Buffer)
	c.indexFormat = format
	c.indexOffset = offset
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	if c.applied == nil || c.pass == nil {
		slog.Error("webgpu.DrawIndexed: no pass applied")
		return
	}
	if c.vertices == nil || c.indices == nil {
		slog.Error("webgpu.DrawIndexed: no vertex or index buffer")
		return
	}
	c.pass.SetVertexBuffer(uint32(c.vertexSlot), c.vertices.buf, uint64(c.vertexOffset), wgpu.WholeSize)
	c.pass.SetIndexBuffer(c.indices.buf, indexFormat(c.indexFormat), uint64(c.indexOffset), wgpu.WholeSize)
	c.pass.DrawIndexed(indexCount, 1, startIndex, baseVertex, 0)
}

// beginPass acquires the frame and begins the render pass if needed,
// with the pending clears as its load operations.
func (c *Context) beginPass() error {
	if c.pass != nil {
		return nil
	}
	if c.target == nil {
		return fmt.Errorf("webgpu: no render target set")
	}
	if c.frame == nil {
		tex, err := c.dev.surface.GetCurrentTexture()
		if err != nil {
			return fmt.Errorf("webgpu: acquire frame: %w", err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return fmt.Errorf("webgpu: frame view: %w", err)
		}
		c.frame, c.view = tex, view
	}
	if c.encoder == nil {
		enc, err := c.dev.device.CreateCommandEncoder(nil)
		if err != nil {
			return fmt.Errorf("webgpu: command encoder: %w", err)
		}
		c.encoder = enc
	}
	ca := wgpu.RenderPassColorAttachment{
		View:    c.view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if c.clearColor != nil {
		cc := c.clearColor
		ca.LoadOp = wgpu.LoadOpClear
		ca.ClearValue = wgpu.Color{R: float64(cc.R), G: float64(cc.G), B: float64(cc.B), A: float64(cc.A)}
	}
	rpd := &wgpu.RenderPassDescriptor{
		Label:            "frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
	}
	if c.depth != nil {
		da := &wgpu.RenderPassDepthStencilAttachment{
			View:         c.depth.view,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		}
		if c.clearDepth != nil {
			da.DepthLoadOp = wgpu.LoadOpClear
			da.DepthClearValue = *c.clearDepth
		}
		rpd.DepthStencilAttachment = da
	}
	c.clearColor, c.clearDepth = nil, nil
	c.pass = c.encoder.BeginRenderPass(rpd)
	vp := c.viewport
	if vp.Width > 0 && vp.Height > 0 {
		c.pass.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
	}
	return nil
}

func (c *Context) endPass() {
	if c.pass == nil {
		return
	}
	c.pass.End()
	c.pass.Release()
	c.pass = nil
	c.applied = nil
}

// submit ends the pass and submits the recorded commands.
func (c *Context) submit() error {
	c.endPass()
	if c.encoder == nil {
		return nil
	}
	enc := c.encoder
	c.encoder = nil
	defer enc.Release()
	cmd, err := enc.Finish(nil)
	if err != nil {
		return fmt.Errorf("webgpu: finish commands: %w", err)
	}
	c.dev.queue.Submit(cmd)
	cmd.Release()
	return nil
}

// present runs any pending clears, submits the frame and presents it.
func (c *Context) present() error {
	if err := c.beginPass(); err != nil {
		c.dropFrame()
		return err
	}
	if err := c.submit(); err != nil {
		c.dropFrame()
		return err
	}
	c.dev.surface.Present()
	c.releaseFrame()
	return nil
}

// dropFrame discards recorded commands and the acquired frame.
func (c *Context) dropFrame() {
	if c.pass != nil {
		c.pass.End()
		c.pass.Release()
		c.pass = nil
	}
	c.applied = nil
	if c.encoder != nil {
		c.encoder.Release()
		c.encoder = nil
	}
	c.releaseFrame()
}

func (c *Context) releaseFrame() {
	if c.view != nil {
		c.view.Release()
		c.view = nil
	}
	if c.frame != nil {
		c.frame.Release()
		c.frame = nil
	}
}

// ClearState discards any unsubmitted work and unbinds everything.
func (c *Context) ClearState() {
	c.dropFrame()
	c.target, c.depth = nil, nil
	c.viewport = gpu.Viewport{}
	c.clearColor, c.clearDepth = nil, nil
	c.topology = gpu.TriangleList
	c.layout = nil
	c.vertices, c.indices = nil, nil
}

// Flush submits recorded work without presenting.
func (c *Context) Flush() {
	if err := c.submit(); err != nil {
		slog.Error("webgpu.Flush", "error", err)
	}
}

func (c *Context) Release() {
	c.dropFrame()
}
