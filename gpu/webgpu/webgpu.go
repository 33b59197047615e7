// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webgpu implements the [gpu.Backend] on WebGPU. Effects are
// WGSL programs whose bindings follow [gpu.EffectDesc]; the immediate
// context batches clears and draws into one render pass per frame,
// submitted on present.
package webgpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/meshview/base/errors"
	"cogentcore.org/meshview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is a [gpu.Surface] that WebGPU can present to.
type Surface interface {
	gpu.Surface

	// SurfaceDescriptor returns the platform descriptor of the surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// Backend creates WebGPU devices.
type Backend struct {
	// PowerPreference selects the adapter.
	PowerPreference wgpu.PowerPreference

	// ForceFallbackAdapter requests a software adapter.
	ForceFallbackAdapter bool
}

// NewBackend returns a backend preferring the high performance adapter.
func NewBackend() *Backend {
	return &Backend{PowerPreference: wgpu.PowerPreferenceHighPerformance}
}

// CreateDevice creates the device and immediate context presenting
// to surface, which must implement [Surface].
func (b *Backend) CreateDevice(surface gpu.Surface) (gpu.Device, gpu.Context, error) {
	ws, ok := surface.(Surface)
	if !ok {
		return nil, nil, fmt.Errorf("webgpu.CreateDevice: %w: surface %T has no WebGPU descriptor", gpu.ErrUnsupported, surface)
	}
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, nil, errors.New("webgpu.CreateDevice: no WebGPU instance")
	}
	d := &Device{instance: inst}
	d.surface = inst.CreateSurface(ws.SurfaceDescriptor())
	if d.surface == nil {
		d.Release()
		return nil, nil, errors.New("webgpu.CreateDevice: could not create surface")
	}
	var err error
	d.adapter, err = inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      b.PowerPreference,
		ForceFallbackAdapter: b.ForceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		d.Release()
		return nil, nil, fmt.Errorf("webgpu.CreateDevice: adapter: %w", err)
	}
	d.device, err = d.adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "meshview"})
	if err != nil {
		d.Release()
		return nil, nil, fmt.Errorf("webgpu.CreateDevice: device: %w", err)
	}
	d.queue = d.device.GetQueue()
	d.ctx = &Context{dev: d}
	slog.Info("webgpu: device ready", "powerPreference", b.PowerPreference)
	return d, d.ctx, nil
}

// vertexFormats maps vertex attribute types to WebGPU formats.
var vertexFormats = map[gpu.Types]wgpu.VertexFormat{
	gpu.Uint32:         wgpu.VertexFormatUint32,
	gpu.Float32:        wgpu.VertexFormatFloat32,
	gpu.Float32Vector2: wgpu.VertexFormatFloat32x2,
	gpu.Float32Vector3: wgpu.VertexFormatFloat32x3,
	gpu.Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// vertexBufferLayout returns the WebGPU layout of vl, with attribute
// i at shader location i.
func vertexBufferLayout(vl *gpu.VertexLayout) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, len(vl.Attributes))
	for i, a := range vl.Attributes {
		f, ok := vertexFormats[a.Type]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("webgpu: %w vertex attribute type %v", gpu.ErrUnsupported, a.Type)
		}
		attrs[i] = wgpu.VertexAttribute{Format: f, Offset: uint64(a.Offset), ShaderLocation: uint32(i)}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(vl.Stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

func indexFormat(tp gpu.Types) wgpu.IndexFormat {
	if tp == gpu.Uint16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

var topologies = map[gpu.Topologies]wgpu.PrimitiveTopology{
	gpu.TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	gpu.TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
	gpu.LineList:      wgpu.PrimitiveTopologyLineList,
	gpu.PointList:     wgpu.PrimitiveTopologyPointList,
}

var cullModes = map[gpu.CullModes]wgpu.CullMode{
	gpu.CullBack:  wgpu.CullModeBack,
	gpu.CullNone:  wgpu.CullModeNone,
	gpu.CullFront: wgpu.CullModeFront,
}

func textureFormat(tf gpu.TextureFormats) wgpu.TextureFormat {
	if tf == gpu.RGBA8Unorm {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}
