// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a [gpu.Backend] that records every
// context call instead of rendering, with failure injection and
// tracking of live resources, for testing code built on package gpu.
package gputest

import (
	"fmt"
	"image"
	"slices"

	"cogentcore.org/meshview/gpu"
)

// Call is one recorded operation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Surface is a fixed-size [gpu.Surface].
type Surface struct {
	Sz image.Point
}

func (s *Surface) Size() image.Point { return s.Sz }

// Backend is a recording [gpu.Backend]. Set any of the Fail fields
// to make the corresponding creation call return that error.
type Backend struct {
	FailDevice       error
	FailSwapChain    error
	FailDepthStencil error
	FailBuffer       error
	FailTexture      error
	FailEffect       error

	// Calls are all operations recorded, in order.
	Calls []Call

	// Live counts unreleased resources by kind.
	Live map[string]int

	// Released lists resource labels in release order.
	Released []string

	// DoubleReleases counts resources released more than once.
	DoubleReleases int
}

// NewBackend returns a new recording backend.
func NewBackend() *Backend {
	return &Backend{Live: map[string]int{}}
}

func (b *Backend) record(op string, args ...any) {
	b.Calls = append(b.Calls, Call{Op: op, Args: args})
}

// Ops returns the recorded operation names, in order.
func (b *Backend) Ops() []string {
	ops := make([]string, len(b.Calls))
	for i, c := range b.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns the number of recorded calls of the given operation.
func (b *Backend) Count(op string) int {
	n := 0
	for _, c := range b.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the recorded calls of the given operation.
func (b *Backend) Find(op string) []Call {
	var cs []Call
	for _, c := range b.Calls {
		if c.Op == op {
			cs = append(cs, c)
		}
	}
	return cs
}

// Reset clears the recorded calls, keeping resource tracking.
func (b *Backend) Reset() {
	b.Calls = nil
}

// LiveTotal returns the number of unreleased resources of all kinds.
func (b *Backend) LiveTotal() int {
	n := 0
	for _, c := range b.Live {
		n += c
	}
	return n
}

// resource is embedded in every fake resource for tracking.
type resource struct {
	b        *Backend
	kind     string
	label    string
	released bool
}

func (b *Backend) newResource(kind, label string) resource {
	if b.Live == nil {
		b.Live = map[string]int{}
	}
	b.Live[kind]++
	return resource{b: b, kind: kind, label: label}
}

func (r *resource) Release() {
	if r.released {
		r.b.DoubleReleases++
		return
	}
	r.released = true
	r.b.Live[r.kind]--
	r.b.Released = append(r.b.Released, r.label)
}

// IsReleased reports whether the resource has been released.
func (r *resource) IsReleased() bool { return r.released }

func (b *Backend) CreateDevice(surface gpu.Surface) (gpu.Device, gpu.Context, error) {
	b.record("CreateDevice", surface.Size())
	if b.FailDevice != nil {
		return nil, nil, b.FailDevice
	}
	d := &Device{resource: b.newResource("device", "device")}
	c := &Context{resource: b.newResource("context", "context")}
	return d, c, nil
}

// Device is the fake [gpu.Device].
type Device struct {
	resource
}

func (d *Device) CreateSwapChain(surface gpu.Surface, desc gpu.SwapChainDesc) (gpu.SwapChain, error) {
	d.b.record("CreateSwapChain", desc.Size, desc.VSync)
	if d.b.FailSwapChain != nil {
		return nil, d.b.FailSwapChain
	}
	return &SwapChain{resource: d.b.newResource("swapchain", "swapchain"), target: &RenderTarget{Sz: desc.Size}}, nil
}

func (d *Device) CreateDepthStencil(size image.Point) (gpu.DepthStencil, error) {
	d.b.record("CreateDepthStencil", size)
	if d.b.FailDepthStencil != nil {
		return nil, d.b.FailDepthStencil
	}
	return &DepthStencil{resource: d.b.newResource("depthstencil", "depthstencil"), Sz: size}, nil
}

func (d *Device) CreateBuffer(desc gpu.BufferDesc, data []byte) (gpu.Buffer, error) {
	d.b.record("CreateBuffer", desc.Label, desc.Usage, len(data))
	if d.b.FailBuffer != nil {
		return nil, d.b.FailBuffer
	}
	return &Buffer{resource: d.b.newResource("buffer", desc.Label), Desc: desc, Data: slices.Clone(data)}, nil
}

func (d *Device) CreateTexture(desc gpu.TextureDesc, mips [][]byte) (gpu.Texture, error) {
	d.b.record("CreateTexture", desc.Label, desc.Size, len(mips))
	if d.b.FailTexture != nil {
		return nil, d.b.FailTexture
	}
	if len(mips) == 0 || len(mips[0]) != 4*desc.Size.X*desc.Size.Y {
		return nil, fmt.Errorf("gputest.CreateTexture %s: level 0 data does not match size %v", desc.Label, desc.Size)
	}
	tx := &Texture{resource: d.b.newResource("texture", desc.Label), Desc: desc, Levels: len(mips)}
	tx.view = &View{Texture: tx}
	return tx, nil
}

func (d *Device) CompileEffect(desc *gpu.EffectDesc, source []byte) (gpu.Effect, error) {
	d.b.record("CompileEffect", desc.Name)
	if d.b.FailEffect != nil {
		return nil, d.b.FailEffect
	}
	return newEffect(d.b, desc), nil
}

// SwapChain is the fake [gpu.SwapChain].
type SwapChain struct {
	resource
	target *RenderTarget
}

func (sc *SwapChain) RenderTarget() gpu.RenderTarget { return sc.target }

func (sc *SwapChain) Resize(size image.Point) error {
	sc.b.record("Resize", size)
	sc.target.Sz = size
	return nil
}

func (sc *SwapChain) Present(syncInterval int) error {
	sc.b.record("Present", syncInterval)
	return nil
}

// RenderTarget is the fake [gpu.RenderTarget].
type RenderTarget struct {
	Sz image.Point
}

func (rt *RenderTarget) Size() image.Point { return rt.Sz }

// DepthStencil is the fake [gpu.DepthStencil].
type DepthStencil struct {
	resource
	Sz image.Point
}

func (ds *DepthStencil) Size() image.Point { return ds.Sz }

// Buffer is the fake [gpu.Buffer], keeping a copy of its data.
type Buffer struct {
	resource
	Desc gpu.BufferDesc
	Data []byte
}

func (bf *Buffer) Usage() gpu.BufferUsage { return bf.Desc.Usage }
func (bf *Buffer) Len() int               { return len(bf.Data) }

// Texture is the fake [gpu.Texture].
type Texture struct {
	resource
	Desc   gpu.TextureDesc
	Levels int
	view   *View
}

func (tx *Texture) Size() image.Point           { return tx.Desc.Size }
func (tx *Texture) MipLevels() int              { return tx.Levels }
func (tx *Texture) View() gpu.ShaderResourceView { return tx.view }

// View is the fake [gpu.ShaderResourceView].
type View struct {
	Texture *Texture
}

func (v *View) ViewSize() image.Point { return v.Texture.Desc.Size }
