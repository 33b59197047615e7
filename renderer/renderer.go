// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer drives the frame: it owns the GPU device,
// swap chain, depth buffer, camera and meshes, updates them from
// input every frame, and draws and presents them.
package renderer

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/meshview/camera"
	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
	"cogentcore.org/meshview/mesh"
	"cogentcore.org/meshview/obj"
)

// Renderer is the frame orchestrator. It is not safe for concurrent
// use: all methods must be called on the frame thread.
type Renderer struct {
	// Camera is the scene camera.
	Camera *camera.Camera

	// Loader loads model files; defaults to [obj.Load].
	Loader mesh.LoadFunc

	surface gpu.Surface
	size    image.Point

	device    gpu.Device
	context   gpu.Context
	swapChain gpu.SwapChain
	depth     gpu.DepthStencil

	initialized bool

	meshes []*mesh.Mesh

	rotating          bool
	fast              bool
	rotationSpeed     float32
	fastRotationSpeed float32

	clearColor gpu.Color
	vsync      bool
}

// New returns a renderer presenting to surface. A failure creating
// any GPU resource is logged, everything created so far is released,
// and the renderer stays uninitialized so that [Renderer.Render]
// does nothing.
func New(backend gpu.Backend, surface gpu.Surface, cfg *config.Config) *Renderer {
	r := &Renderer{surface: surface, size: surface.Size(), Loader: obj.Load}
	cc := &cfg.Camera
	r.Camera = camera.New(cc.OriginVector(), cc.FovAngle)
	r.Camera.Near, r.Camera.Far = cc.Near, cc.Far
	r.Camera.Initialize(cc.FovAngle, cc.OriginVector(), aspect(r.size))
	r.rotating = cfg.Render.Rotate
	r.ApplyConfig(cfg)

	if err := r.initialize(backend); err != nil {
		slog.Error("renderer.New: GPU initialization failed", "error", err)
		r.releaseDevice()
		return r
	}
	r.initialized = true
	slog.Info("renderer: GPU initialized and ready", "size", r.size)
	return r
}

func aspect(size image.Point) float32 {
	if size.Y <= 0 {
		return 1
	}
	return float32(size.X) / float32(size.Y)
}

func (r *Renderer) initialize(backend gpu.Backend) error {
	var err error
	r.device, r.context, err = backend.CreateDevice(r.surface)
	if err != nil {
		return fmt.Errorf("%w: %w", gpu.ErrDeviceCreation, err)
	}
	r.swapChain, err = r.device.CreateSwapChain(r.surface, gpu.SwapChainDesc{Size: r.size, VSync: r.vsync})
	if err != nil {
		return fmt.Errorf("%w: swap chain: %w", gpu.ErrDeviceCreation, err)
	}
	if err := r.createDepth(); err != nil {
		return err
	}
	return nil
}

// createDepth creates the depth buffer at the current size and binds
// the render targets and viewport.
func (r *Renderer) createDepth() error {
	ds, err := r.device.CreateDepthStencil(r.size)
	if err != nil {
		return fmt.Errorf("%w: depth stencil: %w", gpu.ErrDeviceCreation, err)
	}
	r.depth = ds
	r.context.SetRenderTargets(r.swapChain.RenderTarget(), r.depth)
	r.context.SetViewport(gpu.FullViewport(r.size))
	return nil
}

// Initialized returns whether the GPU resources were created.
func (r *Renderer) Initialized() bool { return r.initialized }

// Device returns the GPU device, or nil if uninitialized.
func (r *Renderer) Device() gpu.Device { return r.device }

// Meshes returns the meshes in draw order.
func (r *Renderer) Meshes() []*mesh.Mesh { return r.meshes }

// AddMesh adds a mesh to the end of the draw order. The renderer
// takes ownership of it.
func (r *Renderer) AddMesh(m *mesh.Mesh) {
	r.meshes = append(r.meshes, m)
}

// Rotating returns whether meshes rotate every frame.
func (r *Renderer) Rotating() bool { return r.rotating }

// RotationSpeed returns the current mesh rotation speed in degrees per second.
func (r *Renderer) RotationSpeed() float32 {
	if r.fast {
		return r.fastRotationSpeed
	}
	return r.rotationSpeed
}

// Update advances the camera and meshes by elapsed seconds and
// uploads their matrices.
func (r *Renderer) Update(elapsed float32, st input.State) {
	r.Camera.Update(elapsed, st)
	if r.rotating {
		angle := r.RotationSpeed() * math32.DegToRadFactor * elapsed
		for _, m := range r.meshes {
			m.RotateY(angle)
		}
	}
	for _, m := range r.meshes {
		m.SetMatrix(r.Camera)
		m.SetWorldMatrix()
	}
}

// Render clears the targets, draws every mesh in order and presents.
// It does nothing when the renderer is not initialized.
func (r *Renderer) Render() {
	if !r.initialized {
		return
	}
	r.context.ClearRenderTarget(r.swapChain.RenderTarget(), r.clearColor)
	r.context.ClearDepthStencil(r.depth, gpu.ClearDepth|gpu.ClearStencil, 1, 0)
	for _, m := range r.meshes {
		m.Draw(r.context)
	}
	sync := 0
	if r.vsync {
		sync = 1
	}
	if err := r.swapChain.Present(sync); err != nil {
		slog.Error("renderer.Render: present failed", "error", err)
	}
}

// Resize resizes the swap chain and depth buffer to the surface and
// updates the camera aspect ratio. Empty sizes, as for minimized
// windows, are ignored.
func (r *Renderer) Resize(size image.Point) {
	if !r.initialized || size.X <= 0 || size.Y <= 0 || size == r.size {
		return
	}
	r.size = size
	r.Camera.SetAspectRatio(aspect(size))
	r.depth.Release()
	r.depth = nil
	if err := r.swapChain.Resize(size); err != nil {
		slog.Error("renderer.Resize: swap chain resize failed", "size", size, "error", err)
		r.initialized = false
		return
	}
	if err := r.createDepth(); err != nil {
		slog.Error("renderer.Resize: failed", "size", size, "error", err)
		r.initialized = false
	}
}

// ApplyConfig applies the settings that can change while running:
// clear color, rotation speeds, camera speeds and pitch limit, and
// vertical sync.
func (r *Renderer) ApplyConfig(cfg *config.Config) {
	r.clearColor = cfg.Render.Clear()
	r.rotationSpeed = cfg.Render.RotationSpeed
	r.fastRotationSpeed = cfg.Render.FastRotationSpeed
	r.Camera.MoveSpeed = cfg.Camera.MoveSpeed
	r.Camera.RotateSpeed = cfg.Camera.RotateSpeed
	r.Camera.PitchLimit = math32.DegToRad(cfg.Camera.PitchLimit)
	r.vsync = cfg.Window.VSync
}

// Release releases the meshes in reverse order, then the depth
// buffer, swap chain, context and device. The renderer is
// uninitialized afterwards.
func (r *Renderer) Release() {
	for i := len(r.meshes) - 1; i >= 0; i-- {
		r.meshes[i].Release()
	}
	r.meshes = nil
	r.releaseDevice()
}

func (r *Renderer) releaseDevice() {
	r.initialized = false
	if r.depth != nil {
		r.depth.Release()
		r.depth = nil
	}
	if r.swapChain != nil {
		r.swapChain.Release()
		r.swapChain = nil
	}
	if r.context != nil {
		r.context.ClearState()
		r.context.Flush()
		r.context.Release()
		r.context = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}
