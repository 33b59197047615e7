// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh provides renderable meshes: geometry uploaded into
// immutable vertex and index buffers, an effect binding that shades
// it, and a transform placing it in the world.
package mesh

import (
	"fmt"
	"log/slog"

	"cogentcore.org/meshview/camera"
	"cogentcore.org/meshview/effect"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
)

// Mesh is a renderable object. It exclusively owns its buffers, its
// binding and any resources given to [Mesh.Own], and releases them
// in reverse order of acquisition.
type Mesh struct {
	// Name identifies the mesh in logs.
	Name string

	binding effect.Binding
	layout  *gpu.VertexLayout

	vertices, indices gpu.Buffer
	numIndices        uint32

	translation, rotation, scale math32.Matrix4

	res gpu.Resources
}

// New returns a mesh drawing geom with the given binding. Empty
// geometry, or a failure creating either buffer, is logged and leaves
// the mesh without buffers; it then draws nothing.
func New[V VertexType](dev gpu.Device, binding effect.Binding, name string, geom *Geometry[V]) *Mesh {
	m := &Mesh{Name: name, binding: binding, layout: LayoutOf[V]()}
	m.translation = math32.Identity4()
	m.rotation = math32.Identity4()
	m.scale = math32.Identity4()
	if binding != nil {
		m.res.Add(binding)
	}
	if geom.Empty() {
		slog.Error("mesh.New: no geometry to draw", "mesh", name)
		return m
	}
	if err := geom.Validate(); err != nil {
		slog.Error("mesh.New: invalid geometry", "mesh", name, "error", err)
		return m
	}
	vb, err := dev.CreateBuffer(gpu.BufferDesc{Label: name + " vertices", Usage: gpu.VertexBuffer}, gpu.ToBytes(geom.Vertices))
	if err != nil {
		slog.Error("mesh.New: failed to create vertex buffer", "mesh", name, "error", err)
		return m
	}
	ib, err := dev.CreateBuffer(gpu.BufferDesc{Label: name + " indices", Usage: gpu.IndexBuffer}, gpu.ToBytes(geom.Indices))
	if err != nil {
		slog.Error("mesh.New: failed to create index buffer", "mesh", name, "error", err)
		vb.Release()
		return m
	}
	m.vertices, m.indices = vb, ib
	m.numIndices = uint32(len(geom.Indices))
	m.res.Add(vb, ib)
	return m
}

// Load returns a mesh of the model at path, loaded with the given
// loader. Tangents are derived when the binding uses normal maps.
// A load failure is logged and gives a mesh that draws nothing.
func Load(dev gpu.Device, binding effect.Binding, path string, loader LoadFunc) *Mesh {
	tangents := binding != nil && binding.Kind() == effect.FullPBRStackKind
	geom, err := loader(path, tangents)
	if err != nil {
		slog.Error("mesh.Load: failed to load model", "path", path, "error", err)
		geom = &Geometry[Vertex]{}
	}
	return NewModel(dev, binding, path, geom)
}

// NewModel returns a mesh of full model geometry reduced to the vertex
// type the binding reads: unlit bindings get positions colored by
// normal direction, diffuse-only bindings get positions and texture
// coordinates, and all other bindings get the full vertex.
func NewModel(dev gpu.Device, binding effect.Binding, name string, geom *Geometry[Vertex]) *Mesh {
	if binding == nil {
		return New(dev, binding, name, geom)
	}
	switch binding.Kind() {
	case effect.UnlitKind:
		return New(dev, binding, name, Convert(geom, func(v Vertex) VertexPosCol {
			return VertexPosCol{Pos: v.Pos, Color: v.Normal.MulScalar(0.5).Add(math32.Vector3Scalar(0.5))}
		}))
	case effect.DiffuseOnlyKind:
		return New(dev, binding, name, Convert(geom, func(v Vertex) VertexPosTex {
			return VertexPosTex{Pos: v.Pos, UV: v.UV}
		}))
	}
	return New(dev, binding, name, geom)
}

// Own transfers ownership of the given resources, such as textures
// bound to the binding, to the mesh.
func (m *Mesh) Own(r ...gpu.Releaser) {
	m.res.Add(r...)
}

// Binding returns the effect binding.
func (m *Mesh) Binding() effect.Binding { return m.binding }

// HasBuffers returns whether the geometry was uploaded.
func (m *Mesh) HasBuffers() bool { return m.vertices != nil }

// NumIndices returns the number of indices drawn.
func (m *Mesh) NumIndices() uint32 { return m.numIndices }

// Layout returns the vertex layout.
func (m *Mesh) Layout() *gpu.VertexLayout { return m.layout }

// RotateX rotates the mesh about the X axis by angle radians,
// applied after the current rotation.
func (m *Mesh) RotateX(angle float32) {
	r := math32.RotationX4(angle)
	m.rotation = r.Mul(&m.rotation)
}

// RotateY rotates the mesh about the Y axis by angle radians,
// applied after the current rotation.
func (m *Mesh) RotateY(angle float32) {
	r := math32.RotationY4(angle)
	m.rotation = r.Mul(&m.rotation)
}

// RotateZ rotates the mesh about the Z axis by angle radians,
// applied after the current rotation.
func (m *Mesh) RotateZ(angle float32) {
	r := math32.RotationZ4(angle)
	m.rotation = r.Mul(&m.rotation)
}

// SetTranslation sets the world position.
func (m *Mesh) SetTranslation(v math32.Vector3) {
	m.translation = math32.Translation4(v)
}

// SetScale sets the scale along each axis.
func (m *Mesh) SetScale(v math32.Vector3) {
	m.scale = math32.Scale4(v)
}

// Rotation returns the accumulated rotation matrix.
func (m *Mesh) Rotation() math32.Matrix4 { return m.rotation }

// World returns the world matrix, scale * (rotation * translation).
func (m *Mesh) World() math32.Matrix4 {
	rt := m.rotation.Mul(&m.translation)
	return m.scale.Mul(&rt)
}

// SetMatrix uploads the world-view-projection matrix for the camera.
func (m *Mesh) SetMatrix(cam *camera.Camera) {
	if m.binding == nil {
		return
	}
	w := m.World()
	vp := cam.ViewProjection()
	wvp := w.Mul(&vp)
	m.binding.SetMatrix(&wvp)
}

// SetWorldMatrix uploads the world matrix, if the binding takes it.
func (m *Mesh) SetWorldMatrix() {
	ws, ok := m.binding.(effect.WorldMatrixSetter)
	if !ok {
		return
	}
	w := m.World()
	ws.SetWorldMatrix(&w)
}

// Draw issues the draw calls for every pass of the active technique.
// Nothing is issued without buffers or a technique.
func (m *Mesh) Draw(ctx gpu.Context) {
	if m.vertices == nil || m.binding == nil {
		return
	}
	tc := m.binding.Technique()
	if tc == nil {
		return
	}
	ctx.SetPrimitiveTopology(gpu.TriangleList)
	ctx.SetInputLayout(m.layout)
	ctx.SetVertexBuffer(0, m.vertices, m.layout.Stride, 0)
	ctx.SetIndexBuffer(m.indices, gpu.Uint32, 0)
	for i := range tc.NumPasses() {
		ps := tc.PassByIndex(i)
		if err := ps.Apply(ctx); err != nil {
			slog.Error("mesh.Draw: failed to apply pass", "mesh", m.Name, "pass", ps.Name(), "error", err)
			continue
		}
		ctx.DrawIndexed(m.numIndices, 0, 0)
	}
}

// Release releases everything the mesh owns, in reverse order of
// acquisition. The mesh draws nothing afterwards.
func (m *Mesh) Release() {
	m.res.Release()
	m.vertices, m.indices, m.binding = nil, nil, nil
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh(%s, %d indices)", m.Name, m.numIndices)
}
