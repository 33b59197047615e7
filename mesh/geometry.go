// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// Geometry is indexed triangle-list geometry: vertices and 32-bit
// indices into them, three per triangle.
type Geometry[V VertexType] struct {
	Vertices []V
	Indices  []uint32
}

// NewGeometry returns geometry with the given vertices and indices.
func NewGeometry[V VertexType](vertices []V, indices []uint32) *Geometry[V] {
	return &Geometry[V]{Vertices: vertices, Indices: indices}
}

// Empty returns whether there is nothing to draw.
func (g *Geometry[V]) Empty() bool {
	return g == nil || len(g.Vertices) == 0 || len(g.Indices) == 0
}

// Validate checks that the indices form whole triangles and are in range.
func (g *Geometry[V]) Validate() error {
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("mesh.Geometry: %d indices is not a whole number of triangles", len(g.Indices))
	}
	n := uint32(len(g.Vertices))
	for i, ix := range g.Indices {
		if ix >= n {
			return fmt.Errorf("mesh.Geometry: index %d is %d, out of range of %d vertices", i, ix, n)
		}
	}
	return nil
}

// Convert returns geometry with the same indices and each vertex
// converted by fn.
func Convert[V, W VertexType](g *Geometry[V], fn func(V) W) *Geometry[W] {
	if g == nil {
		return &Geometry[W]{}
	}
	vs := make([]W, len(g.Vertices))
	for i, v := range g.Vertices {
		vs[i] = fn(v)
	}
	return NewGeometry(vs, g.Indices)
}

// LoadFunc loads geometry from a model file, deriving tangents when
// calculateTangents is set.
type LoadFunc func(path string, calculateTangents bool) (*Geometry[Vertex], error)
