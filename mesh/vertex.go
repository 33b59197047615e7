// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
)

// VertexPosCol is a vertex with a position and a color, for [effect.Unlit].
type VertexPosCol struct {
	Pos   math32.Vector3
	Color math32.Vector3
}

// VertexPosTex is a vertex with a position and texture coordinates,
// for [effect.DiffuseOnly].
type VertexPosTex struct {
	Pos math32.Vector3
	UV  math32.Vector2
}

// Vertex is a fully attributed vertex with position, texture
// coordinates, normal and tangent, for [effect.FullPBR].
type Vertex struct {
	Pos     math32.Vector3
	UV      math32.Vector2
	Normal  math32.Vector3
	Tangent math32.Vector3
}

var (
	posColLayout = gpu.VertexLayout{Stride: 24, Attributes: []gpu.VertexAttribute{
		{Name: "POSITION", Type: gpu.Float32Vector3, Offset: 0},
		{Name: "COLOR", Type: gpu.Float32Vector3, Offset: 12},
	}}
	posTexLayout = gpu.VertexLayout{Stride: 20, Attributes: []gpu.VertexAttribute{
		{Name: "POSITION", Type: gpu.Float32Vector3, Offset: 0},
		{Name: "TEXCOORD", Type: gpu.Float32Vector2, Offset: 12},
	}}
	vertexLayout = gpu.VertexLayout{Stride: 44, Attributes: []gpu.VertexAttribute{
		{Name: "POSITION", Type: gpu.Float32Vector3, Offset: 0},
		{Name: "TEXCOORD", Type: gpu.Float32Vector2, Offset: 12},
		{Name: "NORMAL", Type: gpu.Float32Vector3, Offset: 20},
		{Name: "TANGENT", Type: gpu.Float32Vector3, Offset: 32},
	}}
)

func (VertexPosCol) Layout() *gpu.VertexLayout { return &posColLayout }
func (VertexPosTex) Layout() *gpu.VertexLayout { return &posTexLayout }
func (Vertex) Layout() *gpu.VertexLayout       { return &vertexLayout }

// VertexType is the set of vertex types a [Mesh] can be built from.
type VertexType interface {
	VertexPosCol | VertexPosTex | Vertex

	// Layout returns the interleaved layout of the vertex type.
	Layout() *gpu.VertexLayout
}

// LayoutOf returns the layout of vertex type V.
func LayoutOf[V VertexType]() *gpu.VertexLayout {
	var v V
	return v.Layout()
}
