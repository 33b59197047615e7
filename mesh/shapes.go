// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "cogentcore.org/meshview/math32"

// Front faces wind clockwise as seen from outside, in left-handed
// coordinates.

// Quad returns a square of the given half size in the XY plane,
// facing -Z, with texture coordinates, normals and tangents.
func Quad(size float32) *Geometry[Vertex] {
	n := math32.Vec3(0, 0, -1)
	tn := math32.Vec3(1, 0, 0)
	return NewGeometry([]Vertex{
		{Pos: math32.Vec3(-size, size, 0), UV: math32.Vec2(0, 0), Normal: n, Tangent: tn},
		{Pos: math32.Vec3(size, size, 0), UV: math32.Vec2(1, 0), Normal: n, Tangent: tn},
		{Pos: math32.Vec3(size, -size, 0), UV: math32.Vec2(1, 1), Normal: n, Tangent: tn},
		{Pos: math32.Vec3(-size, -size, 0), UV: math32.Vec2(0, 1), Normal: n, Tangent: tn},
	}, []uint32{0, 1, 2, 0, 2, 3})
}

// TexQuad returns [Quad] with only positions and texture coordinates.
func TexQuad(size float32) *Geometry[VertexPosTex] {
	return Convert(Quad(size), func(v Vertex) VertexPosTex {
		return VertexPosTex{Pos: v.Pos, UV: v.UV}
	})
}

// ColorCube returns a cube of the given half size centered on the
// origin, with each corner colored by its position.
func ColorCube(size float32) *Geometry[VertexPosCol] {
	vs := make([]VertexPosCol, 8)
	for i := range vs {
		c := math32.Vec3(float32(i&1), float32(i>>1&1), float32(i>>2&1))
		vs[i] = VertexPosCol{Pos: c.MulScalar(2 * size).Sub(math32.Vector3Scalar(size)), Color: c}
	}
	return NewGeometry(vs, []uint32{
		2, 3, 1, 2, 1, 0, // -z
		7, 6, 4, 7, 4, 5, // +z
		3, 7, 5, 3, 5, 1, // +x
		6, 2, 0, 6, 0, 4, // -x
		6, 7, 3, 6, 3, 2, // +y
		5, 4, 0, 5, 0, 1, // -y
	})
}
