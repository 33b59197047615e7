// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj loads triangle geometry from Wavefront OBJ files
// (*.obj). Only positions, texture coordinates, normals and faces
// are read; materials, groups and smoothing are ignored. Faces with
// more than three vertices are split into a triangle fan.
//
// OBJ files are right-handed with counter-clockwise front faces. The
// loader converts to left-handed coordinates with clockwise front
// faces by negating z and reversing the winding, and flips the v
// texture coordinate so that v runs down the image.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/meshview/base/errors"
	"cogentcore.org/meshview/math32"
	"cogentcore.org/meshview/mesh"
)

// Load reads the OBJ file at path. It implements [mesh.LoadFunc].
func Load(path string, calculateTangents bool) (*mesh.Geometry[mesh.Vertex], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Decode(f, calculateTangents)
	if err != nil {
		return nil, errors.Wrapf(err, "obj.Load %s", path)
	}
	return g, nil
}

var _ mesh.LoadFunc = Load

// Decode reads OBJ data from r, deriving per-vertex tangents from the
// texture coordinates when calculateTangents is set.
func Decode(r io.Reader, calculateTangents bool) (*mesh.Geometry[mesh.Vertex], error) {
	dec := &decoder{corners: map[corner]uint32{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		dec.line++
		if err := dec.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if calculateTangents {
		dec.calculateTangents()
	}
	dec.toLeftHanded()
	return mesh.NewGeometry(dec.vertices, dec.indices), nil
}

// corner is the position, texture and normal index of one face
// vertex; -1 marks an absent index.
type corner struct {
	v, vt, vn int
}

type decoder struct {
	positions []math32.Vector3
	normals   []math32.Vector3
	uvs       []math32.Vector2

	vertices []mesh.Vertex
	indices  []uint32

	// corners maps each distinct face corner to its vertex index.
	corners map[corner]uint32

	line int
}

func (dec *decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.positions = append(dec.positions, math32.Vector3FromSlice(v))
	case "vn":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.normals = append(dec.normals, math32.Vector3FromSlice(v))
	case "vt":
		v, err := dec.parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		dec.uvs = append(dec.uvs, math32.Vec2(v[0], 1-v[1]))
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

// parseFloats parses the first n fields as floats.
func (dec *decoder) parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("need %d values, have %d", n, len(fields)))
	}
	vals := make([]float32, n)
	for i, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, dec.formatError(err.Error())
		}
		vals[i] = float32(val)
	}
	return vals, nil
}

// parseFace parses a face line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face with less than 3 vertices")
	}
	idx := make([]uint32, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		var c corner
		var err error
		if c.v, err = dec.parseIndex(parts[0], len(dec.positions)); err != nil {
			return err
		}
		c.vt, c.vn = -1, -1
		if len(parts) > 1 && parts[1] != "" {
			if c.vt, err = dec.parseIndex(parts[1], len(dec.uvs)); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.vn, err = dec.parseIndex(parts[2], len(dec.normals)); err != nil {
				return err
			}
		}
		idx[i] = dec.vertex(c)
	}
	for i := 1; i+1 < len(idx); i++ {
		dec.indices = append(dec.indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// parseIndex parses a 1-based index, or a negative index relative to
// the end, into a 0-based index into a list of length n.
func (dec *decoder) parseIndex(s string, n int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	switch {
	case val > 0:
		val--
	case val < 0:
		val += n
	default:
		return 0, dec.formatError("index value equal to 0")
	}
	if val < 0 || val >= n {
		return 0, dec.formatError(fmt.Sprintf("index %s out of range of %d", s, n))
	}
	return val, nil
}

// vertex returns the vertex index for the face corner, adding the
// vertex if it is new.
func (dec *decoder) vertex(c corner) uint32 {
	if ix, ok := dec.corners[c]; ok {
		return ix
	}
	v := mesh.Vertex{Pos: dec.positions[c.v]}
	if c.vt >= 0 {
		v.UV = dec.uvs[c.vt]
	}
	if c.vn >= 0 {
		v.Normal = dec.normals[c.vn]
	}
	ix := uint32(len(dec.vertices))
	dec.vertices = append(dec.vertices, v)
	dec.corners[c] = ix
	return ix
}

// calculateTangents accumulates the tangent of every triangle onto
// its vertices, then makes each tangent a unit vector orthogonal to
// the vertex normal.
func (dec *decoder) calculateTangents() {
	vs := dec.vertices
	for i := 0; i+2 < len(dec.indices); i += 3 {
		i0, i1, i2 := dec.indices[i], dec.indices[i+1], dec.indices[i+2]
		v0, v1, v2 := vs[i0], vs[i1], vs[i2]
		edge0 := v1.Pos.Sub(v0.Pos)
		edge1 := v2.Pos.Sub(v0.Pos)
		diffX := math32.Vec2(v1.UV.X-v0.UV.X, v2.UV.X-v0.UV.X)
		diffY := math32.Vec2(v1.UV.Y-v0.UV.Y, v2.UV.Y-v0.UV.Y)
		cr := diffX.Cross(diffY)
		if cr == 0 {
			continue
		}
		r := 1 / cr
		tangent := edge0.MulScalar(diffY.Y).Sub(edge1.MulScalar(diffY.X)).MulScalar(r)
		vs[i0].Tangent.SetAdd(tangent)
		vs[i1].Tangent.SetAdd(tangent)
		vs[i2].Tangent.SetAdd(tangent)
	}
	for i := range vs {
		vs[i].Tangent = vs[i].Tangent.Reject(vs[i].Normal).Normal()
	}
}

// toLeftHanded negates z and reverses the triangle winding.
func (dec *decoder) toLeftHanded() {
	for i := range dec.vertices {
		v := &dec.vertices[i]
		v.Pos.Z = -v.Pos.Z
		v.Normal.Z = -v.Normal.Z
		v.Tangent.Z = -v.Tangent.Z
	}
	for i := 0; i+2 < len(dec.indices); i += 3 {
		dec.indices[i+1], dec.indices[i+2] = dec.indices[i+2], dec.indices[i+1]
	}
}

func (dec *decoder) formatError(msg string) error {
	return fmt.Errorf("obj: %s in line %d", msg, dec.line)
}
