// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"errors"
	"image"
	"strings"
	"testing"
	"testing/fstest"

	"cogentcore.org/meshview/camera"
	"cogentcore.org/meshview/effect"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/gpu/gputest"
	"cogentcore.org/meshview/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var effects = fstest.MapFS{
	"unlit.yaml": {Data: []byte(`
name: Unlit
shader: unlit.wgsl
variables:
  - {name: g_WorldViewProjection, kind: matrix}
techniques:
  - name: DefaultTechnique
    passes:
      - {name: P0, vertex: vs_main, fragment: fs_main}
      - {name: P1, vertex: vs_main, fragment: fs_main}
`)},
	"unlit.wgsl": {Data: []byte("// unlit")},
	"diffuse.yaml": {Data: []byte(`
name: Diffuse
shader: diffuse.wgsl
variables:
  - {name: g_WorldViewProjection, kind: matrix}
techniques:
  - name: DefaultTechnique
    passes:
      - {name: P0, vertex: vs_main, fragment: fs_main}
`)},
	"diffuse.wgsl": {Data: []byte("// diffuse")},
	"pbr.yaml": {Data: []byte(`
name: PBR
shader: pbr.wgsl
variables:
  - {name: g_WorldViewProjection, kind: matrix}
  - {name: g_WorldMatrix, kind: matrix}
  - {name: g_UseNormalMap, kind: bool}
techniques:
  - name: DefaultTechnique
    passes: [{name: P0, vertex: vs_main, fragment: fs_main}]
`)},
	"pbr.wgsl": {Data: []byte("// pbr")},
}

func newDevice(t *testing.T) (*gputest.Backend, gpu.Device, *gputest.Context) {
	b := gputest.NewBackend()
	dev, ctx, err := b.CreateDevice(&gputest.Surface{Sz: image.Pt(4, 4)})
	require.NoError(t, err)
	return b, dev, ctx.(*gputest.Context)
}

func TestLayouts(t *testing.T) {
	for _, l := range []*gpu.VertexLayout{LayoutOf[VertexPosCol](), LayoutOf[VertexPosTex](), LayoutOf[Vertex]()} {
		assert.NoError(t, l.Validate())
	}
	assert.Equal(t, uint32(24), LayoutOf[VertexPosCol]().Stride)
	assert.Equal(t, uint32(20), LayoutOf[VertexPosTex]().Stride)
	assert.Equal(t, uint32(44), LayoutOf[Vertex]().Stride)
	assert.Len(t, gpu.ToBytes([]Vertex{{}, {}}), 88)
	assert.Len(t, gpu.ToBytes([]VertexPosTex{{}}), 20)
	assert.Len(t, gpu.ToBytes([]VertexPosCol{{}}), 24)
}

// each triangle's face normal must point away from the inside point
func assertOutwardCW[V VertexType](t *testing.T, g *Geometry[V], inside math32.Vector3, pos func(V) math32.Vector3) {
	t.Helper()
	require.NoError(t, g.Validate())
	for i := 0; i < len(g.Indices); i += 3 {
		p0 := pos(g.Vertices[g.Indices[i]])
		p1 := pos(g.Vertices[g.Indices[i+1]])
		p2 := pos(g.Vertices[g.Indices[i+2]])
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		c := p0.Add(p1).Add(p2).DivScalar(3).Sub(inside)
		assert.Greater(t, n.Dot(c), float32(0), "triangle %d", i/3)
	}
}

func TestShapes(t *testing.T) {
	behind := math32.Vec3(0, 0, 1)
	assertOutwardCW(t, ColorCube(1), math32.Vector3{}, func(v VertexPosCol) math32.Vector3 { return v.Pos })
	assertOutwardCW(t, TexQuad(1), behind, func(v VertexPosTex) math32.Vector3 { return v.Pos })
	assertOutwardCW(t, Quad(2), behind, func(v Vertex) math32.Vector3 { return v.Pos })
	assert.Len(t, ColorCube(1).Indices, 36)
}

func TestGeometry(t *testing.T) {
	var g *Geometry[Vertex]
	assert.True(t, g.Empty())
	assert.True(t, NewGeometry[Vertex](nil, nil).Empty())
	assert.Error(t, NewGeometry([]Vertex{{}}, []uint32{0, 0}).Validate())
	assert.Error(t, NewGeometry([]Vertex{{}}, []uint32{0, 0, 1}).Validate())
	assert.False(t, Quad(1).Empty())
}

func TestDraw(t *testing.T) {
	b, dev, ctx := newDevice(t)
	m := New(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "cube", ColorCube(1))
	require.True(t, m.HasBuffers())
	assert.Equal(t, uint32(36), m.NumIndices())
	vb := b.Find("CreateBuffer")
	require.Len(t, vb, 2)
	assert.Equal(t, []any{"cube vertices", gpu.VertexBuffer, 8 * 24}, vb[0].Args)
	assert.Equal(t, []any{"cube indices", gpu.IndexBuffer, 36 * 4}, vb[1].Args)

	b.Reset()
	m.Draw(ctx)
	assert.Equal(t, []string{"SetPrimitiveTopology", "SetInputLayout", "SetVertexBuffer", "SetIndexBuffer",
		"Apply", "DrawIndexed", "Apply", "DrawIndexed"}, b.Ops())
	assert.Equal(t, []any{0, uint32(24), uint32(0)}, b.Find("SetVertexBuffer")[0].Args)
	assert.Equal(t, []any{gpu.Uint32, uint32(0)}, b.Find("SetIndexBuffer")[0].Args)
	assert.Equal(t, []any{uint32(36), uint32(0), int32(0), gpu.TriangleList}, b.Find("DrawIndexed")[0].Args)
	assert.Equal(t, gpu.TriangleList, ctx.Topology)
}

func TestDrawNothing(t *testing.T) {
	b, dev, ctx := newDevice(t)
	empty := New(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "empty", NewGeometry[VertexPosCol](nil, nil))
	assert.False(t, empty.HasBuffers())
	inert := New(dev, effect.NewUnlit(dev, effects, "missing.yaml"), "inert", ColorCube(1))
	assert.True(t, inert.HasBuffers())

	b.Reset()
	empty.Draw(ctx)
	inert.Draw(ctx)
	assert.Empty(t, b.Calls)

	empty.Release()
	inert.Release()
	assert.Zero(t, b.Live["buffer"])
	assert.Zero(t, b.Live["effect"])
}

func TestBufferFailure(t *testing.T) {
	b, dev, _ := newDevice(t)
	b.FailBuffer = errors.New("out of memory")
	m := New(dev, nil, "quad", Quad(1))
	assert.False(t, m.HasBuffers())
	assert.Zero(t, b.Live["buffer"])
}

func TestLoad(t *testing.T) {
	b, dev, _ := newDevice(t)
	var gotTangents bool
	loader := func(path string, calculateTangents bool) (*Geometry[Vertex], error) {
		gotTangents = calculateTangents
		if path == "bad.obj" {
			return nil, errors.New("parse error")
		}
		return Quad(1), nil
	}
	m := Load(dev, effect.NewFullPBR(dev, effects, "pbr.yaml"), "good.obj", loader)
	assert.True(t, gotTangents)
	assert.True(t, m.HasBuffers())
	assert.Equal(t, "good.obj", m.Name)

	bad := Load(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "bad.obj", loader)
	assert.False(t, gotTangents)
	assert.False(t, bad.HasBuffers())
	assert.Equal(t, 2, b.Count("CreateBuffer"))
}

func TestLoadMatchesBinding(t *testing.T) {
	_, dev, _ := newDevice(t)
	loader := func(path string, calculateTangents bool) (*Geometry[Vertex], error) {
		return Quad(1), nil
	}
	unlit := Load(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "model.obj", loader)
	require.True(t, unlit.HasBuffers())
	assert.Same(t, LayoutOf[VertexPosCol](), unlit.Layout())
	assert.Equal(t, uint32(6), unlit.NumIndices())

	diffuse := Load(dev, effect.NewDiffuseOnly(dev, effects, "diffuse.yaml"), "model.obj", loader)
	require.True(t, diffuse.HasBuffers())
	assert.Same(t, LayoutOf[VertexPosTex](), diffuse.Layout())

	pbr := Load(dev, effect.NewFullPBR(dev, effects, "pbr.yaml"), "model.obj", loader)
	assert.Same(t, LayoutOf[Vertex](), pbr.Layout())

	none := NewModel(dev, nil, "model", Quad(1))
	assert.Same(t, LayoutOf[Vertex](), none.Layout())
}

func TestWorld(t *testing.T) {
	_, dev, _ := newDevice(t)
	m := New(dev, nil, "quad", Quad(1))
	m.SetScale(math32.Vec3(2, 2, 2))
	m.SetTranslation(math32.Vec3(10, 0, 0))
	m.RotateY(math32.Pi / 2)

	// scale * (rotation * translation): the translation is not scaled
	w := m.World()
	assert.InDelta(t, 10, w.Translation().X, 1e-4)
	p := math32.Vec3(1, 0, 0).MulMatrix4AsPoint(&w)
	assert.InDelta(t, 10, p.X, 1e-4)
	assert.InDelta(t, -2, p.Z, 1e-4)
}

func TestRotateLeftMultiplies(t *testing.T) {
	_, dev, _ := newDevice(t)
	m := New(dev, nil, "quad", Quad(1))
	m.RotateX(0.3)
	m.RotateY(0.5)
	ry := math32.RotationY4(0.5)
	rx := math32.RotationX4(0.3)
	want := ry.Mul(&rx)
	got := m.Rotation()
	assert.True(t, got.ApproxEqual(&want, 1e-5))

	m.RotateZ(0.2)
	rz := math32.RotationZ4(0.2)
	want = rz.Mul(&want)
	got = m.Rotation()
	assert.True(t, got.ApproxEqual(&want, 1e-5))
}

func TestSetMatrix(t *testing.T) {
	b, dev, _ := newDevice(t)
	pbr := effect.NewFullPBR(dev, effects, "pbr.yaml")
	m := New(dev, pbr, "quad", Quad(1))
	cam := camera.New(math32.Vec3(0, 0, -50), 45)
	m.SetTranslation(math32.Vec3(0, 0, 1))
	m.SetMatrix(cam)
	m.SetWorldMatrix()

	sets := b.Find("SetMatrix")
	require.Len(t, sets, 2)
	assert.Equal(t, effect.WorldViewProjectionVar, sets[0].Args[0])
	assert.Equal(t, effect.WorldMatrixVar, sets[1].Args[0])

	ef := b.Find("CompileEffect")
	require.Len(t, ef, 1)

	// unlit bindings take no world matrix
	u := New(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "cube", ColorCube(1))
	b.Reset()
	u.SetWorldMatrix()
	assert.Empty(t, b.Calls)
}

func TestReleaseOrder(t *testing.T) {
	b, dev, _ := newDevice(t)
	m := New(dev, effect.NewUnlit(dev, effects, "unlit.yaml"), "cube", ColorCube(1))
	tx, err := dev.CreateTexture(gpu.TextureDesc{Label: "diffuse", Size: image.Pt(1, 1)}, [][]byte{make([]byte, 4)})
	require.NoError(t, err)
	m.Own(tx)
	m.Release()
	assert.Equal(t, []string{"diffuse", "cube indices", "cube vertices", "Unlit"}, b.Released)
	m.Release()
	assert.Zero(t, b.DoubleReleases)
	assert.False(t, m.HasBuffers())
}

func TestConvert(t *testing.T) {
	g := Convert(Quad(1), func(v Vertex) VertexPosCol {
		return VertexPosCol{Pos: v.Pos, Color: v.Normal}
	})
	assert.Len(t, g.Vertices, 4)
	assert.Equal(t, math32.Vec3(0, 0, -1), g.Vertices[2].Color)
	assert.Equal(t, Quad(1).Indices, g.Indices)
	assert.True(t, Convert[Vertex, VertexPosCol](nil, nil).Empty())
}

func TestRotateInverse(t *testing.T) {
	_, dev, _ := newDevice(t)
	m := New(dev, nil, "quad", Quad(1))
	m.RotateX(0.7)
	before := m.Rotation()
	m.RotateY(1.1)
	m.RotateY(-1.1)
	after := m.Rotation()
	assert.True(t, after.ApproxEqual(&before, 1e-5))
}

func TestWorldTranslationOnly(t *testing.T) {
	_, dev, _ := newDevice(t)
	m := New(dev, nil, "quad", Quad(1))
	m.SetTranslation(math32.Vec3(1, 2, 3))
	w := m.World()
	assert.Equal(t, math32.Vec3(1, 2, 3), math32.Vector3{}.MulMatrix4AsPoint(&w))
}

func TestDrawTriangle(t *testing.T) {
	b, dev, ctx := newDevice(t)
	tri := NewGeometry([]Vertex{
		{Pos: math32.Vec3(0, 1, 5)},
		{Pos: math32.Vec3(1, -1, 5)},
		{Pos: math32.Vec3(-1, -1, 5)},
	}, []uint32{0, 1, 2})
	ul := effects["unlit.yaml"].Data
	fsys := fstest.MapFS{"unlit.yaml": {Data: []byte(strings.Replace(string(ul), "      - {name: P1, vertex: vs_main, fragment: fs_main}\n", "", 1))}, "unlit.wgsl": effects["unlit.wgsl"]}
	m := New(dev, effect.NewUnlit(dev, fsys, "unlit.yaml"), "triangle", tri)
	cam := camera.New(math32.Vector3{}, 90)
	m.SetMatrix(cam)

	b.Reset()
	m.Draw(ctx)
	draws := b.Find("DrawIndexed")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{uint32(3), uint32(0), int32(0), gpu.TriangleList}, draws[0].Args)
}
