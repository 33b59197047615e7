// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"io/fs"
	"log/slog"

	"cogentcore.org/meshview/assets"
	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/effect"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/mesh"
	"cogentcore.org/meshview/texture"
)

// quadSize is the half size of the shape shown when no model is configured.
const quadSize = 10

// LoadScene builds the configured scene from the effects in fsys
// and the model and texture files of cfg.Scene, and adds it to the
// meshes. Missing files are logged and leave the corresponding part
// empty.
func (r *Renderer) LoadScene(fsys fs.FS, cfg *config.Config) {
	if !r.initialized {
		return
	}
	sc := &cfg.Scene
	switch sc.Effect {
	case "unlit":
		r.AddMesh(r.unlitMesh(fsys, sc))
	case "diffuse":
		r.AddMesh(r.diffuseMesh(fsys, sc, cfg.Render.Mipmaps))
	default:
		r.AddMesh(r.pbrMesh(fsys, sc, cfg.Render.Mipmaps))
	}
}

// loadGeometry loads the model, or returns nil when none is configured.
// A load failure is logged and gives empty geometry.
func (r *Renderer) loadGeometry(sc *config.Scene) *mesh.Geometry[mesh.Vertex] {
	if sc.Model == "" {
		return nil
	}
	g, err := r.Loader(sc.Path(sc.Model), false)
	if err != nil {
		slog.Error("renderer.LoadScene: failed to load model", "path", sc.Path(sc.Model), "error", err)
		return &mesh.Geometry[mesh.Vertex]{}
	}
	return g
}

func (r *Renderer) unlitMesh(fsys fs.FS, sc *config.Scene) *mesh.Mesh {
	b := effect.NewUnlit(r.device, fsys, assets.UnlitEffect)
	g := r.loadGeometry(sc)
	if g == nil {
		return mesh.New(r.device, b, "cube", mesh.ColorCube(quadSize))
	}
	return mesh.NewModel(r.device, b, sc.Model, g)
}

func (r *Renderer) diffuseMesh(fsys fs.FS, sc *config.Scene, mips bool) *mesh.Mesh {
	b := effect.NewDiffuseOnly(r.device, fsys, assets.DiffuseEffect)
	var m *mesh.Mesh
	if g := r.loadGeometry(sc); g != nil {
		m = mesh.NewModel(r.device, b, sc.Model, g)
	} else {
		m = mesh.New(r.device, b, "quad", mesh.TexQuad(quadSize))
	}
	txs := r.loadTextures(mips, sc.Path(sc.DiffuseMap))
	if txs[0] != nil {
		b.SetDiffuseMap(txs[0])
		m.Own(txs[0])
	}
	return m
}

func (r *Renderer) pbrMesh(fsys fs.FS, sc *config.Scene, mips bool) *mesh.Mesh {
	b := effect.NewFullPBR(r.device, fsys, assets.PBREffect)
	var m *mesh.Mesh
	if sc.Model != "" {
		m = mesh.Load(r.device, b, sc.Path(sc.Model), r.Loader)
	} else {
		m = mesh.New(r.device, b, "quad", mesh.Quad(quadSize))
	}
	txs := r.loadTextures(mips, sc.Path(sc.DiffuseMap), sc.Path(sc.NormalMap),
		sc.Path(sc.SpecularMap), sc.Path(sc.GlossinessMap))
	setters := []func(effect.Viewer){b.SetDiffuseMap, b.SetNormalMap, b.SetSpecularMap, b.SetGlossinessMap}
	for i, tx := range txs {
		if tx == nil {
			continue
		}
		setters[i](tx)
		m.Own(tx)
	}
	return m
}

// loadTextures decodes the map files in parallel and uploads them as
// linear RGBA. Maps that are not configured or fail to load are nil.
func (r *Renderer) loadTextures(mips bool, files ...string) []*texture.Texture {
	txs := make([]*texture.Texture, len(files))
	var paths []string
	var idx []int
	for i, fn := range files {
		if fn != "" {
			paths = append(paths, fn)
			idx = append(idx, i)
		}
	}
	imgs, err := texture.DecodeAll(paths...)
	if err != nil {
		slog.Error("renderer.LoadScene: failed to load textures", "error", err)
	}
	for j, img := range imgs {
		if img == nil {
			continue
		}
		tx, err := texture.New(r.device, paths[j], img, texture.Options{Format: gpu.RGBA8Unorm, Mips: mips})
		if err != nil {
			slog.Error("renderer.LoadScene: failed to create texture", "path", paths[j], "error", err)
			continue
		}
		txs[idx[j]] = tx
	}
	return txs
}
