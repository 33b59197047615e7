// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"io/fs"

	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
)

// Unlit is a binding with only the world-view-projection matrix.
type Unlit struct {
	Effect
}

// NewUnlit loads the effect at path in fsys as an [Unlit] binding.
func NewUnlit(dev gpu.Device, fsys fs.FS, path string) *Unlit {
	u := &Unlit{}
	if u.load(dev, fsys, path, UnlitKind) {
		u.BindTechnique(DefaultTechnique)
	}
	return u
}

// DiffuseOnly is a binding that samples one diffuse map, with
// selectable texture filtering.
type DiffuseOnly struct {
	Effect
	filtering

	diffuse gpu.ResourceVariable
}

// NewDiffuseOnly loads the effect at path in fsys as a [DiffuseOnly] binding.
func NewDiffuseOnly(dev gpu.Device, fsys fs.FS, path string) *DiffuseOnly {
	d := &DiffuseOnly{}
	if d.load(dev, fsys, path, DiffuseOnlyKind) {
		d.bindInitial(&d.Effect)
		d.diffuse = resolve[gpu.ResourceVariable](&d.Effect, DiffuseMapVar)
	}
	return d
}

// SetDiffuseMap binds the diffuse map.
func (d *DiffuseOnly) SetDiffuseMap(tx Viewer) { setMap(d.diffuse, tx) }

// CycleFilteringMethod advances to the next filtering technique.
func (d *DiffuseOnly) CycleFilteringMethod() { d.cycle(&d.Effect) }

// FilteringMethod returns the current filter mode.
func (d *DiffuseOnly) FilteringMethod() gpu.FilterModes { return d.method }

// FullPBR is a binding with diffuse, normal, specular and
// glossiness maps, a separate world matrix for lighting, and a
// switch for normal mapping.
type FullPBR struct {
	Effect
	filtering

	world                            gpu.MatrixVariable
	diffuse, normal, specular, gloss gpu.ResourceVariable
	useNormalMap                     gpu.ScalarVariable

	normalMap bool
}

// NewFullPBR loads the effect at path in fsys as a [FullPBR] binding.
// Normal mapping starts enabled.
func NewFullPBR(dev gpu.Device, fsys fs.FS, path string) *FullPBR {
	p := &FullPBR{normalMap: true}
	if !p.load(dev, fsys, path, FullPBRStackKind) {
		return p
	}
	p.bindInitial(&p.Effect)
	p.world = resolve[gpu.MatrixVariable](&p.Effect, WorldMatrixVar)
	p.diffuse = resolve[gpu.ResourceVariable](&p.Effect, DiffuseMapVar)
	p.normal = resolve[gpu.ResourceVariable](&p.Effect, NormalMapVar)
	p.specular = resolve[gpu.ResourceVariable](&p.Effect, SpecularMapVar)
	p.gloss = resolve[gpu.ResourceVariable](&p.Effect, GlossinessMapVar)
	p.useNormalMap = resolve[gpu.ScalarVariable](&p.Effect, UseNormalMapVar)
	p.uploadNormalMap()
	return p
}

// SetWorldMatrix uploads the world matrix.
func (p *FullPBR) SetWorldMatrix(m *math32.Matrix4) {
	if p.world != nil {
		p.world.SetMatrix(m)
	}
}

// SetDiffuseMap binds the diffuse map.
func (p *FullPBR) SetDiffuseMap(tx Viewer) { setMap(p.diffuse, tx) }

// SetNormalMap binds the tangent-space normal map.
func (p *FullPBR) SetNormalMap(tx Viewer) { setMap(p.normal, tx) }

// SetSpecularMap binds the specular map.
func (p *FullPBR) SetSpecularMap(tx Viewer) { setMap(p.specular, tx) }

// SetGlossinessMap binds the glossiness map.
func (p *FullPBR) SetGlossinessMap(tx Viewer) { setMap(p.gloss, tx) }

// CycleFilteringMethod advances to the next filtering technique.
func (p *FullPBR) CycleFilteringMethod() { p.cycle(&p.Effect) }

// FilteringMethod returns the current filter mode.
func (p *FullPBR) FilteringMethod() gpu.FilterModes { return p.method }

// ToggleNormalMap flips normal mapping on or off.
func (p *FullPBR) ToggleNormalMap() {
	p.normalMap = !p.normalMap
	p.uploadNormalMap()
}

// NormalMapEnabled returns whether normal mapping is on.
func (p *FullPBR) NormalMapEnabled() bool { return p.normalMap }

func (p *FullPBR) uploadNormalMap() {
	if p.useNormalMap != nil {
		p.useNormalMap.SetBool(p.normalMap)
	}
}
