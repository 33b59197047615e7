// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package effect binds compiled GPU effects to the parameters a
// mesh needs: the world-view-projection matrix, the world matrix,
// texture maps and flags. Each binding variant ([Unlit],
// [DiffuseOnly], [FullPBR]) only has the setters that its shader
// supports. A binding whose effect fails to load is inert: its
// setters do nothing and it has no technique.
package effect

import (
	"io/fs"
	"log/slog"

	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
)

// Kinds are the binding variants.
type Kinds int32

const (
	// UnlitKind transforms vertices and passes their color through.
	UnlitKind Kinds = iota

	// DiffuseOnlyKind samples a diffuse map.
	DiffuseOnlyKind

	// FullPBRStackKind uses diffuse, normal, specular and glossiness
	// maps with world-space lighting.
	FullPBRStackKind
)

func (k Kinds) String() string {
	switch k {
	case UnlitKind:
		return "Unlit"
	case DiffuseOnlyKind:
		return "DiffuseOnly"
	case FullPBRStackKind:
		return "FullPBRStack"
	}
	return "Kinds(?)"
}

// Technique names.
const (
	DefaultTechnique              = "DefaultTechnique"
	PointFilteringTechnique       = "PointFilteringTechnique"
	LinearFilteringTechnique      = "LinearFilteringTechnique"
	AnisotropicFilteringTechnique = "AnisotropicFilteringTechnique"
)

// Variable names.
const (
	WorldViewProjectionVar = "g_WorldViewProjection"
	WorldMatrixVar         = "g_WorldMatrix"
	DiffuseMapVar          = "g_DiffuseMap"
	NormalMapVar           = "g_NormalMap"
	SpecularMapVar         = "g_SpecularMap"
	GlossinessMapVar       = "g_GlossinessMap"
	UseNormalMapVar        = "g_UseNormalMap"
)

// Binding is what a mesh needs from any binding variant.
type Binding interface {
	gpu.Releaser
	Kind() Kinds
	Valid() bool
	Technique() gpu.Technique
	SetMatrix(m *math32.Matrix4)
}

// WorldMatrixSetter is implemented by bindings that take the world
// matrix separately.
type WorldMatrixSetter interface {
	SetWorldMatrix(m *math32.Matrix4)
}

// FilterCycler is implemented by bindings with texture filtering techniques.
type FilterCycler interface {
	CycleFilteringMethod()
	FilteringMethod() gpu.FilterModes
}

// NormalMapToggler is implemented by bindings with a normal map switch.
type NormalMapToggler interface {
	ToggleNormalMap()
	NormalMapEnabled() bool
}

// Viewer is anything with a shader resource view, such as a texture.
type Viewer interface {
	View() gpu.ShaderResourceView
}

// Effect is the part shared by all binding variants: the compiled
// effect, its active technique and the world-view-projection matrix.
type Effect struct {
	kind Kinds
	path string

	effect    gpu.Effect
	technique gpu.Technique
	wvp       gpu.MatrixVariable
	res       gpu.Resources
}

// load opens and compiles the effect at path in fsys. Failures are
// logged and leave the effect inert.
func (e *Effect) load(dev gpu.Device, fsys fs.FS, path string, kind Kinds) bool {
	e.kind = kind
	e.path = path
	ed, src, err := gpu.OpenEffect(fsys, path)
	if err != nil {
		slog.Error("effect.Load: failed to open effect", "path", path, "error", err)
		return false
	}
	ef, err := dev.CompileEffect(ed, src)
	if err != nil {
		slog.Error("effect.Load: failed to compile effect", "path", path, "error", err)
		return false
	}
	e.effect = ef
	e.res.Add(ef)
	e.wvp = resolve[gpu.MatrixVariable](e, WorldViewProjectionVar)
	return true
}

// resolve returns the named variable of the given kind, logging
// and returning nil if the effect has no such variable.
func resolve[T gpu.Variable](e *Effect, name string) T {
	var zero T
	v := e.effect.VariableByName(name)
	if v == nil {
		slog.Error("effect: variable not found", "effect", e.path, "variable", name)
		return zero
	}
	tv, ok := v.(T)
	if !ok {
		slog.Error("effect: variable has the wrong kind", "effect", e.path, "variable", name, "kind", v.Kind())
		return zero
	}
	return tv
}

// Kind returns the binding variant.
func (e *Effect) Kind() Kinds { return e.kind }

// Path returns the asset path the effect was loaded from.
func (e *Effect) Path() string { return e.path }

// Valid returns whether the effect loaded and compiled.
func (e *Effect) Valid() bool { return e.effect != nil }

// Technique returns the active technique, or nil.
func (e *Effect) Technique() gpu.Technique { return e.technique }

// BindTechnique makes the named technique active. If the effect has
// no such technique, it logs and keeps the current one.
func (e *Effect) BindTechnique(name string) bool {
	if e.effect == nil {
		return false
	}
	tc := e.effect.TechniqueByName(name)
	if tc == nil {
		slog.Error("effect: technique not found", "effect", e.path, "technique", name)
		return false
	}
	e.technique = tc
	return true
}

// SetMatrix uploads the world-view-projection matrix.
func (e *Effect) SetMatrix(m *math32.Matrix4) {
	if e.wvp != nil {
		e.wvp.SetMatrix(m)
	}
}

// Release releases the compiled effect. The binding is inert afterwards.
func (e *Effect) Release() {
	e.res.Release()
	e.effect, e.technique, e.wvp = nil, nil, nil
}

// setMap binds the view of tx to the slot v, if both exist.
func setMap(v gpu.ResourceVariable, tx Viewer) {
	if v == nil || tx == nil {
		return
	}
	v.SetResource(tx.View())
}
