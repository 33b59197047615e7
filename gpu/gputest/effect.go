// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
)

// Effect is the fake [gpu.Effect], built from the techniques and
// variables of its manifest.
type Effect struct {
	resource
	Desc       *gpu.EffectDesc
	techniques map[string]*Technique
	variables  map[string]gpu.Variable
}

func newEffect(b *Backend, desc *gpu.EffectDesc) *Effect {
	ef := &Effect{resource: b.newResource("effect", desc.Name), Desc: desc,
		techniques: map[string]*Technique{}, variables: map[string]gpu.Variable{}}
	for _, td := range desc.Techniques {
		tc := &Technique{Desc: td}
		for _, pd := range td.Passes {
			tc.passes = append(tc.passes, &Pass{b: b, technique: td.Name, name: pd.Name})
		}
		ef.techniques[td.Name] = tc
	}
	for _, vd := range desc.Variables {
		switch vd.Kind {
		case gpu.MatrixVariableKind:
			ef.variables[vd.Name] = &MatrixVariable{b: b, name: vd.Name}
		case gpu.ResourceVariableKind:
			ef.variables[vd.Name] = &ResourceVariable{b: b, name: vd.Name}
		default:
			ef.variables[vd.Name] = &ScalarVariable{b: b, name: vd.Name, kind: vd.Kind}
		}
	}
	return ef
}

func (ef *Effect) Name() string { return ef.Desc.Name }

func (ef *Effect) TechniqueByName(name string) gpu.Technique {
	if tc, ok := ef.techniques[name]; ok {
		return tc
	}
	return nil
}

func (ef *Effect) VariableByName(name string) gpu.Variable {
	return ef.variables[name]
}

// Technique is the fake [gpu.Technique].
type Technique struct {
	Desc   gpu.TechniqueDesc
	passes []*Pass
}

func (tc *Technique) Name() string               { return tc.Desc.Name }
func (tc *Technique) Filter() gpu.FilterModes    { return tc.Desc.Filter }
func (tc *Technique) NumPasses() int             { return len(tc.passes) }
func (tc *Technique) PassByIndex(i int) gpu.Pass { return tc.passes[i] }

// Pass is the fake [gpu.Pass]; Apply records the technique and pass names.
type Pass struct {
	b         *Backend
	technique string
	name      string
}

func (ps *Pass) Name() string { return ps.name }

func (ps *Pass) Apply(ctx gpu.Context) error {
	ps.b.record("Apply", ps.technique, ps.name)
	return nil
}

// MatrixVariable is the fake [gpu.MatrixVariable], keeping the last value.
type MatrixVariable struct {
	b     *Backend
	name  string
	Value math32.Matrix4
	Sets  int
}

func (v *MatrixVariable) Name() string            { return v.name }
func (v *MatrixVariable) Kind() gpu.VariableKinds { return gpu.MatrixVariableKind }

func (v *MatrixVariable) SetMatrix(m *math32.Matrix4) {
	v.Value = *m
	v.Sets++
	v.b.record("SetMatrix", v.name)
}

// ResourceVariable is the fake [gpu.ResourceVariable], keeping the bound view.
type ResourceVariable struct {
	b     *Backend
	name  string
	Value gpu.ShaderResourceView
}

func (v *ResourceVariable) Name() string            { return v.name }
func (v *ResourceVariable) Kind() gpu.VariableKinds { return gpu.ResourceVariableKind }

func (v *ResourceVariable) SetResource(view gpu.ShaderResourceView) {
	v.Value = view
	v.b.record("SetResource", v.name)
}

// ScalarVariable is the fake [gpu.ScalarVariable], keeping the last value.
type ScalarVariable struct {
	b     *Backend
	name  string
	kind  gpu.VariableKinds
	Bool  bool
	Float float32
}

func (v *ScalarVariable) Name() string            { return v.name }
func (v *ScalarVariable) Kind() gpu.VariableKinds { return v.kind }

func (v *ScalarVariable) SetBool(b bool) {
	v.Bool = b
	v.b.record("SetBool", v.name, b)
}

func (v *ScalarVariable) SetFloat(f float32) {
	v.Float = f
	v.b.record("SetFloat", v.name, f)
}
