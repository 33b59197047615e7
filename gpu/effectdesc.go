// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"cogentcore.org/meshview/base/errors"
	"gopkg.in/yaml.v3"
)

// VariableKinds are the kinds of effect variables.
type VariableKinds int32

const (
	MatrixVariableKind VariableKinds = iota
	ResourceVariableKind
	BoolVariableKind
	FloatVariableKind
)

var variableKindNames = [...]string{"matrix", "resource", "bool", "float"}

func (vk VariableKinds) String() string {
	if vk < 0 || int(vk) >= len(variableKindNames) {
		return fmt.Sprintf("VariableKinds(%d)", int32(vk))
	}
	return variableKindNames[vk]
}

// UniformType returns the uniform data type of the kind, or
// [UndefinedType] for resources.
func (vk VariableKinds) UniformType() Types {
	switch vk {
	case MatrixVariableKind:
		return Float32Matrix4
	case BoolVariableKind:
		return Bool32
	case FloatVariableKind:
		return Float32
	}
	return UndefinedType
}

func (vk *VariableKinds) UnmarshalYAML(node *yaml.Node) error {
	for i, n := range variableKindNames {
		if strings.EqualFold(n, node.Value) {
			*vk = VariableKinds(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown variable kind %q", node.Line, node.Value)
}

func (fm *FilterModes) UnmarshalYAML(node *yaml.Node) error {
	if err := fm.SetString(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// CullModes are the triangle face culling modes of a pass.
type CullModes int32

const (
	CullBack CullModes = iota
	CullNone
	CullFront
)

func (cm *CullModes) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "back":
		*cm = CullBack
	case "none":
		*cm = CullNone
	case "front":
		*cm = CullFront
	default:
		return fmt.Errorf("line %d: unknown cull mode %q", node.Line, node.Value)
	}
	return nil
}

// EffectDesc is the manifest of an effect: its shader program, its
// variables and its techniques. Manifests are YAML files.
//
// Shader bindings follow the manifest: group 0 binding 0 is the
// uniform block holding all non-resource variables in declaration
// order, binding 1 is the sampler of the active technique, and
// bindings 2 and up are the resource variables in declaration order.
type EffectDesc struct {
	Name string `yaml:"name"`

	// Shader is the path of the shader source, relative to the manifest.
	Shader string `yaml:"shader"`

	Variables  []VariableDesc  `yaml:"variables"`
	Techniques []TechniqueDesc `yaml:"techniques"`
}

// VariableDesc describes an effect variable.
type VariableDesc struct {
	Name string        `yaml:"name"`
	Kind VariableKinds `yaml:"kind"`
}

// TechniqueDesc describes a technique.
type TechniqueDesc struct {
	Name   string      `yaml:"name"`
	Filter FilterModes `yaml:"filter"`
	Passes []PassDesc  `yaml:"passes"`
}

// PassDesc describes one pass of a technique.
type PassDesc struct {
	Name string `yaml:"name"`

	// Vertex and Fragment are the shader entry points.
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`

	Cull CullModes `yaml:"cull"`

	// NoDepthWrite disables depth writes for the pass.
	NoDepthWrite bool `yaml:"noDepthWrite"`
}

// VariableBinding is where a variable lives in the shader bindings.
type VariableBinding struct {
	VariableDesc

	// Binding is the binding index for resources, or 0 (the
	// uniform block) for other kinds.
	Binding uint32

	// Offset is the byte offset within the uniform block.
	Offset int
}

const (
	// UniformBinding is the binding index of the uniform block.
	UniformBinding = 0

	// SamplerBinding is the binding index of the technique sampler.
	SamplerBinding = 1

	// FirstResourceBinding is the binding index of the first resource.
	FirstResourceBinding = 2
)

// ParseEffectDesc parses and validates a YAML effect manifest.
func ParseEffectDesc(data []byte) (*EffectDesc, error) {
	ed := &EffectDesc{}
	if err := yaml.Unmarshal(data, ed); err != nil {
		return nil, fmt.Errorf("gpu.ParseEffectDesc: %w", err)
	}
	if err := ed.Validate(); err != nil {
		return nil, err
	}
	return ed, nil
}

// OpenEffect reads the manifest at the given path in fsys and the
// shader source it names.
func OpenEffect(fsys fs.FS, fpath string) (*EffectDesc, []byte, error) {
	data, err := fs.ReadFile(fsys, fpath)
	if err != nil {
		return nil, nil, err
	}
	ed, err := ParseEffectDesc(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s", fpath)
	}
	src, err := fs.ReadFile(fsys, path.Join(path.Dir(fpath), ed.Shader))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s: shader", fpath)
	}
	return ed, src, nil
}

// Validate checks the manifest for completeness and duplicate names.
func (ed *EffectDesc) Validate() error {
	if ed.Name == "" {
		return fmt.Errorf("gpu.EffectDesc: missing name")
	}
	if ed.Shader == "" {
		return fmt.Errorf("gpu.EffectDesc %s: missing shader", ed.Name)
	}
	if len(ed.Techniques) == 0 {
		return fmt.Errorf("gpu.EffectDesc %s: no techniques", ed.Name)
	}
	vars := map[string]bool{}
	for _, v := range ed.Variables {
		if v.Name == "" || vars[v.Name] {
			return fmt.Errorf("gpu.EffectDesc %s: missing or duplicate variable name %q", ed.Name, v.Name)
		}
		vars[v.Name] = true
	}
	techs := map[string]bool{}
	for _, t := range ed.Techniques {
		if t.Name == "" || techs[t.Name] {
			return fmt.Errorf("gpu.EffectDesc %s: missing or duplicate technique name %q", ed.Name, t.Name)
		}
		techs[t.Name] = true
		if len(t.Passes) == 0 {
			return fmt.Errorf("gpu.EffectDesc %s: technique %s has no passes", ed.Name, t.Name)
		}
		for _, p := range t.Passes {
			if p.Vertex == "" || p.Fragment == "" {
				return fmt.Errorf("gpu.EffectDesc %s: technique %s pass %q needs vertex and fragment entry points", ed.Name, t.Name, p.Name)
			}
		}
	}
	return nil
}

// Bindings returns the binding of every variable, in declaration
// order, and the size of the uniform block in bytes, rounded up to 16.
func (ed *EffectDesc) Bindings() ([]VariableBinding, int) {
	bs := make([]VariableBinding, len(ed.Variables))
	off := 0
	res := uint32(FirstResourceBinding)
	for i, v := range ed.Variables {
		bs[i].VariableDesc = v
		if v.Kind == ResourceVariableKind {
			bs[i].Binding = res
			res++
			continue
		}
		tp := v.Kind.UniformType()
		off = alignUp(off, tp.Align())
		bs[i].Binding = UniformBinding
		bs[i].Offset = off
		off += tp.Bytes()
	}
	return bs, alignUp(off, 16)
}

// HasResources returns whether any variable is a resource, in which
// case the technique sampler is bound as well.
func (ed *EffectDesc) HasResources() bool {
	for _, v := range ed.Variables {
		if v.Kind == ResourceVariableKind {
			return true
		}
	}
	return false
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
