// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "cogentcore.org/meshview/math32"

// Effect is a compiled shader program with named techniques and
// named variables.
type Effect interface {
	Releaser
	Name() string

	// TechniqueByName returns the named technique, or nil.
	TechniqueByName(name string) Technique

	// VariableByName returns the named variable, or nil. The result
	// can be asserted to [MatrixVariable], [ResourceVariable] or
	// [ScalarVariable] according to its kind.
	VariableByName(name string) Variable
}

// Technique is a named sequence of passes.
type Technique interface {
	Name() string
	Filter() FilterModes
	NumPasses() int
	PassByIndex(i int) Pass
}

// Pass is one pass of a technique: applying it binds the program,
// fixed-function state and current variable values to the context
// for the following draw.
type Pass interface {
	Name() string
	Apply(ctx Context) error
}

// Variable is a named effect parameter.
type Variable interface {
	Name() string
	Kind() VariableKinds
}

// MatrixVariable is a 4x4 matrix parameter.
type MatrixVariable interface {
	Variable
	SetMatrix(m *math32.Matrix4)
}

// ResourceVariable is a texture slot.
type ResourceVariable interface {
	Variable
	SetResource(v ShaderResourceView)
}

// ScalarVariable is a scalar parameter.
type ScalarVariable interface {
	Variable
	SetBool(b bool)
	SetFloat(f float32)
}
