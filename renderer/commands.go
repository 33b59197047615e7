// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"

	"cogentcore.org/meshview/effect"
)

// Command is a user command to the renderer.
type Command int32

const (
	// ToggleRotation starts or stops the mesh rotation.
	ToggleRotation Command = iota

	// CycleFilteringMethods advances the texture filtering of every mesh.
	CycleFilteringMethods

	// ToggleNormalMap turns normal mapping on or off for every mesh.
	ToggleNormalMap

	// StartFastRotation switches to the fast rotation speed.
	StartFastRotation

	// StopFastRotation switches back to the normal rotation speed.
	StopFastRotation

	CommandsN
)

var commandNames = [CommandsN]string{"ToggleRotation", "CycleFilteringMethods", "ToggleNormalMap", "StartFastRotation", "StopFastRotation"}

func (c Command) String() string {
	if c < 0 || c >= CommandsN {
		return fmt.Sprintf("Command(%d)", int32(c))
	}
	return commandNames[c]
}

// Execute runs the command.
func (r *Renderer) Execute(c Command) {
	switch c {
	case ToggleRotation:
		r.ToggleRotation()
	case CycleFilteringMethods:
		r.CycleFilteringMethods()
	case ToggleNormalMap:
		r.ToggleNormalMap()
	case StartFastRotation:
		r.StartFastRotation()
	case StopFastRotation:
		r.StopFastRotation()
	}
}

// ToggleRotation starts or stops the mesh rotation.
func (r *Renderer) ToggleRotation() {
	r.rotating = !r.rotating
}

// CycleFilteringMethods advances the texture filtering of every
// mesh whose binding has filtering techniques.
func (r *Renderer) CycleFilteringMethods() {
	for _, m := range r.meshes {
		if fc, ok := m.Binding().(effect.FilterCycler); ok {
			fc.CycleFilteringMethod()
		}
	}
}

// ToggleNormalMap flips normal mapping of every mesh whose binding
// supports it.
func (r *Renderer) ToggleNormalMap() {
	for _, m := range r.meshes {
		if nt, ok := m.Binding().(effect.NormalMapToggler); ok {
			nt.ToggleNormalMap()
		}
	}
}

// StartFastRotation switches to the fast rotation speed.
func (r *Renderer) StartFastRotation() { r.fast = true }

// StopFastRotation switches back to the normal rotation speed.
func (r *Renderer) StopFastRotation() { r.fast = false }
