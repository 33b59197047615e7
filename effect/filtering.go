// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import "cogentcore.org/meshview/gpu"

// FilterTechnique returns the technique name for the given filter mode.
func FilterTechnique(fm gpu.FilterModes) string {
	switch fm {
	case gpu.FilterLinear:
		return LinearFilteringTechnique
	case gpu.FilterAnisotropic:
		return AnisotropicFilteringTechnique
	}
	return PointFilteringTechnique
}

// NextFilter returns the filter mode after fm in the cycle
// point, linear, anisotropic, point.
func NextFilter(fm gpu.FilterModes) gpu.FilterModes {
	switch fm {
	case gpu.FilterPoint:
		return gpu.FilterLinear
	case gpu.FilterLinear:
		return gpu.FilterAnisotropic
	}
	return gpu.FilterPoint
}

// filtering is the filter mode state of textured bindings.
type filtering struct {
	method gpu.FilterModes
}

// bindInitial activates the technique of the initial filter mode,
// falling back on the default technique.
func (f *filtering) bindInitial(e *Effect) {
	f.method = gpu.FilterPoint
	if e.effect.TechniqueByName(FilterTechnique(f.method)) != nil {
		e.BindTechnique(FilterTechnique(f.method))
		return
	}
	e.BindTechnique(DefaultTechnique)
}

// cycle advances the filter mode and activates its technique.
func (f *filtering) cycle(e *Effect) {
	f.method = NextFilter(f.method)
	e.BindTechnique(FilterTechnique(f.method))
}
