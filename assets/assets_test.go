// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"testing"

	"cogentcore.org/meshview/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffects(t *testing.T) {
	for _, path := range []string{UnlitEffect, DiffuseEffect, PBREffect} {
		t.Run(path, func(t *testing.T) {
			ed, src, err := gpu.OpenEffect(Content, path)
			require.NoError(t, err)
			assert.NotEmpty(t, src)
			assert.NotNil(t, techniqueByName(ed, "DefaultTechnique"))
		})
	}
}

func TestPBRBindings(t *testing.T) {
	ed, _, err := gpu.OpenEffect(Content, PBREffect)
	require.NoError(t, err)
	bs, size := ed.Bindings()
	assert.Equal(t, 144, size)
	assert.Equal(t, 128, bs[2].Offset)
	assert.Equal(t, uint32(2), bs[3].Binding)
	assert.Equal(t, uint32(5), bs[6].Binding)
	for _, name := range []string{"PointFilteringTechnique", "LinearFilteringTechnique", "AnisotropicFilteringTechnique"} {
		assert.NotNil(t, techniqueByName(ed, name), name)
	}
	assert.Equal(t, gpu.FilterAnisotropic, techniqueByName(ed, "AnisotropicFilteringTechnique").Filter)
}

func techniqueByName(ed *gpu.EffectDesc, name string) *gpu.TechniqueDesc {
	for i := range ed.Techniques {
		if ed.Techniques[i].Name == name {
			return &ed.Techniques[i]
		}
	}
	return nil
}
