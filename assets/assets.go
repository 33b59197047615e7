// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets embeds the effect manifests and WGSL shaders.
package assets

import "embed"

// Effect manifest paths within [Content].
const (
	UnlitEffect   = "effects/unlit.yaml"
	DiffuseEffect = "effects/diffuse.yaml"
	PBREffect     = "effects/pbr.yaml"
)

// Content contains the effects directory.
//
//go:embed effects
var Content embed.FS
