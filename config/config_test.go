// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 640, cfg.Window.Width)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, math32.Vec3(0, 0, -50), cfg.Camera.OriginVector())
	assert.Equal(t, float32(45), cfg.Camera.FovAngle)
	assert.Equal(t, float32(10), cfg.Camera.MoveSpeed)
	assert.Equal(t, float32(2), cfg.Camera.RotateSpeed)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Zero(t, cfg.Camera.PitchLimit)
	assert.Equal(t, gpu.Color{R: 0.39, G: 0.59, B: 0.93, A: 1}, cfg.Render.Clear())
	assert.True(t, cfg.Render.Rotate)
	assert.Equal(t, float32(30), cfg.Render.RotationSpeed)
	assert.Equal(t, float32(60), cfg.Render.FastRotationSpeed)
	assert.Equal(t, "pbr", cfg.Scene.Effect)
	assert.Equal(t, filepath.Join("resources", "vehicle.obj"), cfg.Scene.Path(cfg.Scene.Model))
	assert.Empty(t, cfg.Scene.Path(""))
	assert.Equal(t, input.KeyF5, cfg.Keys.ToggleRotation)
	assert.Equal(t, input.KeyF6, cfg.Keys.CycleFiltering)
	assert.Equal(t, input.KeyF7, cfg.Keys.ToggleNormalMap)
	assert.Equal(t, input.KeyLeftShift, cfg.Keys.FastRotation)
}

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
[camera]
origin = [1.0, 2.0, 3.0]
pitch_limit = 89.0

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]

[scene]
effect = "diffuse"

[keys]
toggle_rotation = "F1"
`))
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(1, 2, 3), cfg.Camera.OriginVector())
	assert.Equal(t, float32(89), cfg.Camera.PitchLimit)
	assert.Equal(t, gpu.Color{A: 1}, cfg.Render.Clear())
	assert.Equal(t, "diffuse", cfg.Scene.Effect)
	assert.Equal(t, input.KeyF1, cfg.Keys.ToggleRotation)
	// untouched values keep their defaults
	assert.Equal(t, float32(45), cfg.Camera.FovAngle)
	assert.Equal(t, input.KeyF6, cfg.Keys.CycleFiltering)
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[camera]\nzoom = 2.0\n",
		"bad effect":     "[scene]\neffect = \"toon\"\n",
		"bad origin":     "[camera]\norigin = [1.0]\n",
		"bad key":        "[keys]\nquit = \"Hyper\"\n",
		"bad clip":       "[camera]\nnear = 10.0\nfar = 1.0\n",
		"negative limit": "[camera]\npitch_limit = -1.0\n",
		"syntax":         "[camera\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), DefaultFile)
	cfg := New()
	cfg.Render.RotationSpeed = 15
	cfg.Keys.Quit = input.KeyF10
	require.NoError(t, cfg.Save(fn))

	got, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = Open(filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatch(t *testing.T) {
	fn := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, New().Save(fn))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, fn)
	require.NoError(t, err)

	cfg := New()
	cfg.Render.FastRotationSpeed = 120
	require.NoError(t, cfg.Save(fn))

	// a write may be seen in several events, the first of them partial
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case got := <-ch:
			require.NotNil(t, got)
			reloaded = got.Render.FastRotationSpeed == 120
		case <-timeout:
			t.Fatal("no config reloaded")
		}
	}

	cancel()
	for range ch {
	}
}
