// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder []renderer.Command

func (r *recorder) Execute(c renderer.Command) { *r = append(*r, c) }

func TestDispatch(t *testing.T) {
	keys := &config.New().Keys
	var r recorder
	var none input.Keys

	cur := none.With(input.KeyF5).With(input.KeyF6).With(input.KeyLeftShift)
	assert.False(t, dispatch(&r, keys, none, cur))
	assert.Equal(t, recorder{renderer.ToggleRotation, renderer.CycleFilteringMethods, renderer.StartFastRotation}, r)

	// held keys do not repeat
	r = nil
	assert.False(t, dispatch(&r, keys, cur, cur))
	assert.Empty(t, r)

	r = nil
	next := none.With(input.KeyF7).With(input.KeyEscape)
	assert.True(t, dispatch(&r, keys, cur, next))
	assert.Equal(t, recorder{renderer.ToggleNormalMap, renderer.StopFastRotation}, r)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meshview.toml")

	opts := &options{}
	cmd := rootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	_, _, err := loadConfig(cmd, opts)
	assert.Error(t, err, "a missing file named on the command line is an error")

	cfg := config.New()
	cfg.Window.Width = 1024
	cfg.Scene.Effect = "diffuse"
	require.NoError(t, cfg.Save(path))

	opts = &options{}
	cmd = rootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--height", "700", "--model", "cube.obj", "--no-rotate"}))
	cfg, watch, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.True(t, watch)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 700, cfg.Window.Height)
	assert.Equal(t, "diffuse", cfg.Scene.Effect)
	assert.Equal(t, "cube.obj", cfg.Scene.Model)
	assert.False(t, cfg.Render.Rotate)

	opts = &options{}
	cmd = rootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--effect", "toon"}))
	_, _, err = loadConfig(cmd, opts)
	assert.Error(t, err)
}

func TestApplyFlagsOnReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.toml")
	require.NoError(t, config.New().Save(path))

	opts := &options{}
	cmd := rootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--width", "800", "--no-rotate"}))
	_, _, err := loadConfig(cmd, opts)
	require.NoError(t, err)

	saved := config.New()
	saved.Window.Width = 1024
	saved.Render.RotationSpeed = 45
	require.NoError(t, saved.Save(path))
	nc, err := config.Open(path)
	require.NoError(t, err)

	require.NoError(t, applyFlags(cmd, opts, nc))
	assert.Equal(t, 800, nc.Window.Width)
	assert.False(t, nc.Render.Rotate)
	assert.Equal(t, float32(45), nc.Render.RotationSpeed)

	nc.Window.Height = -1
	assert.Error(t, applyFlags(cmd, opts, nc))
}

func TestLoadConfigDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	opts := &options{}
	cmd := rootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--width", "300"}))
	cfg, watch, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.False(t, watch)
	assert.Equal(t, 300, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.toml")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"init", "-q", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wrote")

	cfg, err := config.Open(path)
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"init", "-q", "--config", path})
	assert.Error(t, cmd.Execute())

	require.NoError(t, os.WriteFile(path, []byte("[window]\n"), 0666))
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"init", "-q", "--overwrite", "--config", path})
	require.NoError(t, cmd.Execute())
}
