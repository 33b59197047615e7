// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of meshview: defaults
// come from `default:` struct tags, overridden by a TOML file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/meshview/base/errors"
	"cogentcore.org/meshview/base/reflectx"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "meshview.toml"

// Effects are the effect names a scene can use.
var Effects = []string{"pbr", "diffuse", "unlit"}

// Config is the main config struct.
type Config struct {
	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Render Render `toml:"render"`
	Scene  Scene  `toml:"scene"`
	Keys   Keys   `toml:"keys"`
}

type Window struct {

	// the window title
	Title string `toml:"title" default:"meshview"`

	// the initial width of the window in pixels
	Width int `toml:"width" default:"640"`

	// the initial height of the window in pixels
	Height int `toml:"height" default:"480"`

	// whether to wait for vertical blank when presenting
	VSync bool `toml:"vsync" default:"false"`
}

type Camera struct {

	// the initial camera position
	Origin []float32 `toml:"origin" default:"0 0 -50"`

	// the vertical field of view in degrees
	FovAngle float32 `toml:"fov" default:"45"`

	// the movement speed in units per second
	MoveSpeed float32 `toml:"move_speed" default:"10"`

	// the scale from mouse motion to rotation
	RotateSpeed float32 `toml:"rotate_speed" default:"2"`

	// the near clip plane distance
	Near float32 `toml:"near" default:"0.1"`

	// the far clip plane distance
	Far float32 `toml:"far" default:"1000"`

	// the pitch limit in degrees; 0 leaves pitch unclamped
	PitchLimit float32 `toml:"pitch_limit" default:"0"`
}

type Render struct {

	// the background color, as linear RGBA
	ClearColor []float32 `toml:"clear_color" default:"0.39 0.59 0.93 1"`

	// whether meshes start out rotating
	Rotate bool `toml:"rotate" default:"true"`

	// the mesh rotation speed in degrees per second
	RotationSpeed float32 `toml:"rotation_speed" default:"30"`

	// the mesh rotation speed in degrees per second while fast rotation is held
	FastRotationSpeed float32 `toml:"fast_rotation_speed" default:"60"`

	// whether to generate mip chains for textures
	Mipmaps bool `toml:"mipmaps" default:"true"`
}

type Scene struct {

	// the directory that model and texture paths are relative to
	Dir string `toml:"dir" default:"resources"`

	// the OBJ model file; if empty, a procedural shape is shown
	Model string `toml:"model" default:"vehicle.obj"`

	// the effect that shades the model: pbr, diffuse or unlit
	Effect string `toml:"effect" default:"pbr"`

	DiffuseMap    string `toml:"diffuse_map" default:"vehicle_diffuse.png"`
	NormalMap     string `toml:"normal_map" default:"vehicle_normal.png"`
	SpecularMap   string `toml:"specular_map" default:"vehicle_specular.png"`
	GlossinessMap string `toml:"glossiness_map" default:"vehicle_gloss.png"`
}

type Keys struct {
	ToggleRotation  input.Key `toml:"toggle_rotation" default:"F5"`
	CycleFiltering  input.Key `toml:"cycle_filtering" default:"F6"`
	ToggleNormalMap input.Key `toml:"toggle_normal_map" default:"F7"`
	FastRotation    input.Key `toml:"fast_rotation" default:"LeftShift"`
	Quit            input.Key `toml:"quit" default:"Escape"`
}

// New returns a config with default values.
func New() *Config {
	cfg := &Config{}
	errors.Log(reflectx.SetFromDefaultTags(cfg))
	return cfg
}

// Open returns the defaults overridden by the TOML file at path,
// which may start with ~ for the home directory.
func Open(path string) (*Config, error) {
	fn, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	cfg, err := Read(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "config.Open %s", fn)
	}
	return cfg, nil
}

// Read returns the defaults overridden by TOML from r. Unknown
// keys are an error.
func Read(r io.Reader) (*Config, error) {
	cfg := New()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML to the file at path.
func (cfg *Config) Save(path string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fn, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	return os.WriteFile(fn, b, 0666)
}

// Validate returns the joined errors of all invalid values.
func (cfg *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}
	check(cfg.Window.Width > 0 && cfg.Window.Height > 0, "window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height)
	check(len(cfg.Camera.Origin) == 3, "camera origin needs 3 values, has %d", len(cfg.Camera.Origin))
	check(cfg.Camera.FovAngle > 0 && cfg.Camera.FovAngle < 180, "camera fov %v must be in (0, 180)", cfg.Camera.FovAngle)
	check(cfg.Camera.Near > 0 && cfg.Camera.Near < cfg.Camera.Far, "camera clip planes %v, %v must satisfy 0 < near < far", cfg.Camera.Near, cfg.Camera.Far)
	check(cfg.Camera.PitchLimit >= 0, "camera pitch limit %v must not be negative", cfg.Camera.PitchLimit)
	check(len(cfg.Render.ClearColor) == 4, "render clear color needs 4 values, has %d", len(cfg.Render.ClearColor))
	check(slices.Contains(Effects, cfg.Scene.Effect), "scene effect %q must be one of %v", cfg.Scene.Effect, Effects)
	return errors.Join(errs...)
}

// OriginVector returns the camera origin as a vector.
func (c *Camera) OriginVector() math32.Vector3 {
	return math32.Vector3FromSlice(c.Origin)
}

// Clear returns the clear color.
func (r *Render) Clear() gpu.Color {
	if len(r.ClearColor) < 4 {
		return gpu.Color{}
	}
	return gpu.Color{R: r.ClearColor[0], G: r.ClearColor[1], B: r.ClearColor[2], A: r.ClearColor[3]}
}

// Path returns the path of a scene file, relative to [Scene.Dir].
// Empty names stay empty.
func (s *Scene) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Dir, name)
}
