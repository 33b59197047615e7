// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command meshview shows a textured model with a movable camera.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"

	"cogentcore.org/meshview/base/errors"
	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/logx"
	"cogentcore.org/meshview/renderer"
	"github.com/spf13/cobra"
)

func init() {
	// glfw and the frame loop must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// options are the command line flags.
type options struct {
	config    string
	v, vv, q  bool
	width     int
	height    int
	vsync     bool
	effect    string
	model     string
	dir       string
	noRotate  bool
	overwrite bool
}

func newRootCmd() *cobra.Command {
	return rootCmd(&options{})
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "meshview",
		Short:        "meshview shows a textured model with a movable camera",
		Long:         "meshview shows a textured model with a movable camera.\nW A S D move, the mouse buttons look around and move up and down.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(opts.vv, opts.v, opts.q)
			logx.SetDefault(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, watch, err := loadConfig(cmd, opts)
			if err != nil {
				return errors.Log(err)
			}
			if !watch {
				opts.config = ""
			}
			reload := func(nc *config.Config) error { return applyFlags(cmd, opts, nc) }
			return errors.Log(run(cmd.Context(), cfg, opts.config, reload))
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", config.DefaultFile, "the TOML config file")
	pf.BoolVarP(&opts.v, "verbose", "v", false, "show informational log messages")
	pf.BoolVar(&opts.vv, "vv", false, "show debug log messages")
	pf.BoolVarP(&opts.q, "quiet", "q", false, "only show errors")

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 0, "the initial window width")
	f.IntVar(&opts.height, "height", 0, "the initial window height")
	f.BoolVar(&opts.vsync, "vsync", false, "wait for vertical blank when presenting")
	f.StringVar(&opts.effect, "effect", "", "the effect: pbr, diffuse or unlit")
	f.StringVar(&opts.model, "model", "", "the OBJ model file, relative to the scene directory")
	f.StringVar(&opts.dir, "dir", "", "the scene directory")
	f.BoolVar(&opts.noRotate, "no-rotate", false, "start with the rotation stopped")

	cmd.AddCommand(newInitCmd(opts))
	return cmd
}

func newInitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.config); err == nil && !opts.overwrite {
				return fmt.Errorf("meshview init: %s already exists; use --overwrite to replace it", opts.config)
			}
			if err := config.New().Save(opts.config); err != nil {
				return errors.Log(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", opts.config)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace an existing config file")
	return cmd
}

// loadConfig returns the defaults, overridden by the config file if
// it exists and then by the flags that were given. watch reports
// whether the file exists and can be watched for changes.
func loadConfig(cmd *cobra.Command, opts *options) (cfg *config.Config, watch bool, err error) {
	cfg, err = config.Open(opts.config)
	switch {
	case err == nil:
		watch = true
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.New()
	default:
		return nil, false, err
	}
	return cfg, watch, applyFlags(cmd, opts, cfg)
}

// applyFlags overrides cfg with the flags that were given and
// validates the result. It is also applied to reloaded config files.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Window.Width = opts.width
	}
	if f.Changed("height") {
		cfg.Window.Height = opts.height
	}
	if f.Changed("vsync") {
		cfg.Window.VSync = opts.vsync
	}
	if f.Changed("effect") {
		cfg.Scene.Effect = opts.effect
	}
	if f.Changed("model") {
		cfg.Scene.Model = opts.model
	}
	if f.Changed("dir") {
		cfg.Scene.Dir = opts.dir
	}
	if f.Changed("no-rotate") {
		cfg.Render.Rotate = !opts.noRotate
	}
	return cfg.Validate()
}

// commander runs renderer commands.
type commander interface {
	Execute(c renderer.Command)
}

// dispatch runs the commands bound in keys for the keys pressed and
// released between prev and cur, and reports whether quit was pressed.
func dispatch(r commander, keys *config.Keys, prev, cur input.Keys) (quit bool) {
	pressed := input.Pressed(prev, cur)
	released := input.Released(prev, cur)
	if pressed.Has(keys.ToggleRotation) {
		r.Execute(renderer.ToggleRotation)
	}
	if pressed.Has(keys.CycleFiltering) {
		r.Execute(renderer.CycleFilteringMethods)
	}
	if pressed.Has(keys.ToggleNormalMap) {
		r.Execute(renderer.ToggleNormalMap)
	}
	if pressed.Has(keys.FastRotation) {
		r.Execute(renderer.StartFastRotation)
	}
	if released.Has(keys.FastRotation) {
		r.Execute(renderer.StopFastRotation)
	}
	return pressed.Has(keys.Quit)
}
