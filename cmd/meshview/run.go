// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/meshview/assets"
	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/gpu/webgpu"
	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/renderer"
	"cogentcore.org/meshview/timer"
)

// run opens the window and runs the frame loop until the window is
// closed, quit is pressed or ctx is done. If path is not empty, the
// config file is watched and changes are applied between frames,
// after reload has reapplied the command line overrides.
func run(ctx context.Context, cfg *config.Config, path string, reload func(*config.Config) error) error {
	win, err := webgpu.NewWindow(cfg.Window.Title, image.Pt(cfg.Window.Width, cfg.Window.Height))
	if err != nil {
		return err
	}
	defer win.Destroy()

	r := renderer.New(webgpu.NewBackend(), win, cfg)
	defer r.Release()
	if !r.Initialized() {
		return fmt.Errorf("meshview: %w", gpu.ErrDeviceCreation)
	}
	r.LoadScene(assets.Content, cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var updates <-chan *config.Config
	if path != "" {
		updates, err = config.Watch(ctx, path)
		if err != nil {
			slog.Warn("meshview: not watching config", "path", path, "error", err)
		}
	}

	tm := timer.New()
	tm.Start()
	var prev input.Keys
	lastLog := float32(0)
	for win.PollEvents() {
		select {
		case <-ctx.Done():
			return nil
		case nc, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			if err := reload(nc); err != nil {
				slog.Error("meshview: reloaded config rejected", "path", path, "error", err)
				break
			}
			slog.Info("meshview: config reloaded", "path", path)
			cfg.Keys = nc.Keys
			r.ApplyConfig(nc)
		default:
		}
		r.Resize(win.Size())

		st := win.Poll()
		if dispatch(r, &cfg.Keys, prev, st.Keys) {
			win.Close()
		}
		prev = st.Keys

		tm.Update()
		r.Update(tm.Elapsed(), st)
		r.Render()

		if tm.Total()-lastLog >= 1 {
			lastLog = tm.Total()
			slog.Info("meshview", "fps", tm.FPS())
			win.SetTitle(fmt.Sprintf("%s - %.0f fps", cfg.Window.Title, tm.FPS()))
		}
	}
	return nil
}
