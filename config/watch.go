// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch watches the config file at path and sends the reloaded
// config on the returned channel every time the file is written.
// Files that fail to parse are logged and skipped. The directory
// is watched so that editors replacing the file are seen. The
// channel is closed when ctx is done.
func Watch(ctx context.Context, path string) (<-chan *Config, error) {
	fn, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	fn, err = filepath.Abs(fn)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(fn)); err != nil {
		watcher.Close()
		return nil, err
	}
	ch := make(chan *Config, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != fn {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Open(fn)
				if err != nil {
					slog.Error("config.Watch: keeping previous config", "path", fn, "error", err)
					continue
				}
				select {
				case ch <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config.Watch: watcher error", "error", err)
			}
		}
	}()
	return ch, nil
}
