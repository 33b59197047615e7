// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build offscreen || !((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package main

import (
	"context"
	"fmt"

	"cogentcore.org/meshview/config"
	"cogentcore.org/meshview/gpu"
)

func run(ctx context.Context, cfg *config.Config, path string, reload func(*config.Config) error) error {
	return fmt.Errorf("meshview: %w: no window system on this platform", gpu.ErrUnsupported)
}
