// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package webgpu

import (
	"fmt"
	"image"

	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyW:          input.KeyW,
	glfw.KeyA:          input.KeyA,
	glfw.KeyS:          input.KeyS,
	glfw.KeyD:          input.KeyD,
	glfw.KeyF1:         input.KeyF1,
	glfw.KeyF2:         input.KeyF2,
	glfw.KeyF3:         input.KeyF3,
	glfw.KeyF4:         input.KeyF4,
	glfw.KeyF5:         input.KeyF5,
	glfw.KeyF6:         input.KeyF6,
	glfw.KeyF7:         input.KeyF7,
	glfw.KeyF8:         input.KeyF8,
	glfw.KeyF9:         input.KeyF9,
	glfw.KeyF10:        input.KeyF10,
	glfw.KeyLeftShift:  input.KeyLeftShift,
	glfw.KeyRightShift: input.KeyRightShift,
	glfw.KeyEscape:     input.KeyEscape,
}

// Window is a glfw window without a client API, presented to by
// WebGPU. It is both the [Surface] and the [input.Source].
// All methods must be called on the main thread.
type Window struct {
	win *glfw.Window

	keys    input.Keys
	buttons input.Buttons

	cursor    math32.Vector2
	hasCursor bool
	delta     math32.Vector2
}

// NewWindow initializes glfw and opens a window of the given size.
// IMPORTANT: must be called on the main initial thread, locked with
// runtime.LockOSThread.
func NewWindow(title string, size image.Point) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("webgpu.NewWindow: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("webgpu.NewWindow: %w", err)
	}
	w := &Window{win: win}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := glfwKeys[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			w.keys = w.keys.With(k)
		case glfw.Release:
			w.keys = w.keys.Without(k)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var b input.Buttons
		switch button {
		case glfw.MouseButtonLeft:
			b = input.ButtonLeft
		case glfw.MouseButtonRight:
			b = input.ButtonRight
		case glfw.MouseButtonMiddle:
			b = input.ButtonMiddle
		default:
			return
		}
		if action == glfw.Press {
			w.buttons |= b
		} else {
			w.buttons &^= b
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		pos := math32.Vec2(float32(x), float32(y))
		if w.hasCursor {
			w.delta = w.delta.Add(pos.Sub(w.cursor))
		}
		w.cursor = pos
		w.hasCursor = true
	})
	return w, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() image.Point {
	x, y := w.win.GetFramebufferSize()
	return image.Pt(x, y)
}

// SurfaceDescriptor returns the WebGPU descriptor of the window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

// PollEvents processes pending window events and reports whether
// the window is still open.
func (w *Window) PollEvents() bool {
	glfw.PollEvents()
	return !w.win.ShouldClose()
}

// Poll returns the input held since the last poll, and the mouse
// motion since then.
func (w *Window) Poll() input.State {
	st := input.State{Keys: w.keys, Buttons: w.buttons, MouseDelta: w.delta}
	w.delta = math32.Vector2{}
	return st
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Close asks the window to close; [Window.PollEvents] returns
// false afterwards.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Destroy destroys the window and terminates glfw.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

var _ input.Source = (*Window)(nil)
