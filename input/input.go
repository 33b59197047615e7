// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input defines the per-frame input snapshot consumed by
// the camera and the renderer commands.
package input

import (
	"fmt"
	"strings"

	"cogentcore.org/meshview/math32"
)

// Keys is a set of currently held keys, one bit per [Key].
type Keys uint64

// Key is a keyboard key known to meshview.
type Key int32

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyLeftShift
	KeyRightShift
	KeyEscape

	KeysN
)

var keyNames = [KeysN]string{
	"W", "A", "S", "D",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10",
	"LeftShift", "RightShift", "Escape",
}

func (k Key) String() string {
	if k < 0 || k >= KeysN {
		return "Unknown"
	}
	return keyNames[k]
}

// KeyFromString returns the key with the given name, case insensitive,
// and whether it was found.
func KeyFromString(s string) (Key, bool) {
	for k, n := range keyNames {
		if strings.EqualFold(n, s) {
			return Key(k), true
		}
	}
	return -1, false
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	key, ok := KeyFromString(string(text))
	if !ok {
		return fmt.Errorf("input: unknown key %q", text)
	}
	*k = key
	return nil
}

// Has returns whether the key is in the set.
func (ks Keys) Has(k Key) bool {
	return ks&(1<<uint(k)) != 0
}

// With returns the set with the key added.
func (ks Keys) With(k Key) Keys {
	return ks | 1<<uint(k)
}

// Without returns the set with the key removed.
func (ks Keys) Without(k Key) Keys {
	return ks &^ (1 << uint(k))
}

// Buttons is a mouse-button mask.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

// Has returns whether all the given buttons are held.
func (b Buttons) Has(o Buttons) bool {
	return b&o == o
}

// State is the input polled for one frame.
type State struct {
	// Keys are the keys currently held down.
	Keys Keys

	// Buttons are the mouse buttons currently held down.
	Buttons Buttons

	// MouseDelta is the relative mouse motion since the previous poll, in pixels.
	MouseDelta math32.Vector2
}

// Source is polled once per frame for the current input state.
type Source interface {
	Poll() State
}

// Pressed returns the keys held in cur that were not held in prev.
func Pressed(prev, cur Keys) Keys {
	return cur &^ prev
}

// Released returns the keys held in prev that are no longer held in cur.
func Released(prev, cur Keys) Keys {
	return prev &^ cur
}
