// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timer provides the frame timer: elapsed seconds since
// the previous frame on the monotonic clock, and a frames per
// second estimate.
package timer

import "time"

// Timer measures frame times. Call [Timer.Start] once, then
// [Timer.Update] at the start of every frame.
type Timer struct {
	// Now returns the current time; defaults to [time.Now].
	Now func() time.Time

	start, last time.Time
	elapsed     float32
	total       float32

	fps       float32
	fpsFrames int
	fpsStart  time.Time
}

// New returns a new timer using [time.Now].
func New() *Timer {
	return &Timer{Now: time.Now}
}

// Start resets the timer.
func (t *Timer) Start() {
	if t.Now == nil {
		t.Now = time.Now
	}
	t.start = t.Now()
	t.last = t.start
	t.fpsStart = t.start
	t.elapsed, t.total, t.fps, t.fpsFrames = 0, 0, 0, 0
}

// Update advances the timer by one frame.
func (t *Timer) Update() {
	now := t.Now()
	t.elapsed = float32(now.Sub(t.last).Seconds())
	t.total = float32(now.Sub(t.start).Seconds())
	t.last = now

	t.fpsFrames++
	if span := now.Sub(t.fpsStart); span >= time.Second {
		t.fps = float32(float64(t.fpsFrames) / span.Seconds())
		t.fpsFrames = 0
		t.fpsStart = now
	}
}

// Elapsed returns the seconds between the last two updates.
func (t *Timer) Elapsed() float32 { return t.elapsed }

// Total returns the seconds since [Timer.Start] at the last update.
func (t *Timer) Total() float32 { return t.total }

// FPS returns the frames per second measured over the last full second.
func (t *Timer) FPS() float32 { return t.fps }
