// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a free-fly first-person camera driven by
// keyboard and mouse input, producing left-handed view and
// perspective projection matrices.
package camera

import (
	"log/slog"

	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
)

// Defaults for a new camera.
const (
	DefaultMoveSpeed   = 10
	DefaultRotateSpeed = 2
	DefaultNear        = 0.1
	DefaultFar         = 1000
)

// Camera is a free-fly camera. The view matrix is the inverse of
// Rotation4(Pitch, Yaw, 0) * Translation4(Origin); the projection is
// a left-handed perspective of FovAngle degrees vertically.
type Camera struct {
	// Origin is the camera position in world space.
	Origin math32.Vector3

	// Yaw is the total rotation about the Y axis, in radians.
	Yaw float32

	// Pitch is the total rotation about the X axis, in radians.
	Pitch float32

	// FovAngle is the vertical field of view, in degrees.
	FovAngle float32

	// Aspect is the width over height of the viewport.
	Aspect float32

	Near, Far float32

	// MoveSpeed is the translation speed in units per second.
	MoveSpeed float32

	// RotateSpeed scales mouse motion into radians per second.
	RotateSpeed float32

	// PitchLimit clamps Pitch to [-PitchLimit, PitchLimit] radians
	// when positive. Zero leaves pitch unclamped.
	PitchLimit float32

	view       math32.Matrix4
	invView    math32.Matrix4
	projection math32.Matrix4
}

// New returns a camera at origin with the given vertical field of
// view in degrees and an aspect ratio of 1.
func New(origin math32.Vector3, fovAngle float32) *Camera {
	c := &Camera{
		MoveSpeed:   DefaultMoveSpeed,
		RotateSpeed: DefaultRotateSpeed,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
	c.Initialize(fovAngle, origin, 1)
	return c
}

// Initialize resets the camera state and computes the view and
// projection matrices.
func (c *Camera) Initialize(fovAngle float32, origin math32.Vector3, aspect float32) {
	c.FovAngle = fovAngle
	c.Origin = origin
	c.Aspect = aspect
	c.Yaw, c.Pitch = 0, 0
	c.invView = math32.Identity4()
	c.view = math32.Identity4()
	c.CalculateViewMatrix()
	c.CalculateProjectionMatrix()
}

// SetAspectRatio sets the aspect ratio and recomputes the projection.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 || math32.IsNaN(aspect) {
		return
	}
	c.Aspect = aspect
	c.CalculateProjectionMatrix()
}

// Update moves and turns the camera from the input of one frame of
// elapsed seconds. Movement follows the orientation of the previous
// frame. The matrices are always recomputed.
func (c *Camera) Update(elapsed float32, st input.State) {
	var intent math32.Vector3
	if st.Keys.Has(input.KeyW) {
		intent.Z++
	}
	if st.Keys.Has(input.KeyS) {
		intent.Z--
	}
	if st.Keys.Has(input.KeyA) {
		intent.X--
	}
	if st.Keys.Has(input.KeyD) {
		intent.X++
	}

	d := st.MouseDelta
	turn := d.X * c.RotateSpeed * elapsed
	switch {
	case st.Buttons.Has(input.ButtonLeft | input.ButtonRight):
		intent.Y -= d.Y
	case st.Buttons.Has(input.ButtonRight):
		c.Yaw += turn
		c.Pitch -= d.Y * c.RotateSpeed * elapsed
	case st.Buttons.Has(input.ButtonLeft):
		c.Yaw += turn
		intent.Z -= d.Y
	}
	if c.PitchLimit > 0 {
		c.Pitch = math32.Clamp(c.Pitch, -c.PitchLimit, c.PitchLimit)
	}

	if !intent.IsZero() {
		move := c.invView.AxisX().MulScalar(intent.X).
			Add(c.invView.AxisY().MulScalar(intent.Y)).
			Add(c.invView.AxisZ().MulScalar(intent.Z))
		if !move.IsZero() {
			c.Origin.SetAdd(move.Normal().MulScalar(c.MoveSpeed * elapsed))
		}
	}

	c.CalculateViewMatrix()
	c.CalculateProjectionMatrix()
}

// CalculateViewMatrix recomputes the view matrix from the origin,
// yaw and pitch.
func (c *Camera) CalculateViewMatrix() {
	r := math32.Rotation4(c.Pitch, c.Yaw, 0)
	t := math32.Translation4(c.Origin)
	inv := r.Mul(&t)
	view, err := inv.Inverse()
	if err != nil {
		slog.Error("camera.CalculateViewMatrix: keeping previous view", "error", err)
		return
	}
	c.invView = inv
	c.view = view
}

// CalculateProjectionMatrix recomputes the projection matrix from the
// field of view, aspect ratio and clip planes.
func (c *Camera) CalculateProjectionMatrix() {
	fov := math32.Tan(math32.DegToRad(c.FovAngle) / 2)
	c.projection = math32.PerspectiveFovLH(fov, c.Aspect, c.Near, c.Far)
}

// View returns the view matrix.
func (c *Camera) View() *math32.Matrix4 { return &c.view }

// InverseView returns the camera-to-world matrix, whose rows are
// the camera right, up and forward axes and position.
func (c *Camera) InverseView() *math32.Matrix4 { return &c.invView }

// Projection returns the projection matrix.
func (c *Camera) Projection() *math32.Matrix4 { return &c.projection }

// ViewProjection returns View * Projection.
func (c *Camera) ViewProjection() math32.Matrix4 {
	return c.view.Mul(&c.projection)
}
