// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"cogentcore.org/meshview/input"
	"cogentcore.org/meshview/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec3(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestNew(t *testing.T) {
	c := New(math32.Vec3(0, 0, -50), 45)
	assert.Equal(t, float32(DefaultMoveSpeed), c.MoveSpeed)
	assert.Equal(t, float32(DefaultRotateSpeed), c.RotateSpeed)
	assert.Equal(t, float32(0.1), c.Near)
	assert.Equal(t, float32(1000), c.Far)
	assert.Zero(t, c.PitchLimit)

	// the origin maps to the view space origin
	p := math32.Vec3(0, 0, -50).MulMatrix4AsPoint(c.View())
	assertVec3(t, math32.Vector3{}, p)

	// a point in front of the camera has positive view depth
	p = math32.Vec3(0, 0, 0).MulMatrix4AsPoint(c.View())
	assertVec3(t, math32.Vec3(0, 0, 50), p)
}

func TestProjection(t *testing.T) {
	c := New(math32.Vector3{}, 90)
	c.SetAspectRatio(2)
	pr := c.Projection()
	assert.InDelta(t, 0.5, pr[0], tol)
	assert.InDelta(t, 1, pr[5], tol)

	near := math32.Vector4FromVector3(math32.Vec3(0, 0, c.Near), 1).MulMatrix4(pr).PerspDiv()
	far := math32.Vector4FromVector3(math32.Vec3(0, 0, c.Far), 1).MulMatrix4(pr).PerspDiv()
	assert.InDelta(t, 0, near.Z, tol)
	assert.InDelta(t, 1, far.Z, tol)

	c.SetAspectRatio(0)
	assert.Equal(t, float32(2), c.Aspect)
}

func TestUpdateKeys(t *testing.T) {
	c := New(math32.Vec3(0, 0, -50), 45)
	c.Update(0.5, input.State{Keys: input.Keys(0).With(input.KeyW)})
	assertVec3(t, math32.Vec3(0, 0, -45), c.Origin)

	c.Update(0.5, input.State{Keys: input.Keys(0).With(input.KeyD)})
	assertVec3(t, math32.Vec3(5, 0, -45), c.Origin)

	// opposite keys cancel
	c.Update(1, input.State{Keys: input.Keys(0).With(input.KeyA).With(input.KeyD)})
	assertVec3(t, math32.Vec3(5, 0, -45), c.Origin)

	// diagonal motion is normalized
	c = New(math32.Vector3{}, 45)
	c.Update(1, input.State{Keys: input.Keys(0).With(input.KeyW).With(input.KeyD)})
	assert.InDelta(t, 10, c.Origin.Length(), tol)
}

func TestUpdateMouse(t *testing.T) {
	c := New(math32.Vector3{}, 45)
	c.Update(0.1, input.State{Buttons: input.ButtonRight, MouseDelta: math32.Vec2(10, 5)})
	assert.InDelta(t, 2, c.Yaw, tol)
	assert.InDelta(t, -1, c.Pitch, tol)
	assertVec3(t, math32.Vector3{}, c.Origin)

	c = New(math32.Vector3{}, 45)
	c.Update(0.1, input.State{Buttons: input.ButtonLeft, MouseDelta: math32.Vec2(10, -3)})
	assert.InDelta(t, 2, c.Yaw, tol)
	assert.Zero(t, c.Pitch)
	// forward motion uses the identity basis of the previous frame
	assertVec3(t, math32.Vec3(0, 0, 1), c.Origin)

	c = New(math32.Vector3{}, 45)
	c.Update(0.1, input.State{Buttons: input.ButtonLeft | input.ButtonRight, MouseDelta: math32.Vec2(10, 3)})
	assert.Zero(t, c.Yaw)
	assertVec3(t, math32.Vec3(0, -1, 0), c.Origin)
}

func TestMovementFollowsYaw(t *testing.T) {
	c := New(math32.Vector3{}, 45)
	c.Yaw = math32.Pi / 2
	c.CalculateViewMatrix()
	c.Update(1, input.State{Keys: input.Keys(0).With(input.KeyW)})
	assertVec3(t, math32.Vec3(10, 0, 0), c.Origin)
}

func TestPitchLimit(t *testing.T) {
	c := New(math32.Vector3{}, 45)
	st := input.State{Buttons: input.ButtonRight, MouseDelta: math32.Vec2(0, -100)}
	c.Update(1, st)
	assert.InDelta(t, 200, c.Pitch, tol)

	c = New(math32.Vector3{}, 45)
	c.PitchLimit = math32.DegToRad(89)
	c.Update(1, st)
	assert.InDelta(t, math32.DegToRad(89), c.Pitch, tol)
	st.MouseDelta.Y = 100
	c.Update(1, st)
	assert.InDelta(t, -math32.DegToRad(89), c.Pitch, tol)
}

func TestViewInverse(t *testing.T) {
	c := New(math32.Vec3(3, -2, 7), 60)
	c.Yaw, c.Pitch = 0.3, -0.4
	c.CalculateViewMatrix()
	m := c.View().Mul(c.InverseView())
	id := math32.Identity4()
	assert.True(t, m.ApproxEqual(&id, tol))
	assertVec3(t, c.Origin, c.InverseView().Translation())
}

func TestViewInvariantAfterUpdate(t *testing.T) {
	c := New(math32.Vec3(1, 2, 3), 45)
	inputs := []input.State{
		{},
		{Keys: input.Keys(0).With(input.KeyW).With(input.KeyA)},
		{Buttons: input.ButtonRight, MouseDelta: math32.Vec2(7, -4)},
		{Buttons: input.ButtonLeft, MouseDelta: math32.Vec2(-3, 2)},
		{Buttons: input.ButtonLeft | input.ButtonRight, MouseDelta: math32.Vec2(1, 9)},
	}
	for _, st := range inputs {
		c.Update(0.016, st)
		r := math32.Rotation4(c.Pitch, c.Yaw, 0)
		tr := math32.Translation4(c.Origin)
		inv := r.Mul(&tr)
		want, err := inv.Inverse()
		assert.NoError(t, err)
		assert.True(t, c.View().ApproxEqual(&want, tol))
	}
}

func TestProjectionIdempotent(t *testing.T) {
	c := New(math32.Vector3{}, 60)
	c.SetAspectRatio(1.5)
	first := *c.Projection()
	c.CalculateProjectionMatrix()
	c.CalculateProjectionMatrix()
	assert.Equal(t, first, *c.Projection())
}
