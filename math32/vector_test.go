// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2(t *testing.T) {
	assert.Equal(t, Vector2{5, 10}, Vec2(5, 10))
	v := Vec2(1, 2).Add(Vec2(3, 4))
	assert.Equal(t, Vector2{4, 6}, v)
	assert.Equal(t, Vector2{-2, -2}, Vec2(1, 2).Sub(Vec2(3, 4)))
	assert.Equal(t, Vector2{2, 4}, Vec2(1, 2).MulScalar(2))
	assert.Equal(t, float32(11), Vec2(1, 2).Dot(Vec2(3, 4)))
	assert.Equal(t, float32(-2), Vec2(1, 2).Cross(Vec2(3, 4)))
	assert.True(t, Vector2{}.IsZero())
	assert.False(t, v.IsZero())
}

func TestVector3(t *testing.T) {
	assert.Equal(t, Vector3{1, 2, 3}, Vector3FromSlice([]float32{1, 2, 3}))
	assert.Equal(t, Vector3{2, 2, 2}, Vector3Scalar(2))
	x, y := Vec3(1, 0, 0), Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, float32(0), x.Dot(y))
	assert.Equal(t, Vec3(-1, 0, 0), x.Negate())
	assert.InDelta(t, 5, Vec3(3, 4, 0).Length(), 1e-6)
	assert.InDelta(t, 1, Vec3(3, 4, 12).Normal().Length(), 1e-6)

	// rejection removes the component along other
	r := Vec3(1, 1, 0).Reject(x)
	assert.InDelta(t, 0, r.X, 1e-6)
	assert.InDelta(t, 1, r.Y, 1e-6)

	v := Vec3(1, 2, 3)
	v.SetAdd(Vec3(1, 1, 1))
	assert.Equal(t, Vec3(2, 3, 4), v)
	assert.Equal(t, Vec3(1, 1.5, 2), v.DivScalar(2))
}

func TestVector4(t *testing.T) {
	v := Vector4FromVector3(Vec3(2, 4, 6), 2)
	assert.Equal(t, Vec3(1, 2, 3), v.PerspDiv())
	assert.Equal(t, Vec3(2, 4, 6), v.Vector3())
	assert.Equal(t, float32(4+16+36+4), v.Dot(v))
}
