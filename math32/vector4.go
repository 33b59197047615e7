// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Vector4 is a vector/point in homogeneous coordinates with X, Y, Z and W components.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Vec4 returns a new [Vector4] with the given x, y, z, and w components.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Vector4FromVector3 returns a new [Vector4] from the given [Vector3] and w component.
func Vector4FromVector3(v Vector3, w float32) Vector4 {
	return Vector4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", v.X, v.Y, v.Z, v.W)
}

// Vector3 returns the X, Y, Z components.
func (v Vector4) Vector3() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Dot returns the dot product of this vector with other.
func (v Vector4) Dot(other Vector4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// MulMatrix4 returns the row vector v multiplied by the matrix, v * m.
func (v Vector4) MulMatrix4(m *Matrix4) Vector4 {
	return Vector4{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		W: v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// PerspDiv returns the 3-vector of normalized display coordinates (NDC) from given
// homogeneous coordinates, dividing by the W component.
func (v Vector4) PerspDiv() Vector3 {
	return Vector3{X: v.X / v.W, Y: v.Y / v.W, Z: v.Z / v.W}
}
