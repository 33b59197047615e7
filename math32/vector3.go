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

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3Scalar returns a new [Vector3] with all components set to the given scalar value.
func Vector3Scalar(scalar float32) Vector3 {
	return Vector3{X: scalar, Y: scalar, Z: scalar}
}

// Vector3FromSlice returns a new [Vector3] from the first three
// values of the slice, or the zero vector if it is too short.
func Vector3FromSlice(s []float32) Vector3 {
	if len(s) < 3 {
		return Vector3{}
	}
	return Vector3{s[0], s[1], s[2]}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}

// Add adds other vector to this one and returns result in a new vector.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// SetAdd sets this to addition with other vector (i.e., += or plus-equals).
func (v *Vector3) SetAdd(other Vector3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// MulScalar multiplies each component of this vector by the scalar s and returns resulting vector.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar divides each component of this vector by the scalar s and returns resulting vector.
// If scalar is zero, returns zero.
func (v Vector3) DivScalar(scalar float32) Vector3 {
	if scalar == 0 {
		return Vector3{}
	}
	return v.MulScalar(1 / scalar)
}

// Negate returns vector with each component negated.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of this vector with other.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of this vector with other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the length squared of this vector.
func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of this vector.
func (v Vector3) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// Normal returns this vector divided by its length (its unit vector).
// The zero vector stays zero.
func (v Vector3) Normal() Vector3 {
	return v.DivScalar(v.Length())
}

// Reject returns the component of this vector orthogonal to other:
// the vector minus its projection onto other.
func (v Vector3) Reject(other Vector3) Vector3 {
	ls := other.LengthSquared()
	if ls == 0 {
		return v
	}
	return v.Sub(other.MulScalar(v.Dot(other) / ls))
}

// IsZero returns whether all components are zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// MulMatrix4AsPoint returns the vector transformed by the matrix
// as a point (w = 1), without perspective divide.
func (v Vector3) MulMatrix4AsPoint(m *Matrix4) Vector3 {
	return Vector4FromVector3(v, 1).MulMatrix4(m).Vector3()
}

// MulMatrix4AsVector returns the vector transformed by the matrix
// as a direction (w = 0), ignoring translation.
func (v Vector3) MulMatrix4AsVector(m *Matrix4) Vector3 {
	return Vector4FromVector3(v, 0).MulMatrix4(m).Vector3()
}
