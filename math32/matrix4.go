// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"errors"
	"fmt"
)

// Matrix4 is a 4x4 matrix stored in row-major order: element (r, c)
// is at index r*4+c. Points are row vectors, so v * A * B applies A
// first, and the translation lives in the last row. Uploaded to a
// shader as is, it reads as the transpose, so a WGSL shader computes
// mat * v to get the same result.
type Matrix4 [16]float32

// ErrSingular is returned by [Matrix4.Inverse] for non-invertible matrices.
var ErrSingular = errors.New("math32: singular matrix")

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation4 returns a translation matrix for the given offset.
func Translation4(v Vector3) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale4 returns a scaling matrix for the given per-axis factors.
func Scale4(v Vector3) Matrix4 {
	return Matrix4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationX4 returns a left-handed rotation about the X axis by the given angle in radians.
func RotationX4(angle float32) Matrix4 {
	s, c := Sincos(angle)
	return Matrix4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY4 returns a left-handed rotation about the Y axis by the given angle in radians.
func RotationY4(angle float32) Matrix4 {
	s, c := Sincos(angle)
	return Matrix4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ4 returns a left-handed rotation about the Z axis by the given angle in radians.
func RotationZ4(angle float32) Matrix4 {
	s, c := Sincos(angle)
	return Matrix4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotation4 returns RotationX4(pitch) * RotationY4(yaw) * RotationZ4(roll):
// pitch is applied first, in the object's own frame.
func Rotation4(pitch, yaw, roll float32) Matrix4 {
	rx := RotationX4(pitch)
	ry := RotationY4(yaw)
	rz := RotationZ4(roll)
	r := rx.Mul(&ry)
	return r.Mul(&rz)
}

// PerspectiveFovLH returns a left-handed perspective projection mapping
// view depth [near, far] to [0, 1]. fov is the tangent of half the
// vertical field of view angle, not the angle itself.
func PerspectiveFovLH(fov, aspect, near, far float32) Matrix4 {
	q := far / (far - near)
	return Matrix4{
		1 / (aspect * fov), 0, 0, 0,
		0, 1 / fov, 0, 0,
		0, 0, q, 1,
		0, 0, -near * q, 0,
	}
}

func (m *Matrix4) String() string {
	return fmt.Sprintf("[%v %v %v %v]\n[%v %v %v %v]\n[%v %v %v %v]\n[%v %v %v %v]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

// At returns the element at the given row and column.
func (m *Matrix4) At(row, col int) float32 {
	return m[row*4+col]
}

// Row returns the given row as a [Vector4].
func (m *Matrix4) Row(row int) Vector4 {
	i := row * 4
	return Vector4{m[i], m[i+1], m[i+2], m[i+3]}
}

// AxisX returns the X basis axis of the transform (first row).
func (m *Matrix4) AxisX() Vector3 { return Vector3{m[0], m[1], m[2]} }

// AxisY returns the Y basis axis of the transform (second row).
func (m *Matrix4) AxisY() Vector3 { return Vector3{m[4], m[5], m[6]} }

// AxisZ returns the Z basis axis of the transform (third row).
func (m *Matrix4) AxisZ() Vector3 { return Vector3{m[8], m[9], m[10]} }

// Translation returns the translation part of the transform (last row).
func (m *Matrix4) Translation() Vector3 { return Vector3{m[12], m[13], m[14]} }

// Mul returns the matrix product m * other.
func (m *Matrix4) Mul(other *Matrix4) Matrix4 {
	var r Matrix4
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[row*4+k] * other[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Transpose returns the transpose of this matrix.
func (m *Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for row := range 4 {
		for col := range 4 {
			r[col*4+row] = m[row*4+col]
		}
	}
	return r
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix4) Determinant() float32 {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	return s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
}

// Inverse returns the inverse of this matrix, or [ErrSingular]
// and the identity if it has no inverse.
func (m *Matrix4) Inverse() (Matrix4, error) {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity4(), ErrSingular
	}
	id := 1 / det

	var r Matrix4
	r[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * id
	r[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * id
	r[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * id
	r[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * id

	r[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * id
	r[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * id
	r[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * id
	r[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * id

	r[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * id
	r[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * id
	r[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * id
	r[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * id

	r[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * id
	r[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * id
	r[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * id
	r[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * id
	return r, nil
}

// ApproxEqual returns whether all elements of the matrices
// differ by no more than tol.
func (m *Matrix4) ApproxEqual(other *Matrix4, tol float32) bool {
	for i := range m {
		if Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}
