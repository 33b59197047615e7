// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a float32 based vector and matrix package
// for 3D rendering, using the left-handed, row-vector convention:
// points are row vectors transformed as v * M, so transforms
// compose left to right.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// Scalar functions forward to chewxy/math32.

const (
	Pi = math.Pi

	// DegToRadFactor converts degrees to radians.
	DegToRadFactor = Pi / 180
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return math32.Sin(x)
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return math32.Cos(x)
}

// Sincos returns Sin(x), Cos(x).
func Sincos(x float32) (sin, cos float32) {
	return math32.Sincos(x)
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return math32.Tan(x)
}

// IsNaN reports whether f is a "not-a-number" value.
func IsNaN(x float32) bool {
	return math32.IsNaN(x)
}

// Clamp limits x to [a, b].
func Clamp[T cmp.Ordered](x, a, b T) T {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
