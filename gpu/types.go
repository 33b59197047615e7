// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
	"unsafe"
)

// Types is a list of supported GPU data types, for vertex attributes,
// index buffers and effect variables.
type Types int32

const (
	UndefinedType Types = iota
	Bool32

	Uint16
	Uint32

	Float32
	Float32Vector2
	Float32Vector3 // note: only use for vertex data -- not properly aligned for uniforms
	Float32Vector4

	Float32Matrix4 // std transform matrix: math32.Matrix4 works directly
)

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Bool32:         4,
	Uint16:         2,
	Uint32:         4,
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,
	Float32Matrix4: 64,
}

// Bytes returns number of bytes for this type
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// Align returns the uniform block alignment of this type.
func (tp Types) Align() int {
	switch tp {
	case Float32Vector2:
		return 8
	case Float32Vector3, Float32Vector4, Float32Matrix4:
		return 16
	}
	return 4
}

var typeNames = map[Types]string{
	UndefinedType:  "UndefinedType",
	Bool32:         "Bool32",
	Uint16:         "Uint16",
	Uint32:         "Uint32",
	Float32:        "Float32",
	Float32Vector2: "Float32Vector2",
	Float32Vector3: "Float32Vector3",
	Float32Vector4: "Float32Vector4",
	Float32Matrix4: "Float32Matrix4",
}

func (tp Types) String() string {
	if n, ok := typeNames[tp]; ok {
		return n
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// Topologies are the primitive assembly modes.
type Topologies int32

const (
	TriangleList Topologies = iota
	TriangleStrip
	LineList
	PointList
)

func (tp Topologies) String() string {
	switch tp {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	case LineList:
		return "LineList"
	case PointList:
		return "PointList"
	}
	return fmt.Sprintf("Topologies(%d)", int32(tp))
}

// BufferUsage is the role of a buffer.
type BufferUsage int32

const (
	VertexBuffer BufferUsage = iota
	IndexBuffer
	UniformBuffer
)

func (bu BufferUsage) String() string {
	switch bu {
	case VertexBuffer:
		return "VertexBuffer"
	case IndexBuffer:
		return "IndexBuffer"
	case UniformBuffer:
		return "UniformBuffer"
	}
	return fmt.Sprintf("BufferUsage(%d)", int32(bu))
}

// TextureFormats are the supported texture pixel formats.
type TextureFormats int32

const (
	// RGBA8UnormSrgb is 8 bits per channel RGBA in sRGB colorspace,
	// the standard format for color maps.
	RGBA8UnormSrgb TextureFormats = iota

	// RGBA8Unorm is 8 bits per channel RGBA, linear, for data maps
	// such as normals, specular and glossiness.
	RGBA8Unorm
)

func (tf TextureFormats) String() string {
	if tf == RGBA8Unorm {
		return "RGBA8Unorm"
	}
	return "RGBA8UnormSrgb"
}

// FilterModes are the texture sampling filters a technique uses.
type FilterModes int32

const (
	FilterPoint FilterModes = iota
	FilterLinear
	FilterAnisotropic
)

var filterNames = [...]string{"point", "linear", "anisotropic"}

func (fm FilterModes) String() string {
	if fm < 0 || int(fm) >= len(filterNames) {
		return fmt.Sprintf("FilterModes(%d)", int32(fm))
	}
	return filterNames[fm]
}

// SetString sets the filter mode from its name, case insensitive.
func (fm *FilterModes) SetString(s string) error {
	for i, n := range filterNames {
		if strings.EqualFold(n, s) {
			*fm = FilterModes(i)
			return nil
		}
	}
	return fmt.Errorf("gpu: unknown filter mode %q", s)
}

// ToBytes returns the raw memory of the given slice as bytes,
// without copying.
func ToBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(z)))
}
