// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// VertexAttribute is one attribute of an interleaved vertex.
type VertexAttribute struct {
	// Name is the semantic name, e.g. POSITION or TEXCOORD.
	Name string

	// Type is the attribute data type.
	Type Types

	// Offset is the byte offset of the attribute within the vertex.
	Offset uint32
}

// VertexLayout describes the attributes of an interleaved vertex
// buffer; attribute i is bound to shader location i.
type VertexLayout struct {
	Attributes []VertexAttribute

	// Stride is the size of one vertex in bytes.
	Stride uint32
}

// Validate checks that attributes lie inside the stride and do not overlap.
func (vl *VertexLayout) Validate() error {
	if len(vl.Attributes) == 0 {
		return fmt.Errorf("gpu.VertexLayout: no attributes")
	}
	end := uint32(0)
	for _, a := range vl.Attributes {
		sz := uint32(a.Type.Bytes())
		if sz == 0 {
			return fmt.Errorf("gpu.VertexLayout: attribute %s has unsupported type %v", a.Name, a.Type)
		}
		if a.Offset < end {
			return fmt.Errorf("gpu.VertexLayout: attribute %s at offset %d overlaps previous attribute", a.Name, a.Offset)
		}
		end = a.Offset + sz
	}
	if end > vl.Stride {
		return fmt.Errorf("gpu.VertexLayout: attributes end at %d beyond stride %d", end, vl.Stride)
	}
	return nil
}

// Key returns a string identifying the layout, for caching
// pipelines per layout.
func (vl *VertexLayout) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", vl.Stride)
	for _, a := range vl.Attributes {
		fmt.Fprintf(&sb, "|%s:%d@%d", a.Name, a.Type, a.Offset)
	}
	return sb.String()
}
