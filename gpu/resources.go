// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Releaser is anything holding GPU resources that must be released.
type Releaser interface {
	Release()
}

// ReleaseFunc adapts a function to the [Releaser] interface.
type ReleaseFunc func()

func (f ReleaseFunc) Release() { f() }

// Resources is an ownership list: resources are added in
// construction order and released in reverse order, exactly once.
// The zero value is ready to use.
type Resources struct {
	items []Releaser
}

// Add takes ownership of the given resources.
func (rs *Resources) Add(r ...Releaser) {
	rs.items = append(rs.items, r...)
}

// Len returns the number of resources currently owned.
func (rs *Resources) Len() int {
	return len(rs.items)
}

// Release releases all owned resources in reverse order of addition
// and empties the list, so calling it again does nothing.
func (rs *Resources) Release() {
	items := rs.items
	rs.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Release()
	}
}
