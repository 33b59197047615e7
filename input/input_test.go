// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	var ks Keys
	ks = ks.With(KeyW).With(KeyF5)
	assert.True(t, ks.Has(KeyW))
	assert.True(t, ks.Has(KeyF5))
	assert.False(t, ks.Has(KeyS))
	ks = ks.Without(KeyW)
	assert.False(t, ks.Has(KeyW))

	prev := Keys(0).With(KeyLeftShift)
	cur := Keys(0).With(KeyF6)
	assert.Equal(t, Keys(0).With(KeyF6), Pressed(prev, cur))
	assert.Equal(t, Keys(0).With(KeyLeftShift), Released(prev, cur))
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "F7", KeyF7.String())
	assert.Equal(t, "Unknown", Key(99).String())
	k, ok := KeyFromString("leftshift")
	assert.True(t, ok)
	assert.Equal(t, KeyLeftShift, k)
	_, ok = KeyFromString("F13")
	assert.False(t, ok)
}

func TestButtons(t *testing.T) {
	b := ButtonLeft | ButtonRight
	assert.True(t, b.Has(ButtonLeft))
	assert.True(t, b.Has(ButtonLeft|ButtonRight))
	assert.False(t, ButtonRight.Has(ButtonLeft|ButtonRight))
}

func TestKeyText(t *testing.T) {
	var k Key
	assert.NoError(t, k.UnmarshalText([]byte("leftshift")))
	assert.Equal(t, KeyLeftShift, k)
	assert.Error(t, k.UnmarshalText([]byte("Hyper")))
	b, err := KeyF6.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "F6", string(b))
}
