// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type innerDefaults struct {
	Speed float32 `default:"10"`
	Flag  bool    `default:"true"`
}

type testDefaults struct {
	Name   string    `default:"meshview"`
	Width  int       `default:"640"`
	Count  uint32    `default:"0x10"`
	Color  []float32 `default:"0.39, 0.59 0.93,1"`
	Inner  innerDefaults
	NoTag  int
	hidden string `default:"x"`
}

func TestSetFromDefaultTags(t *testing.T) {
	d := &testDefaults{NoTag: 7}
	require.NoError(t, SetFromDefaultTags(d))
	assert.Equal(t, "meshview", d.Name)
	assert.Equal(t, 640, d.Width)
	assert.Equal(t, uint32(16), d.Count)
	assert.Equal(t, []float32{0.39, 0.59, 0.93, 1}, d.Color)
	assert.Equal(t, float32(10), d.Inner.Speed)
	assert.True(t, d.Inner.Flag)
	assert.Equal(t, 7, d.NoTag)
	assert.Empty(t, d.hidden)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaultTags(testDefaults{}))
	assert.Error(t, SetFromDefaultTags(new(int)))

	type bad struct {
		N int `default:"many"`
	}
	assert.ErrorContains(t, SetFromDefaultTags(&bad{}), "field N")
}

type upper string

func (u *upper) UnmarshalText(text []byte) error {
	*u = upper(strings.ToUpper(string(text)))
	return nil
}

func TestSetFromDefaultTagsText(t *testing.T) {
	type keys struct {
		Toggle upper   `default:"f5"`
		Many   []upper `default:"a b"`
	}
	k := &keys{}
	require.NoError(t, SetFromDefaultTags(k))
	assert.Equal(t, upper("F5"), k.Toggle)
	assert.Equal(t, []upper{"A", "B"}, k.Many)
}
