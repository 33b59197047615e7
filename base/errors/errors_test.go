// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLog(t *testing.T) {
	buf := captureLog(t)
	assert.NoError(t, Log(nil))
	assert.Empty(t, buf.String())

	err := New("boom")
	assert.Equal(t, err, Log(err))
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "errors_test.go")
}

func TestLog1(t *testing.T) {
	buf := captureLog(t)
	assert.Equal(t, 3, Log1(3, nil))
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, Log1(0, New("bad value")))
	assert.Contains(t, buf.String(), "bad value")
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "ctx"))
	base := New("inner")
	err := Wrapf(base, "loading %q", "a.obj")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, `loading "a.obj": inner`, err.Error())
}
