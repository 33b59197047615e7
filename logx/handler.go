// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record,
// colored by level when the output supports it.
type Handler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
}

// NewHandler returns a new [Handler] writing to w. Records below
// the given level are dropped; a nil level means [UserLevel].
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{out: termenv.NewOutput(w), level: level, mu: &sync.Mutex{}}
}

// SetDefault installs a [Handler] on w at [UserLevel] as the default logger.
func SetDefault(w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(w, nil)))
}

func (h *Handler) minLevel() slog.Level {
	if h.level == nil {
		return UserLevel
	}
	return h.level.Level()
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.minLevel()
}

// LevelColor returns the terminal color used for records at the given level.
func LevelColor(l slog.Level) termenv.Color {
	switch {
	case l >= slog.LevelError:
		return termenv.ANSIBrightRed
	case l >= slog.LevelWarn:
		return termenv.ANSIYellow
	case l >= slog.LevelInfo:
		return termenv.ANSIGreen
	default:
		return termenv.ANSICyan
	}
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(h.out.String(r.Level.String()).Foreground(LevelColor(r.Level)).String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		if a.Equal(slog.Attr{}) {
			return true
		}
		sb.WriteByte(' ')
		sb.WriteString(h.out.String(a.Key).Faint().String())
		sb.WriteByte('=')
		sb.WriteString(a.Value.Resolve().String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		return write(h.qualify(a))
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// qualify prefixes the attribute key with the current group.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, h.qualify(a))
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		name = nh.group + "." + name
	}
	nh.group = name
	return &nh
}
