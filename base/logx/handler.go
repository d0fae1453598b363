// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// levelColors are the ANSI colors used for the level label.
var levelColors = map[slog.Level]termenv.ANSIColor{
	slog.LevelDebug: termenv.ANSIBrightBlack,
	slog.LevelInfo:  termenv.ANSICyan,
	slog.LevelWarn:  termenv.ANSIYellow,
	slog.LevelError: termenv.ANSIRed,
}

// NewHandler returns a text [slog.Handler] writing to w at [UserLevel],
// with the level label colored according to the color profile of w.
// Colors are dropped automatically when w is not a terminal.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lv, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			c, ok := levelColors[lv]
			if !ok {
				return a
			}
			a.Value = slog.StringValue(out.String(lv.String()).Foreground(c).String())
			return a
		},
	})
}

// SetDefaultLogger sets the default logger to one writing to
// [os.Stderr] through [NewHandler], using the current [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}
