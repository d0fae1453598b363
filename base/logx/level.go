// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the verbosity level and the default
// terminal logger used by xyzrender commands.
package logx

import "log/slog"

// UserLevel is the lowest level that [NewHandler] shows.
// Commands set it from their -vv, -v and -q flags with [LevelFromFlags]
// before calling [SetDefaultLogger].
var UserLevel = slog.LevelWarn

// LevelFromFlags maps the verbosity flags of a command to a level:
// vv shows debug output such as per frame render times, v shows info
// such as cache hits and saved files, and q shows only errors. The
// most verbose flag given wins; with none the level is [slog.LevelWarn].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	}
	return slog.LevelWarn
}
