// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mtime provides modification timestamps: a process-wide,
// monotonically increasing counter that orders modifications of
// independent objects so that staleness can be decided by comparison.
package mtime

import "sync/atomic"

// Time is a modification time. Larger values were modified later.
// The zero Time is earlier than every stamped modification.
type Time uint64

// clock is the global modification counter.
var clock atomic.Uint64

// Now advances the global clock and returns the new time.
func Now() Time {
	return Time(clock.Add(1))
}

// Stamp records the time of the last modification of an object.
// The zero value has never been modified.
type Stamp struct {
	time Time
}

// Modified updates the stamp to a new, later time.
func (s *Stamp) Modified() {
	s.time = Now()
}

// Time returns the time of the last modification.
func (s *Stamp) Time() Time {
	return s.time
}

// Max returns the latest of the given times.
func Max(times ...Time) Time {
	var m Time
	for _, t := range times {
		m = max(m, t)
	}
	return m
}
