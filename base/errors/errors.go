// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides the error helpers used across xyzrender:
// sentinel construction, joining, and logging through [log/slog].
package errors

import (
	"errors"
	"log/slog"
)

// Log logs the given error at [slog.LevelError] if it is non-nil,
// and returns it. It is used where an operation reports a failure
// that the caller may ignore:
//
//	errors.Log(rn.ResetCameraClippingRange())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// New returns a new sentinel error with the given text.
func New(text string) error {
	return errors.New(text)
}

// Join returns an error wrapping the given errors, discarding nils.
// It returns nil if all of them are nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
