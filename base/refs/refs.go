// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refs provides holder-tracking reference counts for objects
// shared between owners, so that ownership transfers can be verified
// and a release by a non-holder is detected rather than silently ignored.
package refs

import (
	"fmt"
	"slices"
)

// Counter tracks the set of owners currently holding a reference.
// The zero value has no holders. A Counter must not be copied
// after first use.
type Counter struct {
	holders []any

	// released counts every successful Unregister, for instrumentation.
	released int
}

// Register records owner as a holder.
func (c *Counter) Register(owner any) {
	c.holders = append(c.holders, owner)
}

// Unregister removes one reference held by owner.
// It returns an error if owner does not hold a reference.
func (c *Counter) Unregister(owner any) error {
	i := slices.Index(c.holders, owner)
	if i < 0 {
		return fmt.Errorf("refs: %T is not a holder", owner)
	}
	c.holders = slices.Delete(c.holders, i, i+1)
	c.released++
	return nil
}

// Count returns the number of references currently held.
func (c *Counter) Count() int {
	return len(c.holders)
}

// Released returns the total number of references released so far.
func (c *Counter) Released() int {
	return c.released
}

// HeldBy returns whether owner holds at least one reference.
func (c *Counter) HeldBy(owner any) bool {
	return slices.Contains(c.holders, owner)
}
