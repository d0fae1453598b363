// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"iter"
	"slices"

	"cogentcore.org/xyzrender/base/mtime"
)

// Collection is an ordered list of items, such as props, lights or cullers.
// Iteration through [Collection.All] is stateless: every call returns a
// fresh sequence, so scans may be nested or restarted freely.
type Collection[T comparable] struct {
	items []T
	stamp mtime.Stamp
}

// NewCollection returns a new collection holding the given items.
func NewCollection[T comparable](items ...T) *Collection[T] {
	c := &Collection[T]{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add appends the item to the collection.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
	c.stamp.Modified()
}

// Remove removes the first occurrence of the item, returning whether it was found.
func (c *Collection[T]) Remove(item T) bool {
	i := slices.Index(c.items, item)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.stamp.Modified()
	return true
}

// RemoveAll removes all items.
func (c *Collection[T]) RemoveAll() {
	if len(c.items) == 0 {
		return
	}
	clear(c.items)
	c.items = c.items[:0]
	c.stamp.Modified()
}

// Contains returns whether the item is in the collection.
func (c *Collection[T]) Contains(item T) bool {
	return slices.Contains(c.items, item)
}

// Len returns the number of items. A nil collection is empty.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at the given index.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// All returns a sequence over the items in order.
// A nil collection yields nothing.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if c == nil {
			return
		}
		for _, it := range c.items {
			if !yield(it) {
				return
			}
		}
	}
}

// Slice returns a copy of the items.
func (c *Collection[T]) Slice() []T {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// MTime returns the last time an item was added or removed.
func (c *Collection[T]) MTime() mtime.Time {
	if c == nil {
		return 0
	}
	return c.stamp.Time()
}
