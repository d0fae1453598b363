// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection(t *testing.T) {
	c := NewCollection("a", "b")
	mt := c.MTime()
	c.Add("c")
	assert.Greater(t, c.MTime(), mt)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "b", c.At(1))
	assert.True(t, c.Contains("c"))

	assert.True(t, c.Remove("b"))
	mt = c.MTime()
	assert.False(t, c.Remove("b"))
	assert.Equal(t, mt, c.MTime())
	assert.Equal(t, []string{"a", "c"}, c.Slice())

	// scans are independent of each other
	var pairs []string
	for x := range c.All() {
		for y := range c.All() {
			pairs = append(pairs, x+y)
		}
	}
	assert.Equal(t, []string{"aa", "ac", "ca", "cc"}, pairs)

	c.RemoveAll()
	assert.Equal(t, 0, c.Len())
}

func TestCollectionNil(t *testing.T) {
	var c *Collection[Prop]
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Slice())
	for range c.All() {
		t.Fatal("nil collection yielded an item")
	}
}
