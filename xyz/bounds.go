// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"

	"cogentcore.org/xyzrender/math32"
)

// ComputeVisiblePropBounds returns the union of the bounds of the
// visible props. Props without bounds, with empty bounds, or with
// bounds reaching [math32.LargeFloat] or beyond, are skipped. It returns false if no
// prop contributed.
func (rn *Renderer) ComputeVisiblePropBounds() (math32.Box3, bool) {
	bb := math32.B3Empty()
	found := false
	for p := range rn.visibleProps() {
		pb := p.Bounds()
		if pb == nil || pb.IsEmpty() || !pb.IsBounded() {
			continue
		}
		bb.ExpandByBox(*pb)
		found = true
	}
	if !found {
		slog.Debug("xyz.Renderer: no visible props with bounds", "renderer", rn.Name)
		return bb, false
	}
	return bb, true
}

// VisiblePropCount returns the number of visible props of any kind.
func (rn *Renderer) VisiblePropCount() int {
	n := 0
	for range rn.visibleProps() {
		n++
	}
	return n
}
