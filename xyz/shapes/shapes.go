// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shapes provides simple props for xyz renderers: flat shaded
// boxes rendered as geometry, and volumes rendered through the ray caster.
package shapes

import (
	"image"
	"image/color"

	"cogentcore.org/xyzrender/math32"
	"cogentcore.org/xyzrender/xyz"
)

// Filler is implemented by windows that can fill a depth tested
// rectangle, such as the offscreen window.
type Filler interface {
	FillRect(r image.Rectangle, c color.RGBA, depth float32) int
}

// DisplayRect returns the display rectangle covered by the given world
// bounds in the viewport of the renderer, and the depth of its nearest
// corner. Corners outside of the clipping range are ignored; it returns
// false if nothing is visible.
func DisplayRect(rn *xyz.Renderer, b math32.Box3) (image.Rectangle, float32, bool) {
	db := math32.B3Empty()
	found := false
	for _, c := range b.Corners() {
		d, err := rn.WorldToDisplay(c)
		if err != nil {
			return image.Rectangle{}, 1, false
		}
		if d.Z < 0 || d.Z > 1 {
			continue
		}
		db.ExpandByPoint(d)
		found = true
	}
	if !found {
		return image.Rectangle{}, 1, false
	}
	r := image.Rect(int(math32.Floor(db.Min.X)), int(math32.Floor(db.Min.Y)),
		int(math32.Floor(db.Max.X))+1, int(math32.Floor(db.Max.Y))+1)
	r = r.Intersect(rn.ViewportRect())
	if r.Empty() {
		return r, 1, false
	}
	return r, db.Min.Z, true
}

// scaleAlpha returns the color with its opacity multiplied by op.
func scaleAlpha(c color.RGBA, op float32) color.RGBA {
	op = math32.Clamp(op, 0, 1)
	sc := func(v uint8) uint8 { return uint8(float32(v)*op + 0.5) }
	return color.RGBA{sc(c.R), sc(c.G), sc(c.B), sc(c.A)}
}
