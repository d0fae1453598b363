// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"cogentcore.org/xyzrender/math32"
	"cogentcore.org/xyzrender/xyz"
)

// Volume is a volume prop that is rendered by the ray caster of the
// renderer, as a flat translucent block over its screen footprint.
type Volume struct {
	xyz.PropBase

	// Color is the color of the volume, usually translucent.
	Color color.RGBA

	// Samples is the number of ray samples taken in the last frame.
	Samples int `display:"-"`
}

var _ xyz.ImageRenderer = (*Volume)(nil)

// NewVolume returns a new volume with the given bounds and color.
func NewVolume(name string, b math32.Box3, c color.RGBA) *Volume {
	vl := &Volume{Color: c}
	vl.Defaults()
	vl.Name = name
	vl.PropKind = xyz.PropVolume
	vl.RayCast = true
	vl.SetBounds(b)
	return vl
}

// RenderIntoImage fills the footprint of the volume in the ray caster
// image, one block per ray at the image sample distance.
func (vl *Volume) RenderIntoImage(rc *xyz.RayCaster, img *image.RGBA) bool {
	vl.Samples = 0
	rn := rc.Renderer()
	if rn == nil || vl.Box == nil {
		return false
	}
	r, _, ok := DisplayRect(rn, *vl.Box)
	if !ok {
		return false
	}
	r = r.Intersect(img.Bounds())
	step := max(int(rc.ImageSampleDistance), 1)
	src := image.NewUniform(vl.Color)
	for y := r.Min.Y; y < r.Max.Y; y += step {
		for x := r.Min.X; x < r.Max.X; x += step {
			blk := image.Rect(x, y, x+step, y+step).Intersect(r)
			draw.Draw(img, blk, src, image.Point{}, draw.Over)
			vl.Samples++
		}
	}
	return vl.Samples > 0
}
