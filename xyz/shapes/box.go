// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"image/color"
	"log/slog"

	"cogentcore.org/xyzrender/math32"
	"cogentcore.org/xyzrender/xyz"
)

// Box is an axis aligned box actor filled with a flat color.
// Opaque boxes render in the opaque pass and translucent ones
// (Opacity < 1) in the translucent pass.
type Box struct {
	xyz.PropBase

	// Color is the color of the box.
	Color color.RGBA

	// Opacity is the opacity of the box, in [0, 1].
	Opacity float32 `min:"0" max:"1" default:"1"`

	// Pixels is the number of pixels drawn in the last frame.
	Pixels int `display:"-"`
}

// NewBox returns a new opaque box with the given bounds and color.
func NewBox(name string, b math32.Box3, c color.RGBA) *Box {
	bx := &Box{Color: c, Opacity: 1}
	bx.Defaults()
	bx.Name = name
	bx.PropKind = xyz.PropActor
	bx.SetBounds(b)
	return bx
}

// SetColor sets the color and marks the box modified.
func (bx *Box) SetColor(c color.RGBA) *Box {
	bx.Color = c
	bx.Modified()
	return bx
}

// SetOpacity sets the opacity and marks the box modified.
func (bx *Box) SetOpacity(op float32) *Box {
	bx.Opacity = math32.Clamp(op, 0, 1)
	bx.Modified()
	return bx
}

// IsTranslucent returns whether the box is rendered in the translucent pass.
func (bx *Box) IsTranslucent() bool {
	return bx.Opacity < 1
}

func (bx *Box) RenderOpaqueGeometry(rn *xyz.Renderer) int {
	if bx.IsTranslucent() {
		return 0
	}
	return bx.render(rn, bx.Color)
}

func (bx *Box) RenderTranslucentGeometry(rn *xyz.Renderer) int {
	if !bx.IsTranslucent() || bx.Opacity == 0 {
		return 0
	}
	return bx.render(rn, scaleAlpha(bx.Color, bx.Opacity))
}

func (bx *Box) render(rn *xyz.Renderer, c color.RGBA) int {
	bx.Pixels = 0
	if bx.Box == nil {
		return 0
	}
	fl, ok := rn.RenderWindow().(Filler)
	if !ok {
		slog.Debug("shapes.Box: window cannot fill rectangles", "box", bx.Name)
		return 0
	}
	r, z, ok := DisplayRect(rn, *bx.Box)
	if !ok {
		return 0
	}
	bx.Pixels = fl.FillRect(r, c, z)
	if bx.Pixels == 0 {
		return 0
	}
	return 1
}
