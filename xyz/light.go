// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/base/refs"
	"cogentcore.org/xyzrender/math32"
)

// Light is a positional light that illuminates the scene, pointing
// from Pos toward FocalPoint. Lights are held in the [Renderer]
// light collection; only lights that are On take part in rendering
// and in backing store invalidation.
type Light struct {

	// Name is the name of the light.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color, and is convenient for easily modulating overall brightness.
	Lumens float32 `min:"0" step:"0.1"`

	// Color is the color of the light at full intensity.
	Color color.RGBA

	// Pos is the position of the light in world coordinates.
	Pos math32.Vector3

	// FocalPoint is the point the light is aimed at.
	FocalPoint math32.Vector3

	stamp mtime.Stamp
	refs  refs.Counter
}

// NewLight returns a new white light of full intensity that is on,
// located at (0, 0, 1) and pointing at the origin.
func NewLight(name string) *Light {
	lt := &Light{Name: name, On: true, Lumens: 1, Color: color.RGBA{255, 255, 255, 255}}
	lt.Pos.Set(0, 0, 1)
	lt.Modified()
	return lt
}

// Modified marks the light as modified.
func (lt *Light) Modified() {
	lt.stamp.Modified()
}

// MTime returns the last modification time of the light.
func (lt *Light) MTime() mtime.Time {
	return lt.stamp.Time()
}

// Refs returns the reference holders of the light.
func (lt *Light) Refs() *refs.Counter {
	return &lt.refs
}

// SetOn switches the light on or off.
func (lt *Light) SetOn(on bool) *Light {
	if lt.On != on {
		lt.On = on
		lt.Modified()
	}
	return lt
}

// SetPos sets the position of the light.
func (lt *Light) SetPos(pos math32.Vector3) *Light {
	lt.Pos = pos
	lt.Modified()
	return lt
}

// SetFocalPoint sets the point the light is aimed at.
func (lt *Light) SetFocalPoint(fp math32.Vector3) *Light {
	lt.FocalPoint = fp
	lt.Modified()
	return lt
}

// SetColor sets the color of the light.
func (lt *Light) SetColor(c color.RGBA) *Light {
	lt.Color = c
	lt.Modified()
	return lt
}

// SetLumens sets the brightness of the light.
func (lt *Light) SetLumens(lumens float32) *Light {
	lt.Lumens = lumens
	lt.Modified()
	return lt
}

// Direction returns the unit vector pointing from the light to its focal point.
func (lt *Light) Direction() math32.Vector3 {
	return lt.FocalPoint.Sub(lt.Pos).Normal()
}
