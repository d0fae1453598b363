// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/base/refs"
)

// ImageRenderer is implemented by props that render themselves into
// the image of the [RayCaster] (ray cast volumes, image props).
// It returns whether anything was drawn.
type ImageRenderer interface {
	RenderIntoImage(rc *RayCaster, img *image.RGBA) bool
}

// RayCaster renders the ray cast and render-into-image props of a
// [Renderer] into an image covering its viewport, and composites that
// image over the geometry already in the window.
//
// The renderer owns its ray caster; the ray caster only keeps a
// non-owning pointer back to the renderer, which is cleared when the
// renderer releases it.
type RayCaster struct {

	// ImageSampleDistance is the distance in pixels between rays
	// cast by the props; 1 casts a ray per pixel.
	ImageSampleDistance float32 `default:"1"`

	// Image is the image composited in the last render.
	Image *image.RGBA `display:"-"`

	// Rendered is the number of props that drew into the last image.
	Rendered int `display:"-"`

	renderer *Renderer
	released bool
	stamp    mtime.Stamp
	refs     refs.Counter
}

func newRayCaster(rn *Renderer) *RayCaster {
	rc := &RayCaster{ImageSampleDistance: 1, renderer: rn}
	rc.refs.Register(rn)
	rc.Modified()
	return rc
}

// Renderer returns the renderer this ray caster works for,
// or nil once it has been released.
func (rc *RayCaster) Renderer() *Renderer {
	return rc.renderer
}

// Modified marks the ray caster as modified.
func (rc *RayCaster) Modified() {
	rc.stamp.Modified()
}

// MTime returns the last modification time of the ray caster.
func (rc *RayCaster) MTime() mtime.Time {
	return rc.stamp.Time()
}

// Refs returns the reference holders of the ray caster.
func (rc *RayCaster) Refs() *refs.Counter {
	return &rc.refs
}

// IsReleased returns whether the owning renderer has released the ray caster.
func (rc *RayCaster) IsReleased() bool {
	return rc.released
}

// SetImageSampleDistance sets the distance in pixels between rays.
func (rc *RayCaster) SetImageSampleDistance(d float32) *RayCaster {
	rc.ImageSampleDistance = max(d, 1)
	rc.Modified()
	return rc
}

// Render renders the ray cast and render-into-image props of the
// current frame, each prop at most once, and composites the result
// over the viewport of the window.
func (rc *RayCaster) Render() error {
	rn := rc.renderer
	if rn == nil {
		return ErrRayCasterReleased
	}
	win := rn.RenderWindow()
	if win == nil {
		return ErrNoWindow
	}
	r := rn.ViewportRect()
	img := image.NewRGBA(r)
	rc.Rendered = 0
	seen := make(map[Prop]bool)
	for _, props := range [][]Prop{rn.RayCastProps(), rn.RenderIntoImageProps()} {
		for _, p := range props {
			if seen[p] {
				continue
			}
			seen[p] = true
			ir, ok := p.(ImageRenderer)
			if !ok {
				continue
			}
			if ir.RenderIntoImage(rc, img) {
				rc.Rendered++
			}
		}
	}
	rc.Image = img
	if rc.Rendered == 0 {
		return nil
	}
	base, err := win.PixelData(r)
	if err != nil {
		return fmt.Errorf("xyz.RayCaster: reading window pixels: %w", err)
	}
	draw.Draw(base, r, img, r.Min, draw.Over)
	return win.SetPixelData(r, base)
}

// release breaks the link with the owning renderer.
// Releasing an already released ray caster does nothing.
func (rc *RayCaster) release() error {
	if rc.released {
		return nil
	}
	rn := rc.renderer
	rc.renderer = nil
	rc.released = true
	rc.Image = nil
	rc.Modified()
	return rc.refs.Unregister(rn)
}
