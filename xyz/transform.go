// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"

	"cogentcore.org/xyzrender/math32"
)

// Coordinate systems:
//
//   - world: the coordinates of the scene.
//   - view: normalized coordinates of the viewport, x and y in [-1, 1]
//     and z in [0, 1] from the near to the far clipping plane (the same
//     range as the Z-buffer).
//   - display: window pixels with the origin at the bottom-left, and the
//     view z.

// viewMatrix returns the world to view transform of the active camera.
func (rn *Renderer) viewMatrix() (*math32.Matrix4, error) {
	if rn.camera == nil {
		return nil, fmt.Errorf("xyz.Renderer %q: %w", rn.Name, ErrNoCamera)
	}
	return rn.camera.CompositeProjectionMatrix(rn.Aspect(), 0, 1), nil
}

// ViewToWorld converts [Renderer.ViewPoint] into [Renderer.WorldPoint],
// keeping the homogeneous w of the world point at 1 where possible.
func (rn *Renderer) ViewToWorld() error {
	m, err := rn.viewMatrix()
	if err != nil {
		return err
	}
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	wp := math32.Vector4FromVector3(rn.ViewPoint, 1).MulMatrix4(inv)
	if wp.W != 0 {
		wp = math32.Vector4FromVector3(wp.PerspDiv(), 1)
	}
	rn.WorldPoint = wp
	return nil
}

// ViewToWorldPoint returns the world coordinates of the given view point.
// The point is returned unchanged if it has no finite world position.
func (rn *Renderer) ViewToWorldPoint(v math32.Vector3) (math32.Vector3, error) {
	m, err := rn.viewMatrix()
	if err != nil {
		return v, err
	}
	inv, err := m.Inverse()
	if err != nil {
		return v, err
	}
	wp := math32.Vector4FromVector3(v, 1).MulMatrix4(inv)
	if wp.W == 0 {
		return v, nil
	}
	return wp.PerspDiv(), nil
}

// WorldToView converts [Renderer.WorldPoint] into [Renderer.ViewPoint].
// The view point is left unchanged if the world point projects to
// infinity.
func (rn *Renderer) WorldToView() error {
	m, err := rn.viewMatrix()
	if err != nil {
		return err
	}
	vp := rn.WorldPoint.MulMatrix4(m)
	if vp.W != 0 {
		rn.ViewPoint = vp.PerspDiv()
	}
	return nil
}

// WorldToViewPoint returns the view coordinates of the given world point.
// The point is returned unchanged if it projects to infinity.
func (rn *Renderer) WorldToViewPoint(w math32.Vector3) (math32.Vector3, error) {
	m, err := rn.viewMatrix()
	if err != nil {
		return w, err
	}
	vp := math32.Vector4FromVector3(w, 1).MulMatrix4(m)
	if vp.W == 0 {
		return w, nil
	}
	return vp.PerspDiv(), nil
}

// Z returns the Z-buffer value at the given display pixel, or 1 (the
// far plane) if it cannot be read.
func (rn *Renderer) Z(x, y int) float32 {
	if rn.window == nil {
		return 1
	}
	zs, err := rn.window.ZbufferData(image.Rect(x, y, x+1, y+1))
	if err != nil || len(zs) == 0 {
		return 1
	}
	return zs[0]
}

// viewportPixels returns the window size and the origin and size of
// the viewport in pixels, as floats.
func (rn *Renderer) viewportPixels() (x0, y0, w, h float32, err error) {
	if rn.window == nil {
		return 0, 0, 0, 0, fmt.Errorf("xyz.Renderer %q: %w", rn.Name, ErrNoWindow)
	}
	sz := rn.window.Size()
	sx, sy := float32(sz.X), float32(sz.Y)
	x0 = sx * rn.Viewport[0]
	y0 = sy * rn.Viewport[1]
	w = sx * (rn.Viewport[2] - rn.Viewport[0])
	h = sy * (rn.Viewport[3] - rn.Viewport[1])
	return
}

// DisplayToView converts display coordinates into view coordinates.
func (rn *Renderer) DisplayToView(d math32.Vector3) (math32.Vector3, error) {
	x0, y0, w, h, err := rn.viewportPixels()
	if err != nil {
		return d, err
	}
	if w == 0 || h == 0 {
		return d, nil
	}
	return math32.Vec3(2*(d.X-x0)/w-1, 2*(d.Y-y0)/h-1, d.Z), nil
}

// ViewToDisplay converts view coordinates into display coordinates.
func (rn *Renderer) ViewToDisplay(v math32.Vector3) (math32.Vector3, error) {
	x0, y0, w, h, err := rn.viewportPixels()
	if err != nil {
		return v, err
	}
	return math32.Vec3((v.X+1)*w/2+x0, (v.Y+1)*h/2+y0, v.Z), nil
}

// DisplayToWorld converts display coordinates into world coordinates.
func (rn *Renderer) DisplayToWorld(d math32.Vector3) (math32.Vector3, error) {
	v, err := rn.DisplayToView(d)
	if err != nil {
		return d, err
	}
	return rn.ViewToWorldPoint(v)
}

// WorldToDisplay converts world coordinates into display coordinates.
func (rn *Renderer) WorldToDisplay(w math32.Vector3) (math32.Vector3, error) {
	v, err := rn.WorldToViewPoint(w)
	if err != nil {
		return w, err
	}
	return rn.ViewToDisplay(v)
}
