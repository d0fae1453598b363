// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"log/slog"

	"cogentcore.org/xyzrender/base/errors"
	"cogentcore.org/xyzrender/math32"
)

// ResetCamera sets up the active camera to frame the bounds of all the
// visible props (see [Renderer.ResetCameraBounds]). If no visible prop
// has bounds, it logs an error and leaves the camera alone.
func (rn *Renderer) ResetCamera() error {
	bb, ok := rn.ComputeVisiblePropBounds()
	if !ok {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset camera: %w", rn.Name, ErrNoVisibleProps))
	}
	return rn.ResetCameraBounds(bb)
}

// ResetCameraExtent is [Renderer.ResetCameraBounds] with the bounds given
// as (xmin, xmax, ymin, ymax, zmin, zmax).
func (rn *Renderer) ResetCameraExtent(xmin, xmax, ymin, ymax, zmin, zmax float32) error {
	return rn.ResetCameraBounds(math32.B3Extent(xmin, xmax, ymin, ymax, zmin, zmax))
}

// ResetCameraBounds moves the active camera so that it looks at the
// center of the given bounds from far enough away to see all of it,
// keeping its current view direction. The distance is set from the
// larger of the x and y sizes and the view angle, plus half of the
// z size. If the view up is parallel to the view direction it is
// rotated to another axis. The clipping range is then reset to the
// bounds and the parallel scale set to the framed width.
// Empty or unbounded boxes return [ErrBadBounds] without touching the camera.
func (rn *Renderer) ResetCameraBounds(b math32.Box3) error {
	if rn.released {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset camera: %w", rn.Name, ErrReleased))
	}
	if b.IsEmpty() || !b.IsBounded() {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset camera to %v: %w", rn.Name, b.Extent(), ErrBadBounds))
	}
	cam := rn.ActiveCamera()
	vn := cam.ViewPlaneNormal()
	center := b.Center()
	sz := b.Size()

	width := max(sz.Y, sz.X)
	distance := 0.8 * width / math32.Tan(cam.ViewAngle*math32.Pi/360)
	distance += sz.Z / 2

	vup := cam.ViewUp
	if math32.Abs(vup.Dot(vn)) > 0.999 {
		slog.Warn("xyz.Renderer: resetting view-up since view plane normal is parallel", "renderer", rn.Name)
		cam.SetViewUp(math32.Vec3(-vup.Z, vup.X, vup.Y))
	}

	cam.SetFocalPoint(center)
	cam.SetPosition(center.Add(vn.MulScalar(distance)))
	if err := rn.ResetCameraClippingRangeBounds(b); err != nil {
		return err
	}
	cam.SetParallelScale(width)
	return nil
}

// ResetCameraClippingRange sets the clipping range of the active camera
// to contain the bounds of all the visible props. If no visible prop
// has bounds, it logs an error and leaves the camera alone.
func (rn *Renderer) ResetCameraClippingRange() error {
	bb, ok := rn.ComputeVisiblePropBounds()
	if !ok {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset camera clipping range: %w", rn.Name, ErrNoVisibleProps))
	}
	return rn.ResetCameraClippingRangeBounds(bb)
}

// ResetCameraClippingRangeBounds sets the clipping range of the active
// camera to the distance range, along the view direction, of a sphere
// around the given bounds. The near distance is at least 0.01, and the
// far distance is always beyond the near one. Empty or unbounded boxes
// return [ErrBadBounds].
func (rn *Renderer) ResetCameraClippingRangeBounds(b math32.Box3) error {
	if rn.released {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset clipping range: %w", rn.Name, ErrReleased))
	}
	if b.IsEmpty() || !b.IsBounded() {
		return errors.Log(fmt.Errorf("xyz.Renderer %q: cannot reset clipping range to %v: %w", rn.Name, b.Extent(), ErrBadBounds))
	}
	cam := rn.ActiveCamera()
	dir := cam.ViewPlaneNormal().Negate()
	d := -dir.Dot(cam.Position)

	diag := b.Diagonal()
	centerDist := dir.Dot(b.Center()) + d

	near := centerDist - 0.5*diag
	far := centerDist + 0.5*diag
	if near < 0.01 {
		near = 0.01
	}
	if far < near {
		far = near + 0.1
	}
	cam.SetClippingRange(near, far)
	return nil
}
