// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/base/refs"
	"cogentcore.org/xyzrender/math32"
)

// Camera defines the properties of the camera: where it is, what it
// looks at, and how the view is projected. It provides the view and
// projection transforms used by the [Renderer].
type Camera struct {

	// Position is the location of the camera in world coordinates.
	Position math32.Vector3

	// FocalPoint is the point the camera is looking at.
	FocalPoint math32.Vector3

	// ViewUp is the up direction of the camera.
	ViewUp math32.Vector3

	// ViewAngle is the vertical field of view in degrees.
	ViewAngle float32 `default:"30"`

	// Near is the near clipping plane distance.
	Near float32 `default:"0.01"`

	// Far is the far clipping plane distance.
	Far float32 `default:"1000.01"`

	// Parallel selects an orthographic projection instead of a perspective one.
	Parallel bool

	// ParallelScale is half the height of the view in world units,
	// used for the orthographic projection.
	ParallelScale float32 `default:"1"`

	// Aspect is the aspect ratio (width/height) used for the last matrix update.
	Aspect float32 `display:"-"`

	// ViewMatrix is the world to eye transform.
	ViewMatrix math32.Matrix4 `display:"-"`

	// ProjectionMatrix is the eye to clip transform.
	ProjectionMatrix math32.Matrix4 `display:"-"`

	stamp mtime.Stamp
	refs  refs.Counter
}

// NewCamera returns a new camera with default settings.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

// Defaults resets the camera to look at the origin from (0, 0, 1)
// with the Y axis up and a 30 degree view angle.
func (cm *Camera) Defaults() {
	cm.Position.Set(0, 0, 1)
	cm.FocalPoint.Set(0, 0, 0)
	cm.ViewUp.Set(0, 1, 0)
	cm.ViewAngle = 30
	cm.Near = 0.01
	cm.Far = 1000.01
	cm.Parallel = false
	cm.ParallelScale = 1
	cm.Aspect = 1
	cm.UpdateMatrix(1)
	cm.Modified()
}

// Modified marks the camera as modified.
func (cm *Camera) Modified() {
	cm.stamp.Modified()
}

// MTime returns the last modification time of the camera.
func (cm *Camera) MTime() mtime.Time {
	return cm.stamp.Time()
}

// Refs returns the reference holders of the camera.
func (cm *Camera) Refs() *refs.Counter {
	return &cm.refs
}

// SetPosition sets the camera position.
func (cm *Camera) SetPosition(pos math32.Vector3) *Camera {
	cm.Position = pos
	cm.Modified()
	return cm
}

// SetFocalPoint sets the point the camera looks at.
func (cm *Camera) SetFocalPoint(fp math32.Vector3) *Camera {
	cm.FocalPoint = fp
	cm.Modified()
	return cm
}

// SetViewUp sets the up direction of the camera.
func (cm *Camera) SetViewUp(up math32.Vector3) *Camera {
	cm.ViewUp = up
	cm.Modified()
	return cm
}

// SetViewAngle sets the vertical field of view in degrees.
func (cm *Camera) SetViewAngle(angle float32) *Camera {
	cm.ViewAngle = angle
	cm.Modified()
	return cm
}

// SetClippingRange sets the near and far clipping plane distances.
func (cm *Camera) SetClippingRange(near, far float32) *Camera {
	cm.Near = near
	cm.Far = far
	cm.Modified()
	return cm
}

// SetParallel selects the orthographic (true) or perspective projection.
func (cm *Camera) SetParallel(parallel bool) *Camera {
	cm.Parallel = parallel
	cm.Modified()
	return cm
}

// SetParallelScale sets the half height of the orthographic view.
func (cm *Camera) SetParallelScale(scale float32) *Camera {
	cm.ParallelScale = scale
	cm.Modified()
	return cm
}

// ViewPlaneNormal returns the unit vector pointing from the focal point
// to the camera position, i.e., the normal of the view plane facing the camera.
// If the two coincide, the positive Z axis is returned.
func (cm *Camera) ViewPlaneNormal() math32.Vector3 {
	vv := cm.Position.Sub(cm.FocalPoint)
	if vv.IsNil() {
		return math32.Vector3Z
	}
	return vv.Normal()
}

// Distance returns the distance from the camera position to the focal point.
func (cm *Camera) Distance() float32 {
	return cm.Position.DistanceTo(cm.FocalPoint)
}

// Dolly moves the camera toward (factor > 1) or away from (factor < 1)
// the focal point, dividing the distance between them by factor.
func (cm *Camera) Dolly(factor float32) {
	if factor <= 0 {
		return
	}
	d := cm.Distance() / factor
	cm.SetPosition(cm.FocalPoint.Add(cm.ViewPlaneNormal().MulScalar(d)))
}

// UpdateMatrix updates the view and projection matrices for the given aspect ratio.
// It does not mark the camera as modified.
func (cm *Camera) UpdateMatrix(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	cm.Aspect = aspect
	up := cm.ViewUp
	if up.IsNil() {
		up = math32.Vector3Y
	}
	cm.ViewMatrix.SetLookAtView(cm.Position, cm.FocalPoint, up)
	if cm.Parallel {
		height := 2 * cm.ParallelScale
		cm.ProjectionMatrix.SetOrthographic(aspect*height, height, cm.Near, cm.Far)
	} else {
		cm.ProjectionMatrix.SetPerspective(cm.ViewAngle, aspect, cm.Near, cm.Far)
	}
}

// CompositeProjectionMatrix returns the combined projection and view
// transform for the given aspect ratio, with view depth mapped to
// the range [nearZ, farZ] (from near to far clipping plane).
func (cm *Camera) CompositeProjectionMatrix(aspect, nearZ, farZ float32) *math32.Matrix4 {
	cm.UpdateMatrix(aspect)
	var remap math32.Matrix4
	remap.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, (farZ-nearZ)/2, (farZ+nearZ)/2,
		0, 0, 0, 1,
	)
	return remap.Mul(&cm.ProjectionMatrix).Mul(&cm.ViewMatrix)
}

// Frustum returns the view frustum for the given aspect ratio.
func (cm *Camera) Frustum(aspect float32) *math32.Frustum {
	return math32.NewFrustumFromMatrix(cm.CompositeProjectionMatrix(aspect, -1, 1))
}

// Render loads the view of the camera for the given renderer,
// updating the matrices for the aspect ratio of its viewport.
func (cm *Camera) Render(rn *Renderer) {
	cm.UpdateMatrix(rn.Aspect())
}
