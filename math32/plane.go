// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// When the the normal vector is the unit vector the offset is the distance from the origin.
type Plane struct {
	Norm Vector3
	Off  float32
}

// SetNormalize normalizes this plane normal vector and adjusts the offset.
// Note: will lead to a divide by zero if the plane is invalid.
func (p *Plane) SetNormalize() {
	inverseNormalLength := 1.0 / p.Norm.Length()
	p.Norm = p.Norm.MulScalar(inverseNormalLength)
	p.Off *= inverseNormalLength
}

// DistanceToPoint returns the signed distance from this plane to the specified point.
func (p *Plane) DistanceToPoint(point Vector3) float32 {
	return p.Norm.Dot(point) + p.Off
}

// Frustum represents a frustum as 6 planes (right, left, bottom, top, far, near),
// each with its normal pointing into the frustum.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix creates and returns a Frustum based on the provided
// view-projection matrix.
func NewFrustumFromMatrix(m *Matrix4) *Frustum {
	f := new(Frustum)
	f.SetFromMatrix(m)
	return f
}

// SetFromMatrix sets the frustum's planes based on the specified Matrix4.
func (f *Frustum) SetFromMatrix(m *Matrix4) {
	me0 := m[0]
	me1 := m[1]
	me2 := m[2]
	me3 := m[3]
	me4 := m[4]
	me5 := m[5]
	me6 := m[6]
	me7 := m[7]
	me8 := m[8]
	me9 := m[9]
	me10 := m[10]
	me11 := m[11]
	me12 := m[12]
	me13 := m[13]
	me14 := m[14]
	me15 := m[15]

	f.Planes[0] = Plane{Vec3(me3-me0, me7-me4, me11-me8), me15 - me12}
	f.Planes[1] = Plane{Vec3(me3+me0, me7+me4, me11+me8), me15 + me12}
	f.Planes[2] = Plane{Vec3(me3+me1, me7+me5, me11+me9), me15 + me13}
	f.Planes[3] = Plane{Vec3(me3-me1, me7-me5, me11-me9), me15 - me13}
	f.Planes[4] = Plane{Vec3(me3-me2, me7-me6, me11-me10), me15 - me14}
	f.Planes[5] = Plane{Vec3(me3+me2, me7+me6, me11+me10), me15 + me14}

	for i := 0; i < 6; i++ {
		f.Planes[i].SetNormalize()
	}
}

// IntersectsSphere determines whether the specified sphere is intersecting the frustum.
func (f *Frustum) IntersectsSphere(center Vector3, radius float32) bool {
	negRadius := -radius
	for _, p := range f.Planes {
		if p.DistanceToPoint(center) < negRadius {
			return false
		}
	}
	return true
}
