// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Box3 represents a 3D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns a new [Box3] from the given minimum and maximum x, y, and z coordinates.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Extent returns a new [Box3] from an extent given in the
// (xmin, xmax, ymin, ymax, zmin, zmax) order.
func B3Extent(xmin, xmax, ymin, ymax, zmin, zmax float32) Box3 {
	return Box3{Vec3(xmin, ymin, zmin), Vec3(xmax, ymax, zmax)}
}

// B3Empty returns a new [Box3] with empty minimum and maximum values.
func B3Empty() Box3 {
	bx := Box3{}
	bx.SetEmpty()
	return bx
}

// SetEmpty set this bounding box to empty (min / max +/- Infinity)
func (b *Box3) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns true if this bounding box is empty (max < min on any coord).
func (b Box3) IsEmpty() bool {
	return (b.Max.X < b.Min.X) || (b.Max.Y < b.Min.Y) || (b.Max.Z < b.Min.Z)
}

// IsBounded returns true if every coordinate of the box lies strictly
// inside +/- [LargeFloat]. Boxes at or beyond that magnitude (including
// infinities and NaN) describe unbounded or uninitialized geometry.
func (b Box3) IsBounded() bool {
	in := func(v float32) bool { return -LargeFloat < v && v < LargeFloat }
	return in(b.Min.X) && in(b.Max.X) &&
		in(b.Min.Y) && in(b.Max.Y) &&
		in(b.Min.Z) && in(b.Max.Z)
}

// Extent returns the box as (xmin, xmax, ymin, ymax, zmin, zmax).
func (b Box3) Extent() [6]float32 {
	return [6]float32{b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z}
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box3) ExpandByPoint(point Vector3) {
	b.Min.SetMin(point)
	b.Max.SetMax(point)
}

// ExpandByBox may expand this bounding box to include the specified box
func (b *Box3) ExpandByBox(box Box3) {
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// ExpandByScalar expands this bounding box by the specified scalar
// subtracting from min and adding to max.
func (b *Box3) ExpandByScalar(scalar float32) {
	b.Min.SetSubScalar(scalar)
	b.Max.SetAddScalar(scalar)
}

// Center returns the center of the bounding box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the length of the box diagonal.
func (b Box3) Diagonal() float32 {
	return b.Size().Length()
}

// ContainsPoint returns if this bounding box contains the specified point.
func (b Box3) ContainsPoint(point Vector3) bool {
	if point.X < b.Min.X || point.X > b.Max.X ||
		point.Y < b.Min.Y || point.Y > b.Max.Y ||
		point.Z < b.Min.Z || point.Z > b.Max.Z {
		return false
	}
	return true
}

// Union returns the union of this box with other.
func (b Box3) Union(other Box3) Box3 {
	other.Min.SetMin(b.Min)
	other.Max.SetMax(b.Max)
	return other
}

// Corners returns the 8 corner points of the box.
func (b Box3) Corners() [8]Vector3 {
	return [8]Vector3{
		Vec3(b.Min.X, b.Min.Y, b.Min.Z),
		Vec3(b.Min.X, b.Min.Y, b.Max.Z),
		Vec3(b.Min.X, b.Max.Y, b.Min.Z),
		Vec3(b.Max.X, b.Min.Y, b.Min.Z),
		Vec3(b.Max.X, b.Max.Y, b.Max.Z),
		Vec3(b.Max.X, b.Max.Y, b.Min.Z),
		Vec3(b.Max.X, b.Min.Y, b.Max.Z),
		Vec3(b.Min.X, b.Max.Y, b.Max.Z),
	}
}

// MVProjToNDC projects bounding box through given MVP model-view-projection Matrix4
// with perspective divide to return normalized display coordinates (NDC).
func (b Box3) MVProjToNDC(m *Matrix4) Box3 {
	nb := B3Empty()
	for _, c := range b.Corners() {
		nb.ExpandByPoint(Vector4FromVector3(c, 1).MulMatrix4(m).PerspDiv())
	}
	return nb
}
