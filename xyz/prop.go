// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/math32"
)

// PropKinds are the kinds of props, used to derive the
// [Renderer.Actors] and [Renderer.Volumes] views of the scene.
type PropKinds int32

const (
	// PropActor is surface geometry rendered through the geometry passes.
	PropActor PropKinds = iota

	// PropVolume is volumetric data, typically ray cast.
	PropVolume

	// PropOther is anything else, such as 2D annotation.
	PropOther
)

// String returns the name of the kind.
func (k PropKinds) String() string {
	switch k {
	case PropActor:
		return "Actor"
	case PropVolume:
		return "Volume"
	default:
		return "Other"
	}
}

// Prop is a renderable scene entity (actor, volume, annotation...).
// Most props embed a [PropBase], which implements the bookkeeping,
// and override the render methods they need.
type Prop interface {
	// AsPropBase returns the [PropBase] for this Prop.
	AsPropBase() *PropBase

	// IsVisible returns whether the prop should be rendered at all.
	IsVisible() bool

	// Bounds returns the world bounds of the prop, or nil if it has none.
	Bounds() *math32.Box3

	// Kind returns the kind of prop.
	Kind() PropKinds

	// RequiresRayCasting returns whether the prop must be rendered
	// by the [RayCaster].
	RequiresRayCasting() bool

	// RequiresRenderingIntoImage returns whether the prop renders into
	// the [RayCaster] image instead of (or in addition to) geometry.
	RequiresRenderingIntoImage() bool

	// RenderTimeMultiplier is the relative weight of this prop in the
	// render time allocation, as set by the cullers.
	RenderTimeMultiplier() float32

	// SetRenderTimeMultiplier sets the relative render time weight.
	SetRenderTimeMultiplier(m float32)

	// SetAllocatedRenderTime sets the render time, in the units of
	// [Renderer.AllocatedRenderTime], given to this prop for the frame.
	SetAllocatedRenderTime(t float32)

	// RedrawMTime returns the last time anything affecting the
	// appearance of the prop changed.
	RedrawMTime() mtime.Time

	// RenderOpaqueGeometry renders the opaque part of the prop,
	// returning the number of props rendered (0 or 1 for simple props).
	RenderOpaqueGeometry(rn *Renderer) int

	// RenderTranslucentGeometry renders the translucent part of the prop,
	// returning the number of props rendered.
	RenderTranslucentGeometry(rn *Renderer) int

	// RenderOverlay renders any 2D overlay of the prop.
	RenderOverlay(rn *Renderer)

	// ReleaseGraphicsResources releases any resources that are
	// specific to the given window (or its graphics context).
	ReleaseGraphicsResources(w Window)
}

// PropBase provides the core implementation of the [Prop] interface.
// The render methods do nothing by default.
type PropBase struct {

	// Name is an optional name for the prop, used in log messages.
	Name string

	// Visible is whether the prop is rendered.
	Visible bool

	// Box is the world bounding box; nil if the prop has no bounds.
	Box *math32.Box3

	// PropKind is the kind of prop.
	PropKind PropKinds

	// RayCast is whether the prop requires ray casting.
	RayCast bool

	// IntoImage is whether the prop requires rendering into an image.
	IntoImage bool

	// Multiplier is the render time multiplier set by cullers.
	Multiplier float32

	// Allocated is the render time allocated for the current frame.
	Allocated float32

	stamp mtime.Stamp
}

// Defaults sets the default values: visible, with a unit multiplier.
func (pb *PropBase) Defaults() {
	pb.Visible = true
	pb.Multiplier = 1
	pb.Modified()
}

func (pb *PropBase) AsPropBase() *PropBase {
	return pb
}

// Modified marks the prop as needing to be redrawn.
func (pb *PropBase) Modified() {
	pb.stamp.Modified()
}

// SetVisible sets the visibility and marks the prop modified.
func (pb *PropBase) SetVisible(v bool) {
	if pb.Visible == v {
		return
	}
	pb.Visible = v
	pb.Modified()
}

// SetBounds sets the bounding box and marks the prop modified.
func (pb *PropBase) SetBounds(b math32.Box3) {
	pb.Box = &b
	pb.Modified()
}

func (pb *PropBase) IsVisible() bool {
	return pb.Visible
}

func (pb *PropBase) Bounds() *math32.Box3 {
	return pb.Box
}

func (pb *PropBase) Kind() PropKinds {
	return pb.PropKind
}

func (pb *PropBase) RequiresRayCasting() bool {
	return pb.RayCast
}

func (pb *PropBase) RequiresRenderingIntoImage() bool {
	return pb.IntoImage
}

func (pb *PropBase) RenderTimeMultiplier() float32 {
	return pb.Multiplier
}

func (pb *PropBase) SetRenderTimeMultiplier(m float32) {
	pb.Multiplier = m
}

func (pb *PropBase) SetAllocatedRenderTime(t float32) {
	pb.Allocated = t
}

// AllocatedRenderTime returns the render time allocated for the current frame.
func (pb *PropBase) AllocatedRenderTime() float32 {
	return pb.Allocated
}

func (pb *PropBase) RedrawMTime() mtime.Time {
	return pb.stamp.Time()
}

func (pb *PropBase) RenderOpaqueGeometry(rn *Renderer) int { return 0 }

func (pb *PropBase) RenderTranslucentGeometry(rn *Renderer) int { return 0 }

func (pb *PropBase) RenderOverlay(rn *Renderer) {}

func (pb *PropBase) ReleaseGraphicsResources(w Window) {}
