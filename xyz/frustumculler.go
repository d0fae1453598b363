// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/xyzrender/math32"
)

// SortingStyles are the orders in which the [FrustumCoverageCuller]
// leaves the props it keeps.
type SortingStyles int32

const (
	// SortNone keeps the props in the order they were given.
	SortNone SortingStyles = iota

	// SortFrontToBack sorts the props from the nearest to the farthest.
	SortFrontToBack

	// SortBackToFront sorts the props from the farthest to the nearest.
	SortBackToFront

	SortingStylesN
)

var sortingStyleNames = [...]string{"None", "FrontToBack", "BackToFront"}

// String returns the name of the sorting style.
func (s SortingStyles) String() string {
	if s < 0 || s >= SortingStylesN {
		return fmt.Sprintf("SortingStyles(%d)", int32(s))
	}
	return sortingStyleNames[s]
}

// SetString sets the sorting style from its name (case insensitive).
func (s *SortingStyles) SetString(str string) error {
	for i, nm := range sortingStyleNames {
		if strings.EqualFold(nm, str) {
			*s = SortingStyles(i)
			return nil
		}
	}
	return fmt.Errorf("xyz.SortingStyles: %q is not a valid value", str)
}

// MarshalText implements [encoding.TextMarshaler].
func (s SortingStyles) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *SortingStyles) UnmarshalText(text []byte) error {
	return s.SetString(string(text))
}

// FrustumCoverageCuller removes the props that are outside of the view
// frustum of the active camera, and weights the render time of the
// others by an estimate of the fraction of the viewport they cover,
// computed from the bounding sphere of their bounds.
// Props without bounds are kept with full coverage.
type FrustumCoverageCuller struct {

	// MinimumCoverage is the coverage below which props are culled.
	MinimumCoverage float32 `default:"0"`

	// MaximumCoverage is the coverage at and above which props get
	// the full weight of 1.
	MaximumCoverage float32 `default:"1"`

	// SortingStyle is the order of the props that are kept.
	SortingStyle SortingStyles

	// Culled is the number of props removed in the last frame.
	Culled int `display:"-"`
}

// NewFrustumCoverageCuller returns a new culler that keeps every prop
// inside the frustum, unsorted.
func NewFrustumCoverageCuller() *FrustumCoverageCuller {
	return &FrustumCoverageCuller{MaximumCoverage: 1}
}

type coverage struct {
	prop     Prop
	coverage float32
	distance float32
}

func (fc *FrustumCoverageCuller) Cull(rn *Renderer, cs *CullState) {
	fc.Culled = 0
	if len(cs.Props) == 0 {
		return
	}
	cam := rn.ActiveCamera()
	fr := cam.Frustum(rn.Aspect())

	kept := make([]coverage, 0, len(cs.Props))
	var culled []Prop
	for _, p := range cs.Props {
		cv, dist := fc.coverage(fr, p)
		if cv <= 0 {
			culled = append(culled, p)
			continue
		}
		kept = append(kept, coverage{prop: p, coverage: cv, distance: dist})
	}

	switch fc.SortingStyle {
	case SortFrontToBack:
		slices.SortStableFunc(kept, func(a, b coverage) int { return cmp.Compare(a.distance, b.distance) })
	case SortBackToFront:
		slices.SortStableFunc(kept, func(a, b coverage) int { return cmp.Compare(b.distance, a.distance) })
	}

	total := float32(0)
	for i, k := range kept {
		total += cs.ApplyMultiplier(k.prop, k.coverage)
		cs.Props[i] = k.prop
	}
	for i, p := range culled {
		p.SetRenderTimeMultiplier(0)
		p.SetAllocatedRenderTime(0)
		cs.Props[len(kept)+i] = p
	}
	fc.Culled = len(culled)
	cs.Props = cs.Props[:len(kept)]
	cs.TotalTime = total
	cs.Initialized = true
}

// coverage returns the coverage of the prop and the distance of its
// center from the near plane.
func (fc *FrustumCoverageCuller) coverage(fr *math32.Frustum, p Prop) (float32, float32) {
	pb := p.Bounds()
	if pb == nil || !pb.IsBounded() || pb.IsEmpty() {
		return 1, 0
	}
	center := pb.Center()
	radius := pb.Diagonal() / 2

	var sb [4]float32
	for i, pl := range fr.Planes {
		d := pl.DistanceToPoint(center)
		if d < -radius {
			return 0, 0
		}
		if i < 4 {
			sb[i] = d - radius
		}
	}
	dist := fr.Planes[5].DistanceToPoint(center)

	// sb: right, left, bottom, top
	fullW := sb[0] + sb[1] + 2*radius
	fullH := sb[2] + sb[3] + 2*radius
	partW := 2 * radius
	partH := 2 * radius
	for i := range 2 {
		if sb[i] < 0 {
			partW += sb[i]
		}
		if sb[2+i] < 0 {
			partH += sb[2+i]
		}
	}
	var cv float32
	if fullW*fullH > 0 {
		cv = (partW * partH) / (fullW * fullH)
	}
	switch {
	case cv < fc.MinimumCoverage:
		return 0, dist
	case cv >= fc.MaximumCoverage || fc.MaximumCoverage <= fc.MinimumCoverage:
		cv = 1
	default:
		cv = (cv - fc.MinimumCoverage) / (fc.MaximumCoverage - fc.MinimumCoverage)
	}
	return cv, dist
}
