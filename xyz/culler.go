// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// CullState is the state passed through the chain of cullers by
// [Renderer.AllocateTime].
type CullState struct {

	// Props are the props still in play. Cullers may reorder them and
	// shrink the slice; props culled to zero time must be moved past
	// the new length of the slice.
	Props []Prop

	// TotalTime is the sum of the render time multipliers of Props,
	// used to normalize the allocated render time.
	TotalTime float32

	// Initialized is set by the first culler that assigns render
	// time multipliers. Later cullers multiply into the existing ones.
	Initialized bool
}

// Culler is a strategy that adjusts the render time weighting and
// ordering of props, or eliminates them from the frame.
type Culler interface {
	Cull(rn *Renderer, cs *CullState)
}

// ApplyMultiplier sets the render time multiplier of the prop to m when
// the state is not yet initialized, and multiplies it by m otherwise.
// It returns the resulting multiplier.
func (cs *CullState) ApplyMultiplier(p Prop, m float32) float32 {
	if cs.Initialized {
		m *= p.RenderTimeMultiplier()
	}
	p.SetRenderTimeMultiplier(m)
	return m
}
