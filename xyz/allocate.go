// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "log/slog"

// AllocateTime passes the props of the frame through the cullers, in
// order, and divides [Renderer.AllocatedRenderTime] among the props that
// survive, in proportion to their render time multipliers. The props are
// then split into those that require ray casting and those that render
// into an image (a prop can be in both).
func (rn *Renderer) AllocateTime() {
	rn.rayCastProps = nil
	rn.intoImageProps = nil
	if len(rn.propArray) == 0 {
		return
	}
	cs := &CullState{
		Props:     rn.propArray,
		TotalTime: float32(len(rn.propArray)),
	}
	for c := range rn.cullers.All() {
		c.Cull(rn, cs)
	}
	rn.propArray = cs.Props

	if cs.TotalTime <= 0 {
		if len(cs.Props) > 0 {
			slog.Warn("xyz.Renderer: total render time weight is not positive, no time allocated",
				"renderer", rn.Name, "total", cs.TotalTime, "props", len(cs.Props))
		}
	} else {
		for _, p := range cs.Props {
			mult := float32(1)
			if cs.Initialized {
				mult = p.RenderTimeMultiplier()
			}
			p.SetAllocatedRenderTime((mult / cs.TotalTime) * rn.AllocatedRenderTime)
		}
	}

	for _, p := range cs.Props {
		if p.RequiresRayCasting() {
			rn.rayCastProps = append(rn.rayCastProps, p)
		}
		if p.RequiresRenderingIntoImage() {
			rn.intoImageProps = append(rn.intoImageProps, p)
		}
	}
}
