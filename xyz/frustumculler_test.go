// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xyzrender/base/tolassert"
	"cogentcore.org/xyzrender/math32"
)

// cullScene returns a renderer looking down -z from (0, 0, 10), with a
// near box at the origin, a far box at z = -5, a box behind the camera,
// and a prop without bounds.
func cullScene() (rn *Renderer, near, far, behind, free *testProp) {
	near = newTestProp("near", nil).withBounds(math32.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5))
	far = newTestProp("far", nil).withBounds(math32.B3(-0.5, -0.5, -5.5, 0.5, 0.5, -4.5))
	behind = newTestProp("behind", nil).withBounds(math32.B3(-0.5, -0.5, 19.5, 0.5, 0.5, 20.5))
	free = newTestProp("free", nil)
	rn, _, _ = newTestScene(far, behind, near, free)
	cam := NewCamera()
	cam.SetPosition(math32.Vec3(0, 0, 10)).SetClippingRange(1, 100)
	rn.SetActiveCamera(cam)
	return
}

func TestFrustumCoverageCuller(t *testing.T) {
	rn, near, far, behind, free := cullScene()
	fc := NewFrustumCoverageCuller()
	cs := &CullState{Props: []Prop{far, behind, near, free}, TotalTime: 4}
	fc.Cull(rn, cs)

	require.Equal(t, []Prop{far, near, free}, cs.Props)
	assert.Equal(t, 1, fc.Culled)
	assert.True(t, cs.Initialized)
	assert.Equal(t, float32(0), behind.RenderTimeMultiplier())

	assert.Greater(t, near.RenderTimeMultiplier(), far.RenderTimeMultiplier())
	assert.Greater(t, far.RenderTimeMultiplier(), float32(0))
	assert.Less(t, near.RenderTimeMultiplier(), float32(1))
	assert.Equal(t, float32(1), free.RenderTimeMultiplier())
	tolassert.Equal(t, near.RenderTimeMultiplier()+far.RenderTimeMultiplier()+1, cs.TotalTime)
}

func TestFrustumCoverageCullerSorting(t *testing.T) {
	rn, near, far, behind, free := cullScene()
	fc := NewFrustumCoverageCuller()

	fc.SortingStyle = SortFrontToBack
	cs := &CullState{Props: []Prop{far, behind, near}, TotalTime: 3}
	fc.Cull(rn, cs)
	assert.Equal(t, []Prop{near, far}, cs.Props)

	fc.SortingStyle = SortBackToFront
	cs = &CullState{Props: []Prop{near, free, far}, TotalTime: 3}
	fc.Cull(rn, cs)
	// props without bounds are at distance 0
	assert.Equal(t, []Prop{far, near, free}, cs.Props)
}

func TestFrustumCoverageCullerMinimum(t *testing.T) {
	rn, near, far, _, free := cullScene()
	fc := NewFrustumCoverageCuller()
	fc.MinimumCoverage = 0.9
	cs := &CullState{Props: []Prop{near, far, free}, TotalTime: 3}
	fc.Cull(rn, cs)
	assert.Equal(t, []Prop{free}, cs.Props)
	assert.Equal(t, 2, fc.Culled)
	assert.Equal(t, float32(1), cs.TotalTime)
}

func TestFrustumCoverageCullerMaximum(t *testing.T) {
	rn, near, far, _, _ := cullScene()
	fc := NewFrustumCoverageCuller()
	fc.MaximumCoverage = 1e-6
	cs := &CullState{Props: []Prop{near, far}, TotalTime: 2}
	fc.Cull(rn, cs)
	assert.Equal(t, float32(1), near.RenderTimeMultiplier())
	assert.Equal(t, float32(1), far.RenderTimeMultiplier())
	assert.Equal(t, float32(2), cs.TotalTime)
}

func TestFrustumCoverageCullerInitialized(t *testing.T) {
	rn, near, _, _, free := cullScene()
	fc := NewFrustumCoverageCuller()
	near.SetRenderTimeMultiplier(4)
	free.SetRenderTimeMultiplier(3)
	cs := &CullState{Props: []Prop{near}, TotalTime: 1}
	fc.Cull(rn, cs)
	cov := near.RenderTimeMultiplier()

	near.SetRenderTimeMultiplier(4)
	cs = &CullState{Props: []Prop{near, free}, TotalTime: 7, Initialized: true}
	fc.Cull(rn, cs)
	tolassert.Equal(t, 4*cov, near.RenderTimeMultiplier())
	assert.Equal(t, float32(3), free.RenderTimeMultiplier())
	tolassert.Equal(t, 4*cov+3, cs.TotalTime)
}

func TestFrustumCoverageCullerInRender(t *testing.T) {
	rn, near, far, behind, free := cullScene()
	rn.AddCuller(NewFrustumCoverageCuller())
	dev := rn.Device().(*recordingDevice)
	rn.Render()
	assert.Equal(t, []Prop{far, near, free}, dev.props)
	total := near.AllocatedRenderTime() + far.AllocatedRenderTime() + free.AllocatedRenderTime()
	tolassert.EqualTol(t, 100, total, 1e-3)
	assert.Equal(t, float32(0), behind.AllocatedRenderTime())
}

func TestSortingStyles(t *testing.T) {
	var s SortingStyles
	require.NoError(t, s.SetString("backtofront"))
	assert.Equal(t, SortBackToFront, s)
	assert.Equal(t, "BackToFront", s.String())
	assert.Error(t, s.SetString("sideways"))
	assert.Equal(t, "SortingStyles(7)", SortingStyles(7).String())
}
