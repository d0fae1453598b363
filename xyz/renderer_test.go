// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xyzrender/math32"
)

func TestNewRenderer(t *testing.T) {
	rn := NewRenderer(nil)
	assert.IsType(t, &GeometryDevice{}, rn.Device())
	assert.Equal(t, math32.Vec3(1, 1, 1), rn.Ambient)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rn.Background)
	assert.True(t, rn.TwoSidedLighting)
	assert.False(t, rn.BackingStore)
	assert.Equal(t, float32(100), rn.AllocatedRenderTime)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, rn.Viewport)
	assert.Less(t, rn.LastRenderTime, time.Duration(0))
	assert.False(t, rn.HasActiveCamera())
	require.NotNil(t, rn.RayCaster())
	assert.Same(t, rn, rn.RayCaster().Renderer())
	assert.Equal(t, 1, rn.RayCaster().Refs().Count())
}

func TestRenderWithoutWindow(t *testing.T) {
	dev := &recordingDevice{}
	rn := NewRenderer(dev)
	starts := 0
	rn.OnStartRender = func(rn *Renderer) { starts++ }
	rn.Render()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, dev.frames)
}

func TestRender(t *testing.T) {
	var log []string
	a := newTestProp("a", &log).withBounds(math32.B3(-1, -1, -1, 1, 1, 1))
	b := newTestProp("b", &log).withBounds(math32.B3(0, 0, 0, 1, 1, 1))
	b.translucent = true
	hidden := newTestProp("hidden", &log)
	hidden.SetVisible(false)
	rn, dev, win := newTestScene(b, a, hidden)

	var starts, ends int
	rn.OnStartRender = func(rn *Renderer) { starts++ }
	rn.OnEndRender = func(rn *Renderer) { ends++ }
	rn.Render()

	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, ends)
	assert.Equal(t, 1, dev.frames)
	assert.Equal(t, []Prop{b, a}, dev.props)
	assert.Equal(t, 2, dev.Rendered)
	assert.Equal(t, 2, rn.GeometryCount())
	// all the opaque parts first
	assert.Equal(t, []string{"opaque:a", "translucent:b"}, log)
	assert.Equal(t, 1, win.clears)
	assert.Empty(t, rn.PropArray())
	assert.GreaterOrEqual(t, rn.LastRenderTime, time.Duration(0))
	assert.True(t, rn.HasActiveCamera())
	assert.Equal(t, 1, rn.Lights().Len())
	assert.NotNil(t, rn.CreatedLight())

	rn.RenderOverlay()
	assert.Equal(t, 1, ends)
	assert.Equal(t, 1, a.overlays)
	assert.Equal(t, 1, hidden.overlays)
	assert.NotZero(t, rn.RenderTime())
}

func TestBackingStore(t *testing.T) {
	a := newTestProp("a", nil).withBounds(math32.B3(-1, -1, -1, 1, 1, 1))
	rn, dev, win := newTestScene(a)
	rn.SetBackingStore(true)
	rn.SetBackground(color.RGBA{10, 20, 30, 255})
	ends := 0
	rn.OnEndRender = func(rn *Renderer) { ends++ }

	frame := func() {
		rn.Render()
		rn.RenderOverlay()
	}
	frame()
	require.Equal(t, 1, dev.frames)
	require.NotNil(t, rn.BackingImage())
	assert.Equal(t, rn.ViewportRect(), rn.BackingImage().Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, rn.BackingImage().RGBAAt(5, 5))

	// nothing changed: the cached frame is used
	win.img.SetRGBA(5, 5, color.RGBA{})
	sets := win.sets
	rn.Render()
	assert.Equal(t, 1, dev.frames)
	assert.Equal(t, 2, ends)
	assert.Equal(t, sets+1, win.sets)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, win.img.RGBAAt(5, 5))
	rn.RenderOverlay()

	invalidations := []struct {
		name   string
		modify func()
	}{
		{"prop", a.Modified},
		{"camera", func() { rn.ActiveCamera().Dolly(1.5) }},
		{"renderer", func() { rn.SetAmbient(math32.Vec3(0.5, 0.5, 0.5)) }},
		{"ray caster", func() { rn.RayCaster().SetImageSampleDistance(2) }},
		{"window", func() { win.stamp.Modified() }},
		{"light", func() { rn.CreatedLight().SetLumens(0.5) }},
		{"props", func() { rn.Props().Add(newTestProp("c", nil)) }},
		{"hidden", func() { a.Visible = false }},
		{"shown", func() { a.SetVisible(true) }},
	}
	for _, inv := range invalidations {
		frames := dev.frames
		inv.modify()
		frame()
		assert.Equal(t, frames+1, dev.frames, inv.name)
		frame()
		assert.Equal(t, frames+1, dev.frames, inv.name+" cached")
	}

	// lights that are off do not invalidate
	off := NewLight("off").SetOn(false)
	rn.AddLight(off)
	frame()
	frames := dev.frames
	off.SetLumens(0.2)
	frame()
	assert.Equal(t, frames, dev.frames)

	rn.SetBackingStore(false)
	assert.Nil(t, rn.BackingImage())
	frame()
	frame()
	assert.Equal(t, frames+2, dev.frames)
}

func TestPropArraysCleared(t *testing.T) {
	a := newTestProp("a", nil)
	b := newTestProp("b", nil)
	c := newTestProp("c", nil)
	rn, dev, _ := newTestScene(a, b, c)
	rn.AddCuller(&testCuller{cull: func(cs *CullState) {
		cs.Props = cs.Props[:1]
		cs.TotalTime = 1
	}})
	rn.Render()
	assert.Equal(t, 1, dev.frames)
	assert.Equal(t, []Prop{a}, dev.props)
	assert.Empty(t, rn.propArray)
	assert.GreaterOrEqual(t, cap(rn.propArray), 3)
	for i, p := range rn.propArray[:cap(rn.propArray)] {
		assert.Nil(t, p, "prop array slot %d", i)
	}
}

func TestBackingStoreResize(t *testing.T) {
	a := newTestProp("a", nil).withBounds(math32.B3(-1, -1, -1, 1, 1, 1))
	rn, dev, win := newTestScene(a)
	rn.SetBackingStore(true)
	rn.Render()
	rn.RenderOverlay()
	win.resize(50, 40)
	rn.Render()
	assert.Equal(t, 2, dev.frames)
	assert.Equal(t, image.Rect(0, 0, 50, 40), rn.BackingImage().Bounds())
}

func TestViewportRect(t *testing.T) {
	rn, _, _ := newTestScene()
	assert.Equal(t, image.Rect(0, 0, 100, 100), rn.ViewportRect())
	assert.Equal(t, float32(1), rn.Aspect())

	rn.SetViewport(0, 0, 0.5, 1)
	assert.Equal(t, image.Rect(0, 0, 50, 100), rn.ViewportRect())
	assert.InDelta(t, 0.5, rn.Aspect(), 1e-6)

	rn.SetRenderWindow(nil)
	assert.Equal(t, image.Rectangle{}, rn.ViewportRect())
	assert.Equal(t, float32(1), rn.Aspect())
}

func TestSetActiveCamera(t *testing.T) {
	rn := NewRenderer(nil)
	c1 := NewCamera()
	c2 := NewCamera()

	rn.SetActiveCamera(c1)
	assert.Same(t, c1, rn.ActiveCamera())
	assert.True(t, c1.Refs().HeldBy(rn))

	stamp := rn.stamp.Time()
	rn.SetActiveCamera(c1)
	assert.Equal(t, stamp, rn.stamp.Time())
	assert.Equal(t, 1, c1.Refs().Count())

	rn.SetActiveCamera(c2)
	assert.Equal(t, 0, c1.Refs().Count())
	assert.Equal(t, 1, c1.Refs().Released())
	assert.Equal(t, 1, c2.Refs().Count())
	assert.Greater(t, rn.stamp.Time(), stamp)

	rn.SetActiveCamera(nil)
	assert.Equal(t, 0, c2.Refs().Count())
	assert.False(t, rn.HasActiveCamera())
}

func TestActiveCameraCreated(t *testing.T) {
	a := newTestProp("a", nil).withBounds(math32.B3(1, 1, 1, 3, 3, 3))
	rn, _, _ := newTestScene(a)
	cam := rn.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, math32.Vec3(2, 2, 2), cam.FocalPoint)
	assert.True(t, cam.Refs().HeldBy(rn))
	assert.Same(t, cam, rn.ActiveCamera())
}

func TestMTime(t *testing.T) {
	rn := NewRenderer(nil)
	cam := rn.ActiveCamera()
	cam.Modified()
	assert.Equal(t, cam.MTime(), rn.MTime())

	lt := rn.CreateLight()
	lt.SetLumens(0.3)
	assert.Equal(t, lt.MTime(), rn.MTime())

	rn.RayCaster().Modified()
	assert.Equal(t, rn.RayCaster().MTime(), rn.MTime())

	rn.Modified()
	assert.Equal(t, rn.stamp.Time(), rn.MTime())
}

func TestSetRenderWindow(t *testing.T) {
	a := newTestProp("a", nil)
	b := newTestProp("b", nil)
	rn, _, w1 := newTestScene(a, b)
	// bound before the props were set
	assert.Empty(t, a.released)

	rn.SetRenderWindow(w1)
	assert.Empty(t, a.released)

	w2 := newTestWindow(10, 10)
	rn.SetRenderWindow(w2)
	assert.Equal(t, []Window{w1}, a.released)
	assert.Equal(t, []Window{w1}, b.released)
	assert.Same(t, w2, rn.RenderWindow())

	rn.SetRenderWindow(nil)
	assert.Equal(t, []Window{w1, w2}, a.released)
	assert.Nil(t, rn.RenderWindow())
}

func TestRelease(t *testing.T) {
	a := newTestProp("a", nil).withBounds(math32.B3(-1, -1, -1, 1, 1, 1))
	rn, _, win := newTestScene(a)
	rn.SetBackingStore(true)
	rn.Render()
	rn.RenderOverlay()
	cam := rn.ActiveCamera()
	lt := rn.CreatedLight()
	rc := rn.RayCaster()
	require.NotNil(t, lt)

	require.NoError(t, rn.Release())
	assert.True(t, rn.IsReleased())
	assert.Nil(t, rn.RayCaster())
	assert.Nil(t, rc.Renderer())
	assert.True(t, rc.IsReleased())
	assert.Equal(t, 0, rc.Refs().Count())
	assert.Equal(t, 0, cam.Refs().Count())
	assert.Equal(t, 0, lt.Refs().Count())
	assert.Nil(t, rn.BackingImage())
	assert.Equal(t, []Window{win}, a.released)
	assert.ErrorIs(t, rc.Render(), ErrRayCasterReleased)

	// releasing again does nothing
	require.NoError(t, rn.Release())
	assert.Equal(t, 1, rc.Refs().Released())
	assert.Equal(t, 1, cam.Refs().Released())
	assert.Equal(t, []Window{win}, a.released)

	// a released renderer does not render
	rn.Render()
	assert.ErrorIs(t, rn.ResetCameraBounds(math32.B3(0, 0, 0, 1, 1, 1)), ErrReleased)

	// nor does it keep or reference cameras and lights made afterwards
	after := rn.ActiveCamera()
	require.NotNil(t, after)
	assert.NotSame(t, cam, after)
	assert.Equal(t, 0, after.Refs().Count())
	assert.False(t, rn.HasActiveCamera())
	assert.NotSame(t, after, rn.ActiveCamera())
	nl := rn.CreateLight()
	require.NotNil(t, nl)
	assert.Equal(t, 0, nl.Refs().Count())
	assert.Nil(t, rn.CreatedLight())
	assert.Equal(t, 0, rn.Lights().Len())
}

func TestSaveCamera(t *testing.T) {
	rn := NewRenderer(nil)
	cam := rn.ActiveCamera()
	cam.SetPosition(math32.Vec3(1, 2, 3)).SetViewAngle(45)
	require.NoError(t, rn.SaveCamera("start"))

	cam.SetPosition(math32.Vec3(9, 9, 9)).SetViewAngle(20)
	mt := cam.MTime()
	require.NoError(t, rn.SetCamera("start"))
	assert.Same(t, cam, rn.ActiveCamera())
	assert.Equal(t, math32.Vec3(1, 2, 3), cam.Position)
	assert.Equal(t, float32(45), cam.ViewAngle)
	assert.Greater(t, cam.MTime(), mt)
	assert.True(t, cam.Refs().HeldBy(rn))

	assert.ErrorIs(t, rn.SetCamera("missing"), ErrCameraNotSaved)
}

func TestCreateLight(t *testing.T) {
	rn := NewRenderer(nil)
	cam := rn.ActiveCamera()
	cam.SetPosition(math32.Vec3(0, 5, 5))
	l1 := rn.CreateLight()
	assert.Equal(t, cam.Position, l1.Pos)
	assert.Equal(t, cam.FocalPoint, l1.FocalPoint)
	assert.True(t, l1.On)

	l2 := rn.CreateLight()
	assert.NotSame(t, l1, l2)
	assert.Equal(t, 1, rn.Lights().Len())
	assert.False(t, rn.Lights().Contains(l1))
	assert.Equal(t, 0, l1.Refs().Count())
	assert.True(t, l2.Refs().HeldBy(rn))
}

func TestUpdateLights(t *testing.T) {
	rn := NewRenderer(nil)
	lt := NewLight("key").SetOn(false)
	rn.AddLight(lt)
	assert.Equal(t, 1, rn.UpdateLights())
	assert.NotNil(t, rn.CreatedLight())
	assert.Equal(t, 2, rn.Lights().Len())

	lt.SetOn(true)
	assert.Equal(t, 2, rn.UpdateLights())

	rn.RemoveLight(lt)
	rn.RemoveLight(lt)
	assert.Equal(t, 1, rn.Lights().Len())
}

func TestActorsVolumes(t *testing.T) {
	a := newTestProp("a", nil)
	v := newImageProp("v", image.Point{}, color.RGBA{})
	hv := newImageProp("hv", image.Point{}, color.RGBA{})
	hv.SetVisible(false)
	o := newTestProp("o", nil)
	o.PropKind = PropOther
	rn, _, _ := newTestScene(a, v, hv, o)

	assert.Equal(t, []Prop{a}, rn.Actors().Slice())
	assert.Equal(t, []Prop{v, hv}, rn.Volumes().Slice())
	assert.Equal(t, 1, rn.VisibleActorCount())
	assert.Equal(t, 1, rn.VisibleVolumeCount())
	assert.Equal(t, 3, rn.VisiblePropCount())

	// rebuilt on every call
	rn.Props().Remove(a)
	assert.Equal(t, 0, rn.Actors().Len())
}

func TestCullers(t *testing.T) {
	rn := NewRenderer(nil)
	c1 := &testCuller{name: "1"}
	c2 := NewFrustumCoverageCuller()
	rn.AddCuller(c1)
	rn.AddCuller(c2)
	assert.Equal(t, []Culler{c1, c2}, rn.Cullers().Slice())
	rn.RemoveCuller(c1)
	assert.Equal(t, []Culler{c2}, rn.Cullers().Slice())
}
