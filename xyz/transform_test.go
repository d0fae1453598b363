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

func newTransformScene() (*Renderer, *testWindow) {
	rn, _, win := newTestScene()
	cam := NewCamera()
	cam.SetClippingRange(0.5, 10)
	rn.SetActiveCamera(cam)
	return rn, win
}

func assertVec3(t *testing.T, want, got math32.Vector3, tol float32) {
	t.Helper()
	tolassert.EqualTol(t, want.X, got.X, tol, "x")
	tolassert.EqualTol(t, want.Y, got.Y, tol, "y")
	tolassert.EqualTol(t, want.Z, got.Z, tol, "z")
}

func TestWorldToViewDepth(t *testing.T) {
	rn, _ := newTransformScene()
	near, err := rn.WorldToViewPoint(math32.Vec3(0, 0, 0.5))
	require.NoError(t, err)
	assertVec3(t, math32.Vec3(0, 0, 0), near, 1e-4)

	far, err := rn.WorldToViewPoint(math32.Vec3(0, 0, -9))
	require.NoError(t, err)
	assertVec3(t, math32.Vec3(0, 0, 1), far, 1e-4)

	// the focal point is at the center of the view
	fp, err := rn.WorldToViewPoint(math32.Vec3(0, 0, 0))
	require.NoError(t, err)
	tolassert.EqualTol(t, 0, fp.X, 1e-5)
	tolassert.EqualTol(t, 0, fp.Y, 1e-5)
	assert.Greater(t, fp.Z, float32(0))
	assert.Less(t, fp.Z, float32(1))
}

func TestViewToWorldRoundTrip(t *testing.T) {
	rn, _ := newTransformScene()
	for _, p := range []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(0.1, -0.2, -1),
		math32.Vec3(-0.5, 0.3, 0.2),
	} {
		v, err := rn.WorldToViewPoint(p)
		require.NoError(t, err)
		w, err := rn.ViewToWorldPoint(v)
		require.NoError(t, err)
		assertVec3(t, p, w, 1e-3)
	}
}

func TestViewToWorldInPlace(t *testing.T) {
	rn, _ := newTransformScene()
	rn.WorldPoint = math32.Vec4(0.1, 0.2, -1, 1)
	require.NoError(t, rn.WorldToView())
	view := rn.ViewPoint

	rn.WorldPoint = math32.Vector4{}
	require.NoError(t, rn.ViewToWorld())
	assertVec3(t, math32.Vec3(0.1, 0.2, -1), rn.WorldPoint.Vector3(), 1e-3)
	assert.Equal(t, float32(1), rn.WorldPoint.W)
	assert.Equal(t, view, rn.ViewPoint)

	// a point at infinity leaves the view point unchanged
	rn.ViewPoint = math32.Vec3(0.5, 0.5, 0.5)
	rn.WorldPoint = math32.Vec4(1, 1, 1, 0)
	rn.camera.SetParallel(true)
	require.NoError(t, rn.WorldToView())
	assert.Equal(t, math32.Vec3(0.5, 0.5, 0.5), rn.ViewPoint)
}

func TestTransformNoCamera(t *testing.T) {
	rn, _, _ := newTestScene()
	assert.ErrorIs(t, rn.ViewToWorld(), ErrNoCamera)
	assert.ErrorIs(t, rn.WorldToView(), ErrNoCamera)
	p := math32.Vec3(1, 2, 3)
	got, err := rn.WorldToViewPoint(p)
	assert.ErrorIs(t, err, ErrNoCamera)
	assert.Equal(t, p, got)
	_, err = rn.ViewToWorldPoint(p)
	assert.ErrorIs(t, err, ErrNoCamera)
	// no camera is made by the conversions
	assert.False(t, rn.HasActiveCamera())
}

func TestZ(t *testing.T) {
	rn, win := newTransformScene()
	win.depth[10*100+20] = 0.25
	assert.Equal(t, float32(0.25), rn.Z(20, 10))
	assert.Equal(t, float32(1), rn.Z(21, 10))

	win.zErr = errTestZ
	assert.Equal(t, float32(1), rn.Z(20, 10))

	rn.SetRenderWindow(nil)
	assert.Equal(t, float32(1), rn.Z(20, 10))
}

func TestDisplayTransforms(t *testing.T) {
	rn, _ := newTransformScene()
	d, err := rn.ViewToDisplay(math32.Vec3(0, 0, 0.5))
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(50, 50, 0.5), d)

	v, err := rn.DisplayToView(math32.Vec3(100, 0, 0.2))
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(1, -1, 0.2), v)

	rn.SetViewport(0.5, 0, 1, 1)
	d, err = rn.ViewToDisplay(math32.Vec3(-1, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(50, 0, 0), d)

	fp, err := rn.WorldToDisplay(math32.Vec3(0, 0, 0))
	require.NoError(t, err)
	tolassert.EqualTol(t, 75, fp.X, 1e-3)
	tolassert.EqualTol(t, 50, fp.Y, 1e-3)

	w, err := rn.DisplayToWorld(fp)
	require.NoError(t, err)
	assertVec3(t, math32.Vec3(0, 0, 0), w, 1e-3)

	rn.SetRenderWindow(nil)
	_, err = rn.ViewToDisplay(math32.Vec3(0, 0, 0))
	assert.ErrorIs(t, err, ErrNoWindow)
}
