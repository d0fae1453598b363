// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"
	"log/slog"
	"slices"
	"time"

	"github.com/anthonynsimon/bild/clone"

	"cogentcore.org/xyzrender/base/errors"
)

// Render renders one frame of the renderer into its window.
//
// If the backing store is on and nothing affecting the image changed
// since the last completed frame, the cached frame is copied back into
// the viewport and [Renderer.OnEndRender] is called. Otherwise the
// visible props are collected, their render time is allocated through
// the cullers, and the [Device] renders the frame, which is then cached
// if the backing store is on.
//
// The frame is completed by [Renderer.RenderOverlay], which the window
// calls after all of its renderers have rendered.
func (rn *Renderer) Render() {
	if rn.released {
		errors.Log(fmt.Errorf("xyz.Renderer %q Render: %w", rn.Name, ErrReleased))
		return
	}
	start := time.Now()
	if rn.OnStartRender != nil {
		rn.OnStartRender(rn)
	}
	win := rn.window
	if win == nil {
		errors.Log(fmt.Errorf("xyz.Renderer %q Render: %w", rn.Name, ErrNoWindow))
		return
	}
	r := rn.ViewportRect()
	if rn.backingStoreValid(r) {
		errors.Log(win.SetPixelData(r, rn.backingImage))
		if rn.OnEndRender != nil {
			rn.OnEndRender(rn)
		}
		return
	}

	rn.renderFrame()

	if rn.BackingStore {
		img, err := win.PixelData(r)
		if errors.Log(err) == nil {
			rn.backingImage = clone.AsRGBA(img)
			rn.backingProps = slices.Collect(rn.visibleProps())
		} else {
			rn.backingImage = nil
			rn.backingProps = nil
		}
	}
	rn.LastRenderTime = time.Since(start)
}

// renderFrame builds the visible prop array, allocates render time and
// hands the frame to the device. The prop arrays only live for the
// duration of the frame.
func (rn *Renderer) renderFrame() {
	defer rn.releasePropArrays()
	for p := range rn.visibleProps() {
		rn.propArray = append(rn.propArray, p)
	}
	if len(rn.propArray) == 0 {
		slog.Debug("xyz.Renderer: there are no visible props", "renderer", rn.Name)
	}
	rn.AllocateTime()
	rn.device.DeviceRender(rn)
}

// releasePropArrays drops the per frame prop arrays.
func (rn *Renderer) releasePropArrays() {
	clear(rn.propArray[:cap(rn.propArray)])
	rn.propArray = rn.propArray[:0]
	rn.rayCastProps = nil
	rn.intoImageProps = nil
}

// backingStoreValid returns whether the cached frame can be used for
// the given viewport rectangle: the backing store is on, a frame was
// completed, the same props are visible, and nothing affecting the
// image changed after it.
func (rn *Renderer) backingStoreValid(r image.Rectangle) bool {
	if !rn.BackingStore || rn.backingImage == nil || rn.backingImage.Bounds() != r {
		return false
	}
	rt := rn.renderTime.Time()
	if rt == 0 || rn.camera == nil {
		return false
	}
	if rn.MTime() > rt || rn.window.MTime() > rt {
		return false
	}
	if rn.props.MTime() > rt || rn.lights.MTime() > rt {
		return false
	}
	for lt := range rn.lights.All() {
		if lt.On && lt.MTime() > rt {
			return false
		}
	}
	n := 0
	for p := range rn.visibleProps() {
		if n >= len(rn.backingProps) || rn.backingProps[n] != p || p.RedrawMTime() > rt {
			return false
		}
		n++
	}
	return n == len(rn.backingProps)
}

// RenderOverlay renders the overlay of every prop and completes the
// frame: [Renderer.OnEndRender] is called and the render time is
// updated, which is what the backing store compares against.
func (rn *Renderer) RenderOverlay() {
	for p := range rn.allProps() {
		p.RenderOverlay(rn)
	}
	if rn.OnEndRender != nil {
		rn.OnEndRender(rn)
	}
	rn.renderTime.Modified()
}

// UpdateCamera loads the active camera for the frame, making and
// resetting one first if there is none. It returns true once the
// camera is loaded.
func (rn *Renderer) UpdateCamera() bool {
	if rn.camera == nil {
		slog.Debug("xyz.Renderer: no cameras are on, creating one", "renderer", rn.Name)
		rn.ActiveCamera()
	}
	rn.camera.Render(rn)
	return true
}

// UpdateLights returns the number of lights that are on. If none are,
// the default light is created at the camera (see [Renderer.CreateLight]).
func (rn *Renderer) UpdateLights() int {
	n := 0
	for lt := range rn.lights.All() {
		if lt.On {
			n++
		}
	}
	if n > 0 {
		return n
	}
	slog.Debug("xyz.Renderer: no lights are on, creating one", "renderer", rn.Name)
	rn.CreateLight()
	return 1
}

// UpdateGeometry renders the props of the frame as geometry, all the
// opaque parts first and then all the translucent ones. It returns the
// number of props rendered.
func (rn *Renderer) UpdateGeometry() int {
	if len(rn.propArray) == 0 {
		rn.geometryCount = 0
		return 0
	}
	n := 0
	for _, p := range rn.propArray {
		n += p.RenderOpaqueGeometry(rn)
	}
	for _, p := range rn.propArray {
		n += p.RenderTranslucentGeometry(rn)
	}
	rn.geometryCount = n
	slog.Debug("xyz.Renderer: rendered geometry", "renderer", rn.Name, "props", n)
	return n
}

// GeometryCount returns the number of props rendered as geometry in
// the last frame.
func (rn *Renderer) GeometryCount() int {
	return rn.geometryCount
}

// PropArray returns the props of the frame being rendered, in the order
// set by the cullers. It is only valid during [Device.DeviceRender].
func (rn *Renderer) PropArray() []Prop {
	return rn.propArray
}

// RayCastProps returns the props of the frame that require ray casting.
// It is only valid during [Device.DeviceRender].
func (rn *Renderer) RayCastProps() []Prop {
	return rn.rayCastProps
}

// RenderIntoImageProps returns the props of the frame that render into
// an image. It is only valid during [Device.DeviceRender].
func (rn *Renderer) RenderIntoImageProps() []Prop {
	return rn.intoImageProps
}

// ViewportRect returns the pixel rectangle of the viewport in the
// window, in display coordinates. It is empty without a window.
func (rn *Renderer) ViewportRect() image.Rectangle {
	if rn.window == nil {
		return image.Rectangle{}
	}
	sz := rn.window.Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return image.Rectangle{}
	}
	x1 := int(rn.Viewport[0] * float32(sz.X-1))
	y1 := int(rn.Viewport[1] * float32(sz.Y-1))
	x2 := int(rn.Viewport[2] * float32(sz.X-1))
	y2 := int(rn.Viewport[3] * float32(sz.Y-1))
	return image.Rect(x1, y1, x2+1, y2+1)
}

// Aspect returns the aspect ratio (width / height) of the viewport,
// or 1 when there is no window.
func (rn *Renderer) Aspect() float32 {
	r := rn.ViewportRect()
	if r.Dx() == 0 || r.Dy() == 0 {
		return 1
	}
	return float32(r.Dx()) / float32(r.Dy())
}
