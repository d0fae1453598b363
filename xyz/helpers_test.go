// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"slices"

	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/math32"
)

// testWindow is an in-memory [Window] that records its use.
type testWindow struct {
	size    image.Point
	img     *image.RGBA
	depth   []float32
	zErr    error
	stamp   mtime.Stamp
	sets    int
	clears  int
	lastSet image.Rectangle
}

func newTestWindow(w, h int) *testWindow {
	tw := &testWindow{size: image.Pt(w, h), img: image.NewRGBA(image.Rect(0, 0, w, h))}
	tw.depth = make([]float32, w*h)
	for i := range tw.depth {
		tw.depth[i] = 1
	}
	tw.stamp.Modified()
	return tw
}

func (tw *testWindow) Size() image.Point { return tw.size }

func (tw *testWindow) SetPixelData(r image.Rectangle, img *image.RGBA) error {
	tw.sets++
	tw.lastSet = r
	draw.Draw(tw.img, r, img, r.Min, draw.Src)
	return nil
}

func (tw *testWindow) PixelData(r image.Rectangle) (*image.RGBA, error) {
	out := image.NewRGBA(r)
	draw.Draw(out, r, tw.img, r.Min, draw.Src)
	return out, nil
}

func (tw *testWindow) ZbufferData(r image.Rectangle) ([]float32, error) {
	if tw.zErr != nil {
		return nil, tw.zErr
	}
	r = r.Intersect(image.Rectangle{Max: tw.size})
	var zs []float32
	for y := r.Min.Y; y < r.Max.Y; y++ {
		zs = append(zs, tw.depth[y*tw.size.X+r.Min.X:y*tw.size.X+r.Max.X]...)
	}
	return zs, nil
}

func (tw *testWindow) MTime() mtime.Time { return tw.stamp.Time() }

func (tw *testWindow) Clear(r image.Rectangle, c color.Color) {
	tw.clears++
	draw.Draw(tw.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// resize changes the window size, as a user resizing it would.
func (tw *testWindow) resize(w, h int) {
	*tw = *newTestWindow(w, h)
}

var errTestZ = errors.New("z-buffer not available")

// testProp is a [Prop] that records the calls made on it into a shared log.
type testProp struct {
	PropBase
	log         *[]string
	translucent bool
	released    []Window
	overlays    int
}

func newTestProp(name string, log *[]string) *testProp {
	tp := &testProp{log: log}
	tp.Defaults()
	tp.Name = name
	tp.PropKind = PropActor
	return tp
}

// withBounds sets the bounds and returns the prop.
func (tp *testProp) withBounds(b math32.Box3) *testProp {
	tp.SetBounds(b)
	return tp
}

func (tp *testProp) record(what string) {
	if tp.log != nil {
		*tp.log = append(*tp.log, what+":"+tp.Name)
	}
}

func (tp *testProp) RenderOpaqueGeometry(rn *Renderer) int {
	if tp.translucent {
		return 0
	}
	tp.record("opaque")
	return 1
}

func (tp *testProp) RenderTranslucentGeometry(rn *Renderer) int {
	if !tp.translucent {
		return 0
	}
	tp.record("translucent")
	return 1
}

func (tp *testProp) RenderOverlay(rn *Renderer) {
	tp.overlays++
	tp.record("overlay")
}

func (tp *testProp) ReleaseGraphicsResources(w Window) {
	tp.released = append(tp.released, w)
}

// imageProp is a ray cast prop that fills its pixel with a color.
type imageProp struct {
	testProp
	pixel image.Point
	color color.RGBA
	draws int
}

func newImageProp(name string, pixel image.Point, c color.RGBA) *imageProp {
	ip := &imageProp{pixel: pixel, color: c}
	ip.Defaults()
	ip.Name = name
	ip.PropKind = PropVolume
	ip.RayCast = true
	return ip
}

func (ip *imageProp) RenderOpaqueGeometry(rn *Renderer) int { return 0 }

func (ip *imageProp) RenderIntoImage(rc *RayCaster, img *image.RGBA) bool {
	ip.draws++
	img.SetRGBA(ip.pixel.X, ip.pixel.Y, ip.color)
	return true
}

// recordingDevice is a [GeometryDevice] that records the frames it renders.
type recordingDevice struct {
	GeometryDevice
	frames int
	props  []Prop
	rays   []Prop
	images []Prop
}

func (rd *recordingDevice) DeviceRender(rn *Renderer) {
	rd.frames++
	rd.props = slices.Clone(rn.PropArray())
	rd.rays = slices.Clone(rn.RayCastProps())
	rd.images = slices.Clone(rn.RenderIntoImageProps())
	rd.GeometryDevice.DeviceRender(rn)
}

// testCuller records its calls and applies an optional function to the state.
type testCuller struct {
	name string
	log  *[]string
	cull func(cs *CullState)
}

func (tc *testCuller) Cull(rn *Renderer, cs *CullState) {
	if tc.log != nil {
		*tc.log = append(*tc.log, "cull:"+tc.name)
	}
	if tc.cull != nil {
		tc.cull(cs)
	}
}

// newTestScene returns a renderer with a recording device, bound to a
// 100x100 window, rendering the given props.
func newTestScene(props ...Prop) (*Renderer, *recordingDevice, *testWindow) {
	dev := &recordingDevice{}
	rn := NewRenderer(dev)
	win := newTestWindow(100, 100)
	rn.SetRenderWindow(win)
	rn.SetProps(NewCollection(props...))
	return rn, dev, win
}
