// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a software render window for xyz renderers:
// a color buffer and a depth buffer in memory, which can be saved as an image.
package offscreen

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/xyz"
)

// Window is an in-memory [xyz.Window]. Pixel rows are stored in
// display order: row y of the color and depth buffers is display y,
// with y = 0 at the bottom of the window. Use [Window.Image] to get
// the usual top-down image.
type Window struct {
	mu        sync.Mutex
	img       *image.RGBA
	depth     []float32
	stamp     mtime.Stamp
	renderers []*xyz.Renderer
}

var _ xyz.Window = (*Window)(nil)
var _ xyz.Clearer = (*Window)(nil)

// NewWindow returns a new window of the given size, cleared to
// transparent black at the far plane.
func NewWindow(size image.Point) *Window {
	w := &Window{}
	w.SetSize(size)
	return w
}

// SetSize resizes the window, clearing its contents.
// Setting the current size does nothing.
func (w *Window) SetSize(size image.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.img != nil && w.img.Bounds().Size() == size {
		return
	}
	size.X = max(size.X, 0)
	size.Y = max(size.Y, 0)
	w.img = image.NewRGBA(image.Rectangle{Max: size})
	w.depth = make([]float32, size.X*size.Y)
	for i := range w.depth {
		w.depth[i] = 1
	}
	w.stamp.Modified()
}

func (w *Window) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.img.Bounds().Size()
}

func (w *Window) MTime() mtime.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stamp.Time()
}

// Modified marks the window as changed, invalidating the cached frames
// of its renderers.
func (w *Window) Modified() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stamp.Modified()
}

func (w *Window) SetPixelData(r image.Rectangle, img *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := r.Intersect(w.img.Bounds())
	if cr.Empty() {
		return fmt.Errorf("offscreen.Window SetPixelData: rectangle %v is outside of the window %v", r, w.img.Bounds())
	}
	draw.Draw(w.img, cr, img, cr.Min, draw.Src)
	return nil
}

func (w *Window) PixelData(r image.Rectangle) (*image.RGBA, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := r.Intersect(w.img.Bounds())
	if cr.Empty() {
		return nil, fmt.Errorf("offscreen.Window PixelData: rectangle %v is outside of the window %v", r, w.img.Bounds())
	}
	return clone.AsRGBA(w.img.SubImage(cr)), nil
}

func (w *Window) ZbufferData(r image.Rectangle) ([]float32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := r.Intersect(w.img.Bounds())
	if cr.Empty() {
		return nil, fmt.Errorf("offscreen.Window ZbufferData: rectangle %v is outside of the window %v", r, w.img.Bounds())
	}
	sx := w.img.Bounds().Dx()
	zs := make([]float32, 0, cr.Dx()*cr.Dy())
	for y := cr.Min.Y; y < cr.Max.Y; y++ {
		zs = append(zs, w.depth[y*sx+cr.Min.X:y*sx+cr.Max.X]...)
	}
	return zs, nil
}

// SetZ sets the depth value of a pixel.
func (w *Window) SetZ(x, y int, z float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !image.Pt(x, y).In(w.img.Bounds()) {
		return
	}
	w.depth[y*w.img.Bounds().Dx()+x] = z
}

// Clear fills the rectangle with the color and resets its depth to the
// far plane.
func (w *Window) Clear(r image.Rectangle, c color.Color) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := r.Intersect(w.img.Bounds())
	draw.Draw(w.img, cr, image.NewUniform(c), image.Point{}, draw.Src)
	sx := w.img.Bounds().Dx()
	for y := cr.Min.Y; y < cr.Max.Y; y++ {
		row := w.depth[y*sx+cr.Min.X : y*sx+cr.Max.X]
		for i := range row {
			row[i] = 1
		}
	}
}

// FillRect fills the pixels of the rectangle that are nearer than the
// current depth. Opaque colors replace the pixel and its depth;
// translucent colors are blended over the pixel and leave the depth.
// It returns the number of pixels drawn.
func (w *Window) FillRect(r image.Rectangle, c color.RGBA, depth float32) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := r.Intersect(w.img.Bounds())
	sx := w.img.Bounds().Dx()
	n := 0
	for y := cr.Min.Y; y < cr.Max.Y; y++ {
		for x := cr.Min.X; x < cr.Max.X; x++ {
			zi := y*sx + x
			if depth >= w.depth[zi] {
				continue
			}
			n++
			if c.A == 255 {
				w.img.SetRGBA(x, y, c)
				w.depth[zi] = depth
				continue
			}
			w.img.SetRGBA(x, y, over(c, w.img.RGBAAt(x, y)))
		}
	}
	return n
}

// over composites the premultiplied color src over dst.
func over(src, dst color.RGBA) color.RGBA {
	ia := 255 - uint32(src.A)
	blend := func(s, d uint8) uint8 {
		return uint8(uint32(s) + (uint32(d)*ia+127)/255)
	}
	return color.RGBA{blend(src.R, dst.R), blend(src.G, dst.G), blend(src.B, dst.B), blend(src.A, dst.A)}
}

// Image returns a copy of the window contents as a top-down image,
// ready to be saved or displayed.
func (w *Window) Image() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return transform.FlipV(w.img)
}

// AddRenderer binds the renderer to this window and adds it to the
// renderers drawn by [Window.Render], in order.
func (w *Window) AddRenderer(rn *xyz.Renderer) {
	if slices.Contains(w.renderers, rn) {
		return
	}
	w.renderers = append(w.renderers, rn)
	rn.SetRenderWindow(w)
}

// RemoveRenderer unbinds the renderer from this window.
func (w *Window) RemoveRenderer(rn *xyz.Renderer) {
	i := slices.Index(w.renderers, rn)
	if i < 0 {
		return
	}
	w.renderers = slices.Delete(w.renderers, i, i+1)
	rn.SetRenderWindow(nil)
}

// Renderers returns the renderers of the window.
func (w *Window) Renderers() []*xyz.Renderer {
	return slices.Clone(w.renderers)
}

// Render renders a frame: every renderer renders in turn, and then
// every renderer draws its overlay, which completes the frame.
func (w *Window) Render() {
	for _, rn := range w.renderers {
		rn.Render()
	}
	for _, rn := range w.renderers {
		rn.RenderOverlay()
	}
	slog.Debug("offscreen.Window: rendered frame", "renderers", len(w.renderers))
}
