// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"

	"cogentcore.org/xyzrender/base/mtime"
)

// Window is the surface that renderers draw into. A renderer covers a
// rectangular viewport of the window. Pixel rectangles are in display
// coordinates, with the origin at the bottom-left pixel and y going up.
type Window interface {
	// Size returns the size of the window in pixels.
	Size() image.Point

	// SetPixelData writes the given image into the rectangle of the window.
	SetPixelData(r image.Rectangle, img *image.RGBA) error

	// PixelData returns a copy of the pixels in the rectangle.
	PixelData(r image.Rectangle) (*image.RGBA, error)

	// ZbufferData returns the depth values in the rectangle, row by row,
	// in the range [0, 1] from the near to the far clipping plane.
	ZbufferData(r image.Rectangle) ([]float32, error)

	// MTime returns the last time the window state (e.g., its size) changed.
	MTime() mtime.Time
}

// Clearer is implemented by windows that can clear a rectangle to a
// background color (resetting its depth to the far plane).
type Clearer interface {
	Clear(r image.Rectangle, c color.Color)
}
