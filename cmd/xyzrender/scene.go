// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"

	"cogentcore.org/xyzrender/math32"
	"cogentcore.org/xyzrender/xyz"
	"cogentcore.org/xyzrender/xyz/shapes"
)

// demoScene returns the props of the demo scene: a floor, a row of
// colored boxes, a translucent pane in front of them and a volume.
func demoScene() *xyz.Collection[xyz.Prop] {
	props := xyz.NewCollection[xyz.Prop]()
	props.Add(shapes.NewBox("floor", math32.B3(-4, -1.2, -3, 4, -1, 1), color.RGBA{90, 90, 100, 255}))
	colors := []color.RGBA{
		{220, 60, 50, 255},
		{60, 180, 80, 255},
		{50, 100, 220, 255},
	}
	for i, c := range colors {
		x := float32(i)*2.5 - 2.5
		props.Add(shapes.NewBox(boxName(i), math32.B3(x-0.75, -1, -2, x+0.75, 0.5, -0.5), c))
	}
	props.Add(shapes.NewBox("pane", math32.B3(-3, -0.5, 0.2, 3, 0.3, 0.4), color.RGBA{240, 240, 255, 255}).SetOpacity(0.35))
	props.Add(shapes.NewVolume("fog", math32.B3(-1.5, 0.6, -2.5, 1.5, 1.8, -1), color.RGBA{40, 40, 60, 90}))
	return props
}

func boxName(i int) string {
	return string(rune('a'+i)) + "-box"
}
