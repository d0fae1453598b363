// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"cogentcore.org/xyzrender/base/errors"
)

// Device performs the device specific part of rendering a frame,
// after the renderer has built and culled the visible props.
// Implementations are selected by name when the renderer is made.
type Device interface {
	DeviceRender(rn *Renderer)
}

// devices are the registered device constructors, by name.
var devices = map[string]func() Device{
	"geometry": func() Device { return &GeometryDevice{} },
}

// RegisterDevice registers a device constructor under the given name,
// replacing any existing one.
func RegisterDevice(name string, fun func() Device) {
	devices[name] = fun
}

// NewDevice returns a new device of the registered name.
func NewDevice(name string) (Device, error) {
	fun, ok := devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownDevice, name, DeviceNames())
	}
	return fun(), nil
}

// DeviceNames returns the sorted names of the registered devices.
func DeviceNames() []string {
	return slices.Sorted(maps.Keys(devices))
}

// GeometryDevice is the default device: it loads the camera and
// lights, renders the props as geometry in an opaque and then a
// translucent pass, and hands ray cast and image props to the
// [RayCaster].
type GeometryDevice struct {

	// Rendered is the number of props rendered as geometry in the last frame.
	Rendered int
}

func (gd *GeometryDevice) DeviceRender(rn *Renderer) {
	if cl, ok := rn.RenderWindow().(Clearer); ok {
		cl.Clear(rn.ViewportRect(), rn.Background)
	}
	rn.UpdateCamera()
	rn.UpdateLights()
	gd.Rendered = rn.UpdateGeometry()
	if len(rn.RayCastProps()) == 0 && len(rn.RenderIntoImageProps()) == 0 {
		return
	}
	if rc := rn.RayCaster(); rc != nil {
		errors.Log(rc.Render())
	}
	slog.Debug("xyz.GeometryDevice: rendered", "renderer", rn.Name, "geometry", gd.Rendered,
		"raycast", len(rn.RayCastProps()), "image", len(rn.RenderIntoImageProps()))
}
