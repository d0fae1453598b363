// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"
	"image/color"
	"iter"
	"time"

	"github.com/jinzhu/copier"

	"cogentcore.org/xyzrender/base/errors"
	"cogentcore.org/xyzrender/base/mtime"
	"cogentcore.org/xyzrender/math32"
)

var (
	// ErrNoCamera is returned when an operation needs a camera and none is available.
	ErrNoCamera = errors.New("xyz: no active camera")

	// ErrNoVisibleProps is returned when bounds are needed and no visible prop has any.
	ErrNoVisibleProps = errors.New("xyz: no visible props with bounds")

	// ErrBadBounds is returned when framing bounds that are empty or unbounded.
	ErrBadBounds = errors.New("xyz: empty or unbounded bounds")

	// ErrNoWindow is returned when an operation needs a render window and none is bound.
	ErrNoWindow = errors.New("xyz: no render window")

	// ErrUnknownDevice is returned for a device name that is not registered.
	ErrUnknownDevice = errors.New("xyz: unknown device")

	// ErrCameraNotSaved is returned when restoring a camera that was never saved.
	ErrCameraNotSaved = errors.New("xyz: camera not saved")

	// ErrRayCasterReleased is returned when rendering with a released ray caster.
	ErrRayCasterReleased = errors.New("xyz: ray caster released")

	// ErrReleased is returned when using a renderer after [Renderer.Release].
	ErrReleased = errors.New("xyz: renderer released")
)

// Renderer coordinates the rendering of a set of props, lit by lights
// and viewed through a camera, into a viewport of a [Window].
// It decides every frame whether the cached frame (the backing store)
// can be reused, and if not, how the render time is allocated to the
// visible props through the cullers, before handing the frame to its
// [Device].
//
// A Renderer is used by a single rendering goroutine.
type Renderer struct {

	// Name is an optional name, used in log messages.
	Name string

	// Ambient is the ambient light color, as RGB in 0-1 units.
	Ambient math32.Vector3 `set:"-"`

	// Background is the color the viewport is cleared to.
	Background color.RGBA `set:"-"`

	// TwoSidedLighting is whether back faces are lit too.
	TwoSidedLighting bool `set:"-"`

	// BackingStore is whether the rendered frame is cached and reused
	// when nothing has changed.
	BackingStore bool `set:"-"`

	// AllocatedRenderTime is the render time budget of a frame,
	// divided among the visible props.
	AllocatedRenderTime float32 `default:"100" set:"-"`

	// Viewport is the area of the window covered by this renderer,
	// as (xmin, ymin, xmax, ymax) in normalized [0, 1] coordinates.
	Viewport [4]float32 `set:"-"`

	// ViewPoint is the point used by the in-place [Renderer.ViewToWorld]
	// and [Renderer.WorldToView] conversions, in view coordinates.
	ViewPoint math32.Vector3

	// WorldPoint is the homogeneous point used by the in-place conversions,
	// in world coordinates.
	WorldPoint math32.Vector4

	// OnStartRender is called at the start of every [Renderer.Render].
	OnStartRender func(rn *Renderer) `display:"-"`

	// OnEndRender is called at the end of a frame: after a backing
	// store hit, or after [Renderer.RenderOverlay].
	OnEndRender func(rn *Renderer) `display:"-"`

	// LastRenderTime is the duration of the last [Renderer.Render];
	// negative if the renderer has never rendered.
	LastRenderTime time.Duration `set:"-"`

	device   Device
	props    *Collection[Prop]
	window   Window
	lights   *Collection[*Light]
	cullers  *Collection[Culler]
	actors   *Collection[Prop]
	volumes  *Collection[Prop]
	camera   *Camera
	created  *Light
	caster   *RayCaster
	released bool

	savedCams map[string]Camera

	backingImage *image.RGBA
	backingProps []Prop // visible props when backingImage was taken
	stamp        mtime.Stamp
	renderTime   mtime.Stamp

	propArray      []Prop
	rayCastProps   []Prop
	intoImageProps []Prop
	geometryCount  int
}

// NewRenderer returns a new renderer that renders through the given
// device; a nil device selects a [GeometryDevice].
// It has a black background, a white ambient light, two sided lighting
// on, a viewport covering the whole window, and backing store off.
func NewRenderer(dev Device) *Renderer {
	if dev == nil {
		dev = &GeometryDevice{}
	}
	rn := &Renderer{device: dev}
	rn.Defaults()
	rn.lights = NewCollection[*Light]()
	rn.cullers = NewCollection[Culler]()
	rn.actors = NewCollection[Prop]()
	rn.volumes = NewCollection[Prop]()
	rn.caster = newRayCaster(rn)
	return rn
}

// Defaults sets the default renderer parameters.
func (rn *Renderer) Defaults() {
	rn.Ambient.Set(1, 1, 1)
	rn.Background = color.RGBA{0, 0, 0, 255}
	rn.TwoSidedLighting = true
	rn.BackingStore = false
	rn.AllocatedRenderTime = 100
	rn.Viewport = [4]float32{0, 0, 1, 1}
	rn.LastRenderTime = -1
	rn.Modified()
}

// Modified marks the renderer as modified, invalidating the backing store.
func (rn *Renderer) Modified() {
	rn.stamp.Modified()
}

// Device returns the device used to render frames.
func (rn *Renderer) Device() Device {
	return rn.device
}

// SetAmbient sets the ambient light color.
func (rn *Renderer) SetAmbient(c math32.Vector3) *Renderer {
	rn.Ambient = c
	rn.Modified()
	return rn
}

// SetBackground sets the background color.
func (rn *Renderer) SetBackground(c color.RGBA) *Renderer {
	rn.Background = c
	rn.Modified()
	return rn
}

// SetTwoSidedLighting sets whether back faces are lit.
func (rn *Renderer) SetTwoSidedLighting(on bool) *Renderer {
	rn.TwoSidedLighting = on
	rn.Modified()
	return rn
}

// SetBackingStore turns the cached frame on or off.
// Turning it off drops any cached frame.
func (rn *Renderer) SetBackingStore(on bool) *Renderer {
	rn.BackingStore = on
	if !on {
		rn.backingImage = nil
		rn.backingProps = nil
	}
	rn.Modified()
	return rn
}

// SetAllocatedRenderTime sets the render time budget of a frame.
func (rn *Renderer) SetAllocatedRenderTime(t float32) *Renderer {
	rn.AllocatedRenderTime = t
	rn.Modified()
	return rn
}

// SetViewport sets the area of the window covered by the renderer,
// in normalized [0, 1] coordinates.
func (rn *Renderer) SetViewport(xmin, ymin, xmax, ymax float32) *Renderer {
	rn.Viewport = [4]float32{xmin, ymin, xmax, ymax}
	rn.Modified()
	return rn
}

// BackingImage returns the cached frame, or nil if there is none.
func (rn *Renderer) BackingImage() *image.RGBA {
	return rn.backingImage
}

// RenderTime returns the time of the last completed frame
// (updated by [Renderer.RenderOverlay]).
func (rn *Renderer) RenderTime() mtime.Time {
	return rn.renderTime.Time()
}

// MTime returns the latest modification time of the renderer and the
// objects it owns: its ray caster, active camera, and created light.
func (rn *Renderer) MTime() mtime.Time {
	tm := rn.stamp.Time()
	if rn.caster != nil {
		tm = max(tm, rn.caster.MTime())
	}
	if rn.camera != nil {
		tm = max(tm, rn.camera.MTime())
	}
	if rn.created != nil {
		tm = max(tm, rn.created.MTime())
	}
	return tm
}

////////////////////////////////////////////////////////////////////
// 	Props

// SetProps sets the collection of props to render. The collection is
// owned by the enclosing scene; the renderer only refers to it.
func (rn *Renderer) SetProps(props *Collection[Prop]) *Renderer {
	rn.props = props
	rn.Modified()
	return rn
}

// Props returns the collection of props (may be nil).
func (rn *Renderer) Props() *Collection[Prop] {
	return rn.props
}

// allProps returns a sequence over all the props.
func (rn *Renderer) allProps() iter.Seq[Prop] {
	return rn.props.All()
}

// visibleProps returns a sequence over the visible props.
func (rn *Renderer) visibleProps() iter.Seq[Prop] {
	return func(yield func(Prop) bool) {
		for p := range rn.allProps() {
			if p.IsVisible() && !yield(p) {
				return
			}
		}
	}
}

// Actors returns the actor props, rebuilt from the props on every call.
func (rn *Renderer) Actors() *Collection[Prop] {
	return rn.collectKind(rn.actors, PropActor)
}

// Volumes returns the volume props, rebuilt from the props on every call.
func (rn *Renderer) Volumes() *Collection[Prop] {
	return rn.collectKind(rn.volumes, PropVolume)
}

func (rn *Renderer) collectKind(c *Collection[Prop], kind PropKinds) *Collection[Prop] {
	c.RemoveAll()
	for p := range rn.allProps() {
		if p.Kind() == kind {
			c.Add(p)
		}
	}
	return c
}

// VisibleActorCount returns the number of visible actors.
func (rn *Renderer) VisibleActorCount() int {
	return rn.visibleKindCount(PropActor)
}

// VisibleVolumeCount returns the number of visible volumes.
func (rn *Renderer) VisibleVolumeCount() int {
	return rn.visibleKindCount(PropVolume)
}

func (rn *Renderer) visibleKindCount(kind PropKinds) int {
	n := 0
	for p := range rn.visibleProps() {
		if p.Kind() == kind {
			n++
		}
	}
	return n
}

////////////////////////////////////////////////////////////////////
// 	Window

// RenderWindow returns the window the renderer draws into (may be nil).
func (rn *Renderer) RenderWindow() Window {
	return rn.window
}

// SetRenderWindow binds the renderer to the given window; nil unbinds it.
// Binding is not ownership. When the window changes, every prop first
// releases the resources specific to the previous window.
// The cached frame belongs to the previous window and is dropped.
func (rn *Renderer) SetRenderWindow(w Window) {
	if w == rn.window {
		return
	}
	if rn.window != nil {
		for p := range rn.allProps() {
			p.ReleaseGraphicsResources(rn.window)
		}
	}
	rn.window = w
	rn.backingImage = nil
	rn.backingProps = nil
	rn.Modified()
}

////////////////////////////////////////////////////////////////////
// 	Camera

// ActiveCamera returns the active camera. If there is none, a new
// camera is made, reset to frame the visible props, and kept.
// A released renderer returns a fresh camera that it neither keeps
// nor holds a reference on.
func (rn *Renderer) ActiveCamera() *Camera {
	if rn.camera == nil && rn.released {
		return NewCamera()
	}
	if rn.camera == nil {
		cam := NewCamera()
		cam.Refs().Register(rn)
		rn.camera = cam
		rn.ResetCamera()
	}
	return rn.camera
}

// HasActiveCamera returns whether there is an active camera,
// without making one.
func (rn *Renderer) HasActiveCamera() bool {
	return rn.camera != nil
}

// SetActiveCamera sets the camera to use. The renderer releases its
// reference on the previous camera and takes one on the new one.
// Setting the current camera again does nothing.
func (rn *Renderer) SetActiveCamera(cam *Camera) {
	if cam == rn.camera {
		return
	}
	if rn.camera != nil {
		errors.Log(rn.camera.Refs().Unregister(rn))
		rn.camera = nil
	}
	if cam != nil {
		cam.Refs().Register(rn)
	}
	rn.camera = cam
	rn.Modified()
}

// SaveCamera saves a copy of the current camera with given name,
// which can be restored later with [Renderer.SetCamera].
func (rn *Renderer) SaveCamera(name string) error {
	var saved Camera
	if err := copier.Copy(&saved, rn.ActiveCamera()); err != nil {
		return fmt.Errorf("xyz.Renderer SaveCamera %q: %w", name, err)
	}
	if rn.savedCams == nil {
		rn.savedCams = make(map[string]Camera)
	}
	rn.savedCams[name] = saved
	return nil
}

// SetCamera restores the view of the camera saved with the given name
// into the active camera.
func (rn *Renderer) SetCamera(name string) error {
	saved, ok := rn.savedCams[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCameraNotSaved, name)
	}
	cam := rn.ActiveCamera()
	if err := copier.Copy(cam, &saved); err != nil {
		return fmt.Errorf("xyz.Renderer SetCamera %q: %w", name, err)
	}
	cam.Modified()
	return nil
}

////////////////////////////////////////////////////////////////////
// 	Lights

// Lights returns the light collection.
func (rn *Renderer) Lights() *Collection[*Light] {
	return rn.lights
}

// AddLight adds a light.
func (rn *Renderer) AddLight(lt *Light) {
	rn.lights.Add(lt)
	rn.Modified()
}

// RemoveLight removes a light.
func (rn *Renderer) RemoveLight(lt *Light) {
	if rn.lights.Remove(lt) {
		rn.Modified()
	}
}

// CreatedLight returns the light made by [Renderer.CreateLight], if any.
func (rn *Renderer) CreatedLight() *Light {
	return rn.created
}

// CreateLight makes the default light, replacing any previously created
// one: a white light at the camera position aimed at its focal point.
// A released renderer returns a light that it does not keep.
func (rn *Renderer) CreateLight() *Light {
	if rn.released {
		errors.Log(fmt.Errorf("xyz.Renderer %q CreateLight: %w", rn.Name, ErrReleased))
		return NewLight("default")
	}
	if rn.created != nil {
		rn.RemoveLight(rn.created)
		errors.Log(rn.created.Refs().Unregister(rn))
		rn.created = nil
	}
	cam := rn.ActiveCamera()
	lt := NewLight("default")
	lt.Refs().Register(rn)
	lt.SetPos(cam.Position).SetFocalPoint(cam.FocalPoint)
	rn.created = lt
	rn.AddLight(lt)
	return lt
}

////////////////////////////////////////////////////////////////////
// 	Cullers

// Cullers returns the ordered culler collection.
func (rn *Renderer) Cullers() *Collection[Culler] {
	return rn.cullers
}

// AddCuller appends a culler to the chain.
func (rn *Renderer) AddCuller(c Culler) {
	rn.cullers.Add(c)
	rn.Modified()
}

// RemoveCuller removes a culler from the chain.
func (rn *Renderer) RemoveCuller(c Culler) {
	if rn.cullers.Remove(c) {
		rn.Modified()
	}
}

////////////////////////////////////////////////////////////////////
// 	Lifecycle

// RayCaster returns the ray caster owned by the renderer,
// or nil after [Renderer.Release].
func (rn *Renderer) RayCaster() *RayCaster {
	return rn.caster
}

// IsReleased returns whether [Renderer.Release] has been called.
func (rn *Renderer) IsReleased() bool {
	return rn.released
}

// Release releases everything the renderer holds: the props release
// their window resources, the ray caster is released first (breaking its
// link back to the renderer), then the references on the camera and the
// created light, and the cached frame. Calling Release again does nothing.
func (rn *Renderer) Release() error {
	if rn.released {
		return nil
	}
	rn.released = true
	rn.SetRenderWindow(nil)
	var errs []error
	if rc := rn.caster; rc != nil {
		rn.caster = nil
		errs = append(errs, rc.release())
	}
	if rn.camera != nil {
		errs = append(errs, rn.camera.Refs().Unregister(rn))
		rn.camera = nil
	}
	if rn.created != nil {
		errs = append(errs, rn.created.Refs().Unregister(rn))
		rn.created = nil
	}
	rn.lights.RemoveAll()
	rn.cullers.RemoveAll()
	rn.actors.RemoveAll()
	rn.volumes.RemoveAll()
	rn.backingImage = nil
	rn.backingProps = nil
	rn.releasePropArrays()
	return errors.Join(errs...)
}
