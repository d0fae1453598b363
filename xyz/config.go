// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/xyzrender/math32"
)

// Config is the saved configuration of a [Renderer], read from and
// written to TOML or YAML files (chosen by the file extension).
type Config struct {

	// Name of the renderer.
	Name string `toml:"name" yaml:"name"`

	// Device is the registered name of the device to render with.
	Device string `toml:"device" yaml:"device"`

	// AllocatedRenderTime is the render time budget of a frame.
	AllocatedRenderTime float32 `toml:"allocated_render_time" yaml:"allocated_render_time"`

	// BackingStore is whether rendered frames are cached.
	BackingStore bool `toml:"backing_store" yaml:"backing_store"`

	// TwoSidedLighting is whether back faces are lit.
	TwoSidedLighting bool `toml:"two_sided_lighting" yaml:"two_sided_lighting"`

	// Ambient is the ambient light color, as RGB in 0-1 units.
	Ambient [3]float32 `toml:"ambient" yaml:"ambient"`

	// Background is the background color, as RGB in 0-1 units.
	Background [3]float32 `toml:"background" yaml:"background"`

	// Viewport is (xmin, ymin, xmax, ymax) in normalized window coordinates.
	Viewport [4]float32 `toml:"viewport" yaml:"viewport"`

	// ImageSampleDistance is the ray spacing of the ray caster in pixels.
	ImageSampleDistance float32 `toml:"image_sample_distance" yaml:"image_sample_distance"`

	// Camera has the settings of the active camera.
	Camera CameraConfig `toml:"camera" yaml:"camera"`

	// Culler has the settings of the frustum coverage culler.
	Culler CullerConfig `toml:"culler" yaml:"culler"`
}

// CameraConfig has the configurable camera settings.
type CameraConfig struct {
	ViewAngle     float32 `toml:"view_angle" yaml:"view_angle"`
	Parallel      bool    `toml:"parallel" yaml:"parallel"`
	ParallelScale float32 `toml:"parallel_scale" yaml:"parallel_scale"`
}

// CullerConfig has the settings of the [FrustumCoverageCuller].
type CullerConfig struct {

	// Enabled adds the culler to the renderer.
	Enabled         bool          `toml:"enabled" yaml:"enabled"`
	MinimumCoverage float32       `toml:"minimum_coverage" yaml:"minimum_coverage"`
	MaximumCoverage float32       `toml:"maximum_coverage" yaml:"maximum_coverage"`
	Sorting         SortingStyles `toml:"sorting" yaml:"sorting"`
}

// Defaults sets the default configuration, matching [NewRenderer].
func (cfg *Config) Defaults() {
	cfg.Device = "geometry"
	cfg.AllocatedRenderTime = 100
	cfg.BackingStore = false
	cfg.TwoSidedLighting = true
	cfg.Ambient = [3]float32{1, 1, 1}
	cfg.Background = [3]float32{0, 0, 0}
	cfg.Viewport = [4]float32{0, 0, 1, 1}
	cfg.ImageSampleDistance = 1
	cfg.Camera = CameraConfig{ViewAngle: 30, ParallelScale: 1}
	cfg.Culler = CullerConfig{Enabled: true, MinimumCoverage: 0, MaximumCoverage: 1}
}

// NewConfig returns a new config with default values.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

func configFormat(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("xyz.Config: unsupported config file extension %q", ext)
	}
}

// OpenConfig reads the config from the given TOML or YAML file,
// on top of the default values.
func OpenConfig(filename string) (*Config, error) {
	format, err := configFormat(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if format == "toml" {
		err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(cfg)
	} else {
		err = yaml.Unmarshal(b, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("xyz.OpenConfig %q: %w", filename, err)
	}
	return cfg, nil
}

// SaveConfig writes the config to the given TOML or YAML file.
func SaveConfig(filename string, cfg *Config) error {
	format, err := configFormat(filename)
	if err != nil {
		return err
	}
	var b []byte
	if format == "toml" {
		b, err = toml.Marshal(cfg)
	} else {
		b, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("xyz.SaveConfig %q: %w", filename, err)
	}
	return os.WriteFile(filename, b, 0666)
}

// Apply sets the renderer parameters from the config. A culler is
// added only if the renderer has none yet.
func (cfg *Config) Apply(rn *Renderer) {
	rn.Name = cfg.Name
	rn.SetAllocatedRenderTime(cfg.AllocatedRenderTime)
	rn.SetBackingStore(cfg.BackingStore)
	rn.SetTwoSidedLighting(cfg.TwoSidedLighting)
	rn.SetAmbient(math32.Vec3(cfg.Ambient[0], cfg.Ambient[1], cfg.Ambient[2]))
	bg := cfg.Background
	rn.SetBackground(color.RGBA{unitByte(bg[0]), unitByte(bg[1]), unitByte(bg[2]), 255})
	vp := cfg.Viewport
	rn.SetViewport(vp[0], vp[1], vp[2], vp[3])
	if rc := rn.RayCaster(); rc != nil {
		rc.SetImageSampleDistance(cfg.ImageSampleDistance)
	}
	if rn.HasActiveCamera() {
		cfg.Camera.apply(rn.camera)
	}
	if cfg.Culler.Enabled && rn.Cullers().Len() == 0 {
		rn.AddCuller(&FrustumCoverageCuller{
			MinimumCoverage: cfg.Culler.MinimumCoverage,
			MaximumCoverage: cfg.Culler.MaximumCoverage,
			SortingStyle:    cfg.Culler.Sorting,
		})
	}
}

func unitByte(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

func (cc *CameraConfig) apply(cam *Camera) {
	if cc.ViewAngle > 0 {
		cam.SetViewAngle(cc.ViewAngle)
	}
	if cc.ParallelScale > 0 {
		cam.SetParallelScale(cc.ParallelScale)
	}
	cam.SetParallel(cc.Parallel)
}

// NewRendererFromConfig returns a new renderer using the configured
// device, with a camera made from the camera settings.
func NewRendererFromConfig(cfg *Config) (*Renderer, error) {
	dev, err := NewDevice(cfg.Device)
	if err != nil {
		return nil, err
	}
	rn := NewRenderer(dev)
	rn.SetActiveCamera(NewCamera())
	cfg.Apply(rn)
	return rn, nil
}
