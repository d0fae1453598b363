// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xyzrender renders a demo scene of boxes and a volume with an
// offscreen xyz renderer, and saves the last frame as an image.
//
// Usage:
//
//	xyzrender [-config file.toml] [-out scene.png] [-frames n] [-size 640x480] [-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/mitchellh/go-homedir"

	"cogentcore.org/xyzrender/base/errors"
	"cogentcore.org/xyzrender/base/logx"
	"cogentcore.org/xyzrender/xyz"
	"cogentcore.org/xyzrender/xyz/offscreen"
)

// Options are the command line options.
type Options struct {

	// Config is the TOML or YAML renderer config file; defaults are used if empty.
	Config string

	// Out is the PNG file the last frame is saved to.
	Out string

	// Frames is the number of frames to render.
	Frames int

	// Size is the size of the window, as WIDTHxHEIGHT.
	Size string

	// Dolly is the camera dolly factor applied between frames; 1 keeps the camera still.
	Dolly float64

	// Watch re-renders whenever the config file changes.
	Watch bool
}

func main() {
	opts := &Options{}
	flag.StringVar(&opts.Config, "config", "", "renderer config file (.toml or .yaml)")
	flag.StringVar(&opts.Out, "out", "xyzrender.png", "output PNG file")
	flag.IntVar(&opts.Frames, "frames", 1, "number of frames to render")
	flag.StringVar(&opts.Size, "size", "640x480", "window size as WIDTHxHEIGHT")
	flag.Float64Var(&opts.Dolly, "dolly", 1, "camera dolly factor applied between frames")
	flag.BoolVar(&opts.Watch, "watch", false, "re-render when the config file changes")
	vv := flag.Bool("vv", false, "debug output")
	v := flag.Bool("v", false, "verbose output")
	q := flag.Bool("q", false, "only print errors")
	flag.Parse()

	logx.UserLevel = logx.LevelFromFlags(*vv, *v, *q)
	logx.SetDefaultLogger()

	if err := run(opts); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(opts *Options) error {
	var err error
	if opts.Config, err = expand(opts.Config); err != nil {
		return err
	}
	if opts.Out, err = expand(opts.Out); err != nil {
		return err
	}
	size, err := parseSize(opts.Size)
	if err != nil {
		return err
	}
	if err := renderOnce(opts, size); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	if opts.Config == "" {
		return errors.New("xyzrender: -watch needs a -config file")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(ctx, opts.Config, func() {
		errors.Log(renderOnce(opts, size))
	})
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("xyzrender: expanding %q: %w", path, err)
	}
	return p, nil
}

func parseSize(s string) (image.Point, error) {
	var sz image.Point
	if _, err := fmt.Sscanf(s, "%dx%d", &sz.X, &sz.Y); err != nil {
		return sz, fmt.Errorf("xyzrender: invalid size %q: %w", s, err)
	}
	if sz.X <= 0 || sz.Y <= 0 {
		return sz, fmt.Errorf("xyzrender: invalid size %q", s)
	}
	return sz, nil
}

func loadConfig(filename string) (*xyz.Config, error) {
	if filename == "" {
		return xyz.NewConfig(), nil
	}
	return xyz.OpenConfig(filename)
}

// renderOnce builds the demo scene from the config, renders the frames
// and saves the last one.
func renderOnce(opts *Options, size image.Point) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	rn, err := xyz.NewRendererFromConfig(cfg)
	if err != nil {
		return err
	}
	defer func() { errors.Log(rn.Release()) }()

	win := offscreen.NewWindow(size)
	win.AddRenderer(rn)
	rn.SetProps(demoScene())
	if err := rn.ResetCamera(); err != nil {
		return err
	}

	hits := 0
	for i := range opts.Frames {
		if i > 0 && opts.Dolly != 1 {
			rn.ActiveCamera().Dolly(float32(opts.Dolly))
			errors.Log(rn.ResetCameraClippingRange())
		}
		prev := rn.BackingImage()
		win.Render()
		if prev != nil && rn.BackingImage() == prev {
			hits++
		}
		slog.Debug("xyzrender: frame", "frame", i, "time", rn.LastRenderTime)
	}
	slog.Info("xyzrender: rendered", "frames", opts.Frames, "cached", hits,
		"actors", rn.VisibleActorCount(), "volumes", rn.VisibleVolumeCount())

	if opts.Out == "" {
		return nil
	}
	if err := imgio.Save(opts.Out, win.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("xyzrender: saving %q: %w", opts.Out, err)
	}
	slog.Info("xyzrender: saved", "file", opts.Out)
	return nil
}
