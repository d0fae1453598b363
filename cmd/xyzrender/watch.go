// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch calls fun every time the given file is written or recreated,
// until the context is done. The directory is watched so that editors
// which replace the file are handled.
func watch(ctx context.Context, filename string, fun func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xyzrender: watching %q: %w", filename, err)
	}
	defer w.Close()
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("xyzrender: watching %q: %w", filename, err)
	}
	slog.Info("xyzrender: watching", "file", abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			slog.Info("xyzrender: config changed", "op", ev.Op.String())
			fun()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("xyzrender: watch", "err", err)
		}
	}
}
