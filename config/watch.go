// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the given config file, and sends the new config on
// the returned channel each time the file is written with a valid
// config. Invalid contents are logged and skipped. The directory is
// watched rather than the file, so that editors that save by renaming
// are followed. The channel is closed when ctx is done.
func Watch(ctx context.Context, filename string) (<-chan *Config, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	if _, err := formatOf(abs); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	ch := make(chan *Config, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Open(abs)
				if err != nil {
					slog.Warn("config: ignoring changed file", "file", abs, "err", err)
					continue
				}
				slog.Info("config: reloaded", "file", abs)
				select {
				case <-ch: // drop a config not yet applied
				default:
				}
				select {
				case ch <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher error: " + err.Error())
			}
		}
	}()
	return ch, nil
}
