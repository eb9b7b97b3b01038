// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

// Command hellogpu opens a window and draws a textured quad seen
// through an orbiting camera. Holding space draws a generated circle
// instead, the arrow keys pan the camera, and escape quits.
package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"
	"time"

	"cogentcore.org/hellogpu/assets"
	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/base/logx"
	"cogentcore.org/hellogpu/config"
	"cogentcore.org/hellogpu/gpu"
	"cogentcore.org/hellogpu/math32"
	"cogentcore.org/hellogpu/renderer"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

// panStep is the camera pan per arrow key press, in world units.
const panStep = 0.1

// panKeys are the camera pan for each arrow key.
var panKeys = map[glfw.Key]math32.Vector3{
	glfw.KeyLeft:  math32.Vec3(-panStep, 0, 0),
	glfw.KeyRight: math32.Vec3(panStep, 0, 0),
	glfw.KeyUp:    math32.Vec3(0, panStep, 0),
	glfw.KeyDown:  math32.Vec3(0, -panStep, 0),
}

// options are the command line flags.
type options struct {
	config   string
	save     string
	watch    bool
	verbose  bool
	veryVerb bool
	quiet    bool
	fallback bool
}

func parseFlags() *options {
	op := &options{}
	pflag.StringVarP(&op.config, "config", "c", "", "TOML or YAML config file")
	pflag.StringVar(&op.save, "save-config", "", "write the effective config to the given TOML or YAML file and exit")
	pflag.BoolVarP(&op.watch, "watch", "w", false, "apply changes to the clear color and orbit speed of the config file while running")
	pflag.BoolVarP(&op.verbose, "verbose", "v", false, "log info messages")
	pflag.BoolVar(&op.veryVerb, "vv", false, "log debug messages")
	pflag.BoolVarP(&op.quiet, "quiet", "q", false, "only log errors")
	pflag.BoolVar(&op.fallback, "fallback", false, "use the software fallback adapter")
	pflag.Parse()
	return op
}

func main() {
	os.Exit(run(parseFlags()))
}

// run runs the application and returns the exit code.
func run(op *options) int {
	logx.UserLevel = logx.LevelFromFlags(op.veryVerb, op.verbose, op.quiet)
	cfg := config.New()
	if op.config != "" {
		var err error
		if cfg, err = config.Open(op.config); err != nil {
			logx.SetDefaultLogger()
			slog.Error("hellogpu: config", "err", err)
			return 1
		}
	}
	if cfg.LogLevel != "" {
		logx.UserLevel, _ = logx.LevelFromString(cfg.LogLevel)
	}
	logx.SetDefaultLogger()
	renderer.SetLogger(slog.Default())
	if op.save != "" {
		if errors.Log(cfg.Save(op.save)) != nil {
			return 1
		}
		return 0
	}

	if err := gpu.Init(); err != nil {
		return 1
	}
	defer gpu.Terminate()

	window, surface, err := gpu.NewGLFWWindow(cfg.Size(), cfg.Title)
	if errors.Log(err) != nil {
		return 1
	}
	defer window.Destroy()

	opts := &gpu.GPUOptions{
		HighPerformance: cfg.Power == config.PowerHigh,
		ForceFallback:   cfg.ForceFallback || op.fallback,
	}
	gp, err := gpu.NewGPU(surface, opts)
	if errors.Log(err) != nil {
		surface.Release()
		return 1
	}
	defer gp.Release()

	dev, err := renderer.NewGPUDevice(gp, gpu.NewSurface(gp, surface), assets.Texture)
	if errors.Log(err) != nil {
		return 1
	}
	r := renderer.New(cfg)
	if errors.Log(r.Initialize(dev, gpu.WindowSize(window))) != nil {
		dev.Release()
		return 1
	}
	defer r.Shutdown()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Release {
			if delta, ok := panKeys[key]; ok {
				errors.Log(r.Pan(delta))
				return
			}
		}
		if action == glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeySpace:
			r.InputToggle(action == glfw.Press)
		case glfw.KeyEscape:
			if action == glfw.Press {
				w.SetShouldClose(true)
			}
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		errors.Log(r.Resize(image.Point{width, height}))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var configs <-chan *config.Config
	if op.watch {
		if op.config == "" {
			slog.Warn("hellogpu: --watch needs --config, ignored")
		} else if configs, err = config.Watch(ctx, op.config); err != nil {
			slog.Warn("hellogpu: not watching config", "err", err)
		}
	}

	return loop(window, r, cfg.FPS, configs)
}

// loop renders frames at the given rate until the window is closed,
// applying each config received in between frames. It returns the
// exit code.
func loop(window *glfw.Window, r *renderer.Renderer, fps int, configs <-chan *config.Config) int {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	frames := 0
	start := time.Now()
	for range ticker.C {
		glfw.PollEvents()
		if window.ShouldClose() {
			return 0
		}
	drain:
		for {
			select {
			case c, ok := <-configs:
				if !ok {
					configs = nil
					break drain
				}
				errors.Log(r.SetConfig(c))
			default:
				break drain
			}
		}
		errors.Log(r.Update())
		st := r.RenderFrame()
		if !r.HandleStatus(st) {
			slog.Error(fmt.Sprintf("hellogpu: exiting on render status %v", st))
			return 1
		}
		frames++
		if dur := time.Since(start); dur > 10*time.Second {
			slog.Debug("hellogpu", "fps", float64(frames)/dur.Seconds())
			frames = 0
			start = time.Now()
		}
	}
	return 0
}
