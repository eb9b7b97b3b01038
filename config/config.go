// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the hellogpu
// application, read from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/hellogpu/base/logx"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by all errors returned from [Config.Validate].
var ErrInvalid = errors.New("config: invalid")

// ErrFormat is returned for a file extension that is neither
// TOML nor YAML.
var ErrFormat = errors.New("config: unsupported file format")

// Default mesh names.
const (
	MeshQuad     = "quad"
	MeshPentagon = "pentagon"
)

// Power preference names.
const (
	PowerHigh = "high"
	PowerLow  = "low"
)

// Color is a non-premultiplied color with components in [0, 1].
type Color struct {
	R float64 `toml:"r" yaml:"r"`
	G float64 `toml:"g" yaml:"g"`
	B float64 `toml:"b" yaml:"b"`
	A float64 `toml:"a" yaml:"a"`
}

func (c Color) valid() bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Circle configures the generated circle mesh.
type Circle struct {

	// Vertices is the number of vertices on the rim, at least 3.
	Vertices int `toml:"vertices" yaml:"vertices"`

	// Radius in clip space units.
	Radius float32 `toml:"radius" yaml:"radius"`
}

// Config is the application configuration.
type Config struct {

	// Title of the window
	Title string `toml:"title" yaml:"title"`

	// Width is the initial window width in pixels.
	Width int `toml:"width" yaml:"width"`

	// Height is the initial window height in pixels.
	Height int `toml:"height" yaml:"height"`

	// ClearColor is the background color of each frame.
	ClearColor Color `toml:"clear_color" yaml:"clear_color"`

	// OrbitSpeed is the camera orbit speed in degrees per frame.
	OrbitSpeed float32 `toml:"orbit_speed" yaml:"orbit_speed"`

	// Circle is the generated mesh, shown while space is held.
	Circle Circle `toml:"circle" yaml:"circle"`

	// DefaultMesh is the textured mesh shown otherwise: quad or pentagon.
	DefaultMesh string `toml:"default_mesh" yaml:"default_mesh"`

	// QuadSide is the side length of the quad mesh.
	QuadSide float32 `toml:"quad_side" yaml:"quad_side"`

	// FPS is the target frame rate.
	FPS int `toml:"fps" yaml:"fps"`

	// Power is the adapter power preference: high or low.
	Power string `toml:"power" yaml:"power"`

	// ForceFallback requests the software adapter.
	ForceFallback bool `toml:"force_fallback" yaml:"force_fallback"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	// Empty uses the command line flags.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// New returns a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

// Defaults sets the default values.
func (cfg *Config) Defaults() {
	cfg.Title = "hellogpu"
	cfg.Width = 800
	cfg.Height = 600
	cfg.ClearColor = Color{R: 0.6, G: 0.2, B: 0.3, A: 1}
	cfg.OrbitSpeed = 0.5
	cfg.Circle = Circle{Vertices: 5, Radius: 0.5}
	cfg.DefaultMesh = MeshQuad
	cfg.QuadSide = 1
	cfg.FPS = 60
	cfg.Power = PowerHigh
	cfg.ForceFallback = false
	cfg.LogLevel = ""
}

// Size returns the window size.
func (cfg *Config) Size() image.Point {
	return image.Point{cfg.Width, cfg.Height}
}

// Validate returns an error wrapping [ErrInvalid] for the first
// value out of range.
func (cfg *Config) Validate() error {
	invalid := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
	}
	switch {
	case cfg.Width <= 0:
		return invalid("width", cfg.Width)
	case cfg.Height <= 0:
		return invalid("height", cfg.Height)
	case !cfg.ClearColor.valid():
		return invalid("clear_color", cfg.ClearColor)
	case cfg.Circle.Vertices < 3 || cfg.Circle.Vertices > 1<<16:
		return invalid("circle.vertices", cfg.Circle.Vertices)
	case cfg.Circle.Radius <= 0:
		return invalid("circle.radius", cfg.Circle.Radius)
	case cfg.DefaultMesh != MeshQuad && cfg.DefaultMesh != MeshPentagon:
		return invalid("default_mesh", cfg.DefaultMesh)
	case cfg.QuadSide <= 0:
		return invalid("quad_side", cfg.QuadSide)
	case cfg.FPS <= 0 || cfg.FPS > 1000:
		return invalid("fps", cfg.FPS)
	case cfg.Power != PowerHigh && cfg.Power != PowerLow:
		return invalid("power", cfg.Power)
	}
	if _, ok := logx.LevelFromString(cfg.LogLevel); !ok {
		return invalid("log_level", cfg.LogLevel)
	}
	return nil
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(filename string) (format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filename)
}

// Open reads the config from the given TOML or YAML file, chosen
// by extension, on top of the default values. Fields missing from
// the file keep their defaults. The result is validated.
func Open(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Read(b, filename)
}

// Read decodes the config from the given bytes, with the format
// chosen by the extension of filename, and validates it.
func Read(b []byte, filename string) (*Config, error) {
	f, err := formatOf(filename)
	if err != nil {
		return nil, err
	}
	cfg := New()
	switch f {
	case formatTOML:
		err = toml.Unmarshal(b, cfg)
	case formatYAML:
		err = yaml.Unmarshal(b, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Read %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given TOML or YAML file,
// chosen by extension.
func (cfg *Config) Save(filename string) error {
	f, err := formatOf(filename)
	if err != nil {
		return err
	}
	var b []byte
	switch f {
	case formatTOML:
		b, err = toml.Marshal(cfg)
	case formatYAML:
		b, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config.Save %s: %w", filename, err)
	}
	return os.WriteFile(filename, b, 0666)
}
