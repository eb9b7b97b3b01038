// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets holds the shaders and images embedded in the program.
package assets

import (
	"embed"
	"io/fs"

	"cogentcore.org/hellogpu/base/fsx"
	"cogentcore.org/hellogpu/gpu"
)

//go:embed shaders/*.wgsl checker.png
var FS embed.FS

// Texture is the image drawn on the default mesh.
//
//go:embed checker.png
var Texture []byte

// Shaders is the shaders directory of [FS].
var Shaders = fsx.Sub(FS, "shaders")

// Shader returns the source of the named shader in the shaders
// directory, with its #include statements resolved.
func Shader(name string) (string, error) {
	b, err := fs.ReadFile(Shaders, name)
	if err != nil {
		return "", err
	}
	return gpu.IncludeFS(Shaders, ".", string(b)), nil
}
