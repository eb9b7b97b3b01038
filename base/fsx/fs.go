// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides helpers for [fs.FS] file systems,
// such as embedded assets.
package fsx

import (
	"io/fs"
	"path"

	"cogentcore.org/hellogpu/base/errors"
)

// Sub returns [fs.Sub] with any error automatically logged
// for cases where the directory is hardcoded and there is
// no chance of error.
func Sub(fsys fs.FS, dir string) fs.FS {
	return errors.Log1(fs.Sub(fsys, dir))
}

// FileExistsFS checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	fileInfo, err := fs.Stat(fsys, filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Resolve returns the first of the given candidate paths that
// names an existing file, trying name first and then name within
// each of dirs. It returns false if none exists.
func Resolve(fsys fs.FS, name string, dirs ...string) (string, bool) {
	if ok, _ := FileExistsFS(fsys, name); ok {
		return name, true
	}
	for _, dir := range dirs {
		fp := path.Join(dir, name)
		if ok, _ := FileExistsFS(fsys, fp); ok {
			return fp, true
		}
	}
	return "", false
}
