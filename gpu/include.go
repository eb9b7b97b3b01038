// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/hellogpu/base/fsx"
)

// IncludeFS processes #include "file" statements in
// the given code string, using the given file system
// and default path to locate the included files.
// Included files are not themselves processed.
func IncludeFS(fsys fs.FS, dir, code string) string {
	fl := strings.Split(code, "\n")
	for li := len(fl) - 1; li >= 0; li-- {
		ln := strings.TrimSpace(fl[li])
		fname, ok := strings.CutPrefix(ln, `#include "`)
		if !ok {
			continue
		}
		qi := strings.Index(fname, `"`)
		if qi < 0 {
			slog.Error("IncludeFS: malformed #include: no final quote", "line", ln)
			continue
		}
		fname = fname[:qi]
		fp, ok := fsx.Resolve(fsys, fname, dir)
		if !ok {
			slog.Error("IncludeFS: could not find include", "file", fname, "path", dir)
			continue
		}
		b, err := fs.ReadFile(fsys, fp)
		if err != nil {
			slog.Error("IncludeFS: could not read include", "file", fp, "err", err)
			continue
		}
		ol := strings.Split(string(b), "\n")
		fl[li] = "// " + ln
		fl = slices.Insert(fl, li+1, ol...)
	}
	return strings.Join(fl, "\n")
}
