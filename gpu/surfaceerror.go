// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"strings"
)

// Surface acquisition outcomes other than success.
var (
	// ErrSurfaceTimeout means no image became available in time.
	// The frame should be skipped.
	ErrSurfaceTimeout = errors.New("gpu: surface timeout")

	// ErrSurfaceOutdated means the surface no longer matches the window,
	// and must be reconfigured.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrSurfaceLost means the surface was lost, and must be reconfigured.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrSurfaceOutOfMemory means there is not enough memory to continue.
	ErrSurfaceOutOfMemory = errors.New("gpu: surface out of memory")
)

// ClassifySurfaceError maps an error from acquiring a surface texture
// onto the ErrSurface* values, wrapping the original error. The binding
// reports the acquire status only in the error message, so the match is
// on that text. Errors that match none of them are returned unchanged,
// and should be treated as fatal.
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	for _, se := range []error{ErrSurfaceTimeout, ErrSurfaceOutdated, ErrSurfaceLost, ErrSurfaceOutOfMemory} {
		if errors.Is(err, se) {
			return err
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %w", ErrSurfaceOutOfMemory, err)
	}
	return err
}

// IsRecoverable returns true for an outdated or lost surface,
// which is recovered by reconfiguring it.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) || errors.Is(err, ErrSurfaceLost)
}
