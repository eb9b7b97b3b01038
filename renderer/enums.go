// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import "fmt"

// Status is the outcome of rendering one frame.
type Status int32

const (
	// Ok means the frame was rendered, or skipped with
	// nothing to do before the next one.
	Ok Status = iota

	// RecoverableNeedsResize means the surface was lost or outdated,
	// and must be reconfigured with [Renderer.Resize] at the current size.
	RecoverableNeedsResize

	// FatalShouldExit means rendering cannot continue.
	FatalShouldExit
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case RecoverableNeedsResize:
		return "RecoverableNeedsResize"
	case FatalShouldExit:
		return "FatalShouldExit"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// ActiveMesh selects which mesh is drawn.
type ActiveMesh int32

const (
	// Default is the textured quad (or pentagon).
	Default ActiveMesh = iota

	// Generated is the vertex colored circle.
	Generated

	numMeshes
)

func (m ActiveMesh) String() string {
	switch m {
	case Default:
		return "Default"
	case Generated:
		return "Generated"
	}
	return fmt.Sprintf("ActiveMesh(%d)", int32(m))
}

// State is the lifecycle state of the [Renderer].
type State int32

const (
	// Uninitialized is before [Renderer.Initialize] and after [Renderer.Shutdown].
	Uninitialized State = iota

	// Ready means frames are rendered.
	Ready

	// Suspended means the window has a zero size, and frames are skipped.
	Suspended
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Suspended:
		return "Suspended"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}
