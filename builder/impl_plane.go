// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// impl_plane.go — Uniform(v) and Plane(axis, at, v, gaps...) constructors.
//
// Contract:
//   • Plane fills the single voxel slab {p : p[axis] == at}.
//   • Gap voxels must lie on that slab; they are left untouched.
//   • at outside [0, N_axis) or a gap off the slab → ErrOutOfBounds.

package builder

import (
	"fmt"

	"github.com/katalvlaran/pathmap/header"
)

const (
	methodUniform = "Uniform"
	methodPlane   = "Plane"
)

// Axis selects a grid axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Voxel is an integer grid coordinate.
type Voxel struct {
	X, Y, Z int
}

// Index returns the flat index of v in h.
func (v Voxel) Index(h *header.Header) int { return h.Index(v.X, v.Y, v.Z) }

func (v Voxel) along(a Axis) int {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

func axisLen(h *header.Header, a Axis) int {
	switch a {
	case AxisX:
		return h.NX
	case AxisY:
		return h.NY
	}
	return h.NZ
}

// Uniform returns a Constructor that sets every voxel to v.
func Uniform(v float64) Constructor {
	return func(_ *header.Header, vol []float64, cfg builderConfig) error {
		for i := range vol {
			cfg.put(vol, i, v)
		}
		return nil
	}
}

// Plane returns a Constructor that sets the slab perpendicular to axis at
// index at to v, except for the gap voxels.
func Plane(axis Axis, at int, v float64, gaps ...Voxel) Constructor {
	return func(h *header.Header, vol []float64, cfg builderConfig) error {
		if axis < AxisX || axis > AxisZ {
			return fmt.Errorf("%s: axis=%d: %w", methodPlane, axis, ErrBadAxis)
		}
		if at < 0 || at >= axisLen(h, axis) {
			return fmt.Errorf("%s: at=%d: %w", methodPlane, at, ErrOutOfBounds)
		}
		skip := make(map[int]struct{}, len(gaps))
		for _, g := range gaps {
			if !h.InBounds(g.X, g.Y, g.Z) || g.along(axis) != at {
				return fmt.Errorf("%s: gap %v not on slab %d: %w", methodPlane, g, at, ErrOutOfBounds)
			}
			skip[g.Index(h)] = struct{}{}
		}

		for i := range vol {
			x, y, z := h.Coordinate(i)
			if (Voxel{x, y, z}).along(axis) != at {
				continue
			}
			if _, ok := skip[i]; ok {
				continue
			}
			cfg.put(vol, i, v)
		}
		return nil
	}
}
