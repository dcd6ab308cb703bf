// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// impl_sphere.go — Ball and Shell constructors in grid units.
//
// Contract:
//   • Distances are measured between voxel coordinates (grid units).
//   • Ball:  |p-c| <= r.            r < 0 → ErrBadRadius.
//   • Shell: inner < |p-c| <= outer. inner < 0 or inner > outer → ErrBadRadius.
//   • The centre may lie outside the grid.

package builder

import (
	"fmt"

	"github.com/katalvlaran/pathmap/header"
)

const (
	methodBall  = "Ball"
	methodShell = "Shell"
)

// Ball returns a Constructor that sets every voxel within r of center to v.
func Ball(center Voxel, r, v float64) Constructor {
	return func(h *header.Header, vol []float64, cfg builderConfig) error {
		if r < 0 {
			return fmt.Errorf("%s: r=%v: %w", methodBall, r, ErrBadRadius)
		}
		fillRadial(h, vol, cfg, center, -1, r, v)
		return nil
	}
}

// Shell returns a Constructor that sets every voxel with inner < |p-center| <= outer to v.
// A shell thicker than the neighbor radius cuts the enclosed voxels off from
// the rest of the grid.
func Shell(center Voxel, inner, outer, v float64) Constructor {
	return func(h *header.Header, vol []float64, cfg builderConfig) error {
		if inner < 0 || inner > outer {
			return fmt.Errorf("%s: inner=%v outer=%v: %w", methodShell, inner, outer, ErrBadRadius)
		}
		fillRadial(h, vol, cfg, center, inner, outer, v)
		return nil
	}
}

// fillRadial sets voxels with lo < d² and d² <= hi² (lo < 0 disables the lower bound).
func fillRadial(h *header.Header, vol []float64, cfg builderConfig, c Voxel, lo, hi, v float64) {
	lo2, hi2 := lo*lo, hi*hi
	for i := range vol {
		x, y, z := h.Coordinate(i)
		dx, dy, dz := float64(x-c.X), float64(y-c.Y), float64(z-c.Z)
		d2 := dx*dx + dy*dy + dz*dz
		if d2 > hi2 || (lo >= 0 && d2 <= lo2) {
			continue
		}
		cfg.put(vol, i, v)
	}
}
