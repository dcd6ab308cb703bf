// SPDX-License-Identifier: MIT

// Package builder produces deterministic density volumes for path-map grids.
//
// A volume is a dense []float64 laid out like the grid it belongs to
// (x fastest: index = x + y*NX + z*NX*NY). BuildVolume allocates a zeroed
// volume for a header and applies Constructor closures in order, so fixtures
// compose: a uniform background, then a membrane plane with a pore, then a
// protein ball.
//
// Constructors:
//
//   - Uniform(v):                     every voxel = v.
//   - Plane(axis, at, v, gaps...):     one full slab perpendicular to axis, minus gap voxels.
//   - Ball(center, r, v):              voxels with |p-center| <= r (grid units).
//   - Shell(center, inner, outer, v):  voxels with inner < |p-center| <= outer.
//   - Noise(amplitude):                adds uniform noise in [0, amplitude); needs WithSeed/WithRand.
//
// Errors (sentinel, use errors.Is):
//
//   - ErrBadSize, ErrBadAxis, ErrOutOfBounds, ErrBadRadius,
//     ErrNeedRandSource, ErrConstructFailed.
//
// Determinism: same header, options, seed and constructor order ⇒ identical volumes.
package builder
