// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with %w and the constructor name.
//   • Constructors never panic; option constructors (WithX) may.

package builder

import "errors"

// ErrBadSize indicates a missing header or a volume whose length does not
// match the header's voxel count.
var ErrBadSize = errors.New("builder: invalid volume size")

// ErrBadAxis indicates an axis other than AxisX, AxisY or AxisZ.
var ErrBadAxis = errors.New("builder: invalid axis")

// ErrOutOfBounds indicates a plane position or gap voxel outside the grid.
var ErrOutOfBounds = errors.New("builder: coordinate out of bounds")

// ErrBadRadius indicates a negative radius or an inner radius above the outer one.
var ErrBadRadius = errors.New("builder: invalid radius")

// ErrNeedRandSource indicates a stochastic constructor without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor passed to BuildVolume.
var ErrConstructFailed = errors.New("builder: construction failed")
