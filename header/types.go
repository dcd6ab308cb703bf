// Package header defines the grid geometry consumed by the tile graph and the
// path search: spacing, dimensions, origin, maximum path length, neighbor
// radius and obstacle threshold.
package header

import (
	"errors"
	"math"
)

// Sentinel errors for header validation.
var (
	// ErrInvalidConfiguration indicates a non-positive spacing, dimension or
	// path length, or a negative neighbor radius.
	ErrInvalidConfiguration = errors.New("header: invalid grid configuration")
)

// Defaults mirror the values used when a header is created without options.
const (
	// DefaultNeighborRadius is the stencil radius in grid units.
	DefaultNeighborRadius = 2.0
)

// DefaultObstacleThreshold classifies any voxel with positive density as an obstacle.
var DefaultObstacleThreshold = math.SmallestNonzeroFloat64

// Option customizes a Header during NewHeader.
type Option func(*Header)

// WithNeighborRadius sets the neighbor search radius in grid units.
// Panics on a negative or non-finite radius.
func WithNeighborRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		panic("header: WithNeighborRadius requires a finite radius >= 0")
	}
	return func(h *Header) {
		h.NeighborRadius = r
	}
}

// WithObstacleThreshold sets the density above which a voxel is an obstacle.
func WithObstacleThreshold(t float64) Option {
	return func(h *Header) {
		h.ObstacleThreshold = t
	}
}

// WithDimensions overrides the voxel counts derived from the maximum path length.
// Panics on non-positive values.
func WithDimensions(nx, ny, nz int) Option {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("header: WithDimensions requires positive dimensions")
	}
	return func(h *Header) {
		h.NX, h.NY, h.NZ = nx, ny, nz
	}
}
