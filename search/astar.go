package search

import (
	"math"

	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/tilegrid"
)

// FindPathAStar runs heuristic best-first search from begin to the End tile.
// The heuristic is the straight-line world distance to the goal; every edge
// costs at least the distance it spans, so the first time the goal is popped
// its cost is optimal. Without End the search degrades to a flood.
func FindPathAStar(g *tilegrid.Grid, begin int, opts ...Option) (*Result, error) {
	return FindPath(g, begin, append(opts, WithMode(ModeAStar))...)
}

// euclidean returns h(v) = spacing * |grid(v) - grid(goal)|.
func euclidean(h *header.Header, goal int) func(int) float64 {
	gx, gy, gz := h.Coordinate(goal)
	return func(v int) float64 {
		x, y, z := h.Coordinate(v)
		dx, dy, dz := float64(x-gx), float64(y-gy), float64(z-gz)
		return h.Spacing * math.Sqrt(dx*dx+dy*dy+dz*dz)
	}
}
