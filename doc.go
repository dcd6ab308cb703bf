// Package pathmap computes where a tethered probe can reach inside a voxel
// volume, and by which route.
//
// 🚀 What is pathmap?
//
//	A voxel-grid path library that brings together:
//		• Grid geometry: spacing, dimensions, origin, index ⇄ world conversion
//		• Spherical neighbor stencils with exact Euclidean weights
//		• A tile graph whose edges materialize lazily, per tile, on first use
//		• Flood search (Dijkstra) for accessible volume
//		• Point-to-point search (A*) with path reconstruction
//		• Atom-sphere obstacles indexed in an R-tree
//
// Under the hood, everything is organized into subpackages:
//
//	header/    — grid geometry and validation
//	stencil/   — neighbor offsets and weights for a radius
//	tilegrid/  — tiles, obstacle classification, lazy edges, value extraction
//	search/    — flood and A* over a tilegrid, results and metrics
//	obstacles/ — atom spheres → obstacle density
//	builder/   — deterministic density fixtures (planes, balls, shells, noise)
//	config/    — TOML/YAML run configuration
//	profile/   — cost-along-path plots
//	cmd/pathmap — command-line driver
//
// Quick ASCII example (one z-slice, # = obstacle):
//
//	S . . # . . .
//	. . . # . . .
//	. . . o . . E     o = gap in the membrane
//	. . . # . . .
//
// A path from S to E must thread the gap; the flood from S reports every
// tile reachable within the max path length.
//
//	go get github.com/katalvlaran/pathmap
package pathmap
