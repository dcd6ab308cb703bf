// Package tilegrid treats a 3D voxel volume as a lazily materialized graph of
// tiles. It supports:
//
//   - Obstacle classification from per-voxel density
//   - Per-tile edge lists built on first access from a spherical stencil
//   - Sphere masking of density and named user feature layers
//   - Bulk extraction of per-voxel values for external writers
//
// Tiles are addressed by flat index (x fastest). Edges reference neighbours by
// index only.
package tilegrid

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/stencil"
)

// New allocates one tile per voxel of h and builds the stencil for
// h.NeighborRadius. The header is copied.
// Complexity: O(V) time and memory.
func New(h *header.Header, opts ...Option) (*Grid, error) {
	g := &Grid{
		features: make(map[string][]float64),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Resize(h); err != nil {
		return nil, err
	}

	return g, nil
}

// Resize re-allocates tiles for h, rebuilds the stencil and drops all edges,
// densities and features.
func (g *Grid) Resize(h *header.Header) error {
	if h == nil {
		return fmt.Errorf("nil header: %w", header.ErrInvalidConfiguration)
	}
	if err := h.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.header = h.Clone()
	g.tiles = make([]Tile, h.Voxels())
	g.features = make(map[string][]float64)
	if err := g.rebuildStencil(); err != nil {
		return err
	}
	g.invalidate()
	g.log.Debug("grid resized",
		zap.Int("nx", h.NX), zap.Int("ny", h.NY), zap.Int("nz", h.NZ),
		zap.Int("stencil", g.stencil.Len()))

	return nil
}

// rebuildStencil must be called with g.mu held.
func (g *Grid) rebuildStencil() error {
	sz, sy := g.header.Strides()
	if g.stencil.Matches(g.header.NeighborRadius, sz, sy) {
		return nil
	}
	s, err := stencil.Build(g.header.NeighborRadius, sz, sy)
	if err != nil {
		return err
	}
	g.stencil = s
	g.invalidate()
	return nil
}

// invalidate starts a new edge epoch; every tile rebuilds its edges on next access.
func (g *Grid) invalidate() {
	g.epoch++
	g.built = 0
}

// SetNeighborRadius changes the stencil radius and invalidates all edges.
func (g *Grid) SetNeighborRadius(r float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.header.NeighborRadius
	g.header.NeighborRadius = r
	if err := g.header.Validate(); err != nil {
		g.header.NeighborRadius = old
		return err
	}
	return g.rebuildStencil()
}

// Header returns the grid geometry. Callers must not modify it.
func (g *Grid) Header() *header.Header { return g.header }

// Stencil returns the current neighbor stencil.
func (g *Grid) Stencil() *stencil.Stencil { return g.stencil }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Tiles exposes the tile array for read-only use.
func (g *Grid) Tiles() []Tile { return g.tiles }

// Obstacle reports whether tile idx is an obstacle.
func (g *Grid) Obstacle(idx int) bool { return g.tiles[idx].Obstacle }

// Penalty returns the traversal penalty of tile idx.
func (g *Grid) Penalty(idx int) float64 { return g.tiles[idx].Penalty }

// Density returns the density of tile idx.
func (g *Grid) Density(idx int) float64 { return g.tiles[idx].Density }

// Densities returns a copy of all densities in grid order.
func (g *Grid) Densities() []float64 {
	out := make([]float64, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tiles[i].Density
	}
	return out
}

// LoadDensity copies density values without reclassifying obstacles; call
// UpdateTiles afterwards.
func (g *Grid) LoadDensity(density []float64) error {
	if len(density) != len(g.tiles) {
		return fmt.Errorf("got %d values for %d voxels: %w", len(density), len(g.tiles), ErrDataSize)
	}
	for i, d := range density {
		g.tiles[i].Density = d
	}
	return nil
}

// SetData loads density values and classifies obstacles. Edges are always
// invalidated because the obstacle map may have changed.
func (g *Grid) SetData(density []float64, threshold float64, binarize bool, penalty float64) error {
	if err := g.LoadDensity(density); err != nil {
		return err
	}
	return g.UpdateTiles(threshold, binarize, penalty, true)
}

// UpdateTiles classifies obstacles from the current densities.
//
// A negative threshold selects the header's obstacle threshold. With binarize,
// obstacles get the given penalty and free tiles 0. Without it, free tiles get
// max(density, 0) and obstacles max(density, penalty). In both modes
// density > threshold marks an obstacle. resetEdges starts a new edge epoch so
// later searches see the new weights.
//
// Every resulting penalty is >= 0, so no edge weighs less than its step.
// A negative or NaN penalty is rejected with ErrNegativePenalty and leaves the
// tiles untouched.
// Complexity: O(V).
func (g *Grid) UpdateTiles(threshold float64, binarize bool, penalty float64, resetEdges bool) error {
	if !(penalty >= 0) {
		return fmt.Errorf("penalty %v: %w", penalty, ErrNegativePenalty)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if threshold < 0 {
		threshold = g.header.ObstacleThreshold
	}
	obstacles := 0
	for i := range g.tiles {
		t := &g.tiles[i]
		t.Obstacle = t.Density > threshold
		switch {
		case binarize && t.Obstacle:
			t.Penalty = penalty
		case binarize:
			t.Penalty = 0
		case t.Obstacle:
			t.Penalty = math.Max(t.Density, penalty)
		default:
			t.Penalty = math.Max(t.Density, 0)
		}
		if t.Obstacle {
			obstacles++
		}
	}
	if resetEdges {
		g.invalidate()
	}
	g.log.Debug("tiles classified",
		zap.Float64("threshold", threshold),
		zap.Bool("binarize", binarize),
		zap.Float64("penalty", penalty),
		zap.Int("obstacles", obstacles),
		zap.Bool("reset_edges", resetEdges))

	return nil
}

// Edges returns the outgoing edges of tile idx, materializing them on first
// access in the current epoch. The returned slice must not be modified.
//
// Edge weight = spacing * stencil weight * (1 + (penalty(u) + penalty(v)) / 2).
// Neighbours outside the grid are skipped; there is no wraparound.
// Complexity: O(k) on first access for k stencil entries, O(1) afterwards.
func (g *Grid) Edges(idx int) []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := &g.tiles[idx]
	if t.epoch == g.epoch {
		return t.edges
	}
	h := g.header
	x, y, z := h.Coordinate(idx)
	edges := make([]Edge, 0, g.stencil.Len())
	for _, e := range g.stencil.Entries {
		if !h.InBounds(x+e.DX, y+e.DY, z+e.DZ) {
			continue
		}
		v := idx + e.FlatOffset
		step := h.Spacing * e.Weight
		w := step * (1 + (t.Penalty+g.tiles[v].Penalty)/2)
		edges = append(edges, Edge{Target: v, Weight: w, Step: step})
	}
	t.edges = edges
	t.epoch = g.epoch
	g.built++

	return edges
}

// EdgesBuilt reports whether tile idx has edges for the current epoch.
func (g *Grid) EdgesBuilt(idx int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tiles[idx].epoch == g.epoch
}

// BuiltCount returns how many tiles have materialized edges in the current epoch.
func (g *Grid) BuiltCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.built
}

// FillSphere sets the density of every voxel whose centre lies inside the
// world-space sphere (or outside it, when inverse is true) to value.
// Obstacles are not reclassified; call UpdateTiles afterwards.
func (g *Grid) FillSphere(center r3.Vec, radius, value float64, inverse bool) {
	r2 := radius * radius
	for i := range g.tiles {
		d := r3.Sub(g.header.Position(i), center)
		inside := r3.Dot(d, d) <= r2
		if inside != inverse {
			g.tiles[i].Density = value
		}
	}
}

// SetFeature registers or replaces a named per-voxel layer.
func (g *Grid) SetFeature(name string, values []float64) error {
	if name == "" {
		return ErrEmptyFeatureName
	}
	if len(values) != len(g.tiles) {
		return fmt.Errorf("feature %q: got %d values for %d voxels: %w", name, len(values), len(g.tiles), ErrDataSize)
	}
	g.features[name] = append([]float64(nil), values...)
	return nil
}

// SetTileFeature sets one voxel of a named layer, creating the layer if needed.
func (g *Grid) SetTileFeature(name string, idx int, v float64) error {
	if name == "" {
		return ErrEmptyFeatureName
	}
	if idx < 0 || idx >= len(g.tiles) {
		return fmt.Errorf("index %d: %w", idx, ErrIndexOutOfRange)
	}
	f, ok := g.features[name]
	if !ok {
		f = make([]float64, len(g.tiles))
		g.features[name] = f
	}
	f[idx] = v
	return nil
}

// Feature returns the named layer.
func (g *Grid) Feature(name string) ([]float64, bool) {
	f, ok := g.features[name]
	return f, ok
}
