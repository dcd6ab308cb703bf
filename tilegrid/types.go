package tilegrid

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/stencil"
)

// Sentinel errors for tilegrid operations.
var (
	// ErrDataSize indicates an input array whose length differs from the voxel count.
	ErrDataSize = errors.New("tilegrid: data length does not match voxel count")
	// ErrIndexOutOfRange indicates a tile index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("tilegrid: tile index out of range")
	// ErrUnknownValueKind indicates an unsupported ValueKind.
	ErrUnknownValueKind = errors.New("tilegrid: unknown tile value kind")
	// ErrUnknownFeature indicates a feature name that was never set.
	ErrUnknownFeature = errors.New("tilegrid: unknown feature")
	// ErrNoSearchResult indicates a cost-dependent value requested without search output.
	ErrNoSearchResult = errors.New("tilegrid: value kind requires a search result")
	// ErrEmptyFeatureName indicates a feature registered without a name.
	ErrEmptyFeatureName = errors.New("tilegrid: feature name is empty")
	// ErrNegativePenalty indicates an obstacle penalty below zero or NaN.
	ErrNegativePenalty = errors.New("tilegrid: obstacle penalty must be non-negative")
)

// DefaultObstaclePenalty is the penalty an obstacle tile receives when the
// caller does not supply one. It is large but finite: a search can still step
// into an obstacle if the path length budget allows it.
const DefaultObstaclePenalty = 1e6

// Tile is the persistent, search-independent record of one voxel.
type Tile struct {
	Penalty  float64
	Obstacle bool
	Density  float64

	epoch uint64 // epoch in which edges were built; 0 means never
	edges []Edge
}

// Edge is a directed connection to the tile with index Target. Weight is the
// traversal cost; Step is the plain world-space length of the move.
type Edge struct {
	Target int
	Weight float64
	Step   float64
}

// Grid owns the tiles of one voxel volume and the stencil for its neighbor radius.
// Classification (SetData, UpdateTiles, Resize) must not run concurrently with a
// search; Edges may be called from concurrent searches.
type Grid struct {
	mu       sync.Mutex
	header   *header.Header
	tiles    []Tile
	stencil  *stencil.Stencil
	epoch    uint64
	built    int
	features map[string][]float64
	log      *zap.Logger
}

// Option customizes a Grid.
type Option func(*Grid)

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("tilegrid: WithLogger(nil)")
	}
	return func(g *Grid) {
		g.log = l
	}
}

// ValueKind selects what TileValues extracts for each voxel.
type ValueKind int

const (
	// Penalty is the traversal penalty.
	Penalty ValueKind = iota
	// Cost is the cumulative path cost from the search origin.
	Cost
	// Density is the raw density.
	Density
	// AccessibleDensity is the density of tiles within the max path length, 0 elsewhere.
	AccessibleDensity
	// PathLength is the geometric length of the best path, without penalties.
	PathLength
	// Feature is a named user feature.
	Feature
	// AccessibleFeature is a named user feature restricted to accessible tiles.
	AccessibleFeature
)

var valueKindNames = map[ValueKind]string{
	Penalty:           "penalty",
	Cost:              "cost",
	Density:           "density",
	AccessibleDensity: "accessible_density",
	PathLength:        "path_length",
	Feature:           "feature",
	AccessibleFeature: "accessible_feature",
}

// String returns the snake_case name of k.
func (k ValueKind) String() string {
	if s, ok := valueKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseValueKind maps a snake_case name back to its ValueKind.
func ParseValueKind(s string) (ValueKind, error) {
	for k, name := range valueKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, ErrUnknownValueKind
}

// Bounds is the closed range extracted values are clamped into.
type Bounds struct {
	Min, Max float64
}

// DefaultBounds spans every finite float64.
func DefaultBounds() Bounds {
	return Bounds{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

// CostSource supplies per-tile search output to cost-dependent value kinds.
// search.Result implements it.
type CostSource interface {
	Costs() []float64
	Lengths() []float64
	MaxPathLength() float64
}

// Point is a world position with the density of its voxel.
type Point struct {
	Index    int
	X, Y, Z  float64
	Density  float64
	PathCost float64
}
