// Package search defines core types and configuration options for path
// searches over a tilegrid.Grid.
//
// Two algorithms share one relaxation rule (newCost = cost[u] + w, accepted
// iff newCost < cost[v] and newCost <= MaxPathLength):
//
//   - Dijkstra (flood): uniform-cost search from one origin to every reachable tile.
//   - A* (point-to-point): best-first search keyed by cost + Euclidean distance
//     to the goal, stopping once the goal is settled.
//
// Options:
//
//   - End:                  goal tile index; -1 (default) floods the reachable region.
//   - Mode:                 ModeAuto picks A* when End >= 0, Dijkstra otherwise.
//   - MaxPathLength:        cost cap; 0 means "use the grid header's value".
//   - ImpassableObstacles:  never step into obstacle tiles instead of paying their penalty.
//
// Errors (sentinel):
//
//   - ErrNilGrid               if the grid pointer is nil.
//   - ErrInvalidConfiguration  if the grid's stencil is empty (neighbor radius too small).
//   - ErrInvalidStartTile      if the start index is out of range or an obstacle.
//   - ErrInvalidEndTile        if the end index is out of range.
//   - ErrNegativeWeight        if an edge costs less than the distance it spans.
//   - ErrBadMaxPathLength      if WithMaxPathLength receives a value <= 0 (panics).
//   - ErrUnknownMode           if WithMode or ParseMode receives an unknown mode.
package search

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Sentinel errors returned by the search implementation.
var (
	// ErrNilGrid indicates that a nil *tilegrid.Grid was passed.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrInvalidConfiguration indicates a grid whose stencil connects nothing.
	ErrInvalidConfiguration = errors.New("search: neighbor stencil is empty")

	// ErrInvalidStartTile indicates an out-of-range or obstacle start tile.
	ErrInvalidStartTile = errors.New("search: invalid start tile")

	// ErrInvalidEndTile indicates an out-of-range end tile.
	ErrInvalidEndTile = errors.New("search: invalid end tile")

	// ErrNegativeWeight indicates an edge whose weight is below its step
	// length, i.e. a tile with a negative penalty.
	ErrNegativeWeight = errors.New("search: edge weight below its step length")

	// ErrBadMaxPathLength indicates a non-positive path length cap.
	ErrBadMaxPathLength = errors.New("search: MaxPathLength must be positive")

	// ErrUnknownMode indicates an unsupported search mode.
	ErrUnknownMode = errors.New("search: unknown mode")
)

// NoTarget is the End value that requests a flood of the reachable region.
const NoTarget = -1

// Mode selects the search algorithm.
type Mode int

const (
	// ModeAuto runs A* when a target is given and Dijkstra otherwise.
	ModeAuto Mode = iota
	// ModeDijkstra runs uniform-cost search; with a target it stops once the target is settled.
	ModeDijkstra
	// ModeAStar runs heuristic best-first search; without a target it behaves like Dijkstra.
	ModeAStar
)

// String returns the lower-case name of m.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeDijkstra:
		return "dijkstra"
	case ModeAStar:
		return "astar"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps "auto", "dijkstra" or "astar" to a Mode. An empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "dijkstra":
		return ModeDijkstra, nil
	case "astar", "a*":
		return ModeAStar, nil
	}
	return ModeAuto, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Options configures a single search.
//
// End                 – goal tile index or NoTarget.
// Mode                – algorithm selection.
// MaxPathLength       – tiles whose cost would exceed this are never relaxed. 0 = header value.
// ImpassableObstacles – skip edges into obstacle tiles.
// Logger              – receives a debug line per finished search.
type Options struct {
	End                 int
	Mode                Mode
	MaxPathLength       float64
	ImpassableObstacles bool
	Logger              *zap.Logger
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// End sets the goal tile. Panics on values below NoTarget.
func End(idx int) Option {
	if idx < NoTarget {
		panic(ErrInvalidEndTile.Error())
	}
	return func(o *Options) {
		o.End = idx
	}
}

// WithMode selects the algorithm. Panics on an unknown mode.
func WithMode(m Mode) Option {
	if m < ModeAuto || m > ModeAStar {
		panic(ErrUnknownMode.Error())
	}
	return func(o *Options) {
		o.Mode = m
	}
}

// WithMaxPathLength caps the cumulative cost. +Inf disables the cap.
// Panics on values <= 0 or NaN.
func WithMaxPathLength(l float64) Option {
	if !(l > 0) {
		panic(ErrBadMaxPathLength.Error())
	}
	return func(o *Options) {
		o.MaxPathLength = l
	}
}

// WithImpassableObstacles treats obstacle tiles as walls rather than
// high-penalty tiles.
func WithImpassableObstacles() Option {
	return func(o *Options) {
		o.ImpassableObstacles = true
	}
}

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("search: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns the options used when none are given:
// flood, ModeAuto, header path length, finite obstacle penalty, no-op logger.
func DefaultOptions() Options {
	return Options{
		End:    NoTarget,
		Mode:   ModeAuto,
		Logger: zap.NewNop(),
	}
}

// resolve returns the concrete algorithm for the options.
func (o Options) resolve() Mode {
	if o.End == NoTarget {
		return ModeDijkstra
	}
	if o.Mode == ModeAuto {
		return ModeAStar
	}
	return o.Mode
}

// inf is the cost of an unreached tile.
var inf = math.Inf(1)
