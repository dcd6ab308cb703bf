package search

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pathmap/tilegrid"
)

// FindPath searches the grid from begin. With End(idx) and ModeAuto it runs
// A* and reconstructs the path; otherwise it floods every reachable tile.
//
// Preconditions and validation (in order, before any work):
//  1. g must be non-nil (ErrNilGrid).
//  2. g's stencil must be non-empty (ErrInvalidConfiguration).
//  3. begin must be in range and not an obstacle (ErrInvalidStartTile).
//  4. End must be NoTarget or in range (ErrInvalidEndTile).
//
// Every edge the search reads must weigh at least its step length; otherwise
// it stops with ErrNegativeWeight.
//
// An unreachable goal is not an error: Result.Found is false and Result.Path
// is empty.
func FindPath(g *tilegrid.Grid, begin int, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	mode := cfg.resolve()

	// 2) Validate inputs; fail fast without touching the grid.
	if err := validate(g, begin, cfg.End); err != nil {
		searchTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, err
	}
	limit := cfg.MaxPathLength
	if limit == 0 {
		limit = g.Header().MaxPathLength
	}

	// 3) Fresh scratch for this invocation only.
	r := &runner{
		g:       g,
		options: cfg,
		limit:   limit,
		s:       newScratch(g.Len()),
		pq:      make(tilePQ, 0, 64),
		goal:    cfg.End,
	}
	if mode == ModeAStar {
		r.heuristic = euclidean(g.Header(), cfg.End)
	}

	// 4) Run.
	start := time.Now()
	r.init(begin)
	if err := r.process(); err != nil {
		searchTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, err
	}
	elapsed := time.Since(start)

	res := &Result{
		RunID:         uuid.New(),
		Mode:          mode,
		Start:         begin,
		End:           cfg.End,
		Found:         r.found,
		Path:          r.path(),
		Settled:       r.settled,
		EdgesBuilt:    r.s.touched(),
		Duration:      elapsed,
		scratch:       r.s,
		maxPathLength: limit,
		voxelVolume:   math.Pow(g.Header().Spacing, 3),
	}

	// 5) Report.
	observe(res)
	cfg.Logger.Info("search finished",
		zap.String("run_id", res.RunID.String()),
		zap.Stringer("mode", mode),
		zap.Int("start", begin),
		zap.Int("end", cfg.End),
		zap.Bool("found", res.Found),
		zap.Int("settled", res.Settled),
		zap.Int("edges_built", res.EdgesBuilt),
		zap.Duration("elapsed", elapsed))

	return res, nil
}

func validate(g *tilegrid.Grid, begin, end int) error {
	if g == nil {
		return ErrNilGrid
	}
	if g.Stencil().Empty() {
		return fmt.Errorf("%w: radius %v", ErrInvalidConfiguration, g.Stencil().Radius)
	}
	if begin < 0 || begin >= g.Len() {
		return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidStartTile, begin, g.Len())
	}
	if g.Obstacle(begin) {
		return fmt.Errorf("%w: tile %d is an obstacle", ErrInvalidStartTile, begin)
	}
	if end != NoTarget && (end < 0 || end >= g.Len()) {
		return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidEndTile, end, g.Len())
	}
	return nil
}

// Result is the output of one search. It satisfies tilegrid.CostSource.
type Result struct {
	RunID      uuid.UUID
	Mode       Mode // algorithm that actually ran
	Start, End int
	Found      bool  // goal settled (always false for floods)
	Path       []int // origin..goal, empty when not found
	Settled    int
	EdgesBuilt int // tiles whose edges this search requested
	Duration   time.Duration

	scratch       *Scratch
	maxPathLength float64
	voxelVolume   float64
}

// Costs returns the cumulative cost per tile (+Inf if unreached).
func (r *Result) Costs() []float64 { return r.scratch.Cost }

// Lengths returns the geometric path length per tile (+Inf if unreached).
func (r *Result) Lengths() []float64 { return r.scratch.Length }

// Predecessors returns the predecessor per tile (-1 for start and unreached).
func (r *Result) Predecessors() []int { return r.scratch.Pred }

// MaxPathLength returns the cost cap the search ran with.
func (r *Result) MaxPathLength() float64 { return r.maxPathLength }

// IsSettled reports whether tile idx was settled.
func (r *Result) IsSettled(idx int) bool { return r.scratch.Visited[idx] }

// PathCost returns the cost of the goal, or +Inf when no path was found.
func (r *Result) PathCost() float64 {
	if !r.Found {
		return inf
	}
	return r.scratch.Cost[r.End]
}

// PathTo reconstructs the best known path from the start to idx by walking
// predecessors. It returns an empty slice for unreached tiles.
func (r *Result) PathTo(idx int) []int {
	if idx < 0 || idx >= len(r.scratch.Cost) || math.IsInf(r.scratch.Cost[idx], 1) {
		return []int{}
	}
	return r.scratch.walk(idx)
}

// Accessible lists the tiles with finite cost <= MaxPathLength in index order.
func (r *Result) Accessible() []int {
	var out []int
	for i, c := range r.scratch.Cost {
		if !math.IsInf(c, 1) && c <= r.maxPathLength {
			out = append(out, i)
		}
	}
	return out
}

// AccessibleVolume is the number of accessible tiles times the voxel volume.
func (r *Result) AccessibleVolume() float64 {
	return float64(len(r.Accessible())) * r.voxelVolume
}

// Summary condenses a result for logs and reports.
type Summary struct {
	RunID      string  `json:"run_id"`
	Mode       string  `json:"mode"`
	Accessible int     `json:"accessible_tiles"`
	Volume     float64 `json:"accessible_volume"`
	MeanCost   float64 `json:"mean_cost"`
	MaxCost    float64 `json:"max_cost"`
	MaxLength  float64 `json:"max_path_length"`
	Found      bool    `json:"found"`
	PathCost   float64 `json:"path_cost,omitempty"`
	PathTiles  int     `json:"path_tiles"`
	Settled    int     `json:"settled"`
	EdgesBuilt int     `json:"edges_built"`
}

// Summary computes accessible-volume statistics over the reached tiles.
func (r *Result) Summary() Summary {
	idx := r.Accessible()
	costs := make([]float64, len(idx))
	lengths := make([]float64, len(idx))
	for i, t := range idx {
		costs[i] = r.scratch.Cost[t]
		lengths[i] = r.scratch.Length[t]
	}
	s := Summary{
		RunID:      r.RunID.String(),
		Mode:       r.Mode.String(),
		Accessible: len(idx),
		Volume:     float64(len(idx)) * r.voxelVolume,
		Found:      r.Found,
		PathTiles:  len(r.Path),
		Settled:    r.Settled,
		EdgesBuilt: r.EdgesBuilt,
	}
	if len(idx) > 0 {
		s.MeanCost = stat.Mean(costs, nil)
		s.MaxCost = floats.Max(costs)
		s.MaxLength = floats.Max(lengths)
	}
	if r.Found {
		s.PathCost = r.PathCost()
	}
	return s
}
