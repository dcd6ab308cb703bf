package search

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/pathmap/tilegrid"
)

// FindPathDijkstra runs uniform-cost search from begin. Without End it floods
// every tile reachable within the path length cap; with End it stops once the
// goal is settled.
//
// Complexity:
//
//   - Time:  O((V + E) log V) over the tiles actually reached.
//   - Space: O(V) scratch + O(E) heap entries under lazy decrease-key.
func FindPathDijkstra(g *tilegrid.Grid, begin int, opts ...Option) (*Result, error) {
	return FindPath(g, begin, append(opts, WithMode(ModeDijkstra))...)
}

// runner holds the mutable state for a single search execution.
type runner struct {
	g         *tilegrid.Grid    // the tile graph; edges materialize on demand
	options   Options           // resolved options
	limit     float64           // resolved MaxPathLength
	s         *Scratch          // per-search cost/predecessor/visited state
	pq        tilePQ            // frontier
	seq       uint64            // insertion counter for tie breaking
	goal      int               // goal tile or NoTarget
	heuristic func(int) float64 // nil for uniform-cost search
	settled   int               // tiles popped as final
	found     bool              // goal settled
}

// init sets cost[begin] = 0 and pushes begin onto the frontier.
func (r *runner) init(begin int) {
	r.s.Cost[begin] = 0
	r.s.Length[begin] = 0
	heap.Init(&r.pq)
	r.push(begin, 0)
}

// push enqueues v with its priority key (cost, plus heuristic for A*).
func (r *runner) push(v int, cost float64) {
	key := cost
	if r.heuristic != nil {
		key += r.heuristic(v)
	}
	heap.Push(&r.pq, tileItem{idx: v, priority: key, seq: r.seq})
	r.seq++
}

// process repeatedly settles the lowest-key tile and relaxes its edges.
//
// Loop termination conditions:
//
//   - The frontier becomes empty (flood complete, or goal unreachable).
//   - The goal tile is popped (point-to-point).
//   - An edge weighs less than its step (ErrNegativeWeight).
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the smallest-key item.
		item := heap.Pop(&r.pq).(tileItem)
		u := item.idx

		// 2) Skip stale entries of already-settled tiles.
		if r.s.Visited[u] {
			continue
		}

		// 3) u's cost is final.
		r.s.Visited[u] = true
		r.settled++

		// 4) Stop as soon as the goal is settled.
		if u == r.goal {
			r.found = true
			return nil
		}

		// 5) Relax outgoing edges.
		if err := r.relax(u); err != nil {
			return err
		}
	}
	return nil
}

// relax examines each edge of u and improves the cost of its neighbors.
// Edges into obstacles are skipped when ImpassableObstacles is set; relaxations
// beyond the path length cap are dropped. An edge cheaper than its step aborts
// the search with ErrNegativeWeight.
func (r *runner) relax(u int) error {
	edges := r.g.Edges(u)
	r.s.Touched[u] = true

	cu := r.s.Cost[u]
	for _, e := range edges {
		v := e.Target
		if !(e.Weight >= e.Step) {
			return fmt.Errorf("%w: %d->%d weight %v step %v", ErrNegativeWeight, u, v, e.Weight, e.Step)
		}
		if r.s.Visited[v] {
			continue
		}
		if r.options.ImpassableObstacles && r.g.Obstacle(v) {
			continue
		}
		nc := cu + e.Weight
		if nc > r.limit {
			continue
		}
		// strictly better only, so equal-cost paths keep the first predecessor
		if nc >= r.s.Cost[v] {
			continue
		}
		r.s.Cost[v] = nc
		r.s.Length[v] = r.s.Length[u] + e.Step
		r.s.Pred[v] = u
		r.push(v, nc)
	}
	return nil
}

// path walks predecessors from the goal back to the start.
func (r *runner) path() []int {
	if !r.found {
		return []int{}
	}
	return r.s.walk(r.goal)
}
