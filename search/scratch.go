package search

// Scratch is the per-invocation state of one search. It is allocated fresh
// for every call so results never leak between searches, while the grid's
// edges are reused.
type Scratch struct {
	Cost    []float64 // best known cumulative cost; +Inf if unreached
	Length  []float64 // geometric length of the best path; +Inf if unreached
	Pred    []int     // predecessor tile; -1 for the start and unreached tiles
	Visited []bool    // settled tiles
	Touched []bool    // tiles whose edges this search requested
}

func newScratch(n int) *Scratch {
	s := &Scratch{
		Cost:    make([]float64, n),
		Length:  make([]float64, n),
		Pred:    make([]int, n),
		Visited: make([]bool, n),
		Touched: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s.Cost[i] = inf
		s.Length[i] = inf
		s.Pred[i] = -1
	}
	return s
}

// touched counts tiles whose edges were requested.
func (s *Scratch) touched() int {
	n := 0
	for _, t := range s.Touched {
		if t {
			n++
		}
	}
	return n
}

// walk follows predecessors from idx and returns the tiles start-first.
func (s *Scratch) walk(idx int) []int {
	var rev []int
	for at := idx; at >= 0; at = s.Pred[at] {
		rev = append(rev, at)
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}
