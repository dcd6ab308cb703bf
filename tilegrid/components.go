package tilegrid

// FreeComponents finds all connected regions of non-obstacle tiles under the
// grid's stencil adjacency. Each component is a slice of tile indices in BFS
// order; components are listed in order of their lowest index.
//
// Edges are not materialized; adjacency is read straight from the stencil.
//
// Time:   O(V·k), where k = stencil size.
// Memory: O(V) for seen flags and output.
func (g *Grid) FreeComponents() [][]int {
	h := g.header
	seen := make([]bool, len(g.tiles))
	var comps [][]int

	for i0 := range g.tiles {
		if seen[i0] || g.tiles[i0].Obstacle {
			continue
		}
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ux, uy, uz := h.Coordinate(u)
			for _, e := range g.stencil.Entries {
				if !h.InBounds(ux+e.DX, uy+e.DY, uz+e.DZ) {
					continue
				}
				v := u + e.FlatOffset
				if !seen[v] && !g.tiles[v].Obstacle {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}

// ComponentOf returns the free component containing idx, or nil when idx is an
// obstacle or out of range.
func (g *Grid) ComponentOf(idx int) []int {
	if idx < 0 || idx >= len(g.tiles) || g.tiles[idx].Obstacle {
		return nil
	}
	for _, c := range g.FreeComponents() {
		for _, i := range c {
			if i == idx {
				return c
			}
		}
	}
	return nil
}
