// Package obstacles turns a set of atom spheres into obstacle density on a
// tile grid. Atoms are kept in a 3D R-tree so that per-voxel coverage tests
// only look at the atoms near the voxel.
package obstacles

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pathmap/tilegrid"
)

var (
	// ErrEmptyAtoms indicates an index built from no atoms.
	ErrEmptyAtoms = errors.New("obstacles: no atoms")
	// ErrBadAtom indicates an atom with a non-positive or non-finite radius.
	ErrBadAtom = errors.New("obstacles: invalid atom")
)

// Atom is a sphere in world coordinates.
type Atom struct {
	ID     string
	Center r3.Vec
	Radius float64
}

// surface returns the distance from p to the atom's surface; negative inside.
func (a Atom) surface(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, a.Center)) - a.Radius
}

// entry wraps an atom for R-tree storage.
type entry struct {
	atom Atom
	ord  int
	box  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect { return e.box }

// Index is an R-tree over atom bounding boxes.
type Index struct {
	tree      *rtreego.Rtree
	entries   []*entry
	maxRadius float64
}

// NewIndex validates atoms and inserts them into a new tree.
func NewIndex(atoms []Atom) (*Index, error) {
	if len(atoms) == 0 {
		return nil, ErrEmptyAtoms
	}
	ix := &Index{
		tree:    rtreego.NewTree(3, 25, 50), // 3D, min 25, max 50 entries per node
		entries: make([]*entry, 0, len(atoms)),
	}
	for i, a := range atoms {
		if !(a.Radius > 0) || math.IsInf(a.Radius, 0) {
			return nil, fmt.Errorf("atom %d (%q) radius %v: %w", i, a.ID, a.Radius, ErrBadAtom)
		}
		box, err := cube(a.Center, a.Radius)
		if err != nil {
			return nil, fmt.Errorf("atom %d (%q): %w", i, a.ID, err)
		}
		e := &entry{atom: a, ord: i, box: box}
		ix.tree.Insert(e)
		ix.entries = append(ix.entries, e)
		ix.maxRadius = math.Max(ix.maxRadius, a.Radius)
	}
	return ix, nil
}

// cube returns the axis-aligned box of half-width r around c.
func cube(c r3.Vec, r float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{c.X - r, c.Y - r, c.Z - r},
		[]float64{2 * r, 2 * r, 2 * r},
	)
}

// Len returns the number of indexed atoms.
func (ix *Index) Len() int { return len(ix.entries) }

// Within returns the atoms whose surface lies within d of p, in insertion
// order. A negative d selects atoms that contain p at least that deep.
func (ix *Index) Within(p r3.Vec, d float64) []Atom {
	var out []Atom
	for _, e := range ix.near(p, d) {
		out = append(out, e.atom)
	}
	return out
}

func (ix *Index) near(p r3.Vec, d float64) []*entry {
	reach := d + ix.maxRadius
	if reach <= 0 {
		return nil
	}
	box, err := cube(p, reach)
	if err != nil {
		return nil
	}
	var hits []*entry
	for _, s := range ix.tree.SearchIntersect(box) {
		e := s.(*entry)
		if e.atom.surface(p) <= d {
			hits = append(hits, e)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].ord < hits[j].ord })
	return hits
}

// Covered reports whether p lies inside any atom grown by extra.
func (ix *Index) Covered(p r3.Vec, extra float64) bool {
	return len(ix.near(p, extra)) > 0
}

// Nearest returns the atom whose surface is closest to p and that distance
// (negative when p is inside it). Ties go to the atom inserted first.
func (ix *Index) Nearest(p r3.Vec) (Atom, float64) {
	// The atom with the nearest bounding box bounds the answer from above.
	best := ix.tree.NearestNeighbor(rtreego.Point{p.X, p.Y, p.Z}).(*entry)
	bestDist := best.atom.surface(p)
	for _, e := range ix.near(p, bestDist) {
		d := e.atom.surface(p)
		if d < bestDist || (d == bestDist && e.ord < best.ord) {
			best, bestDist = e, d
		}
	}
	return best.atom, bestDist
}

// Exclude drops atoms whose centre lies within d of p, e.g. the attachment
// atom at the path origin.
func Exclude(atoms []Atom, p r3.Vec, d float64) []Atom {
	out := make([]Atom, 0, len(atoms))
	for _, a := range atoms {
		if r3.Norm(r3.Sub(a.Center, p)) <= d {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Sample writes value into the density of every voxel whose centre lies
// inside an atom grown by extraRadius, and 0 everywhere else. Obstacles are
// not reclassified; call g.UpdateTiles afterwards. It returns the number of
// covered voxels.
func Sample(g *tilegrid.Grid, ix *Index, extraRadius, value float64) (int, error) {
	h := g.Header()
	density := make([]float64, g.Len())
	covered := 0
	for i := range density {
		if ix.Covered(h.Position(i), extraRadius) {
			density[i] = value
			covered++
		}
	}
	if err := g.LoadDensity(density); err != nil {
		return 0, err
	}
	return covered, nil
}
