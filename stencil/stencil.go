// Package stencil builds the set of integer grid displacements that count as
// adjacent for a given neighbor radius.
//
// Each Entry keeps the integer displacement (DZ, DY, DX), the matching flat-index
// delta for the grid's strides, and the exact Euclidean length of the step.
// The zero displacement is never part of a stencil, so every weight is > 0.
//
// Complexity:
//
//   - Build: O((2n+1)³) time where n = ceil(radius), O(k) memory for k kept entries.
//
// Errors:
//
//   - ErrNegativeRadius: radius < 0, NaN or infinite.
package stencil

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeRadius indicates a radius that cannot describe a sphere.
var ErrNegativeRadius = errors.New("stencil: radius must be finite and >= 0")

// Entry is one neighbor displacement.
type Entry struct {
	DZ, DY, DX int
	FlatOffset int
	Weight     float64
}

// Stencil is an immutable, ordered set of entries valid for one radius and one
// pair of strides.
type Stencil struct {
	Radius  float64
	StrideZ int
	StrideY int
	Entries []Entry
}

// Build enumerates every integer displacement with 0 < dz²+dy²+dx² <= radius²
// in z, y, x ascending order. strideZ and strideY are the flat-index steps of
// the target grid (NX*NY and NX); the x stride is 1.
//
// A radius of 0 yields an empty stencil. Callers that need connectivity must
// reject it.
func Build(radius float64, strideZ, strideY int) (*Stencil, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("radius %v: %w", radius, ErrNegativeRadius)
	}
	n := int(math.Ceil(radius))
	r2 := radius * radius

	s := &Stencil{Radius: radius, StrideZ: strideZ, StrideY: strideY}
	for z := -n; z <= n; z++ {
		dz2 := z * z
		for y := -n; y <= n; y++ {
			dzy2 := dz2 + y*y
			for x := -n; x <= n; x++ {
				d2 := dzy2 + x*x
				if d2 == 0 || float64(d2) > r2 {
					continue
				}
				s.Entries = append(s.Entries, Entry{
					DZ:         z,
					DY:         y,
					DX:         x,
					FlatOffset: z*strideZ + y*strideY + x,
					Weight:     math.Sqrt(float64(d2)),
				})
			}
		}
	}

	return s, nil
}

// Len returns the number of entries.
func (s *Stencil) Len() int { return len(s.Entries) }

// Empty reports whether the stencil connects nothing.
func (s *Stencil) Empty() bool { return len(s.Entries) == 0 }

// Matches reports whether s was built for the given radius and strides.
func (s *Stencil) Matches(radius float64, strideZ, strideY int) bool {
	return s != nil && s.Radius == radius && s.StrideZ == strideZ && s.StrideY == strideY
}

// MinWeight returns the shortest step length, or 0 for an empty stencil.
func (s *Stencil) MinWeight() float64 {
	if len(s.Entries) == 0 {
		return 0
	}
	m := s.Entries[0].Weight
	for _, e := range s.Entries[1:] {
		m = math.Min(m, e.Weight)
	}
	return m
}
