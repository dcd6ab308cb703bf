package tilegrid

import (
	"fmt"
	"math"
)

// TileValues returns one value of the given kind per voxel in grid order,
// clamped into bounds. Cost, PathLength and the Accessible* kinds read search
// output from src; feature names the layer for Feature and AccessibleFeature.
// Complexity: O(V).
func (g *Grid) TileValues(kind ValueKind, bounds Bounds, feature string, src CostSource) ([]float64, error) {
	var (
		costs, lengths []float64
		layer          []float64
		limit          float64
	)
	switch kind {
	case Penalty, Density:
	case Cost, PathLength, AccessibleDensity, AccessibleFeature:
		if src == nil {
			return nil, fmt.Errorf("%s: %w", kind, ErrNoSearchResult)
		}
		costs, lengths, limit = src.Costs(), src.Lengths(), src.MaxPathLength()
		if len(costs) != len(g.tiles) || len(lengths) != len(g.tiles) {
			return nil, fmt.Errorf("%s: search result covers %d tiles, grid has %d: %w", kind, len(costs), len(g.tiles), ErrDataSize)
		}
	case Feature:
	default:
		return nil, fmt.Errorf("kind %d: %w", int(kind), ErrUnknownValueKind)
	}
	if kind == Feature || kind == AccessibleFeature {
		var ok bool
		if layer, ok = g.features[feature]; !ok {
			return nil, fmt.Errorf("%q: %w", feature, ErrUnknownFeature)
		}
	}

	out := make([]float64, len(g.tiles))
	for i := range g.tiles {
		var v float64
		switch kind {
		case Penalty:
			v = g.tiles[i].Penalty
		case Density:
			v = g.tiles[i].Density
		case Cost:
			v = costs[i]
		case PathLength:
			v = lengths[i]
		case AccessibleDensity:
			if accessible(costs[i], limit) {
				v = g.tiles[i].Density
			}
		case Feature:
			v = layer[i]
		case AccessibleFeature:
			if accessible(costs[i], limit) {
				v = layer[i]
			}
		}
		out[i] = clamp(v, bounds)
	}

	return out, nil
}

// DenseTileValues is TileValues plus the grid dimensions, for writers that
// serialize a dense x-fastest array.
func (g *Grid) DenseTileValues(kind ValueKind, bounds Bounds, feature string, src CostSource) ([]float64, int, int, int, error) {
	values, err := g.TileValues(kind, bounds, feature, src)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return values, g.header.NX, g.header.NY, g.header.NZ, nil
}

// XYZDensity lists the world positions, densities and path costs of every
// accessible tile in grid order.
func (g *Grid) XYZDensity(src CostSource) ([]Point, error) {
	if src == nil {
		return nil, ErrNoSearchResult
	}
	costs, limit := src.Costs(), src.MaxPathLength()
	if len(costs) != len(g.tiles) {
		return nil, fmt.Errorf("search result covers %d tiles, grid has %d: %w", len(costs), len(g.tiles), ErrDataSize)
	}
	var pts []Point
	for i := range g.tiles {
		if !accessible(costs[i], limit) {
			continue
		}
		p := g.header.Position(i)
		pts = append(pts, Point{
			Index:    i,
			X:        p.X,
			Y:        p.Y,
			Z:        p.Z,
			Density:  g.tiles[i].Density,
			PathCost: costs[i],
		})
	}
	return pts, nil
}

func accessible(cost, limit float64) bool {
	return !math.IsInf(cost, 1) && cost <= limit
}

func clamp(v float64, b Bounds) float64 {
	switch {
	case math.IsNaN(v):
		return v
	case v < b.Min:
		return b.Min
	case v > b.Max:
		return b.Max
	}
	return v
}
