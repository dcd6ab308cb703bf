// Package profile renders cumulative cost and voxel density along a found
// path as a PNG line plot.
package profile

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/pathmap/search"
	"github.com/katalvlaran/pathmap/tilegrid"
)

// ErrNoPath indicates a result without a path to plot.
var ErrNoPath = errors.New("profile: result has no path")

// Points returns two series over the path, both keyed by geometric distance
// travelled: cumulative cost and the density of each visited voxel.
func Points(g *tilegrid.Grid, res *search.Result) (cost, density plotter.XYs, err error) {
	if res == nil || !res.Found || len(res.Path) == 0 {
		return nil, nil, ErrNoPath
	}
	costs, lengths := res.Costs(), res.Lengths()
	cost = make(plotter.XYs, 0, len(res.Path))
	density = make(plotter.XYs, 0, len(res.Path))
	for _, idx := range res.Path {
		cost = append(cost, plotter.XY{X: lengths[idx], Y: costs[idx]})
		density = append(density, plotter.XY{X: lengths[idx], Y: g.Density(idx)})
	}
	return cost, density, nil
}

// WritePathProfile saves the profile of res to file; the format follows the
// file extension (png, svg, pdf).
func WritePathProfile(file string, g *tilegrid.Grid, res *search.Result) error {
	costPts, densPts, err := Points(g, res)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Path %s - %d tiles", res.RunID, len(res.Path))
	p.X.Label.Text = "Distance along path"
	p.Y.Label.Text = "Value"

	costLine, err := plotter.NewLine(costPts)
	if err != nil {
		return err
	}
	costLine.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	costLine.Width = vg.Points(1)
	p.Add(costLine)
	p.Legend.Add("cumulative cost", costLine)

	densLine, err := plotter.NewLine(densPts)
	if err != nil {
		return err
	}
	densLine.Color = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	densLine.Width = vg.Points(1)
	p.Add(densLine)
	p.Legend.Add("density", densLine)

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, file); err != nil {
		return fmt.Errorf("save profile %s: %w", file, err)
	}
	return nil
}
