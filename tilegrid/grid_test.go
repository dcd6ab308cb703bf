package tilegrid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pathmap/builder"
	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/tilegrid"
)

// newGrid builds an n³ grid with unit spacing centred on the world origin.
func newGrid(t *testing.T, n int, radius float64) *tilegrid.Grid {
	t.Helper()
	h, err := header.NewHeader(1, 1,
		header.WithDimensions(n, n, n),
		header.WithNeighborRadius(radius))
	require.NoError(t, err)
	g, err := tilegrid.New(h)
	require.NoError(t, err)
	return g
}

func TestNew_Errors(t *testing.T) {
	_, err := tilegrid.New(nil)
	assert.ErrorIs(t, err, header.ErrInvalidConfiguration)

	bad := &header.Header{Spacing: 1, NX: 0, NY: 1, NZ: 1, MaxPathLength: 1}
	_, err = tilegrid.New(bad)
	assert.ErrorIs(t, err, header.ErrInvalidConfiguration)

	assert.Panics(t, func() { tilegrid.WithLogger(nil) })
}

func TestSetData_SizeMismatch(t *testing.T) {
	g := newGrid(t, 3, 1)
	err := g.SetData(make([]float64, 5), -1, true, 10)
	if !errors.Is(err, tilegrid.ErrDataSize) {
		t.Fatalf("SetData error = %v; want ErrDataSize", err)
	}
}

func TestUpdateTiles_Binarize(t *testing.T) {
	g := newGrid(t, 3, 1)
	density := make([]float64, g.Len())
	density[4] = 0.2
	density[13] = -1
	require.NoError(t, g.SetData(density, -1, true, 100))

	assert.True(t, g.Obstacle(4))
	assert.Equal(t, 100.0, g.Penalty(4))
	assert.False(t, g.Obstacle(13))
	assert.Zero(t, g.Penalty(13))
	assert.False(t, g.Obstacle(0))
	assert.Zero(t, g.Penalty(0))
}

func TestUpdateTiles_Continuous(t *testing.T) {
	g := newGrid(t, 3, 1)
	density := make([]float64, g.Len())
	density[1] = 3
	density[2] = 0.5
	density[3] = -2
	require.NoError(t, g.SetData(density, 1, false, 100))

	assert.True(t, g.Obstacle(1))
	assert.Equal(t, 100.0, g.Penalty(1))
	assert.False(t, g.Obstacle(2))
	assert.Equal(t, 0.5, g.Penalty(2))
	assert.False(t, g.Obstacle(3))
	assert.Zero(t, g.Penalty(3))

	// A penalty below the density keeps the density.
	require.NoError(t, g.UpdateTiles(1, false, 2, true))
	assert.Equal(t, 3.0, g.Penalty(1))
}

// Negative penalties would make edges cheaper than their step and costs
// non-monotone; they are rejected and the previous classification survives.
func TestUpdateTiles_NegativePenalty(t *testing.T) {
	h, err := header.NewHeader(3, 1, header.WithDimensions(7, 1, 1), header.WithNeighborRadius(1))
	require.NoError(t, err)
	g, err := tilegrid.New(h)
	require.NoError(t, err)
	density := make([]float64, g.Len())
	density[3] = 1

	for _, p := range []float64{-4, -1, -1e-9, math.NaN()} {
		err := g.SetData(density, -1, true, p)
		assert.ErrorIs(t, err, tilegrid.ErrNegativePenalty, "penalty %v", p)
	}
	assert.False(t, g.Obstacle(3), "rejected call must not classify")

	require.NoError(t, g.SetData(density, -1, true, 0))
	assert.True(t, g.Obstacle(3))
	assert.ErrorIs(t, g.UpdateTiles(-1, false, -4, true), tilegrid.ErrNegativePenalty)

	// Under a negative header threshold even negative densities are obstacles;
	// their penalty is still clamped at zero.
	h2, err := header.NewHeader(3, 1, header.WithDimensions(7, 1, 1),
		header.WithNeighborRadius(1), header.WithObstacleThreshold(-1))
	require.NoError(t, err)
	g2, err := tilegrid.New(h2)
	require.NoError(t, err)
	density[2] = -0.5
	require.NoError(t, g2.SetData(density, -1, false, 0))
	assert.True(t, g2.Obstacle(2))
	for i := 0; i < g2.Len(); i++ {
		assert.GreaterOrEqual(t, g2.Penalty(i), 0.0, "tile %d", i)
		for _, e := range g2.Edges(i) {
			assert.GreaterOrEqual(t, e.Weight, e.Step, "edge %d->%d", i, e.Target)
		}
	}
}

func TestEdges_LazyAndBounded(t *testing.T) {
	g := newGrid(t, 3, 1)
	assert.Equal(t, 0, g.BuiltCount())
	assert.False(t, g.EdgesBuilt(0))

	corner := g.Edges(0)
	assert.Len(t, corner, 3)
	assert.True(t, g.EdgesBuilt(0))
	assert.Equal(t, 1, g.BuiltCount())

	centre := g.Edges(13)
	assert.Len(t, centre, 6)
	for _, e := range centre {
		assert.NotEqual(t, 13, e.Target)
		assert.Equal(t, 1.0, e.Weight)
		assert.Equal(t, 1.0, e.Step)
	}

	// Second access returns the cached list.
	g.Edges(0)
	assert.Equal(t, 2, g.BuiltCount())
}

func TestEdges_PenaltyWeight(t *testing.T) {
	g := newGrid(t, 3, 1)
	density := make([]float64, g.Len())
	density[1] = 2
	require.NoError(t, g.SetData(density, 5, false, 100))

	for _, e := range g.Edges(0) {
		if e.Target == 1 {
			assert.Equal(t, 2.0, e.Weight)
			assert.Equal(t, 1.0, e.Step)
			return
		}
	}
	t.Fatal("edge 0->1 missing")
}

func TestUpdateTiles_EpochInvalidation(t *testing.T) {
	g := newGrid(t, 3, 1)
	g.Edges(0)

	require.NoError(t, g.UpdateTiles(-1, true, 10, false))
	assert.True(t, g.EdgesBuilt(0), "edges kept without reset")

	require.NoError(t, g.UpdateTiles(-1, true, 10, true))
	assert.False(t, g.EdgesBuilt(0))
	assert.Equal(t, 0, g.BuiltCount())
}

func TestUpdateTiles_Idempotent(t *testing.T) {
	h, err := header.NewHeader(1, 1, header.WithDimensions(5, 5, 5), header.WithNeighborRadius(1.8))
	require.NoError(t, err)
	g, err := tilegrid.New(h)
	require.NoError(t, err)
	vol, err := builder.BuildVolume(h, []builder.BuilderOption{builder.WithSeed(3)}, builder.Noise(1))
	require.NoError(t, err)
	require.NoError(t, g.SetData(vol, 0.5, false, 50))

	snapshot := func() ([]float64, [][]tilegrid.Edge) {
		pen, err := g.TileValues(tilegrid.Penalty, tilegrid.DefaultBounds(), "", nil)
		require.NoError(t, err)
		edges := make([][]tilegrid.Edge, g.Len())
		for i := range edges {
			edges[i] = append([]tilegrid.Edge(nil), g.Edges(i)...)
		}
		return pen, edges
	}

	require.NoError(t, g.UpdateTiles(0.5, false, 50, true))
	pen1, edges1 := snapshot()
	require.NoError(t, g.UpdateTiles(0.5, false, 50, true))
	pen2, edges2 := snapshot()

	if diff := cmp.Diff(pen1, pen2); diff != "" {
		t.Errorf("penalties changed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(edges1, edges2); diff != "" {
		t.Errorf("edges changed (-first +second):\n%s", diff)
	}
}

func TestSetNeighborRadius(t *testing.T) {
	g := newGrid(t, 3, 1)
	g.Edges(13)
	require.NoError(t, g.SetNeighborRadius(1.5))
	assert.Equal(t, 18, g.Stencil().Len())
	assert.False(t, g.EdgesBuilt(13))
	assert.Len(t, g.Edges(13), 18)

	assert.ErrorIs(t, g.SetNeighborRadius(-1), header.ErrInvalidConfiguration)
	assert.Equal(t, 1.5, g.Header().NeighborRadius)
}

func TestResize(t *testing.T) {
	g := newGrid(t, 3, 1)
	require.NoError(t, g.SetFeature("charge", make([]float64, g.Len())))
	g.Edges(0)

	h, err := header.NewHeader(1, 1, header.WithDimensions(2, 2, 2), header.WithNeighborRadius(1))
	require.NoError(t, err)
	require.NoError(t, g.Resize(h))

	assert.Equal(t, 8, g.Len())
	assert.Equal(t, 0, g.BuiltCount())
	_, ok := g.Feature("charge")
	assert.False(t, ok)
	assert.Len(t, g.Edges(0), 3)
}

func TestFillSphere(t *testing.T) {
	g := newGrid(t, 3, 1)
	g.FillSphere(r3.Vec{}, 1, 7, false)

	inside := 0
	for _, d := range g.Densities() {
		if d == 7 {
			inside++
		}
	}
	assert.Equal(t, 7, inside)
	assert.False(t, g.Obstacle(13), "FillSphere does not reclassify")

	g.FillSphere(r3.Vec{}, 1, 3, true)
	assert.Equal(t, 3.0, g.Density(0))
	assert.Equal(t, 7.0, g.Density(13))
}

func TestFeatures(t *testing.T) {
	g := newGrid(t, 2, 1)

	assert.ErrorIs(t, g.SetFeature("", make([]float64, 8)), tilegrid.ErrEmptyFeatureName)
	assert.ErrorIs(t, g.SetFeature("f", make([]float64, 3)), tilegrid.ErrDataSize)
	assert.ErrorIs(t, g.SetTileFeature("f", 8, 1), tilegrid.ErrIndexOutOfRange)
	assert.ErrorIs(t, g.SetTileFeature("", 0, 1), tilegrid.ErrEmptyFeatureName)

	require.NoError(t, g.SetTileFeature("f", 3, 2.5))
	f, ok := g.Feature("f")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 2.5, 0, 0, 0, 0}, f)

	src := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, g.SetFeature("g", src))
	src[0] = 100
	got, _ := g.Feature("g")
	assert.Equal(t, 1.0, got[0], "SetFeature copies its input")
}

func TestFreeComponents(t *testing.T) {
	h, err := header.NewHeader(1, 1, header.WithDimensions(3, 3, 3), header.WithNeighborRadius(1))
	require.NoError(t, err)

	wall, err := builder.BuildVolume(h, nil, builder.Plane(builder.AxisZ, 1, 1))
	require.NoError(t, err)
	g, err := tilegrid.New(h)
	require.NoError(t, err)
	require.NoError(t, g.SetData(wall, -1, true, tilegrid.DefaultObstaclePenalty))

	comps := g.FreeComponents()
	require.Len(t, comps, 2)
	assert.Len(t, comps[0], 9)
	assert.Len(t, comps[1], 9)
	assert.Equal(t, 0, comps[0][0])
	assert.Nil(t, g.ComponentOf(h.Index(0, 0, 1)))

	gap, err := builder.BuildVolume(h, nil, builder.Plane(builder.AxisZ, 1, 1, builder.Voxel{X: 1, Y: 1, Z: 1}))
	require.NoError(t, err)
	require.NoError(t, g.SetData(gap, -1, true, tilegrid.DefaultObstaclePenalty))

	comps = g.FreeComponents()
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], 19)
	assert.Len(t, g.ComponentOf(26), 19)
	assert.Nil(t, g.ComponentOf(-1))
}
