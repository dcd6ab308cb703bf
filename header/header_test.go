package header_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pathmap/header"
)

func TestNewHeader_Errors(t *testing.T) {
	cases := []struct {
		name          string
		maxPathLength float64
		spacing       float64
	}{
		{"ZeroSpacing", 10, 0},
		{"NegativeSpacing", 10, -1},
		{"ZeroLength", 0, 1},
		{"NegativeLength", -3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := header.NewHeader(tc.maxPathLength, tc.spacing)
			if !errors.Is(err, header.ErrInvalidConfiguration) {
				t.Errorf("NewHeader(%v, %v) error = %v; want ErrInvalidConfiguration", tc.maxPathLength, tc.spacing, err)
			}
		})
	}
}

func TestNewHeader_Dimensions(t *testing.T) {
	h, err := header.NewHeader(10, 1)
	require.NoError(t, err)
	assert.Equal(t, 21, h.NX)
	assert.Equal(t, 21, h.NY)
	assert.Equal(t, 21, h.NZ)
	assert.Equal(t, header.DefaultNeighborRadius, h.NeighborRadius)
	assert.Equal(t, 2, h.NeighborBoxSize())

	// the path origin sits on the centre voxel
	idx, ok := h.VoxelAt(h.PathOrigin)
	require.True(t, ok)
	x, y, z := h.Coordinate(idx)
	assert.Equal(t, [3]int{10, 10, 10}, [3]int{x, y, z})

	h, err = header.NewHeader(2.5, 0.5, header.WithDimensions(4, 5, 6), header.WithNeighborRadius(1.5))
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 5, 6}, [3]int{h.NX, h.NY, h.NZ})
	assert.Equal(t, 120, h.Voxels())
	assert.InDelta(t, 3.0, h.EdgeLength(), 1e-12)
	assert.Equal(t, 2, h.NeighborBoxSize())
}

func TestWithNeighborRadius_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { header.WithNeighborRadius(-1) })
	assert.Panics(t, func() { header.WithDimensions(0, 1, 1) })
}

func TestIndexCoordinateRoundTrip(t *testing.T) {
	h, err := header.NewHeader(1, 1, header.WithDimensions(3, 4, 5))
	require.NoError(t, err)
	for idx := 0; idx < h.Voxels(); idx++ {
		x, y, z := h.Coordinate(idx)
		require.True(t, h.InBounds(x, y, z))
		require.Equal(t, idx, h.Index(x, y, z))
	}
	sz, sy := h.Strides()
	assert.Equal(t, 12, sz)
	assert.Equal(t, 3, sy)
	assert.False(t, h.InBounds(3, 0, 0))
	assert.False(t, h.InBounds(0, -1, 0))
}

func TestSetPathOrigin(t *testing.T) {
	h, err := header.NewHeader(2, 0.5)
	require.NoError(t, err)
	p := r3.Vec{X: 10, Y: -4, Z: 1}
	h.SetPathOrigin(p)

	idx, ok := h.VoxelAt(p)
	require.True(t, ok)
	got := h.Position(idx)
	assert.InDelta(t, p.X, got.X, 1e-12)
	assert.InDelta(t, p.Y, got.Y, 1e-12)
	assert.InDelta(t, p.Z, got.Z, 1e-12)

	_, ok = h.VoxelAt(r3.Vec{X: 100})
	assert.False(t, ok)
}

func TestSetOrigin(t *testing.T) {
	h, err := header.NewHeader(1, 1, header.WithDimensions(3, 3, 3))
	require.NoError(t, err)
	po := h.PathOrigin
	h.SetOrigin(r3.Vec{X: 5, Y: -1})

	assert.Equal(t, r3.Vec{X: 5, Y: -1}, h.Position(0))
	assert.Equal(t, po, h.PathOrigin, "path origin untouched")
	idx, ok := h.VoxelAt(r3.Vec{X: 6, Y: 0, Z: 2})
	require.True(t, ok)
	assert.Equal(t, h.Index(1, 1, 2), idx)
	_, ok = h.VoxelAt(r3.Vec{X: 4})
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	h, err := header.NewHeader(1, 1)
	require.NoError(t, err)
	h.NeighborRadius = -0.5
	assert.ErrorIs(t, h.Validate(), header.ErrInvalidConfiguration)

	h.NeighborRadius = 1
	h.NZ = 0
	assert.ErrorIs(t, h.Validate(), header.ErrInvalidConfiguration)

	c := h.Clone()
	c.NZ = 3
	assert.Equal(t, 0, h.NZ)
}
