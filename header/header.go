package header

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Header holds the geometry of a path map. Voxels are addressed row-major with
// x fastest: index = x + y*NX + z*NX*NY. Origin is the world position of the
// centre of voxel (0,0,0).
type Header struct {
	Spacing           float64
	NX, NY, NZ        int
	Origin            r3.Vec
	PathOrigin        r3.Vec
	MaxPathLength     float64
	NeighborRadius    float64
	ObstacleThreshold float64
}

// NewHeader sizes a cubic grid that holds every point within maxPathLength of
// the path origin: half = ceil(maxPathLength/spacing) voxels on each side of
// the centre voxel. The path origin starts at the world origin.
func NewHeader(maxPathLength, spacing float64, opts ...Option) (*Header, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("spacing %v must be positive: %w", spacing, ErrInvalidConfiguration)
	}
	if !(maxPathLength > 0) {
		return nil, fmt.Errorf("max path length %v must be positive: %w", maxPathLength, ErrInvalidConfiguration)
	}
	h := &Header{
		Spacing:           spacing,
		MaxPathLength:     maxPathLength,
		NeighborRadius:    DefaultNeighborRadius,
		ObstacleThreshold: DefaultObstacleThreshold,
	}
	h.UpdateMapDimensions(-1, -1, -1)
	for _, opt := range opts {
		opt(h)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	h.SetPathOrigin(r3.Vec{})

	return h, nil
}

// Validate checks the invariants every consumer of a header relies on.
func (h *Header) Validate() error {
	switch {
	case !(h.Spacing > 0) || math.IsInf(h.Spacing, 0):
		return fmt.Errorf("spacing %v: %w", h.Spacing, ErrInvalidConfiguration)
	case h.NX <= 0 || h.NY <= 0 || h.NZ <= 0:
		return fmt.Errorf("dimensions %dx%dx%d: %w", h.NX, h.NY, h.NZ, ErrInvalidConfiguration)
	case !(h.MaxPathLength > 0):
		return fmt.Errorf("max path length %v: %w", h.MaxPathLength, ErrInvalidConfiguration)
	case h.NeighborRadius < 0 || math.IsNaN(h.NeighborRadius) || math.IsInf(h.NeighborRadius, 0):
		return fmt.Errorf("neighbor radius %v: %w", h.NeighborRadius, ErrInvalidConfiguration)
	}
	return nil
}

// UpdateMapDimensions sets the voxel counts. Non-positive arguments fall back
// to the size implied by MaxPathLength and Spacing. The path origin keeps its
// position; the grid corner moves so that it stays centred.
func (h *Header) UpdateMapDimensions(nx, ny, nz int) {
	n := 2*int(math.Ceil(h.MaxPathLength/h.Spacing)) + 1
	if nx <= 0 {
		nx = n
	}
	if ny <= 0 {
		ny = n
	}
	if nz <= 0 {
		nz = n
	}
	h.NX, h.NY, h.NZ = nx, ny, nz
	h.SetPathOrigin(h.PathOrigin)
}

// SetPathOrigin centres the grid on p.
func (h *Header) SetPathOrigin(p r3.Vec) {
	h.PathOrigin = p
	h.Origin = r3.Vec{
		X: p.X - float64((h.NX-1)/2)*h.Spacing,
		Y: p.Y - float64((h.NY-1)/2)*h.Spacing,
		Z: p.Z - float64((h.NZ-1)/2)*h.Spacing,
	}
}

// SetOrigin moves the grid corner without touching the path origin.
func (h *Header) SetOrigin(o r3.Vec) { h.Origin = o }

// Voxels returns NX*NY*NZ.
func (h *Header) Voxels() int { return h.NX * h.NY * h.NZ }

// Strides returns the flat-index step along z and y; the x stride is 1.
func (h *Header) Strides() (strideZ, strideY int) { return h.NX * h.NY, h.NX }

// EdgeLength is the world length of the longest grid edge.
func (h *Header) EdgeLength() float64 {
	return float64(max(h.NX, h.NY, h.NZ)) * h.Spacing
}

// NeighborBoxSize is the half-width of the box enclosing the neighbor sphere.
func (h *Header) NeighborBoxSize() int { return int(math.Ceil(h.NeighborRadius)) }

// InBounds reports whether (x,y,z) lies inside the grid.
func (h *Header) InBounds(x, y, z int) bool {
	return x >= 0 && x < h.NX && y >= 0 && y < h.NY && z >= 0 && z < h.NZ
}

// Index maps grid coordinates to a flat index.
func (h *Header) Index(x, y, z int) int {
	return x + y*h.NX + z*h.NX*h.NY
}

// Coordinate converts a flat index back to grid coordinates.
func (h *Header) Coordinate(idx int) (x, y, z int) {
	nxy := h.NX * h.NY
	z = idx / nxy
	rem := idx - z*nxy
	y = rem / h.NX
	x = rem - y*h.NX
	return x, y, z
}

// Position returns the world position of the centre of voxel idx.
func (h *Header) Position(idx int) r3.Vec {
	x, y, z := h.Coordinate(idx)
	return r3.Add(h.Origin, r3.Scale(h.Spacing, r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}))
}

// VoxelAt returns the index of the voxel whose centre is nearest to p, and
// false when p falls outside the grid.
func (h *Header) VoxelAt(p r3.Vec) (int, bool) {
	d := r3.Scale(1/h.Spacing, r3.Sub(p, h.Origin))
	x, y, z := int(math.Round(d.X)), int(math.Round(d.Y)), int(math.Round(d.Z))
	if !h.InBounds(x, y, z) {
		return -1, false
	}
	return h.Index(x, y, z), true
}

// Clone returns an independent copy.
func (h *Header) Clone() *Header {
	c := *h
	return &c
}
