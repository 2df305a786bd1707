package sim

import (
	"fmt"
	"sync/atomic"
)

// GridCell is the derived per-cell state written by the grid update stage
// and read by G2P. Never written concurrently: each cell has exactly one
// owner task in the grid update.
type GridCell struct {
	VX, VY, VZ float32
	Mass       float32
}

// Grid is the fixed background lattice. The four atomic accumulators hold
// fixed-point momentum and mass; they are only meaningful between the clear
// stage and the grid update of the same frame.
type Grid struct {
	W, H, D   int
	CellCount int

	MomX []atomic.Int64
	MomY []atomic.Int64
	MomZ []atomic.Int64
	Mass []atomic.Int64

	// Cells is the derived float buffer, valid from the grid update until
	// the next clear.
	Cells []GridCell

	// sizef caches the lattice dimensions as a float vector for the
	// position <-> cell-space mapping.
	sizef Vec3
}

// NewGrid allocates a W x H x D lattice. Each axis needs at least one
// interior cell besides the two boundary layers the no-flux condition and
// the 3x3x3 stencil claim.
func NewGrid(w, h, d int) (*Grid, error) {
	if w < 4 || h < 4 || d < 4 {
		return nil, fmt.Errorf("grid: size %dx%dx%d below minimum 4x4x4", w, h, d)
	}
	n := w * h * d
	return &Grid{
		W:         w,
		H:         h,
		D:         d,
		CellCount: n,
		MomX:      make([]atomic.Int64, n),
		MomY:      make([]atomic.Int64, n),
		MomZ:      make([]atomic.Int64, n),
		Mass:      make([]atomic.Int64, n),
		Cells:     make([]GridCell, n),
		sizef:     Vec3{float32(w), float32(h), float32(d)},
	}, nil
}

// Index maps lattice coordinates to the flat cell index.
func (g *Grid) Index(x, y, z int) int {
	return (z*g.H+y)*g.W + x
}

// Coords inverts Index.
func (g *Grid) Coords(i int) (x, y, z int) {
	x = i % g.W
	i /= g.W
	y = i % g.H
	z = i / g.H
	return
}

// clearRange atomically zeroes the accumulators for cells in [start, end).
func (g *Grid) clearRange(start, end int) {
	for i := start; i < end; i++ {
		g.MomX[i].Store(0)
		g.MomY[i].Store(0)
		g.MomZ[i].Store(0)
		g.Mass[i].Store(0)
	}
}

// TotalMass decodes and sums the mass accumulators. Diagnostic; only valid
// between P2G and the next clear.
func (g *Grid) TotalMass() float64 {
	var sum float64
	for i := range g.Mass {
		sum += float64(DecodeFixed(g.Mass[i].Load()))
	}
	return sum
}
