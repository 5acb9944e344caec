package world

import "fmt"

// Dimensions is the size of a chunk in cells.
type Dimensions struct {
	Width  int // X
	Depth  int // Z
	Height int // Y
}

// Volume returns the number of cells in a chunk.
func (d Dimensions) Volume() int {
	return d.Width * d.Depth * d.Height
}

// Contains reports whether local coordinates lie inside the chunk.
func (d Dimensions) Contains(x, y, z int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height && z >= 0 && z < d.Depth
}

// Index flattens local coordinates. Columns are contiguous along Y:
// x*Depth*Height + z*Height + y. The caller must check Contains first.
func (d Dimensions) Index(x, y, z int) int {
	return x*d.Depth*d.Height + z*d.Height + y
}

// Coords is the inverse of Index.
func (d Dimensions) Coords(i int) (x, y, z int) {
	x = i / (d.Depth * d.Height)
	rem := i % (d.Depth * d.Height)
	z = rem / d.Height
	y = rem % d.Height
	return x, y, z
}

func (d Dimensions) validate() error {
	if d.Width <= 0 || d.Depth <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid chunk dimensions %dx%dx%d", d.Width, d.Depth, d.Height)
	}
	return nil
}

// VoxelGrid is the dense block storage of one chunk.
type VoxelGrid struct {
	dims   Dimensions
	blocks []Block
}

// NewVoxelGrid returns a grid filled with air.
func NewVoxelGrid(dims Dimensions) *VoxelGrid {
	return &VoxelGrid{
		dims:   dims,
		blocks: make([]Block, dims.Volume()),
	}
}

func (g *VoxelGrid) Dimensions() Dimensions {
	return g.dims
}

// At returns the block at local coordinates, or air when out of bounds.
func (g *VoxelGrid) At(x, y, z int) Block {
	if !g.dims.Contains(x, y, z) {
		return Air
	}
	return g.blocks[g.dims.Index(x, y, z)]
}

// Set stores b at local coordinates and returns the previous block.
// Out of bounds writes are ignored and report ok == false.
func (g *VoxelGrid) Set(x, y, z int, b Block) (old Block, ok bool) {
	if !g.dims.Contains(x, y, z) {
		return Air, false
	}
	i := g.dims.Index(x, y, z)
	old = g.blocks[i]
	g.blocks[i] = b
	return old, true
}

// AtIndex returns the block at a flat offset, or air when out of range.
func (g *VoxelGrid) AtIndex(i int) Block {
	if i < 0 || i >= len(g.blocks) {
		return Air
	}
	return g.blocks[i]
}

// Fill sets every cell of the column (x,z) in [y0,y1) to b.
func (g *VoxelGrid) Fill(x, z, y0, y1 int, b Block) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > g.dims.Height {
		y1 = g.dims.Height
	}
	if y0 >= y1 || !g.dims.Contains(x, y0, z) {
		return
	}
	base := g.dims.Index(x, 0, z)
	for y := y0; y < y1; y++ {
		g.blocks[base+y] = b
	}
}

// Count returns how many cells satisfy pred.
func (g *VoxelGrid) Count(pred func(Block) bool) int {
	n := 0
	for _, b := range g.blocks {
		if pred(b) {
			n++
		}
	}
	return n
}
