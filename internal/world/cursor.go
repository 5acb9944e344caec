package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Cursor is a resolved world position: the cell, the chunk owning it and the
// block it held when resolved. Cursors are values; moving returns a new one.
// A cursor does not observe writes made after it was resolved.
type Cursor struct {
	world   *World
	x, y, z int
	chunk   *Chunk
	block   Block
}

// Cursor resolves the cell at world coordinates.
func (w *World) Cursor(x, y, z int) Cursor {
	c := Cursor{world: w, x: x, y: y, z: z, block: Air}
	if ch := w.ChunkAt(x, y, z); ch != nil {
		c.chunk = ch
		c.block = ch.BlockAt(x, y, z)
	}
	return c
}

// MoveTo resolves another absolute position in the same world.
func (c Cursor) MoveTo(x, y, z int) Cursor {
	return c.world.Cursor(x, y, z)
}

// Move steps one cell in direction d.
func (c Cursor) Move(d Direction) Cursor {
	dx, dy, dz := d.Offset()
	return c.world.Cursor(c.x+dx, c.y+dy, c.z+dz)
}

func (c Cursor) Up() Cursor       { return c.Move(DirUp) }
func (c Cursor) Down() Cursor     { return c.Move(DirDown) }
func (c Cursor) Left() Cursor     { return c.Move(DirLeft) }
func (c Cursor) Right() Cursor    { return c.Move(DirRight) }
func (c Cursor) Forward() Cursor  { return c.Move(DirForward) }
func (c Cursor) Backward() Cursor { return c.Move(DirBackward) }

// Neighbors returns the six adjacent cells in AllDirections order.
func (c Cursor) Neighbors() [6]Cursor {
	var out [6]Cursor
	for i, d := range AllDirections {
		out[i] = c.Move(d)
	}
	return out
}

// Pos returns the world coordinates of the cell.
func (c Cursor) Pos() (x, y, z int) {
	return c.x, c.y, c.z
}

// Block returns the block held by the cell; air outside the world.
func (c Cursor) Block() Block {
	return c.block
}

// Chunk returns the owning chunk, or nil outside the world.
func (c Cursor) Chunk() *Chunk {
	return c.chunk
}

// InWorld reports whether a chunk owns the cell.
func (c Cursor) InWorld() bool {
	return c.chunk != nil
}

// Local returns the coordinates inside the owning chunk.
func (c Cursor) Local() (x, y, z int) {
	if c.chunk == nil {
		return c.x, c.y, c.z
	}
	return c.chunk.Local(c.x, c.y, c.z)
}

// Offset returns the flat index in the owning chunk's grid, or -1.
func (c Cursor) Offset() int {
	if c.chunk == nil {
		return -1
	}
	return c.chunk.Offset(c.x, c.y, c.z)
}

// Replace writes b straight into the owning grid without touching geometry
// and returns the previous block. Use World.SetBlock to keep meshes in sync.
func (c Cursor) Replace(b Block) (Block, error) {
	if c.chunk == nil {
		return Air, fmt.Errorf("replace block (%d,%d,%d): %w", c.x, c.y, c.z, ErrOutOfWorld)
	}
	lx, ly, lz := c.Local()
	old, _ := c.chunk.grid.Set(lx, ly, lz, b)
	return old, nil
}

// BoundingBox is the unit cube occupied by the cell.
func (c Cursor) BoundingBox() AABB {
	min := mgl32.Vec3{float32(c.x), float32(c.y), float32(c.z)}
	return AABB{Min: min, Max: min.Add(mgl32.Vec3{1, 1, 1})}
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d,%d) %s", c.x, c.y, c.z, c.block)
}
