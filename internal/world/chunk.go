package world

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/mesh"
)

// ChunkCoord is the position of a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Intersects reports whether two boxes overlap (touching edges do not count).
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Chunk is a fixed-size sub-volume of the world: its voxels plus the solid
// and liquid geometry built from them.
type Chunk struct {
	coord  ChunkCoord
	grid   *VoxelGrid
	bounds AABB

	mu     sync.RWMutex
	solid  *mesh.Buffer
	liquid *mesh.Buffer

	dirty  bool
	inView bool
}

// NewChunk creates an empty chunk at the given chunk coordinates.
func NewChunk(coord ChunkCoord, dims Dimensions) *Chunk {
	min := mgl32.Vec3{
		float32(coord.X * dims.Width),
		float32(coord.Y * dims.Height),
		float32(coord.Z * dims.Depth),
	}
	max := mgl32.Vec3{
		float32((coord.X + 1) * dims.Width),
		float32((coord.Y + 1) * dims.Height),
		float32((coord.Z + 1) * dims.Depth),
	}
	return &Chunk{
		coord:  coord,
		grid:   NewVoxelGrid(dims),
		bounds: AABB{Min: min, Max: max},
		solid:  mesh.NewBuffer(),
		liquid: mesh.NewBuffer(),
		dirty:  true,
	}
}

func (c *Chunk) Coord() ChunkCoord { return c.coord }
func (c *Chunk) Grid() *VoxelGrid  { return c.grid }
func (c *Chunk) Bounds() AABB      { return c.bounds }

// Origin returns the world coordinates of local cell (0,0,0).
func (c *Chunk) Origin() (x, y, z int) {
	d := c.grid.dims
	return c.coord.X * d.Width, c.coord.Y * d.Height, c.coord.Z * d.Depth
}

// Owns reports whether the world cell belongs to this chunk.
func (c *Chunk) Owns(x, y, z int) bool {
	lx, ly, lz := c.Local(x, y, z)
	return c.grid.dims.Contains(lx, ly, lz)
}

// Local converts world coordinates to chunk-local ones.
func (c *Chunk) Local(x, y, z int) (lx, ly, lz int) {
	ox, oy, oz := c.Origin()
	return x - ox, y - oy, z - oz
}

// Offset returns the flat grid index of a world cell owned by the chunk.
func (c *Chunk) Offset(x, y, z int) int {
	lx, ly, lz := c.Local(x, y, z)
	return c.grid.dims.Index(lx, ly, lz)
}

// BlockAt returns the block at world coordinates, or air if not owned.
func (c *Chunk) BlockAt(x, y, z int) Block {
	lx, ly, lz := c.Local(x, y, z)
	return c.grid.At(lx, ly, lz)
}

// Edit gives exclusive access to the mesh buffers. The buffers must not be
// retained after fn returns.
func (c *Chunk) Edit(fn func(solid, liquid *mesh.Buffer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.solid, c.liquid)
}

// Buffers runs fn with shared read access to the mesh buffers.
func (c *Chunk) Buffers(fn func(solid, liquid *mesh.Buffer)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.solid, c.liquid)
}

// MeshSnapshot is a consistent copy of both buffers of a chunk.
type MeshSnapshot struct {
	Coord  ChunkCoord
	Solid  mesh.Snapshot
	Liquid mesh.Snapshot
}

// Snapshot copies both buffers. It never observes a patch in progress.
func (c *Chunk) Snapshot() MeshSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return MeshSnapshot{
		Coord:  c.coord,
		Solid:  c.solid.Snapshot(),
		Liquid: c.liquid.Snapshot(),
	}
}

// HasGeometry reports whether either buffer has faces.
func (c *Chunk) HasGeometry() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solid.VertexCount() > 0 || c.liquid.VertexCount() > 0
}

// IsDirty returns whether the buffers changed since the renderer last uploaded them.
func (c *Chunk) IsDirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

func (c *Chunk) MarkDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// SetClean marks the buffers as uploaded.
func (c *Chunk) SetClean() {
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}

// InView is the result of the last frustum test.
func (c *Chunk) InView() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inView
}

func (c *Chunk) setInView(v bool) {
	c.mu.Lock()
	c.inView = v
	c.mu.Unlock()
}
