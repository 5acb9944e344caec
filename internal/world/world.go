package world

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"worldcraft/internal/mesh"
	"worldcraft/internal/profiling"
)

// ErrOutOfWorld is returned by writes that target a cell no chunk owns.
var ErrOutOfWorld = errors.New("position outside the world")

// Config describes the layout of a world.
type Config struct {
	Chunk    Dimensions
	ChunksX  int
	ChunksY  int
	ChunksZ  int
	SeaLevel int // cells above the terrain up to this height become water; negative disables
}

// HeightProvider returns the terrain surface height of a world column.
type HeightProvider interface {
	HeightAt(x, z int) int
}

// Frustum is the visibility test supplied by the camera.
type Frustum interface {
	Intersects(box AABB) bool
}

// Renderer receives the chunks that passed the last visibility test.
type Renderer interface {
	DrawChunk(c *Chunk)
}

// PatchResult describes what an incremental mesh update changed.
type PatchResult struct {
	VertexDelta int
	Touched     []*Chunk
}

// Mesher turns voxels into geometry. Implementations live outside this
// package; the world only drives them.
type Mesher interface {
	// Build rebuilds both buffers of c from scratch and returns the vertex count.
	Build(w *World, c *Chunk) int
	// BuildAll performs the initial build of every chunk.
	BuildAll(ctx context.Context, w *World) error
	// Patch updates geometry after the cell (x,y,z), owned by c, changed from old
	// to its current state.
	Patch(w *World, c *Chunk, x, y, z int, old Block) PatchResult
}

// Option customises a World.
type Option func(*World)

// WithMesher attaches the mesher used for the initial build and for edits.
func WithMesher(m Mesher) Option {
	return func(w *World) { w.mesher = m }
}

// WithChunkListener registers fn to be called after a chunk's buffers change.
func WithChunkListener(fn func(*Chunk)) Option {
	return func(w *World) { w.listeners = append(w.listeners, fn) }
}

// World owns the chunk grid. The chunk slice never changes after New.
type World struct {
	cfg     Config
	heights HeightProvider
	chunks  []*Chunk

	mesher    Mesher
	listeners []func(*Chunk)

	editMu sync.Mutex
}

// New lays out an empty world. Call Generate to fill it.
func New(cfg Config, heights HeightProvider, opts ...Option) (*World, error) {
	if err := cfg.Chunk.validate(); err != nil {
		return nil, err
	}
	if cfg.ChunksX <= 0 || cfg.ChunksY <= 0 || cfg.ChunksZ <= 0 {
		return nil, fmt.Errorf("invalid world size %dx%dx%d chunks", cfg.ChunksX, cfg.ChunksY, cfg.ChunksZ)
	}

	w := &World{
		cfg:     cfg,
		heights: heights,
		chunks:  make([]*Chunk, 0, cfg.ChunksX*cfg.ChunksY*cfg.ChunksZ),
	}
	for cx := 0; cx < cfg.ChunksX; cx++ {
		for cy := 0; cy < cfg.ChunksY; cy++ {
			for cz := 0; cz < cfg.ChunksZ; cz++ {
				w.chunks = append(w.chunks, NewChunk(ChunkCoord{X: cx, Y: cy, Z: cz}, cfg.Chunk))
			}
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) Config() Config         { return w.cfg }
func (w *World) Dimensions() Dimensions { return w.cfg.Chunk }

// Chunks returns every chunk in a stable order.
func (w *World) Chunks() []*Chunk {
	return w.chunks
}

// Extent returns the world size in cells along each axis.
func (w *World) Extent() (x, y, z int) {
	d := w.cfg.Chunk
	return w.cfg.ChunksX * d.Width, w.cfg.ChunksY * d.Height, w.cfg.ChunksZ * d.Depth
}

// Chunk returns the chunk at chunk coordinates, or nil.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	if coord.X < 0 || coord.X >= w.cfg.ChunksX ||
		coord.Y < 0 || coord.Y >= w.cfg.ChunksY ||
		coord.Z < 0 || coord.Z >= w.cfg.ChunksZ {
		return nil
	}
	return w.chunks[(coord.X*w.cfg.ChunksY+coord.Y)*w.cfg.ChunksZ+coord.Z]
}

// ChunkAt returns the chunk owning the world cell, or nil outside the world.
func (w *World) ChunkAt(x, y, z int) *Chunk {
	d := w.cfg.Chunk
	return w.Chunk(ChunkCoord{
		X: floorDiv(x, d.Width),
		Y: floorDiv(y, d.Height),
		Z: floorDiv(z, d.Depth),
	})
}

// Block returns the block at world coordinates; air outside the world.
func (w *World) Block(x, y, z int) Block {
	c := w.ChunkAt(x, y, z)
	if c == nil {
		return Air
	}
	return c.BlockAt(x, y, z)
}

// SetBlock writes b at world coordinates and patches the affected geometry.
func (w *World) SetBlock(x, y, z int, b Block) error {
	defer profiling.Track("world.SetBlock")()

	c := w.ChunkAt(x, y, z)
	if c == nil {
		return fmt.Errorf("set block (%d,%d,%d): %w", x, y, z, ErrOutOfWorld)
	}

	w.editMu.Lock()
	defer w.editMu.Unlock()

	lx, ly, lz := c.Local(x, y, z)
	old, _ := c.grid.Set(lx, ly, lz, b)
	if old == b {
		return nil
	}

	touched := []*Chunk{c}
	if w.mesher != nil {
		res := w.mesher.Patch(w, c, x, y, z, old)
		if len(res.Touched) > 0 {
			touched = res.Touched
		}
	}
	for _, tc := range touched {
		w.notify(tc)
	}
	return nil
}

// Rebuild discards and rebuilds the geometry of c.
func (w *World) Rebuild(c *Chunk) int {
	if w.mesher == nil {
		return 0
	}
	w.editMu.Lock()
	n := w.mesher.Build(w, c)
	w.editMu.Unlock()
	w.notify(c)
	return n
}

func (w *World) notify(c *Chunk) {
	c.MarkDirty()
	for _, fn := range w.listeners {
		fn(c)
	}
}

// Update runs the visibility test for every chunk that has geometry.
func (w *World) Update(f Frustum) {
	defer profiling.Track("world.Update")()
	for _, c := range w.chunks {
		if !c.HasGeometry() {
			c.setInView(false)
			continue
		}
		c.setInView(f.Intersects(c.Bounds()))
	}
}

// Draw hands every visible chunk to r and returns how many were drawn.
func (w *World) Draw(r Renderer) int {
	drawn := 0
	for _, c := range w.chunks {
		if !c.InView() {
			continue
		}
		r.DrawChunk(c)
		drawn++
	}
	return drawn
}

// Stats summarises the geometry held by the world.
type Stats struct {
	Chunks         int
	SolidVertices  int
	SolidIndices   int
	LiquidVertices int
	LiquidIndices  int
}

// Faces returns the total number of quads.
func (s Stats) Faces() int {
	return (s.SolidVertices + s.LiquidVertices) / 4
}

func (w *World) Stats() Stats {
	s := Stats{Chunks: len(w.chunks)}
	for _, c := range w.chunks {
		c.Buffers(func(solid, liquid *mesh.Buffer) {
			s.SolidVertices += solid.VertexCount()
			s.SolidIndices += solid.IndexCount()
			s.LiquidVertices += liquid.VertexCount()
			s.LiquidIndices += liquid.IndexCount()
		})
	}
	return s
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
