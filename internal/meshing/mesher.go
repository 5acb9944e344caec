// Package meshing turns chunk voxels into per-block face geometry and keeps
// that geometry in sync with single block edits.
package meshing

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/mesh"
	"worldcraft/internal/profiling"
	"worldcraft/internal/world"
)

// Mesher implements world.Mesher with per-block face culling.
type Mesher struct {
	atlas   world.Atlas
	workers int
	verify  bool
}

// Option customises a Mesher.
type Option func(*Mesher)

// WithAtlas sets the texture atlas layout used for UVs.
func WithAtlas(a world.Atlas) Option {
	return func(m *Mesher) { m.atlas = a }
}

// WithWorkers sets the number of goroutines used by BuildAll.
func WithWorkers(n int) Option {
	return func(m *Mesher) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithVerify validates touched buffers after every patch and rebuilds a
// chunk whose bookkeeping went wrong.
func WithVerify(v bool) Option {
	return func(m *Mesher) { m.verify = v }
}

func New(opts ...Option) *Mesher {
	m := &Mesher{
		atlas:   world.DefaultAtlas,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ world.Mesher = (*Mesher)(nil)

// Build clears both buffers of c and emits every visible face of its blocks.
// It returns the number of vertices emitted.
func (m *Mesher) Build(w *world.World, c *world.Chunk) int {
	defer profiling.Track("meshing.Build")()

	dims := c.Grid().Dimensions()
	ox, oy, oz := c.Origin()
	total := 0
	c.Edit(func(solid, liquid *mesh.Buffer) {
		solid.Reset()
		liquid.Reset()
		for x := 0; x < dims.Width; x++ {
			for z := 0; z < dims.Depth; z++ {
				for y := 0; y < dims.Height; y++ {
					if c.Grid().At(x, y, z).IsNone() {
						continue
					}
					cur := w.Cursor(ox+x, oy+y, oz+z)
					total += m.appendBlock(solid, liquid, cur)
				}
			}
		}
	})
	c.MarkDirty()

	profiling.ChunkBuilds.Inc()
	profiling.VerticesEmitted.Add(float64(total))
	return total
}

// BlockGeometry returns the faces the block under cur would emit in its
// current surroundings, with indices relative to the returned vertices.
func (m *Mesher) BlockGeometry(cur world.Cursor) ([]mesh.Vertex, []uint32) {
	b := cur.Block()
	if b.IsNone() {
		return nil, nil
	}
	x, y, z := cur.Pos()
	centre := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
	uvs := faceUVs(m.atlas.UV(b.Type))

	var (
		verts []mesh.Vertex
		idx   []uint32
	)
	for i, n := range cur.Neighbors() {
		if !DrawFace(b, n.Block()) {
			continue
		}
		verts, idx = appendFace(verts, idx, world.AllDirections[i], centre, uvs)
	}
	return verts, idx
}

// appendBlock emits the block under cur into the buffer matching its class.
func (m *Mesher) appendBlock(solid, liquid *mesh.Buffer, cur world.Cursor) int {
	verts, idx := m.BlockGeometry(cur)
	if len(verts) == 0 {
		return 0
	}
	buf := solid
	if cur.Block().IsLiquid() {
		buf = liquid
	}
	if err := buf.Append(cur.Offset(), verts, idx); err != nil {
		// Offsets are unique per grid and the buffers are cleared or
		// destroyed first, so this is a bookkeeping fault.
		panic(fmt.Sprintf("meshing: %v", err))
	}
	return len(verts)
}

// rebuildBlock replaces the geometry of the block under cur in its owning
// chunk and returns the vertex delta.
func (m *Mesher) rebuildBlock(cur world.Cursor) int {
	c := cur.Chunk()
	if c == nil {
		return 0
	}
	off := cur.Offset()
	delta := 0
	c.Edit(func(solid, liquid *mesh.Buffer) {
		removed := solid.Destroy(off) + liquid.Destroy(off)
		profiling.VerticesDestroyed.Add(float64(removed))
		added := m.appendBlock(solid, liquid, cur)
		profiling.VerticesEmitted.Add(float64(added))
		delta = added - removed
	})
	return delta
}

// destroyBlock removes the geometry of the block under cur from its owning chunk.
func (m *Mesher) destroyBlock(cur world.Cursor) int {
	c := cur.Chunk()
	if c == nil {
		return 0
	}
	off := cur.Offset()
	removed := 0
	c.Edit(func(solid, liquid *mesh.Buffer) {
		removed = solid.Destroy(off) + liquid.Destroy(off)
	})
	profiling.VerticesDestroyed.Add(float64(removed))
	return removed
}

// Patch updates the geometry around (x,y,z) after its block changed from old
// to the value now stored in the grid. Neighbours are patched in the chunk
// that owns them.
func (m *Mesher) Patch(w *world.World, c *world.Chunk, x, y, z int, old world.Block) world.PatchResult {
	defer profiling.Track("meshing.Patch")()

	cur := w.Cursor(x, y, z)
	now := cur.Block()
	res := world.PatchResult{Touched: []*world.Chunk{c}}

	var (
		kind      string
		neighbors bool
	)
	switch {
	case old == now:
		return res
	case old.IsNone():
		kind = "place"
		res.VertexDelta += m.rebuildBlock(cur)
		neighbors = true
	case now.IsNone():
		kind = "remove"
		res.VertexDelta -= m.destroyBlock(cur)
		neighbors = true
	default:
		kind = "swap"
		res.VertexDelta += m.rebuildBlock(cur)
		neighbors = old.Type.Class() != now.Type.Class()
	}
	profiling.Patches.WithLabelValues(kind).Inc()

	if neighbors {
		for _, n := range cur.Neighbors() {
			if !n.InWorld() || n.Block().IsNone() {
				continue
			}
			res.VertexDelta += m.rebuildBlock(n)
			res.Touched = appendChunk(res.Touched, n.Chunk())
		}
	}

	if mesh.DebugChecks || m.verify {
		for _, tc := range res.Touched {
			m.check(w, tc)
		}
	}
	return res
}

// check validates the buffers of c. A violation panics under the meshdebug
// build tag and triggers a full rebuild otherwise.
func (m *Mesher) check(w *world.World, c *world.Chunk) {
	var err error
	c.Buffers(func(solid, liquid *mesh.Buffer) {
		if err = solid.Validate(); err != nil {
			err = fmt.Errorf("solid buffer: %w", err)
			return
		}
		if err = liquid.Validate(); err != nil {
			err = fmt.Errorf("liquid buffer: %w", err)
		}
	})
	if err == nil {
		return
	}
	if mesh.DebugChecks {
		panic(fmt.Sprintf("meshing: chunk %v: %v", c.Coord(), err))
	}
	profiling.VerifyFailures.Inc()
	log.Printf("meshing: chunk %v failed validation, rebuilding: %v", c.Coord(), err)
	m.Build(w, c)
}

// BuildAll builds every chunk of w on the worker pool. It stops early when
// ctx is cancelled.
func (m *Mesher) BuildAll(ctx context.Context, w *world.World) error {
	defer profiling.Track("meshing.BuildAll")()

	if err := ctx.Err(); err != nil {
		return err
	}
	chunks := w.Chunks()
	if len(chunks) == 0 {
		return nil
	}
	pool := startBuildPool(ctx, m, m.workers, len(chunks))
	submitted := 0
	for _, c := range chunks {
		if !pool.submit(buildJob{world: w, chunk: c}) {
			break
		}
		submitted++
	}
	pool.close()

	var vertices int
	for i := 0; i < submitted; i++ {
		r := <-pool.results
		if r.err != nil {
			return fmt.Errorf("build chunk %v: %w", r.coord, r.err)
		}
		vertices += r.vertices
	}
	if submitted < len(chunks) {
		return ctx.Err()
	}
	log.Printf("meshing: built %d chunks with %d workers, %d vertices", submitted, m.workers, vertices)
	return nil
}

func appendChunk(list []*world.Chunk, c *world.Chunk) []*world.Chunk {
	for _, have := range list {
		if have == c {
			return list
		}
	}
	return append(list, c)
}
