// Package mesh holds the per-chunk triangle buffers and the bookkeeping that
// lets a single block's geometry be removed without rebuilding the chunk.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the packed size of a Vertex: pos.xyz, normal.xyz, uv.
const FloatsPerVertex = 8

// ErrInvariant is wrapped by every bookkeeping violation.
var ErrInvariant = errors.New("mesh invariant violated")

// Vertex is one corner of a face.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// entry is what one block contributed to the buffer.
type entry struct {
	indices  []uint32 // index values, in the order they appear in the index list
	vertices []uint32 // unique vertex slots owned, ascending
}

// Buffer is a vertex list and triangle index list for one material class of a
// chunk. The index list is always the concatenation, in roster order, of the
// index lists of the blocks that contributed to it.
type Buffer struct {
	vertices []Vertex
	indices  []uint32
	entries  map[int]*entry
	roster   []int
}

func NewBuffer() *Buffer {
	return &Buffer{entries: make(map[int]*entry)}
}

// Reset drops all geometry.
func (b *Buffer) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.roster = b.roster[:0]
	clear(b.entries)
}

func (b *Buffer) VertexCount() int { return len(b.vertices) }
func (b *Buffer) IndexCount() int  { return len(b.indices) }

// Faces returns the number of quads in the buffer.
func (b *Buffer) Faces() int { return len(b.vertices) / 4 }

// Len returns the number of blocks with geometry in the buffer.
func (b *Buffer) Len() int { return len(b.roster) }

// Has reports whether the block at offset owns geometry here.
func (b *Buffer) Has(offset int) bool {
	_, ok := b.entries[offset]
	return ok
}

// Append registers the geometry of one block. Indices in local are relative
// to verts and get rebased onto the end of the vertex list. A block with no
// vertices is not registered.
func (b *Buffer) Append(offset int, verts []Vertex, local []uint32) error {
	if len(verts) == 0 {
		return nil
	}
	if _, ok := b.entries[offset]; ok {
		return fmt.Errorf("%w: block %d appended twice", ErrInvariant, offset)
	}

	base := uint32(len(b.vertices))
	e := &entry{
		indices:  make([]uint32, len(local)),
		vertices: make([]uint32, len(verts)),
	}
	for i, idx := range local {
		if int(idx) >= len(verts) {
			return fmt.Errorf("%w: block %d index %d out of %d vertices", ErrInvariant, offset, idx, len(verts))
		}
		e.indices[i] = idx + base
	}
	for i := range verts {
		e.vertices[i] = base + uint32(i)
	}

	b.vertices = append(b.vertices, verts...)
	b.indices = append(b.indices, e.indices...)
	b.entries[offset] = e
	b.roster = append(b.roster, offset)
	return nil
}

// Destroy removes the geometry of the block at offset and returns the number
// of vertices removed. Unknown offsets are a no-op.
func (b *Buffer) Destroy(offset int) int {
	e, ok := b.entries[offset]
	if !ok {
		return 0
	}

	// Unique vertex slots owned or referenced by the block, ascending.
	removed := append(slices.Clone(e.vertices), e.indices...)
	slices.Sort(removed)
	removed = slices.Compact(removed)

	b.vertices = removeSlots(b.vertices, removed)

	indices := b.indices[:0]
	for _, off := range b.roster {
		if off == offset {
			continue
		}
		other := b.entries[off]
		for j, idx := range other.indices {
			other.indices[j] = idx - shiftBelow(removed, idx)
		}
		for j, v := range other.vertices {
			other.vertices[j] = v - shiftBelow(removed, v)
		}
		indices = append(indices, other.indices...)
	}
	b.indices = indices

	delete(b.entries, offset)
	if i := slices.Index(b.roster, offset); i >= 0 {
		b.roster = slices.Delete(b.roster, i, i+1)
	}
	return len(removed)
}

// removeSlots drops the ascending slots from vs in one compaction pass.
func removeSlots(vs []Vertex, slots []uint32) []Vertex {
	if len(slots) == 0 || int(slots[0]) >= len(vs) {
		return vs
	}
	out := vs[:slots[0]]
	next := 1
	for i := int(slots[0]) + 1; i < len(vs); i++ {
		if next < len(slots) && uint32(i) == slots[next] {
			next++
			continue
		}
		out = append(out, vs[i])
	}
	return out
}

// shiftBelow counts removed slots strictly below idx.
func shiftBelow(removed []uint32, idx uint32) uint32 {
	n, _ := slices.BinarySearch(removed, idx)
	return uint32(n)
}

// Offsets returns the block offsets in roster order.
func (b *Buffer) Offsets() []int {
	return slices.Clone(b.roster)
}

// BlockIndices returns a copy of the index values owned by the block at offset.
func (b *Buffer) BlockIndices(offset int) ([]uint32, bool) {
	e, ok := b.entries[offset]
	if !ok {
		return nil, false
	}
	return slices.Clone(e.indices), true
}

// Vertices returns a copy of the vertex list.
func (b *Buffer) Vertices() []Vertex {
	return slices.Clone(b.vertices)
}

// Indices returns a copy of the index list.
func (b *Buffer) Indices() []uint32 {
	return slices.Clone(b.indices)
}

// Validate checks that the block map partitions the index list exactly, that
// every index references a live vertex and that every vertex is owned by
// exactly one block.
func (b *Buffer) Validate() error {
	if len(b.roster) != len(b.entries) {
		return fmt.Errorf("%w: roster has %d blocks, map has %d", ErrInvariant, len(b.roster), len(b.entries))
	}
	if len(b.vertices)%4 != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of faces", ErrInvariant, len(b.vertices))
	}
	owner := make([]int, len(b.vertices))
	for i := range owner {
		owner[i] = -1
	}
	pos := 0
	for _, off := range b.roster {
		e, ok := b.entries[off]
		if !ok {
			return fmt.Errorf("%w: roster block %d missing from map", ErrInvariant, off)
		}
		for _, v := range e.vertices {
			if int(v) >= len(b.vertices) {
				return fmt.Errorf("%w: block %d owns vertex %d of %d", ErrInvariant, off, v, len(b.vertices))
			}
			if owner[v] != -1 {
				return fmt.Errorf("%w: vertex %d owned by blocks %d and %d", ErrInvariant, v, owner[v], off)
			}
			owner[v] = off
		}
		for _, idx := range e.indices {
			if pos >= len(b.indices) || b.indices[pos] != idx {
				return fmt.Errorf("%w: block %d does not match index list at %d", ErrInvariant, off, pos)
			}
			if int(idx) >= len(b.vertices) {
				return fmt.Errorf("%w: index %d out of %d vertices", ErrInvariant, idx, len(b.vertices))
			}
			if owner[idx] != off {
				return fmt.Errorf("%w: block %d references vertex %d it does not own", ErrInvariant, off, idx)
			}
			pos++
		}
	}
	if pos != len(b.indices) {
		return fmt.Errorf("%w: %d indices not covered by any block", ErrInvariant, len(b.indices)-pos)
	}
	for v, off := range owner {
		if off == -1 {
			return fmt.Errorf("%w: vertex %d has no owner", ErrInvariant, v)
		}
	}
	return nil
}
