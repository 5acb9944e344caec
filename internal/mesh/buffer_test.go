package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad returns one face whose positions are tagged with id so vertices can be
// traced through compaction.
func quad(id float32) ([]Vertex, []uint32) {
	vs := make([]Vertex, 4)
	for i := range vs {
		vs[i].Position = mgl32.Vec3{id, float32(i), 0}
	}
	return vs, []uint32{0, 3, 2, 0, 2, 1}
}

func faces(id float32, n int) ([]Vertex, []uint32) {
	var (
		vs  []Vertex
		idx []uint32
	)
	for f := 0; f < n; f++ {
		qv, qi := quad(id)
		base := uint32(len(vs))
		vs = append(vs, qv...)
		for _, i := range qi {
			idx = append(idx, base+i)
		}
	}
	return vs, idx
}

func appendFaces(b *Buffer, offset int, id float32, n int) error {
	vs, idx := faces(id, n)
	return b.Append(offset, vs, idx)
}

func TestAppendRebasesIndices(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 7, 1, 1))
	require.NoError(t, appendFaces(b, 3, 2, 2))

	assert.Equal(t, 12, b.VertexCount())
	assert.Equal(t, 18, b.IndexCount())
	assert.Equal(t, 3, b.Faces())
	assert.Equal(t, []int{7, 3}, b.Offsets())

	idx, ok := b.BlockIndices(3)
	require.True(t, ok)
	for _, i := range idx {
		assert.GreaterOrEqual(t, i, uint32(4))
	}
	require.NoError(t, b.Validate())
}

func TestAppendRejectsDuplicatesAndBadIndices(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 1, 1, 1))
	assert.ErrorIs(t, appendFaces(b, 1, 1, 1), ErrInvariant)

	vs, _ := quad(2)
	assert.ErrorIs(t, b.Append(2, vs, []uint32{0, 1, 4}), ErrInvariant)
	assert.False(t, b.Has(2))
}

func TestAppendEmptyIsNotRegistered(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Append(5, nil, nil))
	assert.False(t, b.Has(5))
	assert.Zero(t, b.Len())
}

func TestDestroyUnknownIsNoop(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 1, 1, 1))
	assert.Zero(t, b.Destroy(99))
	assert.Equal(t, 4, b.VertexCount())
}

func TestDestroyMiddleBlockCompacts(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 10, 1, 1))
	require.NoError(t, appendFaces(b, 20, 2, 3))
	require.NoError(t, appendFaces(b, 30, 3, 2))

	assert.Equal(t, 12, b.Destroy(20))
	require.NoError(t, b.Validate())
	assert.Equal(t, 12, b.VertexCount())
	assert.Equal(t, 18, b.IndexCount())
	assert.Equal(t, []int{10, 30}, b.Offsets())
	assert.False(t, b.Has(20))

	// Every surviving triangle still points at its owner's vertices.
	tris := b.Snapshot().Triangles()
	require.Len(t, tris, 6)
	for i, tri := range tris {
		want := float32(1)
		if i >= 2 {
			want = 3
		}
		for _, v := range tri {
			assert.Equal(t, want, v.Position.X())
		}
	}
}

func TestDestroyEverything(t *testing.T) {
	b := NewBuffer()
	for off := 0; off < 5; off++ {
		require.NoError(t, appendFaces(b, off, float32(off), off%3+1))
	}
	for _, off := range []int{2, 0, 4, 1, 3} {
		assert.Positive(t, b.Destroy(off))
		require.NoError(t, b.Validate())
	}
	assert.Zero(t, b.VertexCount())
	assert.Zero(t, b.IndexCount())
	assert.Zero(t, b.Len())
}

func TestRebuildAppendsAtEnd(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 1, 1, 1))
	require.NoError(t, appendFaces(b, 2, 2, 1))

	b.Destroy(1)
	require.NoError(t, appendFaces(b, 1, 9, 2))
	require.NoError(t, b.Validate())
	assert.Equal(t, []int{2, 1}, b.Offsets())

	idx, _ := b.BlockIndices(1)
	for _, i := range idx {
		assert.GreaterOrEqual(t, i, uint32(4))
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 1, 1, 1))
	require.NoError(t, appendFaces(b, 2, 2, 1))

	b.indices[0] = 5 // vertex owned by block 2
	assert.ErrorIs(t, b.Validate(), ErrInvariant)

	b.indices[0] = 0
	require.NoError(t, b.Validate())

	b.indices = b.indices[:len(b.indices)-1]
	assert.ErrorIs(t, b.Validate(), ErrInvariant)
}

func TestResetClearsEverything(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, appendFaces(b, 1, 1, 2))
	b.Reset()
	assert.Zero(t, b.VertexCount())
	assert.Zero(t, b.Len())
	assert.False(t, b.Has(1))
	require.NoError(t, b.Validate())
}

func TestPackLayout(t *testing.T) {
	vs := []Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.25, 0.75},
	}}
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.25, 0.75}, Pack(vs))
}

func BenchmarkDestroyFirstOfMany(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		buf := NewBuffer()
		for off := 0; off < 2048; off++ {
			_ = appendFaces(buf, off, float32(off), 3)
		}
		b.StartTimer()
		buf.Destroy(0)
	}
}
