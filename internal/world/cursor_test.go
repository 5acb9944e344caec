package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorOutsideWorld(t *testing.T) {
	w, err := New(testConfig(), nil)
	require.NoError(t, err)

	c := w.Cursor(-1, 0, 0)
	assert.False(t, c.InWorld())
	assert.Nil(t, c.Chunk())
	assert.True(t, c.Block().IsNone())
	assert.Equal(t, -1, c.Offset())

	_, err = c.Replace(NewBlock(BlockTypeRock))
	assert.ErrorIs(t, err, ErrOutOfWorld)

	// Stepping back in resolves a chunk again.
	in := c.Right()
	assert.True(t, in.InWorld())
	x, y, z := in.Pos()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{x, y, z})
}

func TestCursorMovesAcrossChunks(t *testing.T) {
	w, err := New(testConfig(), nil)
	require.NoError(t, err)

	c := w.Cursor(3, 2, 3)
	assert.Equal(t, ChunkCoord{}, c.Chunk().Coord())

	r := c.Right()
	assert.Equal(t, ChunkCoord{X: 1}, r.Chunk().Coord())
	lx, ly, lz := r.Local()
	assert.Equal(t, [3]int{0, 2, 3}, [3]int{lx, ly, lz})

	f := c.Forward()
	assert.Equal(t, ChunkCoord{Z: 1}, f.Chunk().Coord())

	back := c.Right().Left().Up().Down().Forward().Backward()
	assert.Equal(t, c.Chunk(), back.Chunk())
	bx, by, bz := back.Pos()
	assert.Equal(t, [3]int{3, 2, 3}, [3]int{bx, by, bz})
}

func TestCursorReplaceIsRawWrite(t *testing.T) {
	m := &recordingMesher{}
	w, err := New(testConfig(), nil, WithMesher(m))
	require.NoError(t, err)

	dirt := NewBlock(BlockTypeDirt)
	old, err := w.Cursor(2, 3, 4).Replace(dirt)
	require.NoError(t, err)
	assert.Equal(t, Air, old)
	assert.Equal(t, dirt, w.Block(2, 3, 4))
	assert.Empty(t, m.patches)

	// Cursors cache what they resolved; MoveTo re-reads.
	c := w.Cursor(0, 0, 0)
	_, err = c.Replace(dirt)
	require.NoError(t, err)
	assert.True(t, c.Block().IsNone())
	assert.Equal(t, dirt, c.MoveTo(0, 0, 0).Block())
}

func TestCursorNeighbors(t *testing.T) {
	w, err := New(testConfig(), nil)
	require.NoError(t, err)

	c := w.Cursor(1, 1, 1)
	for i, n := range c.Neighbors() {
		dx, dy, dz := AllDirections[i].Offset()
		x, y, z := n.Pos()
		assert.Equal(t, [3]int{1 + dx, 1 + dy, 1 + dz}, [3]int{x, y, z})
	}
}

func TestCursorBoundingBox(t *testing.T) {
	w, err := New(testConfig(), nil)
	require.NoError(t, err)

	box := w.Cursor(2, 5, -3).BoundingBox()
	assert.Equal(t, AABB{Min: mgl32.Vec3{2, 5, -3}, Max: mgl32.Vec3{3, 6, -2}}, box)
	assert.Equal(t, mgl32.Vec3{2.5, 5.5, -2.5}, box.Center())
}
