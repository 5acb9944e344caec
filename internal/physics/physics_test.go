package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldcraft/internal/world"
)

var (
	stone = world.NewBlock(world.BlockTypeRock)
	water = world.NewBlock(world.BlockTypeWater)
)

func emptyWorld(t testing.TB) *world.World {
	t.Helper()
	w, err := world.New(world.Config{
		Chunk:    world.Dimensions{Width: 8, Depth: 8, Height: 16},
		ChunksX:  2,
		ChunksY:  1,
		ChunksZ:  2,
		SeaLevel: -1,
	}, nil)
	require.NoError(t, err)
	return w
}

func TestRaycast(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(5, 0, 0, stone))

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	res := Raycast(start, dir, MinReachDistance, 10, w)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{5, 0, 0}, res.HitPosition)
	assert.Equal(t, [3]int{4, 0, 0}, res.AdjacentPosition)
	assert.InDelta(t, 4.5, res.Distance, 0.03)
	assert.Equal(t, stone, res.Block)

	// Too short to reach the block.
	assert.False(t, Raycast(start, dir, MinReachDistance, 4, w).Hit)
	// Wrong direction.
	assert.False(t, Raycast(start, mgl32.Vec3{0, 1, 0}, MinReachDistance, 10, w).Hit)
}

func TestRaycastDiagonal(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(2, 2, 2, stone))

	res := Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1}.Normalize(), MinReachDistance, 10, w)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{2, 2, 2}, res.HitPosition)
	assert.NotEqual(t, res.HitPosition, res.AdjacentPosition)
}

func TestRaycastSelectsLiquids(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(0, 3, 0, water))

	res := Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 1, 0}, MinReachDistance, 10, w)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{0, 3, 0}, res.HitPosition)
	assert.Equal(t, [3]int{0, 2, 0}, res.AdjacentPosition)
}

func TestCollides(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(3, 1, 3, stone))
	require.NoError(t, w.SetBlock(6, 1, 6, water))

	assert.True(t, Collides(w, BoxAt(mgl32.Vec3{3.5, 1.5, 3.5}, 0.3, 1.8)))
	// Standing exactly on top only touches.
	assert.False(t, Collides(w, BoxAt(mgl32.Vec3{3.5, 2, 3.5}, 0.3, 1.8)))
	assert.False(t, Collides(w, BoxAt(mgl32.Vec3{4.5, 1, 3.5}, 0.3, 1.8)))
	assert.True(t, Collides(w, BoxAt(mgl32.Vec3{4.2, 1, 3.5}, 0.3, 1.8)))
	// Water never blocks.
	assert.False(t, Collides(w, BoxAt(mgl32.Vec3{6.5, 1, 6.5}, 0.3, 1.8)))
	// Outside the world is air.
	assert.False(t, Collides(w, BoxAt(mgl32.Vec3{-5, -5, -5}, 0.3, 1.8)))
}

func TestFindGroundLevel(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(2, 4, 2, stone))
	require.NoError(t, w.SetBlock(2, 7, 2, water))

	top, ok := FindGroundLevel(w, 2.4, 2.9, 15)
	require.True(t, ok)
	assert.Equal(t, float32(5), top)

	_, ok = FindGroundLevel(w, 0, 0, 15)
	assert.False(t, ok)
}

func TestRaycastAdjacentSharesFace(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(6, 3, 4, stone))

	start := mgl32.Vec3{1.2, 7.9, 0.3}
	target := mgl32.Vec3{6.5, 3.5, 4.5}
	res := Raycast(start, target.Sub(start), MinReachDistance, 20, w)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{6, 3, 4}, res.HitPosition)

	d := 0
	for a := 0; a < 3; a++ {
		diff := res.HitPosition[a] - res.AdjacentPosition[a]
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}
	assert.Equal(t, 1, d, "adjacent %v", res.AdjacentPosition)
}

func TestRaycastZeroDirection(t *testing.T) {
	w := emptyWorld(t)
	require.NoError(t, w.SetBlock(0, 0, 0, stone))
	assert.False(t, Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{}, MinReachDistance, 10, w).Hit)
}
