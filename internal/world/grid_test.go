package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPredicates(t *testing.T) {
	cases := []struct {
		t                                  BlockType
		none, liquid, solid, transp, selec bool
	}{
		{BlockTypeNone, true, false, false, true, false},
		{BlockTypeRock, false, false, true, false, true},
		{BlockTypeGrass, false, false, true, false, true},
		{BlockTypeDirt, false, false, true, false, true},
		{BlockTypeWater, false, true, false, true, true},
		{BlockType(200), false, false, true, false, true},
	}
	for _, tc := range cases {
		b := NewBlock(tc.t)
		assert.Equal(t, tc.none, b.IsNone(), "%v IsNone", tc.t)
		assert.Equal(t, tc.liquid, b.IsLiquid(), "%v IsLiquid", tc.t)
		assert.Equal(t, tc.solid, b.IsSolid(), "%v IsSolid", tc.t)
		assert.Equal(t, tc.transp, b.IsTransparent(), "%v IsTransparent", tc.t)
		assert.Equal(t, tc.selec, b.IsSelectable(), "%v IsSelectable", tc.t)
	}
	assert.Equal(t, "unknown", BlockType(200).String())
	assert.Equal(t, "water", NewBlock(BlockTypeWater).String())
}

func TestIndexIsBijection(t *testing.T) {
	d := Dimensions{Width: 3, Depth: 5, Height: 7}
	seen := make(map[int]bool, d.Volume())
	for x := 0; x < d.Width; x++ {
		for z := 0; z < d.Depth; z++ {
			for y := 0; y < d.Height; y++ {
				i := d.Index(x, y, z)
				require.False(t, seen[i], "index %d reused", i)
				require.True(t, i >= 0 && i < d.Volume())
				seen[i] = true

				gx, gy, gz := d.Coords(i)
				assert.Equal(t, [3]int{x, y, z}, [3]int{gx, gy, gz})
			}
		}
	}
	assert.Len(t, seen, d.Volume())
	assert.Equal(t, 1, d.Index(0, 1, 0), "columns are contiguous along y")
}

func TestGridBounds(t *testing.T) {
	g := NewVoxelGrid(Dimensions{Width: 2, Depth: 2, Height: 2})
	rock := NewBlock(BlockTypeRock)

	old, ok := g.Set(1, 1, 1, rock)
	assert.True(t, ok)
	assert.Equal(t, Air, old)
	assert.Equal(t, rock, g.At(1, 1, 1))
	assert.Equal(t, rock, g.AtIndex(g.Dimensions().Index(1, 1, 1)))

	_, ok = g.Set(2, 0, 0, rock)
	assert.False(t, ok)
	assert.Equal(t, Air, g.At(-1, 0, 0))
	assert.Equal(t, Air, g.AtIndex(99))
}

func TestGridFillClamps(t *testing.T) {
	g := NewVoxelGrid(Dimensions{Width: 2, Depth: 2, Height: 4})
	g.Fill(0, 0, -3, 10, NewBlock(BlockTypeDirt))
	assert.Equal(t, 4, g.Count(Block.IsSolid))

	g.Fill(1, 1, 3, 2, NewBlock(BlockTypeDirt))
	g.Fill(5, 0, 0, 4, NewBlock(BlockTypeDirt))
	assert.Equal(t, 4, g.Count(Block.IsSolid))
}

func TestAtlasTiles(t *testing.T) {
	a := Atlas{Rows: 2, Cols: 2}
	assert.Equal(t, UVRect{U: 0, V: 0, W: 0.5, H: 0.5}, a.UV(BlockTypeRock))
	assert.Equal(t, UVRect{U: 0.5, V: 0, W: 0.5, H: 0.5}, a.UV(BlockTypeGrass))
	assert.Equal(t, UVRect{U: 0, V: 0.5, W: 0.5, H: 0.5}, a.UV(BlockTypeDirt))
	assert.Equal(t, UVRect{U: 0.5, V: 0.5, W: 0.5, H: 0.5}, a.UV(BlockTypeWater))
	// Tiles wrap when the atlas is too small.
	assert.Equal(t, a.UV(BlockTypeRock), a.UV(BlockType(5)))
	assert.GreaterOrEqual(t, DefaultAtlas.Tiles(), len(BlockTypes())-1)
}

func TestDirections(t *testing.T) {
	for _, d := range AllDirections {
		dx, dy, dz := d.Offset()
		ox, oy, oz := d.Opposite().Offset()
		assert.Equal(t, [3]int{-dx, -dy, -dz}, [3]int{ox, oy, oz}, d.String())
		assert.Equal(t, 1, abs(dx)+abs(dy)+abs(dz))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
