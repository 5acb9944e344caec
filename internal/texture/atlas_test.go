package texture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldcraft/internal/world"
)

func TestBuildPlacesTilesAtTheirUVs(t *testing.T) {
	a := world.Atlas{Rows: 2, Cols: 2}
	img := Build(a, 16)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())

	for _, bt := range []world.BlockType{world.BlockTypeRock, world.BlockTypeGrass, world.BlockTypeDirt, world.BlockTypeWater} {
		r := a.UV(bt)
		// Sample the centre of the inset tile the mesher will use.
		x := int((r.U + r.W/2) * 32)
		y := int((r.V + r.H/2) * 32)
		got := img.RGBAAt(x, y)
		want := palette[bt]
		assert.True(t, got == want[0] || got == want[1], "%v at (%d,%d) is %v", bt, x, y, got)
	}
}

func TestPaintTileIsDeterministic(t *testing.T) {
	a := PaintTile(world.BlockTypeGrass)
	b := PaintTile(world.BlockTypeGrass)
	assert.Equal(t, a.Pix, b.Pix)

	unknown := PaintTile(world.BlockType(99))
	c := unknown.RGBAAt(0, 0)
	assert.Contains(t, []color.RGBA{missing[0], missing[1]}, c)
}

func TestBuildDefaultsTileSize(t *testing.T) {
	img := Build(world.DefaultAtlas, 0)
	assert.Equal(t, world.DefaultAtlas.Cols*SourceTile, img.Bounds().Dx())
}
