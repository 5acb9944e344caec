// Package texture paints the block atlas procedurally so the viewer needs no
// image assets.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"worldcraft/internal/world"
)

// SourceTile is the edge length of a painted tile before scaling.
const SourceTile = 8

// palette holds the base and speckle colour of each block type, alpha
// premultiplied as image.RGBA expects.
var palette = map[world.BlockType][2]color.RGBA{
	world.BlockTypeRock:  {{0x80, 0x80, 0x80, 0xff}, {0x6a, 0x6a, 0x6a, 0xff}},
	world.BlockTypeGrass: {{0x5d, 0xa1, 0x3a, 0xff}, {0x4a, 0x86, 0x2c, 0xff}},
	world.BlockTypeDirt:  {{0x86, 0x5c, 0x3b, 0xff}, {0x6f, 0x4a, 0x2e, 0xff}},
	world.BlockTypeWater: {{0x20, 0x42, 0x90, 0xb0}, {0x28, 0x4a, 0x9c, 0xb0}},
}

var missing = [2]color.RGBA{{0xff, 0x00, 0xff, 0xff}, {0x00, 0x00, 0x00, 0xff}}

// PaintTile returns a SourceTile sized tile for t. The speckle pattern is a
// fixed hash of the pixel position so tiles are stable between runs.
func PaintTile(t world.BlockType) *image.RGBA {
	cols, ok := palette[t]
	if !ok {
		cols = missing
	}
	img := image.NewRGBA(image.Rect(0, 0, SourceTile, SourceTile))
	for y := 0; y < SourceTile; y++ {
		for x := 0; x < SourceTile; x++ {
			c := cols[0]
			if speckle(x, y, int(t)) {
				c = cols[1]
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func speckle(x, y, seed int) bool {
	h := uint32(x*73856093) ^ uint32(y*19349663) ^ uint32(seed*83492791)
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h%4 == 0
}

// Build lays out one tile per block type following a's UV mapping and scales
// each to tilePx pixels with nearest-neighbour sampling.
func Build(a world.Atlas, tilePx int) *image.RGBA {
	if tilePx <= 0 {
		tilePx = SourceTile
	}
	img := image.NewRGBA(image.Rect(0, 0, a.Cols*tilePx, a.Rows*tilePx))
	size := img.Bounds().Size()

	for _, t := range world.BlockTypes() {
		if t == world.BlockTypeNone {
			continue
		}
		r := a.UV(t)
		x0 := int(r.U*float32(size.X) + 0.5)
		y0 := int(r.V*float32(size.Y) + 0.5)
		dst := image.Rect(x0, y0, x0+tilePx, y0+tilePx)
		tile := PaintTile(t)
		draw.NearestNeighbor.Scale(img, dst, tile, tile.Bounds(), draw.Src, nil)
	}
	return img
}
