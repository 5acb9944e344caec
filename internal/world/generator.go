package world

import (
	"context"

	"worldcraft/internal/profiling"
)

// DirtDepth is how many cells of dirt lie between the grass and the rock.
const DirtDepth = 4

// Generate fills every chunk from the height field and, when a mesher is
// attached, performs the initial build.
func (w *World) Generate(ctx context.Context) error {
	defer profiling.Track("world.Generate")()

	for _, c := range w.chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.populateChunk(c)
	}
	if w.mesher == nil {
		return nil
	}
	return w.mesher.BuildAll(ctx, w)
}

// populateChunk stratifies each column by increasing y: rock, dirt, one
// grass cell at the surface, then air (or water up to sea level).
func (w *World) populateChunk(c *Chunk) {
	d := w.cfg.Chunk
	ox, oy, oz := c.Origin()
	g := c.grid

	for lx := 0; lx < d.Width; lx++ {
		for lz := 0; lz < d.Depth; lz++ {
			g.Fill(lx, lz, 0, d.Height, Air)
			if w.heights == nil {
				continue
			}
			h := w.heights.HeightAt(ox+lx, oz+lz) - oy

			g.Fill(lx, lz, 0, h-DirtDepth, NewBlock(BlockTypeRock))
			g.Fill(lx, lz, h-DirtDepth, h, NewBlock(BlockTypeDirt))
			g.Fill(lx, lz, h, h+1, NewBlock(BlockTypeGrass))
			if w.cfg.SeaLevel >= 0 {
				g.Fill(lx, lz, h+1, w.cfg.SeaLevel-oy+1, NewBlock(BlockTypeWater))
			}
		}
	}
	c.MarkDirty()
}
