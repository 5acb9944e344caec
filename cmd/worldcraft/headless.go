package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"worldcraft/internal/mesh"
	"worldcraft/internal/profiling"
	"worldcraft/internal/world"
)

var scriptBlocks = []world.BlockType{
	world.BlockTypeNone,
	world.BlockTypeRock,
	world.BlockTypeGrass,
	world.BlockTypeDirt,
	world.BlockTypeWater,
}

// runHeadless applies n random edits, then checks every chunk buffer and
// compares the patched geometry with a full rebuild.
func runHeadless(w *world.World, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	wx, wy, wz := w.Extent()

	start := time.Now()
	delta := 0
	for i := 0; i < n; i++ {
		x, y, z := rng.Intn(wx), rng.Intn(wy), rng.Intn(wz)
		b := world.NewBlock(scriptBlocks[rng.Intn(len(scriptBlocks))])
		before := w.Stats()
		if err := w.SetBlock(x, y, z, b); err != nil {
			return fmt.Errorf("edit %d at (%d,%d,%d): %w", i, x, y, z, err)
		}
		after := w.Stats()
		delta += (after.SolidVertices + after.LiquidVertices) - (before.SolidVertices + before.LiquidVertices)
	}
	log.Printf("applied %d edits in %v, vertex delta %+d", n, time.Since(start).Round(time.Microsecond), delta)

	if err := validateAll(w); err != nil {
		return err
	}

	patched := w.Stats()
	for _, c := range w.Chunks() {
		w.Rebuild(c)
	}
	rebuilt := w.Stats()
	if patched != rebuilt {
		return fmt.Errorf("patched geometry %+v differs from rebuild %+v", patched, rebuilt)
	}

	log.Printf("stats: %+v (%d faces)", rebuilt, rebuilt.Faces())
	log.Printf("slowest ops: %s", profiling.TopN(5))
	return nil
}

func validateAll(w *world.World) error {
	var err error
	for _, c := range w.Chunks() {
		c.Buffers(func(solid, liquid *mesh.Buffer) {
			if e := solid.Validate(); e != nil && err == nil {
				err = fmt.Errorf("chunk %v solid: %w", c.Coord(), e)
			}
			if e := liquid.Validate(); e != nil && err == nil {
				err = fmt.Errorf("chunk %v liquid: %w", c.Coord(), e)
			}
		})
	}
	return err
}
