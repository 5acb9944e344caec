package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldcraft/internal/config"
	"worldcraft/internal/world"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.World = config.WorldConfig{
		ChunkWidth: 8, ChunkDepth: 8, ChunkHeight: 16,
		ChunksX: 2, ChunksY: 1, ChunksZ: 2,
		SeaLevel: 5,
	}
	cfg.Terrain.Base = 2
	cfg.Terrain.Amplitude = 10
	cfg.Mesh.Workers = 2
	return cfg
}

func TestHeightsFor(t *testing.T) {
	cfg := smallConfig()
	assert.IsType(t, &world.PerlinHeights{}, heightsFor(cfg))

	cfg.Terrain.Generator = "value"
	assert.IsType(t, &world.ValueNoiseHeights{}, heightsFor(cfg))

	cfg.Terrain.Generator = "flat"
	cfg.Terrain.FlatHeight = 3
	h := heightsFor(cfg)
	assert.Equal(t, 3, h.HeightAt(100, -7))
}

func TestBuildWorldAndHeadlessRun(t *testing.T) {
	for _, gen := range []string{"perlin", "value", "flat"} {
		t.Run(gen, func(t *testing.T) {
			cfg := smallConfig()
			cfg.Terrain.Generator = gen
			cfg.Mesh.VerifyPatches = true

			w, err := buildWorld(context.Background(), cfg)
			require.NoError(t, err)
			x, y, z := w.Extent()
			assert.Equal(t, [3]int{16, 16, 16}, [3]int{x, y, z})
			assert.Positive(t, w.Stats().Faces())

			require.NoError(t, runHeadless(w, 200, cfg.Terrain.Seed))
			require.NoError(t, validateAll(w))
		})
	}
}

func TestBuildWorldCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := buildWorld(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
