package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStratifiesColumns(t *testing.T) {
	cfg := testConfig()
	cfg.Chunk.Height = 4
	cfg.ChunksY = 3 // 12 cells tall, so strata cross chunk boundaries
	w, err := New(cfg, FlatHeights(6))
	require.NoError(t, err)
	require.NoError(t, w.Generate(context.Background()))

	want := map[int]BlockType{
		0: BlockTypeRock, 1: BlockTypeRock,
		2: BlockTypeDirt, 3: BlockTypeDirt, 4: BlockTypeDirt, 5: BlockTypeDirt,
		6: BlockTypeGrass,
		7: BlockTypeNone, 11: BlockTypeNone,
	}
	for _, col := range [][2]int{{0, 0}, {5, 7}, {7, 11}} {
		for y, typ := range want {
			assert.Equal(t, typ, w.Block(col[0], y, col[1]).Type, "column %v y=%d", col, y)
		}
	}
}

func TestGenerateFillsSeaLevel(t *testing.T) {
	cfg := testConfig()
	cfg.SeaLevel = 5
	heights := HeightFunc(func(x, z int) int {
		if x < 4 {
			return 2
		}
		return 7
	})
	w, err := New(cfg, heights)
	require.NoError(t, err)
	require.NoError(t, w.Generate(context.Background()))

	// Low column: grass at 2, water 3..5, air above.
	assert.Equal(t, BlockTypeGrass, w.Block(1, 2, 1).Type)
	for y := 3; y <= 5; y++ {
		assert.Equal(t, BlockTypeWater, w.Block(1, y, 1).Type, "y=%d", y)
	}
	assert.Equal(t, BlockTypeNone, w.Block(1, 6, 1).Type)

	// High column stays dry.
	assert.Equal(t, BlockTypeGrass, w.Block(5, 7, 1).Type)
	assert.Equal(t, BlockTypeDirt, w.Block(5, 5, 1).Type)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	w, err := New(testConfig(), FlatHeights(2))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Generate(ctx), context.Canceled)
}

func TestGenerateWithoutHeightsIsEmpty(t *testing.T) {
	w, err := New(testConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Generate(context.Background()))
	for _, c := range w.Chunks() {
		assert.Zero(t, c.Grid().Count(func(b Block) bool { return !b.IsNone() }))
	}
}

func TestNoiseHeightsDeterministic(t *testing.T) {
	p := NoiseParams{Seed: 42, Scale: 0.07, Octaves: 4, Persistence: 0.5, Lacunarity: 2, Base: 4, Amplitude: 20, Max: 30}
	for _, mk := range []func() HeightProvider{
		func() HeightProvider { return NewValueNoiseHeights(p) },
		func() HeightProvider { return NewPerlinHeights(p) },
	} {
		a, b := mk(), mk()
		varied := false
		first := a.HeightAt(0, 0)
		for x := -20; x < 20; x++ {
			for z := -20; z < 20; z++ {
				h := a.HeightAt(x, z)
				require.Equal(t, h, b.HeightAt(x, z))
				require.GreaterOrEqual(t, h, 0)
				require.LessOrEqual(t, h, p.Max)
				if h != first {
					varied = true
				}
			}
		}
		assert.True(t, varied, "%T is flat", a)
	}
}

func TestValueNoiseRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		x := float64(i)*0.37 - 100
		z := float64(i)*0.11 + 3
		v := octaveNoise2D(x, z, 9, 3, 0.5, 2)
		require.True(t, v >= 0 && v <= 1, "noise %v out of range", v)
	}
	assert.Zero(t, octaveNoise2D(1, 1, 1, 0, 0.5, 2))
}

func TestNoiseParamsClamp(t *testing.T) {
	p := NoiseParams{Base: -5, Amplitude: 100, Max: 10}
	assert.Equal(t, 0, p.height(0))
	assert.Equal(t, 10, p.height(1))
	assert.Equal(t, 5, p.height(0.1))
}
