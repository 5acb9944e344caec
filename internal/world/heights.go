package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// FlatHeights returns the same surface height everywhere.
type FlatHeights int

func (f FlatHeights) HeightAt(x, z int) int {
	return int(f)
}

// HeightFunc adapts a plain function to HeightProvider.
type HeightFunc func(x, z int) int

func (f HeightFunc) HeightAt(x, z int) int {
	return f(x, z)
}

// NoiseParams shapes a noise height field. Noise in [0,1] is mapped to
// Base + n*Amplitude and clamped to [0, Max].
type NoiseParams struct {
	Seed        int64
	Scale       float64 // world units to noise units
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Base        int
	Amplitude   float64
	Max         int
}

func (p NoiseParams) height(n float64) int {
	h := float64(p.Base) + n*p.Amplitude
	if h < 0 {
		h = 0
	}
	if p.Max > 0 && h > float64(p.Max) {
		h = float64(p.Max)
	}
	return int(math.Floor(h))
}

// ValueNoiseHeights is a hashed value-noise height field.
type ValueNoiseHeights struct {
	params NoiseParams
}

func NewValueNoiseHeights(p NoiseParams) *ValueNoiseHeights {
	return &ValueNoiseHeights{params: p}
}

func (g *ValueNoiseHeights) HeightAt(x, z int) int {
	p := g.params
	n := octaveNoise2D(float64(x)*p.Scale, float64(z)*p.Scale, p.Seed, p.Octaves, p.Persistence, p.Lacunarity)
	return p.height(n)
}

// PerlinHeights is a multi-octave gradient noise height field.
type PerlinHeights struct {
	params NoiseParams
	noise  *perlin.Perlin
}

// NewPerlinHeights builds the field. Persistence maps to the generator's alpha
// (amplitude divisor) as 1/persistence and lacunarity to beta.
func NewPerlinHeights(p NoiseParams) *PerlinHeights {
	alpha := 2.0
	if p.Persistence > 0 {
		alpha = 1 / p.Persistence
	}
	beta := p.Lacunarity
	if beta <= 0 {
		beta = 2.0
	}
	octaves := p.Octaves
	if octaves <= 0 {
		octaves = 1
	}
	return &PerlinHeights{
		params: p,
		noise:  perlin.NewPerlin(alpha, beta, int32(octaves), p.Seed),
	}
}

func (g *PerlinHeights) HeightAt(x, z int) int {
	p := g.params
	n := g.noise.Noise2D(float64(x)*p.Scale, float64(z)*p.Scale)
	// Noise2D is roughly [-1,1].
	n = (n + 1) / 2
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return p.height(n)
}
