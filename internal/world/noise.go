package world

import "math"

// lattice is hashed value noise: every integer point carries a pseudo-random
// value in [0,1] and points in between are blended with a quintic fade.
type lattice struct {
	seed uint64
}

const (
	golden = 0x9E3779B97F4A7C15
	primeZ = 0xC2B2AE3D27D4EB4F
)

// mix64 is the SplitMix64 finalizer.
func mix64(v uint64) uint64 {
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func (l lattice) value(x, z int64) float64 {
	h := mix64(uint64(x)*golden ^ uint64(z)*primeZ ^ l.seed)
	return float64(h>>11) / float64(1<<53)
}

func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func (l lattice) sample(x, z float64) float64 {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int64(fx), int64(fz)
	tx, tz := smootherstep(x-fx), smootherstep(z-fz)

	top := lerp(l.value(ix, iz), l.value(ix+1, iz), tx)
	bottom := lerp(l.value(ix, iz+1), l.value(ix+1, iz+1), tx)
	return lerp(top, bottom, tz)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// octaveNoise2D sums octaves of value noise, each with its own seed, and
// normalizes the result back into [0,1].
func octaveNoise2D(x, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	var sum, total float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		l := lattice{seed: mix64(uint64(seed) + uint64(i)*golden)}
		sum += l.sample(x*freq, z*freq) * amp
		total += amp
		amp *= persistence
		freq *= lacunarity
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
