package grain

import "math"

// The seed stream is a pure coordinate hash: no permutation tables, no
// internal counters. Repeated calls with identical arguments return identical
// results, which is what makes the per-pixel loop safe to run in any order.

// mix64 is the SplitMix64 finalizer. It avalanches every input bit across
// the whole word, which keeps the lattice free of visible periodicity at the
// image sizes in use.
func mix64(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// hashCoord hashes (seed, x, y, salt) into 64 bits. Seed 0 and negative
// seeds are ordinary inputs; the golden-ratio offset keeps seed 0 from
// collapsing the initial state.
func hashCoord(seed int64, x, y int32, salt uint32) uint64 {
	h := uint64(seed) + 0x9e3779b97f4a7c15
	h = mix64(h ^ uint64(uint32(x)))
	h = mix64(h ^ uint64(uint32(y)))
	h = mix64(h ^ uint64(salt))
	return h
}

// hash01 maps the coordinate hash onto [0,1) with full double precision.
func hash01(seed int64, x, y int32, salt uint32) float64 {
	return float64(hashCoord(seed, x, y, salt)>>11) / (1 << 53)
}

// smoothstep01 is the Hermite fade 3t^2 - 2t^3 on [0,1].
func smoothstep01(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// valueNoise samples lattice value noise at (x, y): the four surrounding
// lattice corners are hashed and blended with smoothstep interpolation so the
// field has no blocky nearest-neighbor artifacts. Output is in [0,1).
func valueNoise(seed int64, x, y float64, salt uint32) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	x0 := int32(fx)
	y0 := int32(fy)

	tx := smoothstep01(x - fx)
	ty := smoothstep01(y - fy)

	n00 := hash01(seed, x0, y0, salt)
	n10 := hash01(seed, x0+1, y0, salt)
	n01 := hash01(seed, x0, y0+1, salt)
	n11 := hash01(seed, x0+1, y0+1, salt)

	return lerp(lerp(n00, n10, tx), lerp(n01, n11, tx), ty)
}
