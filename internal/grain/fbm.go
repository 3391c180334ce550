package grain

// octaveSaltStep separates the lattice hashes of successive octaves so that
// lacunarity 1 still layers independent fields instead of resampling one.
const octaveSaltStep = 0x632be5ab

// fbmNoise accumulates octaves of lattice value noise at (x, y). Layer 0
// samples at baseFreq with amplitude 1; every further layer multiplies the
// frequency by lacunarity and the amplitude by gain. The octave sum is
// normalized by the amplitude sum, so the result stays in [0,1] for any
// octave/gain/lacunarity combination that passes validation.
func fbmNoise(seed int64, x, y float64, baseFreq float64, octaves int, lacunarity, gain float64, salt uint32) float64 {
	amp := 1.0
	freq := baseFreq
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		n := valueNoise(seed, x*freq, y*freq, salt+uint32(i)*octaveSaltStep)
		sum += amp * (2*n - 1)
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm < 1e-12 {
		// Unreachable with gain > 0, but a vanished amplitude sum must not
		// turn into a division blow-up.
		return 0.5
	}
	return clamp01((sum/norm + 1) * 0.5)
}
