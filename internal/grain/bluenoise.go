package grain

// blueNoiseGain amplifies the high-passed cell value before recentering.
const blueNoiseGain = 1.25

// blueNoise produces a spatially decorrelated field: each cell's hashed
// value is high-passed against the mean of its 3x3 cell neighborhood, which
// removes the low-frequency clumps a plain hash field would carry. The cell
// width comes from the size mapping; octaves, lacunarity and gain do not
// apply to this generator. Every pixel remains a pure function of
// (seed, coordinates), so the parallel-evaluation contract holds.
func blueNoise(seed int64, x, y, cell int, salt uint32) float64 {
	cx := int32(floorDiv(x, cell))
	cy := int32(floorDiv(y, cell))

	v := hash01(seed, cx, cy, salt)

	sum := 0.0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			sum += hash01(seed, cx+dx, cy+dy, salt)
		}
	}
	mean := sum / 8

	return clamp01(0.5 + blueNoiseGain*(v-mean))
}

// floorDiv divides rounding toward negative infinity so the cell lattice is
// continuous across zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
