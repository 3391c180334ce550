package grain

// applyCurve remaps a normalized noise magnitude to output intensity.
// Both curves are monotonic and map 0 to 0 and 1 to 1 exactly.
func applyCurve(curve IntensityCurve, v float64) float64 {
	switch curve {
	case CurveS:
		return smoothstep01(v)
	default: // CurveLinear
		return v
	}
}

// shadowFactor is the smooth falloff that drives shadow protection: 1.0 at
// lightness 0, fading to 0 at mid-gray and above. A smoothstep ramp rather
// than a hard threshold keeps the suppression free of visible banding.
func shadowFactor(baseLightness float64) float64 {
	if baseLightness >= 0.5 {
		return 0
	}
	if baseLightness <= 0 {
		return 1
	}
	return 1 - smoothstep01(baseLightness/0.5)
}
