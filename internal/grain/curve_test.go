package grain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurveBoundaryExactness(t *testing.T) {
	for _, curve := range []IntensityCurve{CurveLinear, CurveS} {
		require.Equal(t, 0.0, applyCurve(curve, 0), "curve %s at 0", curve)
		require.Equal(t, 1.0, applyCurve(curve, 1), "curve %s at 1", curve)
	}
}

func TestCurveMonotonic(t *testing.T) {
	const steps = 200
	for _, curve := range []IntensityCurve{CurveLinear, CurveS} {
		prev := applyCurve(curve, 0)
		for i := 1; i <= steps; i++ {
			v := applyCurve(curve, float64(i)/steps)
			require.GreaterOrEqual(t, v, prev, "curve %s must not decrease", curve)
			prev = v
		}
	}
}

func TestSCurveIncreasesMidContrast(t *testing.T) {
	// The s-curve compresses low magnitudes and expands high ones.
	require.Less(t, applyCurve(CurveS, 0.2), 0.2)
	require.Greater(t, applyCurve(CurveS, 0.8), 0.8)
}

func TestShadowFactorFalloff(t *testing.T) {
	require.Equal(t, 1.0, shadowFactor(0))
	require.Equal(t, 0.0, shadowFactor(0.5))
	require.Equal(t, 0.0, shadowFactor(1))

	// Smooth monotonic decrease over the dark range.
	prev := shadowFactor(0)
	for i := 1; i <= 50; i++ {
		v := shadowFactor(float64(i) / 100)
		require.LessOrEqual(t, v, prev)
		prev = v
	}

	// Very dark regions with full protection are driven near zero.
	require.Greater(t, shadowFactor(0.05), 0.95)
}
