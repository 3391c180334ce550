package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatPlate(t *testing.T) {
	plate, err := FlatPlate(32, 16, 0.35)
	require.NoError(t, err)
	require.Equal(t, 32, plate.Image.Bounds().Dx())
	require.Equal(t, 16, plate.Image.Bounds().Dy())
	require.InDelta(t, 0.35, plate.MeanLightness, 1e-9)

	c := plate.Image.NRGBAAt(5, 5)
	require.Equal(t, c.R, c.G)
	require.Equal(t, c.G, c.B)
	require.EqualValues(t, 255, c.A)
}

func TestFlatPlateValidation(t *testing.T) {
	_, err := FlatPlate(0, 16, 0.5)
	require.Error(t, err)
	_, err = FlatPlate(16, -1, 0.5)
	require.Error(t, err)
	_, err = FlatPlate(16, 16, 1.5)
	require.Error(t, err)
}

func TestCloudPlateDeterministic(t *testing.T) {
	a, err := CloudPlate(64, 48, 99, 0.85)
	require.NoError(t, err)
	b, err := CloudPlate(64, 48, 99, 0.85)
	require.NoError(t, err)
	require.Equal(t, a.Image.Pix, b.Image.Pix)
	require.Equal(t, a.MeanLightness, b.MeanLightness)

	other, err := CloudPlate(64, 48, 100, 0.85)
	require.NoError(t, err)
	require.NotEqual(t, a.Image.Pix, other.Image.Pix)
}

func TestCloudPlateLightnessVaries(t *testing.T) {
	plate, err := CloudPlate(96, 96, 7, 0.85)
	require.NoError(t, err)
	require.Greater(t, plate.MeanLightness, 0.0)
	require.Less(t, plate.MeanLightness, 1.0)

	// The whole point of the clouds plate is a spread of lightness values.
	min, max := 255, 0
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			v := int(plate.Image.NRGBAAt(x, y).R)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	require.Greater(t, max-min, 25, "expected a visible lightness spread, got [%d,%d]", min, max)
}

func TestCloudPlateValidation(t *testing.T) {
	_, err := CloudPlate(0, 10, 1, 0.5)
	require.Error(t, err)
	_, err = CloudPlate(10, 10, 1, -0.1)
	require.Error(t, err)
}
