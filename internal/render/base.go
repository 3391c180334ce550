// Package render is the thin consumer side of the grain synthesizer: base
// plates to preview against, the compositor that blends a grain buffer onto
// an image, and PNG output helpers.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
	"github.com/disintegration/gift"
)

// BasePlate is a neutral backdrop for previewing grain. MeanLightness is the
// average lightness of the plate in [0,1] and is what callers feed into the
// synthesizer's baseLightness input.
type BasePlate struct {
	Image         *image.NRGBA
	MeanLightness float64
}

// FlatPlate returns a uniform plate at the given lightness.
func FlatPlate(width, height int, lightness float64) (*BasePlate, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plate dimensions must be positive, got %dx%d", width, height)
	}
	if lightness < 0 || lightness > 1 {
		return nil, fmt.Errorf("lightness %g outside [0,1]", lightness)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	v := uint8(lightness*255 + 0.5)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return &BasePlate{Image: img, MeanLightness: lightness}, nil
}

// CloudPlate returns a plate with slowly varying lightness sampled from
// Perlin noise and softened with a light Gaussian blur. It exists so shadow
// protection can be previewed against genuinely dark regions; contrast in
// [0,1] widens the lightness spread around mid-gray.
func CloudPlate(width, height int, seed int64, contrast float64) (*BasePlate, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plate dimensions must be positive, got %dx%d", width, height)
	}
	if contrast < 0 || contrast > 1 {
		return nil, fmt.Errorf("contrast %g outside [0,1]", contrast)
	}

	p := perlin.NewPerlin(2.0, 2.0, 3, seed)
	scale := float64(width) / 3.0
	if s := float64(height) / 3.0; s < scale {
		scale = s
	}
	if scale < 1 {
		scale = 1
	}

	raw := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/scale, float64(y)/scale) // approx [-1,1]
			l := 0.5 + 0.5*contrast*n
			if l < 0 {
				l = 0
			} else if l > 1 {
				l = 1
			}
			v := uint8(l*255 + 0.5)
			raw.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	g := gift.New(gift.GaussianBlur(2.0))
	img := image.NewNRGBA(g.Bounds(raw.Bounds()))
	g.Draw(img, raw)

	return &BasePlate{Image: img, MeanLightness: meanLightness(img)}, nil
}

// meanLightness averages the NRGBA luma over the plate.
func meanLightness(img *image.NRGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	sum := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			sum += (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}
