package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/inkwell-labs/grainforge/internal/grain"
)

// Composite blends a grain buffer over a base image. The alpha channel is
// applied as a centered luma deviation (the buffer stores magnitudes, so the
// buffer mean is the neutral point), and the 128-centered tint channels push
// red and blue respectively, the same split photographic color grain shows.
// The base image is not modified.
func Composite(base *image.NRGBA, buf *grain.Buffer) (*image.NRGBA, error) {
	if buf == nil {
		return nil, fmt.Errorf("grain buffer is absent")
	}
	b := base.Bounds()
	if b.Dx() != buf.Width || b.Dy() != buf.Height {
		return nil, fmt.Errorf("grain buffer %dx%d does not match base %dx%d",
			buf.Width, buf.Height, b.Dx(), b.Dy())
	}

	neutral := bufferMeanAlpha(buf)

	dst := image.NewNRGBA(b)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := base.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			i := buf.Index(x, y)

			delta := (float64(buf.Data[i]) - neutral)
			r := float64(c.R) + delta
			g := float64(c.G) + delta
			bl := float64(c.B) + delta

			if buf.Channels == 3 {
				r += float64(buf.Data[i+1]) - 128
				bl += float64(buf.Data[i+2]) - 128
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(r),
				G: clampByte(g),
				B: clampByte(bl),
				A: c.A,
			})
		}
	}
	return dst, nil
}

// MaskImage renders the alpha channel of a buffer as a grayscale image,
// useful for exporting the bare grain mask.
func MaskImage(buf *grain.Buffer) (*image.Gray, error) {
	if buf == nil {
		return nil, fmt.Errorf("grain buffer is absent")
	}
	img := image.NewGray(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: buf.Data[buf.Index(x, y)]})
		}
	}
	return img, nil
}

func bufferMeanAlpha(buf *grain.Buffer) float64 {
	sum := 0
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			sum += int(buf.Data[buf.Index(x, y)])
		}
	}
	return float64(sum) / float64(buf.Width*buf.Height)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
