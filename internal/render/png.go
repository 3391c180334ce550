package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// CompressionLevel resolves the CLI's named PNG compression levels.
func CompressionLevel(name string) (png.CompressionLevel, error) {
	switch name {
	case "default", "":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return png.DefaultCompression, fmt.Errorf("unknown png compression %q (use default, speed, best, none)", name)
	}
}

// WritePNG encodes img to path with the given compression level.
func WritePNG(path string, img image.Image, level png.CompressionLevel) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img down so its longest side is maxDim pixels, using
// CatmullRom resampling. Images already within maxDim are returned resampled
// at their original size.
func Thumbnail(img image.Image, maxDim int) (*image.NRGBA, error) {
	if maxDim <= 0 {
		return nil, fmt.Errorf("thumbnail size must be positive, got %d", maxDim)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h && w > maxDim {
		h = h * maxDim / w
		w = maxDim
	} else if h > w && h > maxDim {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}
