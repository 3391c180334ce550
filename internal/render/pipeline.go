package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/grainforge/internal/grain"
)

// Base plate kinds accepted by the pipeline.
const (
	BaseFlat   = "flat"
	BaseClouds = "clouds"
)

// Options configures a render pipeline. One pipeline renders any number of
// seed variants with otherwise identical settings.
type Options struct {
	Width         int
	Height        int
	Config        grain.Config
	Base          string  // BaseFlat or BaseClouds
	BaseLightness float64 // flat plate lightness, [0,1]
	CloudContrast float64 // clouds plate lightness spread, [0,1]
	MaskOnly      bool    // export the bare grain mask instead of a composite
	Compression   png.CompressionLevel
	ThumbnailDim  int // longest thumbnail side in pixels, 0 disables
	Logger        *slog.Logger
}

// Pipeline renders grain overlays to PNG files. It satisfies the worker
// pool's Renderer interface.
type Pipeline struct {
	opts Options
}

// NewPipeline validates the options and returns a pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}
	switch opts.Base {
	case BaseFlat, BaseClouds:
	default:
		return nil, fmt.Errorf("unknown base plate %q (use %s or %s)", opts.Base, BaseFlat, BaseClouds)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{opts: opts}, nil
}

// Render synthesizes one seed variant and writes it to outPath.
func (p *Pipeline) Render(ctx context.Context, seed int64, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	plate, err := p.plate(seed)
	if err != nil {
		return err
	}

	buf, err := grain.Synthesize(p.opts.Width, p.opts.Height, p.opts.Config, plate.MeanLightness, seed)
	if err != nil {
		return err
	}
	if buf == nil {
		return fmt.Errorf("grain is disabled in the configuration")
	}

	var img image.Image
	if p.opts.MaskOnly {
		img, err = MaskImage(buf)
	} else {
		img, err = Composite(plate.Image, buf)
	}
	if err != nil {
		return err
	}

	if err := WritePNG(outPath, img, p.opts.Compression); err != nil {
		return err
	}
	p.log().Debug("variant written", "seed", seed, "path", outPath)

	if p.opts.ThumbnailDim > 0 {
		thumb, err := Thumbnail(img, p.opts.ThumbnailDim)
		if err != nil {
			return err
		}
		thumbPath := ThumbnailPath(outPath)
		if err := WritePNG(thumbPath, thumb, p.opts.Compression); err != nil {
			return err
		}
		p.log().Debug("thumbnail written", "seed", seed, "path", thumbPath)
	}

	return nil
}

// plate builds the base plate for one variant. The clouds plate is seeded
// per variant so every seed gets a matching backdrop.
func (p *Pipeline) plate(seed int64) (*BasePlate, error) {
	if p.opts.Base == BaseClouds {
		return CloudPlate(p.opts.Width, p.opts.Height, seed, p.opts.CloudContrast)
	}
	return FlatPlate(p.opts.Width, p.opts.Height, p.opts.BaseLightness)
}

// ThumbnailPath derives the thumbnail filename for an output path.
func ThumbnailPath(outPath string) string {
	ext := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, ext) + "_thumb" + ext
}

func (p *Pipeline) log() *slog.Logger {
	if p.opts.Logger != nil {
		return p.opts.Logger
	}
	return slog.Default()
}
