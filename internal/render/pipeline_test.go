package render

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/grainforge/internal/grain"
)

func testOptions() Options {
	return Options{
		Width:         48,
		Height:        32,
		Config:        grain.DefaultConfig(),
		Base:          BaseFlat,
		BaseLightness: 0.35,
		Compression:   png.DefaultCompression,
	}
}

func TestNewPipelineValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{
			name:   "zero width",
			mutate: func(o *Options) { o.Width = 0 },
		},
		{
			name:   "negative height",
			mutate: func(o *Options) { o.Height = -4 },
		},
		{
			name:   "unknown base",
			mutate: func(o *Options) { o.Base = "marble" },
		},
		{
			name:   "invalid grain config",
			mutate: func(o *Options) { o.Config.Amount = 200 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			_, err := NewPipeline(opts)
			require.Error(t, err)
		})
	}
}

func TestPipelineRenderWritesFile(t *testing.T) {
	p, err := NewPipeline(testOptions())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "grain.png")
	require.NoError(t, p.Render(context.Background(), 12345, out))

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 48, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())
}

func TestPipelineRenderDeterministic(t *testing.T) {
	p, err := NewPipeline(testOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	require.NoError(t, p.Render(context.Background(), 7, a))
	require.NoError(t, p.Render(context.Background(), 7, b))

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	require.Equal(t, dataA, dataB)
}

func TestPipelineRenderMaskOnly(t *testing.T) {
	opts := testOptions()
	opts.MaskOnly = true
	p, err := NewPipeline(opts)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "mask.png")
	require.NoError(t, p.Render(context.Background(), 1, out))

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	require.Equal(t, 48, cfg.Width)
	require.Equal(t, 32, cfg.Height)
}

func TestPipelineRenderThumbnail(t *testing.T) {
	opts := testOptions()
	opts.ThumbnailDim = 16
	p, err := NewPipeline(opts)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "grain.png")
	require.NoError(t, p.Render(context.Background(), 3, out))

	thumbPath := ThumbnailPath(out)
	require.Equal(t, filepath.Join(filepath.Dir(out), "grain_thumb.png"), thumbPath)

	file, err := os.Open(thumbPath)
	require.NoError(t, err)
	defer file.Close()

	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Width)
}

func TestPipelineRenderCloudsBase(t *testing.T) {
	opts := testOptions()
	opts.Base = BaseClouds
	opts.CloudContrast = 0.85
	p, err := NewPipeline(opts)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "clouds.png")
	require.NoError(t, p.Render(context.Background(), 42, out))
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestPipelineRenderDisabledGrain(t *testing.T) {
	opts := testOptions()
	opts.Config.Enabled = false
	p, err := NewPipeline(opts)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "never.png")
	err = p.Render(context.Background(), 1, out)
	require.Error(t, err)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestPipelineRenderCancelled(t *testing.T) {
	p, err := NewPipeline(testOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = p.Render(ctx, 1, filepath.Join(t.TempDir(), "x.png"))
	require.ErrorIs(t, err, context.Canceled)
}
