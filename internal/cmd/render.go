package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-labs/grainforge/internal/render"
	"github.com/inkwell-labs/grainforge/internal/worker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render grain overlays to PNG",
	Long: `Render synthesizes a grain overlay for the given size and seed and writes it
as PNG, either as a bare grayscale mask or composited over a preview base
plate. With --variants it renders a batch of consecutive seeds in parallel.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Int("width", 1920, "Output width in pixels")
	renderCmd.Flags().Int("height", 1080, "Output height in pixels")
	renderCmd.Flags().Int64("seed", 1337, "Deterministic grain seed")
	renderCmd.Flags().StringP("out", "o", "grain.png", "Output PNG path")

	renderCmd.Flags().String("base", render.BaseFlat, "Preview base plate (flat, clouds)")
	renderCmd.Flags().Float64("base-lightness", 0.35, "Flat plate lightness (0-1)")
	renderCmd.Flags().Float64("cloud-contrast", 0.85, "Clouds plate lightness spread (0-1)")
	renderCmd.Flags().Bool("mask-only", false, "Export the bare grain mask instead of a composite")
	renderCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	renderCmd.Flags().Int("thumbnail", 0, "Also write a thumbnail with this longest side (0 disables)")

	renderCmd.Flags().Int("variants", 0, "Render this many consecutive seed variants (0 = single render)")
	renderCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	renderCmd.Flags().Bool("progress", true, "Show progress bar during batch rendering")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"render.width", "width"},
		{"render.height", "height"},
		{"render.seed", "seed"},
		{"render.out", "out"},
		{"render.base", "base"},
		{"render.base_lightness", "base-lightness"},
		{"render.cloud_contrast", "cloud-contrast"},
		{"render.mask_only", "mask-only"},
		{"render.png_compression", "png-compression"},
		{"render.thumbnail", "thumbnail"},
		{"render.variants", "variants"},
		{"render.workers", "workers"},
		{"render.progress", "progress"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, renderCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}

	registerGrainFlags(renderCmd, "render")
}

func runRender(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	width := viper.GetInt("render.width")
	height := viper.GetInt("render.height")
	seed := viper.GetInt64("render.seed")
	out := viper.GetString("render.out")
	base := viper.GetString("render.base")
	baseLightness := viper.GetFloat64("render.base_lightness")
	cloudContrast := viper.GetFloat64("render.cloud_contrast")
	maskOnly := viper.GetBool("render.mask_only")
	pngCompression := viper.GetString("render.png_compression")
	thumbnail := viper.GetInt("render.thumbnail")
	variants := viper.GetInt("render.variants")
	workers := viper.GetInt("render.workers")
	showProgress := viper.GetBool("render.progress")

	cfg := grainConfigFromViper("render")
	if !cfg.Enabled {
		logger.Info("Grain is disabled, nothing to render")
		return nil
	}

	level, err := render.CompressionLevel(pngCompression)
	if err != nil {
		return err
	}

	pipeline, err := render.NewPipeline(render.Options{
		Width:         width,
		Height:        height,
		Config:        cfg,
		Base:          base,
		BaseLightness: baseLightness,
		CloudContrast: cloudContrast,
		MaskOnly:      maskOnly,
		Compression:   level,
		ThumbnailDim:  thumbnail,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting grain render",
		"size", fmt.Sprintf("%dx%d", width, height),
		"seed", seed,
		"algorithm", string(cfg.Algorithm),
		"grain_size", string(cfg.Size),
		"base", base,
		"mask_only", maskOnly,
		"variants", variants,
	)

	if variants <= 0 {
		if err := pipeline.Render(context.Background(), seed, out); err != nil {
			return fmt.Errorf("failed to render grain: %w", err)
		}
		logger.Info("Grain rendered", "seed", seed, "path", out)
		return nil
	}

	return runBatchRender(pipeline, seed, variants, workers, showProgress, out)
}

func runBatchRender(pipeline *render.Pipeline, baseSeed int64, variants, workers int, showProgress bool, out string) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	tasks := make([]worker.Task, 0, variants)
	for i := 0; i < variants; i++ {
		s := baseSeed + int64(i)
		tasks = append(tasks, worker.Task{Seed: s, OutPath: variantPath(out, s)})
	}

	progress := worker.NewProgress(len(tasks), showProgress)

	pool := worker.New(worker.Config{
		Workers:    workers,
		Renderer:   pipeline,
		OnProgress: progress.Callback(),
	})

	logger.Info("Rendering seed variants", "count", len(tasks), "workers", workers)
	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Variant render failed", "seed", r.Task.Seed, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if failedCount > 0 {
		return fmt.Errorf("%d variants failed to render", failedCount)
	}
	return nil
}

// variantPath derives a per-seed output path from the base output path.
func variantPath(out string, seed int64) string {
	ext := filepath.Ext(out)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(out, filepath.Ext(out)) + fmt.Sprintf("_seed%d", seed) + ext
}
