package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/imageload"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// newLoadProgressBar creates a progress bar for image loading, or nil if JSON output.
func newLoadProgressBar(count int, jsonOutput bool) *progressbar.ProgressBar {
	if jsonOutput {
		return nil
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription("Reading images"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

// loadImages reads the dimensions of every file. Stale batches cannot happen
// here since the CLI starts exactly one batch.
func loadImages(ctx context.Context, cfg *config.Config, paths []string, jsonOutput bool) ([]layout.Image, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	bar := newLoadProgressBar(len(paths), jsonOutput)
	var progress imageload.Progress
	if bar != nil {
		progress = func(done, total int) { _ = bar.Set(done) }
	}

	start := time.Now()
	batch, err := imageload.NewLoader(cfg.Loader.Concurrency).Load(ctx, imageload.FileSources(paths), progress)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		if errors.Is(err, imageload.ErrStaleBatch) {
			return nil, fmt.Errorf("image loading was superseded: %w", err)
		}
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	if !jsonOutput {
		fmt.Fprintf(os.Stderr, "Loaded %d images in %s\n", len(batch.Images), time.Since(start).Round(time.Millisecond))
	}
	return batch.Images, nil
}

// loadCatalog returns the configured template catalog.
func loadCatalog(cfg *config.Config) (*layout.Catalog, error) {
	if cfg.Layout.TemplatesPath == "" {
		return layout.DefaultCatalog(), nil
	}
	f, err := os.Open(filepath.Clean(cfg.Layout.TemplatesPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open templates file: %w", err)
	}
	defer f.Close()
	catalog, err := layout.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", cfg.Layout.TemplatesPath, err)
	}
	return catalog, nil
}

// imageName returns the file name behind a loaded image.
func imageName(img layout.Image) string {
	if src, ok := img.Handle.(imageload.Source); ok {
		return filepath.Base(src.Name())
	}
	return img.ID
}
