// Package imageload resolves image dimensions for layout batches.
//
// Only image headers are read. A Loader tags each batch with a generation;
// when a newer batch starts, results of the older one are discarded.
package imageload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// ErrStaleBatch is returned when a batch was superseded by a newer Load call.
var ErrStaleBatch = errors.New("image batch superseded")

// Source is a readable image.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileSource reads an image from disk.
type FileSource string

// Name returns the file path.
func (f FileSource) Name() string { return string(f) }

// Open opens the file.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(filepath.Clean(string(f)))
}

// BytesSource is an image held in memory, e.g. an HTTP upload.
type BytesSource struct {
	Filename string
	Data     []byte
}

// Name returns the original file name.
func (b BytesSource) Name() string { return b.Filename }

// Open returns a reader over the image bytes.
func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// Info describes one decoded image header.
type Info struct {
	Source Source
	Format string
	Width  int
	Height int
}

// Batch is a fully resolved set of images in input order.
type Batch struct {
	Generation uint64
	Images     []layout.Image
	Formats    []string
}

// Progress is called after each resolved image.
type Progress func(done, total int)

// Loader resolves batches of images. It is safe for concurrent use.
type Loader struct {
	concurrency int
	generation  atomic.Uint64
}

// NewLoader creates a loader using up to concurrency parallel readers.
func NewLoader(concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = constants.LoaderConcurrency
	}
	return &Loader{concurrency: concurrency}
}

// Generation returns the generation of the most recently started batch.
func (l *Loader) Generation() uint64 {
	return l.generation.Load()
}

// Load starts a new generation and resolves every source. Each image gets a
// fresh uuid and its Source as the layout handle. The batch is returned only
// if every source resolved and no newer Load started meanwhile; otherwise
// ErrStaleBatch is returned and all results are dropped.
func (l *Loader) Load(ctx context.Context, sources []Source, progress Progress) (Batch, error) {
	gen := l.generation.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	infos := make([]Info, len(sources))
	errs := make([]error, len(sources))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	sem := make(chan struct{}, l.concurrency)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()

			if l.generation.Load() != gen {
				errs[i] = ErrStaleBatch
				cancel()
				return
			}

			info, err := Decode(src)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			infos[i] = info

			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(sources))
				mu.Unlock()
			}
		}(i, src)
	}
	wg.Wait()

	if l.generation.Load() != gen {
		return Batch{}, ErrStaleBatch
	}
	if err := firstError(errs); err != nil {
		return Batch{}, err
	}

	batch := Batch{
		Generation: gen,
		Images:     make([]layout.Image, len(infos)),
		Formats:    make([]string, len(infos)),
	}
	for i, info := range infos {
		batch.Images[i] = layout.Image{
			ID:     uuid.New().String(),
			Width:  info.Width,
			Height: info.Height,
			Handle: info.Source,
		}
		batch.Formats[i] = info.Format
	}
	return batch, nil
}

// firstError prefers real failures over the cancellations they caused.
func firstError(errs []error) error {
	var canceled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if canceled == nil {
				canceled = err
			}
		default:
			return err
		}
	}
	return canceled
}

// Decode reads the header of one image.
func Decode(src Source) (Info, error) {
	rc, err := src.Open()
	if err != nil {
		return Info{}, fmt.Errorf("failed to open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	cfg, format, err := image.DecodeConfig(rc)
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode image config of %s: %w", src.Name(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: %s is %dx%d", layout.ErrInvalidImage, src.Name(), cfg.Width, cfg.Height)
	}
	return Info{Source: src, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// FileSources wraps paths as sources.
func FileSources(paths []string) []Source {
	out := make([]Source, len(paths))
	for i, p := range paths {
		out[i] = FileSource(p)
	}
	return out
}
