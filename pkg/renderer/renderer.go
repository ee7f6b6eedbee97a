package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-raytracer/pkg/core"
)

var (
	// ErrInvalidDimensions is returned for non-positive image sizes
	ErrInvalidDimensions = errors.New("image width and height must be positive")
	// ErrInvalidSamples is returned when fewer than one sample per pixel is requested
	ErrInvalidSamples = errors.New("samples per pixel must be at least 1")
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	Jitter          bool  // Random sub-pixel offsets; when false every sample hits the pixel corner
	Seed            int64 // Base seed, row y uses Seed+y
	NumWorkers      int   // Concurrent rows, 0 means runtime.NumCPU()
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		Jitter:          true,
		Seed:            42,
		NumWorkers:      runtime.NumCPU(),
	}
}

// Renderer turns a scene into an image by supersampling every pixel
type Renderer struct {
	scene  core.Scene
	width  int
	height int
	config SamplingConfig
	logger core.Logger
	rows   *RowRenderer
}

// NewRenderer creates a renderer for a width x height image. A nil logger discards output.
func NewRenderer(scene core.Scene, width, height int, config SamplingConfig, logger core.Logger) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if config.SamplesPerPixel < 1 {
		return nil, fmt.Errorf("%d: %w", config.SamplesPerPixel, ErrInvalidSamples)
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Renderer{
		scene:  scene,
		width:  width,
		height: height,
		config: config,
		logger: logger,
		rows:   NewRowRenderer(scene, width, height, config.SamplesPerPixel),
	}, nil
}

// Config returns the effective sampling configuration
func (r *Renderer) Config() SamplingConfig {
	return r.config
}

// samplerForRow gives each row its own generator so output doesn't depend on scheduling
func (r *Renderer) samplerForRow(y int) core.Sampler {
	if !r.config.Jitter {
		return core.FixedSampler{}
	}
	return core.NewSeededSampler(r.config.Seed + int64(y))
}

// Render renders the full image. Rows are rendered in parallel, each into its
// own slice of the image. Cancelling ctx stops scheduling new rows; Render then
// returns the partial image along with ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	r.logger.Printf("Rendering %dx%d at %d samples/pixel (using %d workers)...\n",
		r.width, r.height, r.config.SamplesPerPixel, r.config.NumWorkers)

	img := NewImage(r.width, r.height)
	rowStats := make([]RenderStats, r.height)

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(r.config.NumWorkers))

	for y := 0; y < r.height; y++ {
		if err := sem.Acquire(egCtx, 1); err != nil {
			break
		}

		y := y
		eg.Go(func() error {
			defer sem.Release(1)
			if err := egCtx.Err(); err != nil {
				return err
			}
			// Camera y grows upward, image rows grow downward
			rowStats[y] = r.rows.RenderRow(y, img.Row(r.height-1-y), r.samplerForRow(y))
			return nil
		})
	}

	waitErr := eg.Wait()

	var stats RenderStats
	for _, s := range rowStats {
		stats.merge(s)
	}
	stats.finalize()
	stats.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		r.logger.Printf("Render cancelled after %v\n", stats.Elapsed)
		return img, stats, err
	}
	if waitErr != nil {
		return img, stats, fmt.Errorf("while waiting for row workers: %w", waitErr)
	}

	r.logger.Printf("Render completed in %v (%.1f samples/pixel, mean variance %.3g)\n",
		stats.Elapsed, stats.AverageSamples, stats.MeanVariance)
	return img, stats, nil
}
