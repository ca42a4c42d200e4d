package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// discardLogger drops all output
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// ProgressFunc is called on the rendering goroutine after each tile completes
type ProgressFunc func(tilesDone, totalTiles int)

// Renderer distributes tiles of one image across workers
type Renderer struct {
	config    Config
	raytracer *Raytracer
	tiles     []*Tile
	logger    core.Logger
	progress  ProgressFunc
}

// NewRenderer creates a renderer for world as seen by camera.
// A nil logger discards log output.
func NewRenderer(world geometry.Shape, camera *Camera, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = discardLogger{}
	}

	pathTracer := integrator.NewPathTracingIntegrator(config.MaxDepth)
	raytracer := NewRaytracer(world, camera, pathTracer, config.Width, config.Height, config.SamplesPerPixel)

	return &Renderer{
		config:    config,
		raytracer: raytracer,
		tiles:     NewTileGrid(config.Width, config.Height, config.TileSize, config.Seed),
		logger:    logger,
	}, nil
}

// SetProgressCallback registers fn to be told about completed tiles
func (r *Renderer) SetProgressCallback(fn ProgressFunc) {
	r.progress = fn
}

// Render renders the full image. Each call restarts the per-tile generators,
// so repeated renders with the same config produce the same pixels.
func (r *Renderer) Render() (*Framebuffer, RenderStats) {
	fb := NewFramebuffer(r.config.Width, r.config.Height)
	r.tiles = NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize, r.config.Seed)
	startTime := time.Now()

	var stats RenderStats
	if r.config.Sequential || r.config.NumWorkers == 1 {
		stats = r.renderSequential(fb)
	} else {
		stats = r.renderParallel(fb)
	}

	stats.finalize()
	stats.Duration = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%d pixels, %.1f samples/pixel, %d workers)\n",
		stats.Duration, stats.TotalPixels, stats.AverageSamples, stats.Workers)

	return fb, stats
}

// renderSequential renders tiles in order on the calling goroutine
func (r *Renderer) renderSequential(fb *Framebuffer) RenderStats {
	r.logger.Printf("Rendering %dx%d with %d samples per pixel (sequential)...\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel)

	stats := RenderStats{Workers: 1}
	for i, tile := range r.tiles {
		stats.merge(r.raytracer.RenderBounds(tile.Bounds, fb, tile.Sampler))
		r.reportProgress(i + 1)
	}
	return stats
}

// renderParallel fans tiles out to a worker pool and collects their results
func (r *Renderer) renderParallel(fb *Framebuffer) RenderStats {
	workerPool := NewWorkerPool(r.raytracer, r.config.NumWorkers, len(r.tiles))

	r.logger.Printf("Rendering %dx%d with %d samples per pixel (using %d workers)...\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, workerPool.GetNumWorkers())

	workerPool.Start()
	for taskID, tile := range r.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:        tile,
			TaskID:      taskID,
			Framebuffer: fb,
		})
	}

	stats := RenderStats{Workers: workerPool.GetNumWorkers()}
	for i := 0; i < len(r.tiles); i++ {
		result, _ := workerPool.GetResult()
		stats.merge(result.Stats)
		r.reportProgress(i + 1)
	}
	workerPool.Stop()

	return stats
}

func (r *Renderer) reportProgress(tilesDone int) {
	if r.progress != nil {
		r.progress(tilesDone, len(r.tiles))
	}
}

// TileCount returns the number of tiles the image is split into
func (r *Renderer) TileCount() int {
	return len(r.tiles)
}
