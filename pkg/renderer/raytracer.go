package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Side of the square pixel blocks handed to workers
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Sequential      bool  // Render all tiles on the calling goroutine
	Seed            int64 // Base seed for the per-tile random generators
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          320,
		SamplesPerPixel: 65,
		MaxDepth:        integrator.DefaultMaxDepth,
		TileSize:        32,
		NumWorkers:      0,
		Sequential:      false,
		Seed:            42,
	}
}

// Validate reports configuration values that cannot produce an image
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers))
	}
	return errors.Join(errs...)
}

// Raytracer turns pixels into packed colors. It only reads its world and
// camera, so one Raytracer is shared by all workers.
type Raytracer struct {
	world           geometry.Shape
	camera          *Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *Raytracer {
	return &Raytracer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// SamplePixel averages samplesPerPixel jittered samples for pixel (i, j).
// Row j counts from the top of the image.
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	row := float32(rt.height - 1 - j)

	for sample := 0; sample < rt.samplesPerPixel; sample++ {
		s := (float32(i) + sampler.Get1D()) / float32(rt.width)
		t := (row + sampler.Get1D()) / float32(rt.height)

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return colorAccum.Divide(float32(rt.samplesPerPixel))
}

// RenderBounds renders pixels within the specified bounds into fb.
// Concurrent calls are safe as long as their bounds do not overlap.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *Framebuffer, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.Set(i, j, PackColor(rt.SamplePixel(i, j, sampler).Sqrt()))
			stats.TotalSamples += rt.samplesPerPixel
		}
	}

	return stats
}
