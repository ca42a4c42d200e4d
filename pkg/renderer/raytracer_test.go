package renderer

import (
	"image"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func testWorld() *geometry.World {
	return geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)
}

func testConfig() Config {
	config := DefaultConfig()
	config.Width = 24
	config.Height = 12
	config.SamplesPerPixel = 4
	config.TileSize = 8
	return config
}

func testCamera(config Config) *Camera {
	cameraConfig := pinholeConfig()
	cameraConfig.AspectRatio = float32(config.Width) / float32(config.Height)
	return NewCamera(cameraConfig)
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		message string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "image size"},
		{"negative height", func(c *Config) { c.Height = -1 }, "image size"},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }, "samples per pixel"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max depth"},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }, "tile size"},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }, "worker count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error mentioning %q, got %v", tt.message, err)
			}
		})
	}
}

func TestRaytracer_SamplePixelDrawOrder(t *testing.T) {
	config := testConfig()
	config.SamplesPerPixel = 3
	world := geometry.NewWorld()
	rt := NewRaytracer(world, testCamera(config), integrator.NewPathTracingIntegrator(config.MaxDepth),
		config.Width, config.Height, config.SamplesPerPixel)

	// Two jitter draws plus two lens draws per sample; the empty world draws nothing else
	sampler := &countingSampler{value: 0.5}
	rt.SamplePixel(0, 0, sampler)
	if sampler.draws != 12 {
		t.Errorf("Expected 12 draws, got %d", sampler.draws)
	}
}

func TestRaytracer_TopRowIsSky(t *testing.T) {
	config := testConfig()
	world := geometry.NewWorld()
	rt := NewRaytracer(world, testCamera(config), integrator.NewPathTracingIntegrator(config.MaxDepth),
		config.Width, config.Height, config.SamplesPerPixel)

	fb := NewFramebuffer(config.Width, config.Height)
	stats := rt.RenderBounds(image.Rect(0, 0, config.Width, config.Height), fb, core.NewSeededSampler(1))

	if stats.TotalPixels != config.Width*config.Height {
		t.Errorf("Expected %d pixels, got %d", config.Width*config.Height, stats.TotalPixels)
	}

	// Row 0 looks up into the blue end of the gradient, the last row looks down toward white
	_, _, topBlue := UnpackColor(fb.At(config.Width/2, 0))
	topRed, _, _ := UnpackColor(fb.At(config.Width/2, 0))
	bottomRed, _, _ := UnpackColor(fb.At(config.Width/2, config.Height-1))
	if topBlue != 255 {
		t.Errorf("Expected fully blue sky at the top, got %d", topBlue)
	}
	if topRed >= bottomRed {
		t.Errorf("Expected red to increase toward the bottom, got top %d bottom %d", topRed, bottomRed)
	}
}

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		width, height, tileSize int
		expectedTiles           int
	}{
		{64, 64, 32, 4},
		{65, 33, 32, 6},
		{10, 10, 64, 1},
		{1, 1, 1, 1},
	}

	for _, tt := range tests {
		tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 0)
		if len(tiles) != tt.expectedTiles {
			t.Errorf("%dx%d/%d: expected %d tiles, got %d", tt.width, tt.height, tt.tileSize, tt.expectedTiles, len(tiles))
		}

		covered := make([]int, tt.width*tt.height)
		for id, tile := range tiles {
			if tile.ID != id {
				t.Errorf("Expected tile ID %d, got %d", id, tile.ID)
			}
			for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
				for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
					covered[y*tt.width+x]++
				}
			}
		}
		for i, count := range covered {
			if count != 1 {
				t.Fatalf("%dx%d/%d: pixel %d covered %d times", tt.width, tt.height, tt.tileSize, i, count)
			}
		}
	}
}

func TestRenderer_InvalidConfig(t *testing.T) {
	config := testConfig()
	config.SamplesPerPixel = 0

	if _, err := NewRenderer(testWorld(), testCamera(config), config, nil); err == nil {
		t.Error("Expected an error for an invalid config")
	}
}

func TestRenderer_SequentialMatchesParallel(t *testing.T) {
	config := testConfig()
	world := testWorld()
	camera := testCamera(config)

	sequentialConfig := config
	sequentialConfig.Sequential = true
	sequential, err := NewRenderer(world, camera, sequentialConfig, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	parallelConfig := config
	parallelConfig.NumWorkers = 4
	parallel, err := NewRenderer(world, camera, parallelConfig, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	seqFB, seqStats := sequential.Render()
	parFB, parStats := parallel.Render()

	if seqStats.Workers != 1 || parStats.Workers != 4 {
		t.Errorf("Expected 1 and 4 workers, got %d and %d", seqStats.Workers, parStats.Workers)
	}
	for i := range seqFB.Pixels {
		if seqFB.Pixels[i] != parFB.Pixels[i] {
			t.Fatalf("Pixel %d differs: sequential 0x%06X, parallel 0x%06X", i, seqFB.Pixels[i], parFB.Pixels[i])
		}
	}
}

func TestRenderer_RepeatedRenderIsDeterministic(t *testing.T) {
	config := testConfig()
	r, err := NewRenderer(testWorld(), testCamera(config), config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	first, _ := r.Render()
	second, _ := r.Render()
	for i := range first.Pixels {
		if first.Pixels[i] != second.Pixels[i] {
			t.Fatalf("Pixel %d differs between renders", i)
		}
	}

	config.Seed++
	other, err := NewRenderer(testWorld(), testCamera(config), config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	third, _ := other.Render()
	same := true
	for i := range first.Pixels {
		if first.Pixels[i] != third.Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRenderer_StatsAndProgress(t *testing.T) {
	config := testConfig()
	config.NumWorkers = 2
	r, err := NewRenderer(testWorld(), testCamera(config), config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var calls, lastDone, lastTotal int
	r.SetProgressCallback(func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})

	_, stats := r.Render()

	if calls != r.TileCount() || lastDone != lastTotal || lastTotal != r.TileCount() {
		t.Errorf("Expected %d progress calls ending complete, got %d calls ending %d/%d",
			r.TileCount(), calls, lastDone, lastTotal)
	}
	if stats.TotalPixels != config.Width*config.Height {
		t.Errorf("Expected %d pixels, got %d", config.Width*config.Height, stats.TotalPixels)
	}
	if stats.TotalSamples != stats.TotalPixels*config.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", stats.TotalPixels*config.SamplesPerPixel, stats.TotalSamples)
	}
	if stats.AverageSamples != float64(config.SamplesPerPixel) {
		t.Errorf("Expected average %d, got %v", config.SamplesPerPixel, stats.AverageSamples)
	}
}

func TestRenderer_LogsToLogger(t *testing.T) {
	config := testConfig()
	config.Sequential = true
	logger := &recordingLogger{}
	r, err := NewRenderer(testWorld(), testCamera(config), config, logger)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	r.Render()

	if len(logger.lines) != 2 || !strings.Contains(logger.lines[1], "Render completed") {
		t.Errorf("Expected start and completion log lines, got %q", logger.lines)
	}
}

type recordingLogger struct{ lines []string }

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func drawSequence(sampler core.Sampler, n int) []float32 {
	draws := make([]float32, n)
	for i := range draws {
		draws[i] = sampler.Get1D()
	}
	return draws
}

func sameDraws(a, b []float32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewTileGrid_AdjacentSeedsDoNotShareStreams(t *testing.T) {
	// Tile 1 of seed 42 and tile 0 of seed 43 used to draw the same numbers
	seed42 := NewTileGrid(64, 64, 32, 42)
	seed43 := NewTileGrid(64, 64, 32, 43)
	if sameDraws(drawSequence(seed42[1].Sampler, 100), drawSequence(seed43[0].Sampler, 100)) {
		t.Error("Expected tile 1 of seed 42 and tile 0 of seed 43 to draw different numbers")
	}

	// The scene builder draws from the base seed directly; tiles must not replay it
	base := drawSequence(core.NewSeededSampler(42), 100)
	if sameDraws(drawSequence(NewTileGrid(64, 64, 32, 42)[0].Sampler, 100), base) {
		t.Error("Expected tile 0 not to replay the base seed stream")
	}

	seen := make(map[int64]bool)
	for seed := int64(0); seed < 8; seed++ {
		for id := 0; id < 64; id++ {
			tileSeed := TileSeed(seed, id)
			if seen[tileSeed] {
				t.Fatalf("Tile seed collision at seed %d tile %d", seed, id)
			}
			seen[tileSeed] = true
		}
	}
}

func TestTileSeed_Deterministic(t *testing.T) {
	if TileSeed(42, 3) != TileSeed(42, 3) {
		t.Error("Expected TileSeed to be a pure function")
	}
	a := drawSequence(NewTile(3, image.Rect(0, 0, 1, 1), 42).Sampler, 10)
	b := drawSequence(NewTileGrid(32, 32, 8, 42)[3].Sampler, 10)
	if !sameDraws(a, b) {
		t.Error("Expected equal tile IDs and seeds to produce equal streams")
	}
}
