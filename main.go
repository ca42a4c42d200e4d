package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	width      int
	height     int
	samples    int
	depth      int
	workers    int
	tileSize   int
	sequential bool
	seed       int64
	output     string
	scale      int
	quiet      bool
}

func main() {
	// Parse command line flags
	opts := options{}
	flag.StringVar(&opts.sceneType, "scene", scene.DefaultSceneID, "Scene type: "+strings.Join(scene.SceneIDs(), ", "))
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	flag.BoolVar(&opts.sequential, "sequential", false, "Render on a single goroutine")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultConfig().Seed, "Seed for sampling and the random scene layout")
	flag.StringVar(&opts.output, "output", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	flag.IntVar(&opts.scale, "scale", 1, "Integer upscale factor for the saved image")
	flag.BoolVar(&opts.quiet, "quiet", false, "Suppress the progress bar")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Weekend Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-13s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders and saves one image. The renderer reports completion through logger.
func run(opts options, logger core.Logger) error {
	logger.Printf("Starting Weekend Raytracer...\n")

	selectedScene, err := createScene(opts.sceneType, opts.seed)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d spheres)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	config := renderConfig(selectedScene, opts)
	camera := selectedScene.Camera(config.Width, config.Height)

	r, err := renderer.NewRenderer(selectedScene.World, camera, config, logger)
	if err != nil {
		return err
	}
	if !opts.quiet {
		r.SetProgressCallback(func(done, total int) {
			fmt.Print("\r" + progressBar(done, total))
			if done == total {
				fmt.Println()
			}
		})
	}

	fb, _ := r.Render()

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", selectedScene.Name, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := output.Save(filename, output.Upscale(output.ToImage(fb), opts.scale)); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene builds the named scene, seeding random layouts from seed
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	return scene.Create(sceneType, rand.New(rand.NewSource(seed)))
}

// renderConfig applies command line overrides to the scene's sampling settings
func renderConfig(s *scene.Scene, opts options) renderer.Config {
	config := s.RenderConfig()
	if opts.width > 0 {
		config.Width = opts.width
	}
	if opts.height > 0 {
		config.Height = opts.height
	}
	if opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	config.NumWorkers = opts.workers
	config.TileSize = opts.tileSize
	config.Sequential = opts.sequential
	config.Seed = opts.seed
	return config
}

// progressBar renders a 20 column bar such as "[=========>          ]45.0000%"
func progressBar(done, total int) string {
	fraction := float64(done) / float64(total)
	filled := min(int(20*fraction), 20)

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("=", filled))
	if filled < 20 {
		sb.WriteString(">")
		sb.WriteString(strings.Repeat(" ", 20-filled-1))
	}
	sb.WriteString("]")
	sb.WriteString(fmt.Sprintf("%.4f%%", fraction*100))
	return sb.String()
}
