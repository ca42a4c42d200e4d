package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene name (e.g., "random")
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	Samples  int     `json:"samples"`  // Samples per pixel
	Depth    int     `json:"depth"`    // Maximum bounce depth
	Seed     int64   `json:"seed"`     // Seed for sampling and random scene layout
	Format   string  `json:"format"`   // png, jpg, bmp or json
	VFov     float32 `json:"vfov"`     // Vertical field of view override (0 = scene default)
	Aperture float32 `json:"aperture"` // Aperture override, applied when HasAperture is set

	HasAperture bool `json:"-"`
}

// RenderResponse is returned for format=json
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Workers        int     `json:"workers"`
}

var renderCounter atomic.Int64

// handleRender renders a scene synchronously and writes the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Parse request parameters
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Create scene
	sceneObj, err := scene.Create(req.Scene, rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.VFov != 0 {
		sceneObj.CameraConfig.VFov = req.VFov
	}
	if req.HasAperture {
		sceneObj.CameraConfig.Aperture = req.Aperture
	}

	config := sceneObj.RenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.Depth
	config.Seed = req.Seed

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	consoleChan := make(chan ConsoleMessage, 16)
	logger := NewWebLogger(renderID, consoleChan)

	raytracer, err := renderer.NewRenderer(sceneObj.World, sceneObj.Camera(config.Width, config.Height), config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	fb, stats := raytracer.Render()
	img := output.ToImage(fb)

	if req.Format == "json" {
		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			ImageData: imageData,
			Width:     fb.Width,
			Height:    fb.Height,
			Stats: Stats{
				TotalPixels:    stats.TotalPixels,
				TotalSamples:   int64(stats.TotalSamples),
				AverageSamples: stats.AverageSamples,
				Workers:        stats.Workers,
			},
			Console:   drainConsole(consoleChan),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[%s] Failed to write image: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := scene.DefaultSamplingConfig()

	// Initialize request with defaults handled by helper functions
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Format: query.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}
	if req.Format == "" {
		req.Format = "png"
	}

	switch req.Format {
	case "png", "jpg", "jpeg", "bmp", "json":
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(renderer.DefaultConfig().Seed), 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.VFov, err = parseFloatParam(query, "vfov", 0, 1, 179); err != nil {
		return nil, err
	}
	if query.Has("aperture") {
		if req.Aperture, err = parseFloatParam(query, "aperture", 0, 0, 10); err != nil {
			return nil, err
		}
		req.HasAperture = true
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
