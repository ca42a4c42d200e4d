package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"random scene", "random", false},
		{"literal scene", "literal", false},
		{"hollow glass scene", "hollow-glass", false},

		// Invalid scenes
		{"unknown scene", "cornell", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.SamplingConfig.Width <= 0 || scene.SamplingConfig.Height <= 0 {
				t.Errorf("Scene sampling size should be positive, got %dx%d",
					scene.SamplingConfig.Width, scene.SamplingConfig.Height)
			}
			if scene.GetPrimitiveCount() == 0 {
				t.Error("Expected scene to contain spheres")
			}
		})
	}
}

func TestRenderConfig_Overrides(t *testing.T) {
	scene, err := createScene("literal", 1)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	config := renderConfig(scene, options{width: 100, samples: 3, tileSize: 16, seed: 9, sequential: true})
	if config.Width != 100 || config.Height != 320 {
		t.Errorf("Expected 100x320, got %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel != 3 || config.MaxDepth != 50 {
		t.Errorf("Expected 3 samples and depth 50, got %d and %d", config.SamplesPerPixel, config.MaxDepth)
	}
	if config.TileSize != 16 || config.Seed != 9 || !config.Sequential {
		t.Errorf("Expected tile, seed and mode overrides, got %+v", config)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int
		expected    string
	}{
		{0, 4, "[>                   ]0.0000%"},
		{1, 4, "[=====>              ]25.0000%"},
		{4, 4, "[====================]100.0000%"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.done, tt.total); got != tt.expected {
			t.Errorf("progressBar(%d, %d): expected %q, got %q", tt.done, tt.total, tt.expected, got)
		}
	}
}

func TestRun_WritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.png")
	opts := options{
		sceneType: "literal",
		width:     16,
		height:    8,
		samples:   2,
		tileSize:  8,
		seed:      1,
		output:    path,
		scale:     2,
		quiet:     true,
	}

	logger := &recordingLogger{}
	if err := run(opts, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty image at %s (err=%v)", path, err)
	}

	// Completion is reported once, by the renderer
	completed := 0
	for _, line := range logger.lines {
		if strings.Contains(line, "Render completed") {
			completed++
		}
		if strings.Contains(line, "Finished rendering") {
			t.Errorf("Unexpected second completion line %q", line)
		}
	}
	if completed != 1 {
		t.Errorf("Expected exactly one completion line, got %d in %q", completed, logger.lines)
	}
	if last := logger.lines[len(logger.lines)-1]; last != "Render saved as "+path+"\n" {
		t.Errorf("Expected the save path last, got %q", last)
	}

	opts.sceneType = "nonexistent"
	if err := run(opts, &recordingLogger{}); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}
