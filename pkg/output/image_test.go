package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func testFramebuffer() *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(2, 2)
	fb.Set(0, 0, 0xFF0000)
	fb.Set(1, 0, 0x00FF00)
	fb.Set(0, 1, 0x0000FF)
	fb.Set(1, 1, 0x7F7F7F)
	return fb
}

func TestToImage(t *testing.T) {
	img := ToImage(testFramebuffer())

	tests := []struct {
		x, y     int
		expected color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{1, 0, color.NRGBA{0, 255, 0, 255}},
		{0, 1, color.NRGBA{0, 0, 255, 255}},
		{1, 1, color.NRGBA{127, 127, 127, 255}},
	}

	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestUpscale(t *testing.T) {
	img := ToImage(testFramebuffer())

	if Upscale(img, 1) != image.Image(img) {
		t.Error("Expected factor 1 to return the image unchanged")
	}

	scaled := Upscale(img, 3)
	if scaled.Bounds().Dx() != 6 || scaled.Bounds().Dy() != 6 {
		t.Fatalf("Expected 6x6, got %v", scaled.Bounds())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			expected := color.NRGBAModel.Convert(img.At(x/3, y/3))
			if got := color.NRGBAModel.Convert(scaled.At(x, y)); got != expected {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestSave_CreatesDirectoryAndDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "render.png")
	img := ToImage(testFramebuffer())

	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Expected a PNG file: %v", err)
	}
	if got := color.NRGBAModel.Convert(decoded.At(1, 0)); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("Expected green at (1,0), got %v", got)
	}
}

func TestEncode(t *testing.T) {
	img := ToImage(testFramebuffer())

	for _, format := range []string{"png", "jpg", "jpeg", "bmp"} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Errorf("Encode(%q) failed: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Encode(%q) wrote nothing", format)
		}
	}

	if err := Encode(&bytes.Buffer{}, img, "webp"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"png":  "image/png",
		"jpg":  "image/jpeg",
		"bmp":  "image/bmp",
		"webp": "application/octet-stream",
	}
	for format, expected := range tests {
		if got := ContentType(format); got != expected {
			t.Errorf("ContentType(%q): expected %q, got %q", format, expected, got)
		}
	}
}
